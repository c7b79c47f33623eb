package gestures

import "testing"

func TestName(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected string
	}{
		{name: "open palm", code: "30", expected: "OpenPalm"},
		{name: "two finger", code: "32", expected: "TwoFinger"},
		{name: "three finger", code: "33", expected: "ThreeFinger"},
		{name: "wrist radial ulnar", code: "34", expected: "WristRadialUlnar"},
		{name: "wrist flexion extension", code: "35", expected: "WristFlexionExtension"},
		{name: "forearm pronation supination", code: "36", expected: "ForearmPronationSupination"},
		{name: "empty code", code: "", expected: "Unknown"},
		{name: "unrecognized code", code: "99", expected: "Unknown (code: 99)"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Name(tc.code); got != tc.expected {
				t.Errorf("Name(%q) = %q, expected %q", tc.code, got, tc.expected)
			}
		})
	}
}

func TestKnown(t *testing.T) {
	for _, code := range Codes() {
		if !Known(code) {
			t.Errorf("Known(%q) = false for a listed code", code)
		}
	}
	if Known("") || Known("99") {
		t.Error("Known should reject empty and unrecognized codes")
	}
}

func TestContext(t *testing.T) {
	ctx := NewContext("")

	if ctx.ActiveCode() != "" {
		t.Errorf("New context should have empty code, got %q", ctx.ActiveCode())
	}

	ctx.SetActiveCode("33")
	if ctx.ActiveCode() != "33" {
		t.Errorf("ActiveCode() = %q, expected \"33\"", ctx.ActiveCode())
	}

	// Overwrite is allowed; the tracker freezes its own copy at Start.
	ctx.SetActiveCode("30")
	if ctx.ActiveCode() != "30" {
		t.Errorf("ActiveCode() = %q, expected \"30\"", ctx.ActiveCode())
	}
}
