package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	// Check that it's initialized with spaces
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Errorf("New screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.Set(5, 5, 'X')
	if s.Get(5, 5) != 'X' {
		t.Errorf("Get(5, 5) = %q, expected 'X'", s.Get(5, 5))
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')  // Should not panic
	s.Set(100, 0, 'A') // Should not panic
	s.Set(0, -1, 'A')  // Should not panic
	s.Set(0, 100, 'A') // Should not panic

	// Out of bounds get should return space
	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
	if s.Get(100, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)

	s.DrawText(2, 1, "hello")
	if s.Row(1) != "  hello             " {
		t.Errorf("DrawText produced unexpected row: %q", s.Row(1))
	}

	// Clipped text should not panic and should keep in-bounds characters
	s.DrawText(18, 2, "abc")
	if s.Get(18, 2) != 'a' || s.Get(19, 2) != 'b' {
		t.Error("Clipped DrawText should keep in-bounds characters")
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(11, 3)
	s.DrawTextCentered(1, "abc")

	if s.Get(4, 1) != 'a' || s.Get(5, 1) != 'b' || s.Get(6, 1) != 'c' {
		t.Errorf("Centered text misplaced: %q", s.Row(1))
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.Set(3, 3, 'X')

	s.Resize(20, 20)

	if s.Width() != 20 || s.Height() != 20 {
		t.Errorf("Resize to (20, 20) got (%d, %d)", s.Width(), s.Height())
	}
	if s.Get(3, 3) != 'X' {
		t.Error("Resize should preserve existing content")
	}

	// Shrink below the preserved cell
	s.Resize(2, 2)
	if s.Get(3, 3) != ' ' {
		t.Error("Out of bounds after shrink should read as space")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(5, 5)
	s.Set(1, 1, 'A')
	s.Set(4, 4, 'B')

	s.Clear()

	if s.Get(1, 1) != ' ' || s.Get(4, 4) != ' ' {
		t.Error("Clear should reset all cells to spaces")
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.Set(0, 0, 'a')
	s.Set(2, 1, 'b')

	str := s.String()
	lines := strings.Split(str, "\n")

	if len(lines) != 2 {
		t.Fatalf("String() should have 2 lines, got %d", len(lines))
	}
	if lines[0] != "a  " {
		t.Errorf("First line = %q, expected \"a  \"", lines[0])
	}
	if lines[1] != "  b" {
		t.Errorf("Second line = %q, expected \"  b\"", lines[1])
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawBox(NewRect(1, 1, 5, 4))

	if s.Get(1, 1) != '┌' || s.Get(5, 1) != '┐' {
		t.Error("Box top corners not drawn")
	}
	if s.Get(1, 4) != '└' || s.Get(5, 4) != '┘' {
		t.Error("Box bottom corners not drawn")
	}
	if s.Get(3, 1) != '─' || s.Get(1, 2) != '│' {
		t.Error("Box edges not drawn")
	}
}

func TestScreenDrawLines(t *testing.T) {
	s := NewScreen(10, 10)

	s.DrawHLine(2, 5, 4, '=')
	for x := 2; x < 6; x++ {
		if s.Get(x, 5) != '=' {
			t.Errorf("HLine missing at (%d, 5)", x)
		}
	}

	s.DrawVLine(7, 1, 3, '|')
	for y := 1; y < 4; y++ {
		if s.Get(7, y) != '|' {
			t.Errorf("VLine missing at (7, %d)", y)
		}
	}
}
