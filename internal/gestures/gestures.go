// Package gestures holds the control-scheme ("gesture") context for the
// arcade. A host integration or the interactive menu selects which gesture
// scheme drives the current player; the session tracker reads the active
// code exactly once when a game session starts.
package gestures

import (
	"fmt"
	"sync"
)

// Known gesture codes as reported by the gesture-recognition host.
const (
	CodeOpenPalm                   = "30"
	CodeTwoFinger                  = "32"
	CodeThreeFinger                = "33"
	CodeWristRadialUlnar           = "34"
	CodeWristFlexionExtension      = "35"
	CodeForearmPronationSupination = "36"
)

// names maps raw gesture codes to human-readable labels.
var names = map[string]string{
	CodeOpenPalm:                   "OpenPalm",
	CodeTwoFinger:                  "TwoFinger",
	CodeThreeFinger:                "ThreeFinger",
	CodeWristRadialUlnar:           "WristRadialUlnar",
	CodeWristFlexionExtension:      "WristFlexionExtension",
	CodeForearmPronationSupination: "ForearmPronationSupination",
}

// Codes returns all known gesture codes in display order.
func Codes() []string {
	return []string{
		CodeOpenPalm,
		CodeTwoFinger,
		CodeThreeFinger,
		CodeWristRadialUlnar,
		CodeWristFlexionExtension,
		CodeForearmPronationSupination,
	}
}

// Name resolves a raw gesture code to its human-readable label.
// An empty code resolves to "Unknown"; an unrecognized code resolves to a
// placeholder naming the code, so telemetry never drops a session over a
// bad gesture value.
func Name(code string) string {
	if code == "" {
		return "Unknown"
	}
	if name, ok := names[code]; ok {
		return name
	}
	return fmt.Sprintf("Unknown (code: %s)", code)
}

// Known returns true if the code is one of the recognized gesture codes.
func Known(code string) bool {
	_, ok := names[code]
	return ok
}

// Context is the process-wide holder of the active gesture code. The UI
// routing layer (menu or CLI flag) writes it before a session starts; the
// tracker only ever reads it. It is safe for concurrent use.
type Context struct {
	mu   sync.RWMutex
	code string
}

// NewContext creates a gesture context with the given initial code.
// An empty code is valid and means no gesture has been selected yet.
func NewContext(code string) *Context {
	return &Context{code: code}
}

// SetActiveCode records the currently selected gesture code.
func (c *Context) SetActiveCode(code string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.code = code
}

// ActiveCode returns the currently selected gesture code.
func (c *Context) ActiveCode() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.code
}
