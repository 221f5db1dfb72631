package canopy

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidState is returned when writing to a pseudo-state variant
	// that was never registered for a style.
	ErrInvalidState = errors.New("canopy: style state not registered")

	// ErrMissingNormal is returned at load time when a style has no Normal
	// variant.
	ErrMissingNormal = errors.New("canopy: style has no normal variant")

	// ErrUnknownStyle is returned when a style or a variant reference names
	// a style that does not exist.
	ErrUnknownStyle = errors.New("canopy: unknown style")

	// ErrUnknownParam is returned by typed by-name writes for names outside
	// the parameter table.
	ErrUnknownParam = errors.New("canopy: unknown parameter")

	// ErrTypeMismatch is returned by Value accessors when the stored kind
	// differs from the requested one.
	ErrTypeMismatch = errors.New("canopy: value type mismatch")

	// ErrFormat is wrapped by every FormatError.
	ErrFormat = errors.New("canopy: malformed value")
)

// FormatError reports a raw style attribute that could not be parsed into
// its expected kind.
type FormatError struct {
	Attr string // attribute name as written in the source
	Raw  string // raw text
	Kind Kind   // expected kind
	Err  error  // underlying parse error, may be nil
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("canopy: attribute %q: cannot parse %q as %s: %v", e.Attr, e.Raw, e.Kind, e.Err)
	}
	return fmt.Sprintf("canopy: attribute %q: cannot parse %q as %s", e.Attr, e.Raw, e.Kind)
}

// Unwrap lets errors.Is match both ErrFormat and the underlying cause.
func (e *FormatError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrFormat}
	}
	return []error{ErrFormat, e.Err}
}
