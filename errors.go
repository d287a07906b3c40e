package asciiart

import (
	"errors"
	"fmt"
)

// Sentinel errors. Use errors.Is to classify failures returned by this package.
var (
	// ErrConfiguration reports an invalid Config or ramp. It is always
	// returned before any frame is read or rendered.
	ErrConfiguration = errors.New("asciiart: invalid configuration")

	// ErrRender reports a per-frame failure. Render failures are deterministic,
	// so retrying the same frame with the same Config fails the same way.
	ErrRender = errors.New("asciiart: render failed")
)

// ConfigError describes which configuration field is invalid.
// Err, when set, is the underlying cause (for example a font that failed
// to parse).
type ConfigError struct {
	Field  string
	Value  any
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	msg := "asciiart: invalid " + e.Field
	if e.Value != nil {
		msg += fmt.Sprintf(" %v", e.Value)
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause, if any.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrConfiguration.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfiguration
}

// RenderError describes a frame that could not be rendered.
type RenderError struct {
	Reason string
	Err    error
}

func (e *RenderError) Error() string {
	if e.Err != nil {
		return "asciiart: render: " + e.Reason + ": " + e.Err.Error()
	}
	return "asciiart: render: " + e.Reason
}

// Unwrap returns the underlying cause, if any.
func (e *RenderError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrRender.
func (e *RenderError) Is(target error) bool {
	return target == ErrRender
}

func configErr(field string, value any, reason string) error {
	return &ConfigError{Field: field, Value: value, Reason: reason}
}

func renderErr(reason string, err error) error {
	return &RenderError{Reason: reason, Err: err}
}
