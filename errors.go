package anonymask

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrInvalidConfig indicates an anonymizer was configured with unusable settings.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnknownCategory indicates a built-in category name was not recognized.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrInvalidFormat indicates a placeholder format cannot mint unique placeholders.
	ErrInvalidFormat = errors.New("invalid placeholder format")

	// ErrPlaceholderExhausted indicates no collision-free placeholder could be minted.
	ErrPlaceholderExhausted = errors.New("placeholder exhausted")

	// ErrInvalidTag indicates a struct tag has an invalid format or value.
	ErrInvalidTag = errors.New("invalid tag")

	// ErrUnmarshal indicates the codec failed to unmarshal input data.
	ErrUnmarshal = errors.New("unmarshal failed")

	// ErrMarshal indicates the codec failed to marshal output data.
	ErrMarshal = errors.New("marshal failed")

	// ErrSeal indicates a mapping could not be sealed.
	ErrSeal = errors.New("seal failed")

	// ErrOpen indicates a sealed mapping could not be opened.
	ErrOpen = errors.New("open failed")
)

// ConfigError represents an anonymizer configuration error.
// It wraps a sentinel error with the offending setting. Value only ever
// holds configuration input such as a category name or a format template.
type ConfigError struct {
	Err   error  // Underlying sentinel error (ErrUnknownCategory, etc.)
	Field string // Setting that triggered the error
	Value string // Configured value that was rejected
	Hint  string // Optional suggestion
}

func (e *ConfigError) Error() string {
	msg := e.Err.Error()
	if e.Value != "" {
		msg = fmt.Sprintf("%s %q", msg, e.Value)
	}
	if e.Field != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Field)
	}
	if e.Hint != "" {
		msg = fmt.Sprintf("%s: did you mean %q?", msg, e.Hint)
	}
	return msg
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Is reports configuration sentinels as ErrInvalidConfig so callers can
// check for the whole class with a single errors.Is.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// SpanError represents a failure tied to a detected occurrence.
// It reports the category and byte offsets, never the captured value.
type SpanError struct {
	Err      error  // Underlying sentinel error
	Category string // Category of the occurrence
	Start    int    // Byte offset where the occurrence starts
	End      int    // Byte offset where the occurrence ends
	Cause    error  // Original error, if any
}

func (e *SpanError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s for %s[%d:%d]: %v", e.Err.Error(), e.Category, e.Start, e.End, e.Cause)
	}
	return fmt.Sprintf("%s for %s[%d:%d]", e.Err.Error(), e.Category, e.Start, e.End)
}

func (e *SpanError) Unwrap() error {
	return e.Err
}

// CodecError represents a marshal/unmarshal error.
type CodecError struct {
	Err   error // Underlying sentinel error (ErrMarshal, ErrUnmarshal)
	Cause error // Original error from the codec
}

func (e *CodecError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Err.Error(), e.Cause)
	}
	return e.Err.Error()
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

// newConfigError creates a ConfigError for a rejected setting.
func newConfigError(sentinel error, field, value string) error {
	return &ConfigError{
		Err:   sentinel,
		Field: field,
		Value: value,
	}
}

// newSpanError creates a SpanError for an occurrence-level failure.
func newSpanError(sentinel error, o Occurrence, cause error) error {
	return &SpanError{
		Err:      sentinel,
		Category: o.Category,
		Start:    o.Start,
		End:      o.End,
		Cause:    cause,
	}
}

// newCodecError creates a CodecError for marshal/unmarshal failures.
func newCodecError(sentinel error, cause error) error {
	return &CodecError{
		Err:   sentinel,
		Cause: cause,
	}
}
