package gradle

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAlias is returned when an alias plugin identifier does not reference the version catalog.
	ErrInvalidAlias = errors.New("alias identifier must reference the version catalog (libs)")
	// ErrEmptyIdentifier is returned when a dependency or plugin is built without an identifier.
	ErrEmptyIdentifier = errors.New("identifier must not be empty")
	// ErrFormat is matched by every *FormatError.
	ErrFormat = errors.New("incorrect properties format, expected key=value")
	// ErrWrongFileName is returned when a properties file is read from a path with an unexpected name.
	ErrWrongFileName = errors.New("unexpected properties file name")
)

// ValidationError reports a value rejected at construction time.
type ValidationError struct {
	Field string
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// FormatError points at the properties line that could not be parsed.
type FormatError struct {
	Path string
	Line int
	Text string
}

func (e *FormatError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("line %d: %v: %q", e.Line, ErrFormat, e.Text)
	}
	return fmt.Sprintf("%s:%d: %v: %q", e.Path, e.Line, ErrFormat, e.Text)
}

func (e *FormatError) Is(target error) bool { return target == ErrFormat }

// FileError wraps an I/O failure while reading or writing a generated file.
type FileError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// OverrideError wraps a failure returned by an override callback.
type OverrideError struct {
	Scope string
	Key   string
	Err   error
}

func (e *OverrideError) Error() string {
	return fmt.Sprintf("override %s/%s: %v", e.Scope, e.Key, e.Err)
}

func (e *OverrideError) Unwrap() error { return e.Err }
