package errs

import (
	"errors"
	"strings"
)

// Error is the base error type shared by every grit package.
//
// It carries the originating package, a machine-readable code, the
// operation that failed, an optional human message and an optional
// wrapped cause. errors.Is matches two *Error values by code, so domain
// sentinels can be declared once and compared against wrapped instances.
type Error struct {
	// Package identifies the originating package (e.g. "refs", "stage").
	Package string

	// Code is a machine-readable code for categorization and handling.
	Code string

	// Op is the operation being performed, e.g. "resolve", "compare_and_swap".
	Op string

	// Message provides brief human-readable context.
	Message string

	// Err is the underlying cause. Nil for leaf errors.
	Err error

	// Context holds optional structured metadata, initialized lazily.
	Context map[string]any
}

// Error formats as: [package][code] op: message: wrapped.
func (e *Error) Error() string {
	var parts []string

	var prefix strings.Builder
	if e.Package != "" {
		prefix.WriteString("[")
		prefix.WriteString(e.Package)
		prefix.WriteString("]")
	}
	if e.Code != "" {
		prefix.WriteString("[")
		prefix.WriteString(e.Code)
		prefix.WriteString("]")
	}
	if prefix.Len() > 0 {
		parts = append(parts, prefix.String())
	}

	if e.Op != "" {
		parts = append(parts, e.Op)
	}
	if e.Message != "" {
		parts = append(parts, e.Message)
	}

	result := strings.Join(parts, ": ")
	if e.Err != nil {
		if result != "" {
			result += ": " + e.Err.Error()
		} else {
			result = e.Err.Error()
		}
	}

	return result
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches two errors by their non-empty code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code != "" && e.Code == t.Code
}

// WithContext adds a key-value pair to the error's context and returns
// the error for chaining.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// New creates a new base error with the given fields.
func New(pkg, code, op, message string, err error) *Error {
	return &Error{
		Package: pkg,
		Code:    code,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// Wrap wraps an error with package and operation context.
// Returns nil if err is nil.
func Wrap(err error, pkg, op string) error {
	if err == nil {
		return nil
	}
	return &Error{
		Package: pkg,
		Op:      op,
		Err:     err,
	}
}

// WrapWithCode wraps an error with package, code, and operation.
// Returns nil if err is nil.
func WrapWithCode(err error, pkg, code, op string) error {
	if err == nil {
		return nil
	}
	return &Error{
		Package: pkg,
		Code:    code,
		Op:      op,
		Err:     err,
	}
}

// Codes shared across packages. Domain packages declare their own
// specific codes next to their sentinel errors.
const (
	// CodeInvalidInput indicates invalid or malformed input parameters.
	CodeInvalidInput = "INVALID_INPUT"

	// CodeNotFound indicates a requested resource was not found.
	CodeNotFound = "NOT_FOUND"

	// CodeAlreadyExists indicates a resource already exists when it shouldn't.
	CodeAlreadyExists = "ALREADY_EXISTS"

	// CodeInternal indicates an unexpected internal error.
	CodeInternal = "INTERNAL"

	// CodeLockFailed indicates failure to acquire a required lock.
	CodeLockFailed = "LOCK_FAILED"

	// CodeValidation indicates data validation failed.
	CodeValidation = "VALIDATION"

	// CodeInvalidFormat indicates data is in an invalid format.
	CodeInvalidFormat = "INVALID_FORMAT"
)

// IsCode reports whether err carries the given code, unwrapping as needed.
func IsCode(err error, code string) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the code from an error, or "" if it is not a base Error.
func GetCode(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// GetPackage extracts the package name, or "" if err is not a base Error.
func GetPackage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Package
	}
	return ""
}
