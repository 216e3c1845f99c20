package dispatch

import (
	"errors"
	"fmt"
)

// Error codes classifying dispatch failures. Handlers map these onto HTTP
// statuses; the store's own errors are wrapped as CodeDependency.
const (
	CodeValidation = "validation"
	CodeAuth       = "auth"
	CodeForbidden  = "forbidden"
	CodeConflict   = "conflict"
	CodeNotFound   = "not_found"
	CodeDependency = "dependency"
)

// Error is a classified dispatch failure.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newError(code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// ErrCode extracts the dispatch error code from err, or CodeDependency for
// unclassified errors.
func ErrCode(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeDependency
}

// IsCode reports whether err carries the given dispatch error code.
func IsCode(err error, code string) bool {
	return ErrCode(err) == code
}
