package engine

import (
	"errors"
	"fmt"

	"voxelforge.ai/internal/protocol"
)

// Error is a coded engine failure. Code is one of the protocol E_* codes
// and Param names the offending request field when one exists.
type Error struct {
	Code    string
	Param   string
	Message string
	err     error
}

func (e *Error) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("%s (%s): %s", e.Code, e.Param, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.err }

// NewError builds a coded error; cause may be nil.
func NewError(code, param string, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Param:   param,
		Message: fmt.Sprintf(format, args...),
		err:     cause,
	}
}

// CodeOf extracts the protocol code from an engine error chain; anything
// uncoded maps to E_INTERNAL.
func CodeOf(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return protocol.ErrInternal
}
