package types

import "fmt"

// CheckError is the single error kind the type checker reports. Deeper
// context is added by prefixing, e.g. when a function body fails its
// signature promise.
type CheckError struct {
	Msg string
}

// NewError returns a CheckError with the given message.
func NewError(msg string) *CheckError {
	return &CheckError{Msg: msg}
}

// Errorf returns a CheckError with a formatted message.
func Errorf(format string, args ...any) *CheckError {
	return &CheckError{Msg: fmt.Sprintf(format, args...)}
}

func (e *CheckError) Error() string {
	return e.Msg
}

// Prefix returns a new error with additional leading context.
func (e *CheckError) Prefix(prefix string) *CheckError {
	return &CheckError{Msg: prefix + e.Msg}
}
