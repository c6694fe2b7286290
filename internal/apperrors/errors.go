// Package apperrors defines the error taxonomy shared by every layer.
//
// Errors carry a Kind so callers can branch with errors.Is against the
// exported sentinels without depending on message text:
//
//	if errors.Is(err, apperrors.ErrAuth) {
//		// re-run the interactive authorization flow
//	}
package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an Error.
type Kind string

const (
	KindConfig           Kind = "config"
	KindAuth             Kind = "auth"
	KindValidation       Kind = "validation"
	KindTypeMismatch     Kind = "type_mismatch"
	KindOperationFailed  Kind = "operation_failed"
	KindStorage          Kind = "storage"
	KindUnknownOperation Kind = "unknown_operation"
	KindUnsupported      Kind = "unsupported"
)

// Sentinels for errors.Is. They match any Error of the same Kind.
var (
	ErrConfig           = &Error{Kind: KindConfig}
	ErrAuth             = &Error{Kind: KindAuth}
	ErrValidation       = &Error{Kind: KindValidation}
	ErrTypeMismatch     = &Error{Kind: KindTypeMismatch}
	ErrOperationFailed  = &Error{Kind: KindOperationFailed}
	ErrStorage          = &Error{Kind: KindStorage}
	ErrUnknownOperation = &Error{Kind: KindUnknownOperation}
	ErrUnsupported      = &Error{Kind: KindUnsupported}
)

// Error is a classified application error.
type Error struct {
	Kind Kind
	// Op names the operation that failed, e.g. "create_post".
	Op      string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same Kind. A target with an
// Op set additionally requires the Op to match.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Op == "" || t.Op == e.Op
}

// KindOf returns the Kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

// Config reports invalid or missing startup configuration.
func Config(message string, err error) *Error {
	return &Error{Kind: KindConfig, Message: message, Err: err}
}

// Auth reports a missing, expired or rejected credential.
func Auth(message string, err error) *Error {
	return &Error{Kind: KindAuth, Message: message, Err: err}
}

// Validation reports a failed precondition on caller input.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// TypeMismatch reports arguments whose shape does not match a declared schema.
func TypeMismatch(message string, err error) *Error {
	return &Error{Kind: KindTypeMismatch, Message: message, Err: err}
}

// OperationFailed reports a failed remote call. The transport detail is
// intentionally not wrapped; callers log it where it happens.
func OperationFailed(op, message string) *Error {
	return &Error{Kind: KindOperationFailed, Op: op, Message: message}
}

// Storage reports a persistence failure other than "not found".
func Storage(message string, err error) *Error {
	return &Error{Kind: KindStorage, Message: message, Err: err}
}

// UnknownOperation reports a tool name with no registered handler.
func UnknownOperation(name string) *Error {
	return &Error{Kind: KindUnknownOperation, Op: name, Message: "unknown tool: " + name}
}

// Unsupported reports an operation that the upstream API does not grant.
func Unsupported(op, message string) *Error {
	return &Error{Kind: KindUnsupported, Op: op, Message: message}
}
