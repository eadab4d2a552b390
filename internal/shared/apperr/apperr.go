// Package apperr defines the application error taxonomy shared by every feature.
// Features declare sentinel errors with New; transport code maps them to HTTP responses
// through KindOf and HTTPStatus.
package apperr

import (
	"errors"
	"net/http"
)

// Kind is the machine-checkable category of an application error.
type Kind int

const (
	// KindInternal covers every error that is not an *Error.
	KindInternal Kind = iota
	// KindValidation means the request was malformed.
	KindValidation
	// KindNotFound means the addressed entity does not exist.
	KindNotFound
	// KindConflict means the request violates a uniqueness rule.
	KindConflict
	// KindUnauthenticated means the caller did not present valid credentials.
	KindUnauthenticated
	// KindForbidden means the caller is authenticated but may not perform the operation.
	KindForbidden
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindForbidden:
		return "forbidden"
	default:
		return "internal"
	}
}

// HTTPStatus returns the status code used to report errors of this kind.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Error is a categorised error with a stable code and a message safe to show to clients.
type Error struct {
	kind    Kind
	code    string
	message string
}

// New creates an application error. Sentinel values are compared with errors.Is by identity.
func New(kind Kind, code, message string) *Error {
	return &Error{kind: kind, code: code, message: message}
}

func (e *Error) Error() string { return e.message }

// Kind returns the error category.
func (e *Error) Kind() Kind { return e.kind }

// Code returns the stable machine code, e.g. "TASK_NOT_FOUND".
func (e *Error) Code() string { return e.code }

// Message returns the client-facing message.
func (e *Error) Message() string { return e.message }

// As returns the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf returns the Kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.kind
	}
	return KindInternal
}

// HTTPStatus maps err to a response status code.
func HTTPStatus(err error) int {
	return KindOf(err).HTTPStatus()
}
