package intake

import (
	"errors"
	"net/http"
)

// ErrorKind classifies why an intake request failed.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindInvalidInput
	KindMethodNotAllowed
	KindConnection
	KindStatementPrepare
	KindWrite
	KindCommit
)

var kindNames = map[ErrorKind]string{
	KindUnknown:          "unknown",
	KindInvalidInput:     "invalid_input",
	KindMethodNotAllowed: "method_not_allowed",
	KindConnection:       "connection_error",
	KindStatementPrepare: "statement_prepare_error",
	KindWrite:            "write_error",
	KindCommit:           "commit_error",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[KindUnknown]
}

// HTTPStatus is the response status reported for a failure of this kind.
func (k ErrorKind) HTTPStatus() int {
	switch k {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindMethodNotAllowed:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}

// Messages shown to the caller.
const (
	MsgInvalidJSON      = "Invalid JSON data"
	MsgMissingFields    = "Missing required fields"
	MsgMethodNotAllowed = "Method not allowed"
	MsgPatientAdded     = "Patient added successfully"
)

// Error is a failed intake step. Message is safe to return to the caller;
// Err keeps the underlying cause for logging and errors.Is.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// ResponseMessage is the text sent back to the caller. Input problems use
// the fixed message; store failures carry the store's error text.
func (e *Error) ResponseMessage() string {
	if e.Kind.HTTPStatus() >= http.StatusInternalServerError {
		return e.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError builds an Error of the given kind.
func NewError(kind ErrorKind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) ErrorKind {
	var ie *Error
	if errors.As(err, &ie) {
		return ie.Kind
	}
	return KindUnknown
}
