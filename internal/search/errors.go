package search

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed search.
type ErrorKind int

const (
	// KindTransport covers network failures and anything unexpected.
	KindTransport ErrorKind = iota
	// KindQueryRejected means the directory refused the composed query.
	KindQueryRejected
)

const (
	MsgUnexpected = "An unexpected error occurred while searching. Please try again."
	MsgNotFound   = "No professionals found matching your search."
)

// Error is returned by Directory implementations. The Message of a
// rejected query is shown to the user as-is.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Rejected creates a KindQueryRejected error.
func Rejected(message string, err error) *Error {
	return &Error{Kind: KindQueryRejected, Message: message, Err: err}
}

// Transport creates a KindTransport error.
func Transport(message string, err error) *Error {
	return &Error{Kind: KindTransport, Message: message, Err: err}
}

// UserMessage converts err into the text stored in Session.Error.
func UserMessage(err error) string {
	var se *Error
	if errors.As(err, &se) && se.Kind == KindQueryRejected && se.Message != "" {
		return se.Message
	}
	return MsgUnexpected
}
