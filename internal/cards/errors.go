package cards

import (
	"errors"
	"fmt"
)

var (
	// ErrStatus marks a response with a non-2xx status code.
	ErrStatus = errors.New("unexpected status")
	// ErrDecode marks a response body that is not the expected JSON.
	ErrDecode = errors.New("malformed response")
	// ErrNoFile is returned when an upload is attempted without a file.
	ErrNoFile = errors.New("no file selected")
)

// Op names a webhook operation.
type Op string

const (
	OpFetchAll Op = "fetch_all"
	OpSearch   Op = "search"
	OpUpload   Op = "upload"
)

// Error is the single failure type surfaced to the user. Error() is the
// human readable message for the operation; the cause stays reachable through
// errors.Is / errors.As.
type Error struct {
	Op         Op
	Message    string
	StatusCode int
	Body       string
	Err        error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Detail includes the status code and cause, for logs.
func (e *Error) Detail() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// message is what the user sees for each operation.
func message(op Op) string {
	switch op {
	case OpFetchAll:
		return "Failed to fetch cards"
	case OpSearch:
		return "Failed to search cards"
	case OpUpload:
		return "File upload failed. Please try again."
	default:
		return "An error occurred"
	}
}

func newError(op Op, status int, body string, err error) *Error {
	return &Error{
		Op:         op,
		Message:    message(op),
		StatusCode: status,
		Body:       body,
		Err:        err,
	}
}
