package protocol

import (
	"errors"
	"fmt"
)

// ErrorKind classifies an error reported to the client.
type ErrorKind string

// Error kinds.
const (
	KindFramingError        ErrorKind = "framing_error"
	KindInvalidMessage      ErrorKind = "invalid_message"
	KindSequencingError     ErrorKind = "sequencing_error"
	KindUnsupportedCommand  ErrorKind = "unsupported_command"
	KindInvalidScope        ErrorKind = "invalid_scope"
	KindInvalidReference    ErrorKind = "invalid_reference"
	KindInvalidItem         ErrorKind = "invalid_item"
	KindInvalidArgument     ErrorKind = "invalid_argument"
	KindSimulatorError      ErrorKind = "simulator_error"
	KindUnsupportedEncoding ErrorKind = "unsupported_encoding"
)

var (
	// ErrFramingError matches errors of kind framing_error.
	ErrFramingError = &Error{Kind: KindFramingError}
	// ErrInvalidMessage matches errors of kind invalid_message.
	ErrInvalidMessage = &Error{Kind: KindInvalidMessage}
	// ErrSequencingError matches errors of kind sequencing_error.
	ErrSequencingError = &Error{Kind: KindSequencingError}
	// ErrUnsupportedCommand matches errors of kind unsupported_command.
	ErrUnsupportedCommand = &Error{Kind: KindUnsupportedCommand}
	// ErrInvalidScope matches errors of kind invalid_scope.
	ErrInvalidScope = &Error{Kind: KindInvalidScope}
	// ErrInvalidReference matches errors of kind invalid_reference.
	ErrInvalidReference = &Error{Kind: KindInvalidReference}
	// ErrInvalidItem matches errors of kind invalid_item.
	ErrInvalidItem = &Error{Kind: KindInvalidItem}
	// ErrInvalidArgument matches errors of kind invalid_argument.
	ErrInvalidArgument = &Error{Kind: KindInvalidArgument}
	// ErrSimulatorError matches errors of kind simulator_error.
	ErrSimulatorError = &Error{Kind: KindSimulatorError}
	// ErrUnsupportedEncoding matches errors of kind unsupported_encoding.
	ErrUnsupportedEncoding = &Error{Kind: KindUnsupportedEncoding}
)

// Error is both a Go error and the server's typed error message.
type Error struct {
	Kind    ErrorKind `json:"error"`
	Message string    `json:"message"`
}

// Errorf builds an *Error of the given kind.
func Errorf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func (e Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}

	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is matches any protocol error of the same kind.
func (e Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return other.Kind == e.Kind
	}

	return false
}

func (Error) serverMessage() {}

// MessageType implements Message.
func (Error) MessageType() MessageType { return TypeError }

// AsError converts any error into a protocol error. Errors that are not
// already protocol errors become fallback-kind errors.
func AsError(err error, fallback ErrorKind) *Error {
	var perr *Error
	if errors.As(err, &perr) {
		return perr
	}

	return &Error{Kind: fallback, Message: err.Error()}
}
