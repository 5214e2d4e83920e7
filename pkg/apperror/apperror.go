// Package apperror defines the failure kinds surfaced by the storefront core.
package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies a failure independently of how it is rendered.
type Kind int

const (
	Unknown Kind = iota
	NotFound
	InvalidArgument
	CapacityExceeded
	Overflow
	EmptyCart
	InvalidSelection
	LedgerFull
	SinkUnavailable
	InvalidState
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "NOT_FOUND"
	case InvalidArgument:
		return "INVALID_ARGUMENT"
	case CapacityExceeded:
		return "CAPACITY_EXCEEDED"
	case Overflow:
		return "OVERFLOW"
	case EmptyCart:
		return "EMPTY_CART"
	case InvalidSelection:
		return "INVALID_SELECTION"
	case LedgerFull:
		return "LEDGER_FULL"
	case SinkUnavailable:
		return "SINK_UNAVAILABLE"
	case InvalidState:
		return "INVALID_STATE"
	default:
		return "UNKNOWN"
	}
}

// Error is a classified failure with a short description.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is a bare sentinel of the same kind, so that
// errors.Is(err, ErrEmptyCart) matches any EmptyCart failure.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Message == "" && t.Err == nil
}

// Sentinels for errors.Is comparisons.
var (
	ErrNotFound         = &Error{Kind: NotFound}
	ErrInvalidArgument  = &Error{Kind: InvalidArgument}
	ErrCapacityExceeded = &Error{Kind: CapacityExceeded}
	ErrOverflow         = &Error{Kind: Overflow}
	ErrEmptyCart        = &Error{Kind: EmptyCart}
	ErrInvalidSelection = &Error{Kind: InvalidSelection}
	ErrLedgerFull       = &Error{Kind: LedgerFull}
	ErrSinkUnavailable  = &Error{Kind: SinkUnavailable}
	ErrInvalidState     = &Error{Kind: InvalidState}
)

// New returns an Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf formats the message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap classifies err under kind.
func Wrap(kind Kind, err error, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or Unknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}
