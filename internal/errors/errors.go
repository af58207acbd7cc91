// Package gerr holds the failure taxonomy shared by the console components.
package gerr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown Kind = iota
	// KindNetwork is a transport failure or timeout.
	KindNetwork
	// KindValidation is a request rejected by the server or by a client-side form check.
	KindValidation
	// KindServer is a 5xx response.
	KindServer
	// KindFormat is a payload that does not have the expected shape, or a rejected CSV import.
	KindFormat
	// KindEmptyData is an export of a table with no rows.
	KindEmptyData
	// KindPartial is a non-critical sub-fetch failure.
	KindPartial
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindValidation:
		return "validation"
	case KindServer:
		return "server"
	case KindFormat:
		return "format"
	case KindEmptyData:
		return "empty_data"
	case KindPartial:
		return "partial"
	default:
		return "unknown"
	}
}

// Error is a classified failure. Op names the operation, Status is the HTTP
// status when the failure came from a response.
type Error struct {
	Kind   Kind
	Op     string
	Status int
	Detail string
	Err    error
}

func (e *Error) Error() string {
	msg := e.Kind.String() + " failure"
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status %d)", e.Status)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the bare kind sentinels below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.Op != "" || t.Err != nil || t.Status != 0 || t.Detail != "" {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrNetwork    = &Error{Kind: KindNetwork}
	ErrValidation = &Error{Kind: KindValidation}
	ErrServer     = &Error{Kind: KindServer}
	ErrFormat     = &Error{Kind: KindFormat}
	ErrEmptyData  = &Error{Kind: KindEmptyData}
	ErrPartial    = &Error{Kind: KindPartial}

	ErrSuperseded   = errors.New("result superseded by a newer request")
	ErrNotConfirmed = errors.New("destructive action not confirmed")
	ErrBusy         = errors.New("operation already in progress")
)

func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func Network(op string, err error) *Error {
	return &Error{Kind: KindNetwork, Op: op, Err: err}
}

func Format(op string, detail string) *Error {
	return &Error{Kind: KindFormat, Op: op, Detail: detail}
}

func Validation(op string, err error) *Error {
	return &Error{Kind: KindValidation, Op: op, Err: err}
}

// KindOf returns the kind of the first classified error in the chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
