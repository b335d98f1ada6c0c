// Package fault defines the structured error value used across strata.
// A Fault carries a stable identity (module + numeric code) plus a
// human-readable message, so callers branch on identity with [errors.Is]
// instead of matching error strings.
package fault

import (
	"errors"
	"fmt"
)

// Fault is a structured error with a stable identity. Two Faults are
// considered the same error by [errors.Is] when their Module and Code
// match, regardless of message text or wrapped cause.
//
// Packages declare their failure modes as package-level sentinel Faults
// and decorate them per call site:
//
//	var ErrInvalidURL = fault.New("strata/httpx", 1, "invalid url")
//
//	return ErrInvalidURL.With("url %q is not absolute", req.URL)
type Fault struct {
	// Module identifies the component reporting the error, e.g. "strata/httpx".
	Module string

	// Code is the numeric error identity within Module. Codes are stable
	// across releases.
	Code int

	// Message is the human-readable description.
	Message string

	// Err is the wrapped cause, if any. It participates in errors.Is /
	// errors.As chains via Unwrap.
	Err error
}

// New constructs a Fault sentinel with the given identity and message.
func New(module string, code int, message string) *Fault {
	return &Fault{Module: module, Code: code, Message: message}
}

// Error implements the error interface.
func (f *Fault) Error() string {
	msg := fmt.Sprintf("%s (code %d): %s", f.Module, f.Code, f.Message)
	if f.Err != nil {
		msg += ": " + f.Err.Error()
	}

	return msg
}

// Unwrap returns the wrapped cause, enabling errors.Is / errors.As to
// traverse into it.
func (f *Fault) Unwrap() error {
	return f.Err
}

// Is reports whether target is a Fault with the same Module and Code.
// This makes every Fault derived from a sentinel via [Fault.With] or
// [Fault.Wrap] match the sentinel under errors.Is.
func (f *Fault) Is(target error) bool {
	t, ok := target.(*Fault)
	if !ok {
		return false
	}

	return f.Module == t.Module && f.Code == t.Code
}

// With returns a copy of f whose message is extended with the formatted
// detail. Identity (Module, Code) and the wrapped cause are preserved.
func (f *Fault) With(format string, args ...any) *Fault {
	return &Fault{
		Module:  f.Module,
		Code:    f.Code,
		Message: f.Message + ": " + fmt.Sprintf(format, args...),
		Err:     f.Err,
	}
}

// Wrap returns a copy of f carrying err as its cause. Identity and
// message are preserved.
func (f *Fault) Wrap(err error) *Fault {
	return &Fault{
		Module:  f.Module,
		Code:    f.Code,
		Message: f.Message,
		Err:     err,
	}
}

// Of extracts the outermost Fault from err's wrap chain. The second
// return value reports whether one was found.
func Of(err error) (*Fault, bool) {
	var f *Fault
	if errors.As(err, &f) {
		return f, true
	}

	return nil, false
}
