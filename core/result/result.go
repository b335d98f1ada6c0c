// Package result provides a small success-or-error container for places
// where Go's two-value (T, error) convention cannot reach: values carried
// over channels, memoized build outcomes, and deferred completions.
//
// At call boundaries strata services stay with (T, error); [Of] and
// [Result.Get] convert between the two forms.
package result

import (
	"fmt"

	"github.com/leofalp/strata/core/fault"
)

// ErrEmpty is reported when a Result that holds neither a value nor an
// error is queried. The zero Result is empty; emptiness is an explicit,
// named state rather than an anonymous error, so "no outcome yet" is
// always distinguishable from a real failure.
var ErrEmpty = fault.New("strata/result", 1, "empty result")

type state uint8

const (
	stateEmpty state = iota
	stateOK
	stateErr
)

func (s state) String() string {
	switch s {
	case stateOK:
		return "ok"
	case stateErr:
		return "error"
	default:
		return "empty"
	}
}

// Result holds exactly one of a success value or an error, or is empty.
// The zero value is the empty Result.
type Result[T any] struct {
	value T
	err   error
	state state
}

// Ok returns a Result holding the success value v.
func Ok[T any](v T) Result[T] {
	return Result[T]{value: v, state: stateOK}
}

// Err returns a Result holding err. It panics when err is nil: an absent
// error is the empty state, not a failure.
func Err[T any](err error) Result[T] {
	if err == nil {
		panic("result: Err called with nil error")
	}

	return Result[T]{err: err, state: stateErr}
}

// Of converts Go's two-value convention into a Result: a non-nil err wins,
// otherwise v is the success value.
func Of[T any](v T, err error) Result[T] {
	if err != nil {
		return Err[T](err)
	}

	return Ok(v)
}

// IsOK reports whether the Result holds a success value.
func (r Result[T]) IsOK() bool {
	return r.state == stateOK
}

// IsErr reports whether the Result holds an error. Both IsOK and IsErr
// are false for the empty Result.
func (r Result[T]) IsErr() bool {
	return r.state == stateErr
}

// Value returns the held success value. It panics when the Result does
// not hold one; use [Result.Get] when the state is not known.
func (r Result[T]) Value() T {
	if r.state != stateOK {
		panic(fmt.Sprintf("result: Value called on %s result", r.state))
	}

	return r.value
}

// Err returns the held error, nil for a success, or [ErrEmpty] for the
// empty Result.
func (r Result[T]) Err() error {
	switch r.state {
	case stateOK:
		return nil
	case stateErr:
		return r.err
	default:
		return ErrEmpty
	}
}

// Get splits the Result into Go's two-value form. The empty Result yields
// the zero value and [ErrEmpty].
func (r Result[T]) Get() (T, error) {
	if r.state == stateOK {
		return r.value, nil
	}

	var zero T
	return zero, r.Err()
}

// Take moves the outcome out of the Result, resetting it to the empty
// state. Further access observes [ErrEmpty]. Use it when the value must
// have a single consumer.
func (r *Result[T]) Take() (T, error) {
	v, err := r.Get()
	*r = Result[T]{}

	return v, err
}
