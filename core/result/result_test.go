package result

import (
	"errors"
	"testing"
)

// ========== State predicate tests ==========

// TestResult_OkState verifies predicates and accessors on a success Result.
func TestResult_OkState(t *testing.T) {
	r := Ok(42)

	if !r.IsOK() {
		t.Error("expected IsOK to be true")
	}

	if r.IsErr() {
		t.Error("expected IsErr to be false")
	}

	if got := r.Value(); got != 42 {
		t.Errorf("expected 42, got %d", got)
	}

	if err := r.Err(); err != nil {
		t.Errorf("expected nil error on success, got %v", err)
	}
}

// TestResult_ErrState verifies predicates and accessors on an error Result.
func TestResult_ErrState(t *testing.T) {
	boom := errors.New("boom")
	r := Err[int](boom)

	if r.IsOK() {
		t.Error("expected IsOK to be false")
	}

	if !r.IsErr() {
		t.Error("expected IsErr to be true")
	}

	if !errors.Is(r.Err(), boom) {
		t.Errorf("expected boom, got %v", r.Err())
	}
}

// TestResult_EmptyState verifies that the zero Result is empty: neither
// predicate holds and the error accessor reports ErrEmpty.
func TestResult_EmptyState(t *testing.T) {
	var r Result[string]

	if r.IsOK() || r.IsErr() {
		t.Error("expected zero Result to be neither ok nor error")
	}

	if !errors.Is(r.Err(), ErrEmpty) {
		t.Errorf("expected ErrEmpty, got %v", r.Err())
	}

	_, err := r.Get()
	if !errors.Is(err, ErrEmpty) {
		t.Errorf("expected ErrEmpty from Get, got %v", err)
	}
}

// ========== Wrong-variant access tests ==========

// TestResult_ValuePanicsOnError verifies that reading the value of an error
// Result fails loudly instead of returning a zero value.
func TestResult_ValuePanicsOnError(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected Value on an error result to panic")
		}
	}()

	Err[int](errors.New("boom")).Value()
}

// TestResult_ValuePanicsOnEmpty verifies the same for the empty state.
func TestResult_ValuePanicsOnEmpty(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected Value on an empty result to panic")
		}
	}()

	var r Result[int]
	r.Value()
}

// TestResult_ErrPanicsOnNil verifies that constructing an error Result with
// a nil error is rejected.
func TestResult_ErrPanicsOnNil(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected Err(nil) to panic")
		}
	}()

	Err[int](nil)
}

// ========== Conversion tests ==========

// TestOf_RoundTrip verifies the (T, error) conversions in both directions.
func TestOf_RoundTrip(t *testing.T) {
	v, err := Of("hello", nil).Get()
	if err != nil || v != "hello" {
		t.Errorf("expected (hello, nil), got (%q, %v)", v, err)
	}

	boom := errors.New("boom")
	_, err = Of("ignored", boom).Get()
	if !errors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}
}

// TestResult_TakeEmptiesResult verifies that Take hands the value to exactly
// one consumer and resets the Result to the empty state.
func TestResult_TakeEmptiesResult(t *testing.T) {
	r := Ok("payload")

	v, err := r.Take()
	if err != nil || v != "payload" {
		t.Fatalf("expected (payload, nil), got (%q, %v)", v, err)
	}

	if r.IsOK() {
		t.Error("expected result to be empty after Take")
	}

	if _, err := r.Take(); !errors.Is(err, ErrEmpty) {
		t.Errorf("expected ErrEmpty on second Take, got %v", err)
	}
}
