package layers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/leofalp/strata/core/service"
)

// ========== Test stubs ==========

// scriptedService returns the scripted outcomes in order, then keeps
// returning the last one. It counts how many times it was called.
type scriptedService struct {
	outcomes []scriptedOutcome
	calls    int
}

type scriptedOutcome struct {
	resp string
	err  error
}

func (s *scriptedService) Call(_ context.Context, _ string) (string, error) {
	idx := s.calls
	if idx >= len(s.outcomes) {
		idx = len(s.outcomes) - 1
	}
	s.calls++

	out := s.outcomes[idx]
	return out.resp, out.err
}

// ========== Defaults ==========

// TestNewRetry_Defaults verifies that zero-valued configuration fields are
// replaced with the documented defaults.
func TestNewRetry_Defaults(t *testing.T) {
	layer := NewRetry[string, string](RetryConfig[string]{})

	if layer.config.MaxAttempts != 3 {
		t.Errorf("expected default MaxAttempts 3, got %d", layer.config.MaxAttempts)
	}
	if layer.config.Delay != 0 {
		t.Errorf("expected default Delay 0, got %v", layer.config.Delay)
	}
	if layer.config.Challenge != nil {
		t.Error("expected no default Challenge")
	}
}

// ========== Retry behavior ==========

// TestRetry_SucceedsFirstAttempt verifies that a successful first call is
// returned immediately without further attempts.
func TestRetry_SucceedsFirstAttempt(t *testing.T) {
	inner := &scriptedService{outcomes: []scriptedOutcome{{resp: "ok"}}}

	svc := NewRetry[string, string](RetryConfig[string]{MaxAttempts: 3}).Wrap(inner)

	resp, err := svc.Call(context.Background(), "req")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp != "ok" {
		t.Errorf("expected response %q, got %q", "ok", resp)
	}
	if inner.calls != 1 {
		t.Errorf("expected 1 call, got %d", inner.calls)
	}
}

// TestRetry_RecoversAfterFailures verifies that errors on early attempts are
// suppressed when a later attempt succeeds.
func TestRetry_RecoversAfterFailures(t *testing.T) {
	inner := &scriptedService{outcomes: []scriptedOutcome{
		{err: errors.New("transient 1")},
		{err: errors.New("transient 2")},
		{resp: "recovered"},
	}}

	svc := NewRetry[string, string](RetryConfig[string]{MaxAttempts: 3}).Wrap(inner)

	resp, err := svc.Call(context.Background(), "req")
	if err != nil {
		t.Fatalf("unexpected error after recovery: %v", err)
	}
	if resp != "recovered" {
		t.Errorf("expected response %q, got %q", "recovered", resp)
	}
	if inner.calls != 3 {
		t.Errorf("expected 3 calls, got %d", inner.calls)
	}
}

// TestRetry_ExhaustsAttempts verifies that the final attempt's error is
// surfaced unchanged once attempts run out.
func TestRetry_ExhaustsAttempts(t *testing.T) {
	finalErr := errors.New("still broken")
	inner := &scriptedService{outcomes: []scriptedOutcome{
		{err: errors.New("broken 1")},
		{err: errors.New("broken 2")},
		{err: finalErr},
	}}

	svc := NewRetry[string, string](RetryConfig[string]{MaxAttempts: 3}).Wrap(inner)

	_, err := svc.Call(context.Background(), "req")
	if !errors.Is(err, finalErr) {
		t.Fatalf("expected final attempt error, got %v", err)
	}
	if inner.calls != 3 {
		t.Errorf("expected 3 calls, got %d", inner.calls)
	}
}

// TestRetry_SingleAttempt verifies that MaxAttempts of 1 disables retrying.
func TestRetry_SingleAttempt(t *testing.T) {
	firstErr := errors.New("first")
	inner := &scriptedService{outcomes: []scriptedOutcome{
		{err: firstErr},
		{resp: "would recover"},
	}}

	svc := NewRetry[string, string](RetryConfig[string]{MaxAttempts: 1}).Wrap(inner)

	_, err := svc.Call(context.Background(), "req")
	if !errors.Is(err, firstErr) {
		t.Fatalf("expected first attempt error, got %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("expected 1 call, got %d", inner.calls)
	}
}

// ========== Challenge ==========

// TestRetry_ChallengeRejectsUntilAccepted verifies that a Challenge returning
// false triggers another attempt even though the call succeeded.
func TestRetry_ChallengeRejectsUntilAccepted(t *testing.T) {
	inner := &scriptedService{outcomes: []scriptedOutcome{
		{resp: "partial"},
		{resp: "complete"},
	}}

	svc := NewRetry[string, string](RetryConfig[string]{
		MaxAttempts: 3,
		Challenge:   func(resp string) bool { return resp == "complete" },
	}).Wrap(inner)

	resp, err := svc.Call(context.Background(), "req")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp != "complete" {
		t.Errorf("expected response %q, got %q", "complete", resp)
	}
	if inner.calls != 2 {
		t.Errorf("expected 2 calls, got %d", inner.calls)
	}
}

// TestRetry_ChallengeRejectsFinalAttempt verifies that the final attempt's
// successful response is returned as-is even when the Challenge rejects it.
func TestRetry_ChallengeRejectsFinalAttempt(t *testing.T) {
	inner := &scriptedService{outcomes: []scriptedOutcome{{resp: "never good enough"}}}

	svc := NewRetry[string, string](RetryConfig[string]{
		MaxAttempts: 2,
		Challenge:   func(string) bool { return false },
	}).Wrap(inner)

	resp, err := svc.Call(context.Background(), "req")
	if err != nil {
		t.Fatalf("expected success on final attempt, got error: %v", err)
	}
	if resp != "never good enough" {
		t.Errorf("expected final response returned as-is, got %q", resp)
	}
	if inner.calls != 2 {
		t.Errorf("expected 2 calls, got %d", inner.calls)
	}
}

// TestRetry_ChallengeNeverSeesErrors verifies that failed attempts bypass the
// Challenge entirely.
func TestRetry_ChallengeNeverSeesErrors(t *testing.T) {
	inner := &scriptedService{outcomes: []scriptedOutcome{
		{err: errors.New("boom")},
		{resp: "ok"},
	}}

	challenged := 0
	svc := NewRetry[string, string](RetryConfig[string]{
		MaxAttempts: 3,
		Challenge: func(resp string) bool {
			challenged++
			return true
		},
	}).Wrap(inner)

	if _, err := svc.Call(context.Background(), "req"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if challenged != 1 {
		t.Errorf("expected Challenge to run once (successes only), ran %d times", challenged)
	}
}

// ========== Delay and context ==========

// TestRetry_DelayBetweenAttempts verifies that the configured delay is
// applied before every attempt after the first.
func TestRetry_DelayBetweenAttempts(t *testing.T) {
	inner := &scriptedService{outcomes: []scriptedOutcome{
		{err: errors.New("fail 1")},
		{err: errors.New("fail 2")},
		{resp: "ok"},
	}}

	svc := NewRetry[string, string](RetryConfig[string]{
		MaxAttempts: 3,
		Delay:       30 * time.Millisecond,
	}).Wrap(inner)

	start := time.Now()
	if _, err := svc.Call(context.Background(), "req"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	elapsed := time.Since(start)

	// Two delays of 30ms each; allow generous scheduling slack.
	if elapsed < 60*time.Millisecond {
		t.Errorf("expected at least 60ms of delay, elapsed %v", elapsed)
	}
	if elapsed > 500*time.Millisecond {
		t.Errorf("delays took unexpectedly long: %v", elapsed)
	}
}

// TestRetry_ZeroDelayRetriesImmediately verifies that a zero delay does not
// suspend between attempts.
func TestRetry_ZeroDelayRetriesImmediately(t *testing.T) {
	inner := &scriptedService{outcomes: []scriptedOutcome{
		{err: errors.New("fail")},
		{resp: "ok"},
	}}

	svc := NewRetry[string, string](RetryConfig[string]{MaxAttempts: 2}).Wrap(inner)

	start := time.Now()
	if _, err := svc.Call(context.Background(), "req"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("expected immediate retry, elapsed %v", elapsed)
	}
}

// TestRetry_ContextCancelsDelay verifies that context cancellation during the
// inter-attempt delay aborts the retry loop promptly.
func TestRetry_ContextCancelsDelay(t *testing.T) {
	inner := &scriptedService{outcomes: []scriptedOutcome{{err: errors.New("fail")}}}

	svc := NewRetry[string, string](RetryConfig[string]{
		MaxAttempts: 5,
		Delay:       5 * time.Second,
	}).Wrap(inner)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := svc.Call(ctx, "req")
	elapsed := time.Since(start)

	if err == nil {
		t.Fatal("expected error after context cancellation")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected context.DeadlineExceeded, got %v", err)
	}
	if elapsed > time.Second {
		t.Errorf("cancellation took too long: %v", elapsed)
	}
	if inner.calls != 1 {
		t.Errorf("expected 1 call before cancellation, got %d", inner.calls)
	}
}

// ========== Composition ==========

// TestRetry_AsLayerInPipeline verifies that Retry satisfies the Layer
// interface shape used by pipelines.
func TestRetry_AsLayerInPipeline(t *testing.T) {
	inner := &scriptedService{outcomes: []scriptedOutcome{
		{err: errors.New("flaky")},
		{resp: "steady"},
	}}

	var layer service.Layer[service.Service[string, string], service.Service[string, string]]
	layer = NewRetry[string, string](RetryConfig[string]{MaxAttempts: 2})

	resp, err := layer.Wrap(inner).Call(context.Background(), "req")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp != "steady" {
		t.Errorf("expected %q, got %q", "steady", resp)
	}
}
