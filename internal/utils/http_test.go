package utils

import (
	"errors"
	"testing"
)

// errCloser is a mock io.Closer that always returns the configured error.
type errCloser struct {
	closeErr error
	closed   bool
}

func (ec *errCloser) Close() error {
	ec.closed = true
	return ec.closeErr
}

// TestCloseWithLog_ErrorPath verifies that CloseWithLog does not panic when
// the underlying closer returns an error. The error is only logged via slog.
func TestCloseWithLog_ErrorPath(t *testing.T) {
	closer := &errCloser{closeErr: errors.New("close error")}

	CloseWithLog(closer)

	if !closer.closed {
		t.Error("expected the closer to be closed")
	}
}

// TestCloseWithLog_NilCloser verifies that a nil closer is a no-op rather
// than a panic.
func TestCloseWithLog_NilCloser(t *testing.T) {
	CloseWithLog(nil)
}

// TestCloseWithLog_Success verifies the happy path closes without side
// effects.
func TestCloseWithLog_Success(t *testing.T) {
	closer := &errCloser{}

	CloseWithLog(closer)

	if !closer.closed {
		t.Error("expected the closer to be closed")
	}
}
