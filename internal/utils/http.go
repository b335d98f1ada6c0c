package utils

import (
	"io"
	"log/slog"
)

// CloseWithLog closes the closer and logs a warning when the close fails.
// It is meant for deferred cleanup of response bodies where a close error
// must not override the error already being returned.
func CloseWithLog(closer io.Closer) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		slog.Warn("failed to close resource", "error", err.Error())
	}
}
