package layers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/leofalp/strata/core/service"
	"github.com/leofalp/strata/internal/utils"
)

// LogLevel controls how much detail the logging layer emits per call.
type LogLevel int

const (
	// LogLevelMinimal logs only the call duration and, on failure, the
	// error. Use this when you want lightweight audit trails without
	// noise.
	LogLevelMinimal LogLevel = iota

	// LogLevelStandard logs everything in Minimal plus the request and
	// response type names. This is the recommended default for most
	// applications.
	LogLevelStandard

	// LogLevelVerbose logs everything in Standard plus a JSON rendering
	// of the request and response values, each truncated to 500
	// characters.
	//
	// WARNING: DO NOT use LogLevelVerbose in production. It will log raw
	// request and response payloads, which may contain sensitive user
	// data, secrets, or PII. It is intended solely for local debugging
	// and development.
	LogLevelVerbose
)

// truncateLen is the maximum payload length included in verbose log output.
const truncateLen = 500

// Logging is a layer that emits structured slog entries around every call:
// an entry when the call starts, a completion entry with the duration on
// success, and an error entry with the duration and error text on failure.
type Logging[Req, Resp any] struct {
	logger *slog.Logger
	level  LogLevel
}

// NewLogging creates a Logging layer. Pass slog.Default() when no
// purpose-built logger exists; logger must not be nil.
func NewLogging[Req, Resp any](logger *slog.Logger, level LogLevel) Logging[Req, Resp] {
	return Logging[Req, Resp]{logger: logger, level: level}
}

// Wrap returns a service that logs every call to inner.
func (l Logging[Req, Resp]) Wrap(inner service.Service[Req, Resp]) service.Service[Req, Resp] {
	logger, level := l.logger, l.level

	return service.Func[Req, Resp](func(ctx context.Context, req Req) (Resp, error) {
		logger.InfoContext(ctx, "service call", requestAttrs(req, level)...)

		start := time.Now()
		resp, err := inner.Call(ctx, req)
		elapsed := time.Since(start)

		if err != nil {
			logger.ErrorContext(ctx, "service call failed",
				slog.Duration("duration", elapsed),
				slog.String("error", err.Error()),
			)
			return resp, err
		}

		logger.InfoContext(ctx, "service call completed", responseAttrs(resp, elapsed, level)...)

		return resp, nil
	})
}

// requestAttrs returns slog attributes for an incoming request, expanding
// detail according to the requested verbosity level.
func requestAttrs(req any, level LogLevel) []any {
	var attrs []any

	if level >= LogLevelStandard {
		attrs = append(attrs, slog.String("request_type", fmt.Sprintf("%T", req)))
	}

	if level >= LogLevelVerbose {
		attrs = append(attrs, slog.String("request", utils.Preview(req, truncateLen)))
	}

	return attrs
}

// responseAttrs returns slog attributes for a completed call, expanding
// detail according to the requested verbosity level.
func responseAttrs(resp any, elapsed time.Duration, level LogLevel) []any {
	attrs := []any{
		slog.Duration("duration", elapsed),
	}

	if level >= LogLevelStandard {
		attrs = append(attrs, slog.String("response_type", fmt.Sprintf("%T", resp)))
	}

	if level >= LogLevelVerbose {
		attrs = append(attrs, slog.String("response", utils.Preview(resp, truncateLen)))
	}

	return attrs
}
