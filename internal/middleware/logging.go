// Package middleware holds Connect interceptors shared by every service.
package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// LoggingInterceptor returns a Connect interceptor that logs every RPC call
// with its procedure, peer address, status code and duration.
// Client errors are logged at WARN, internal and non-Connect errors at ERROR.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()

			resp, err := next(ctx, req)

			attrs := []any{
				"procedure", req.Spec().Procedure,
				"peer", req.Peer().Addr,
				"duration_ms", time.Since(start).Milliseconds(),
			}
			if err == nil {
				slog.InfoContext(ctx, "RPC ok", attrs...)
				return resp, nil
			}

			level, code, msg := classify(err)
			attrs = append(attrs, "code", code, "error", msg)
			slog.Log(ctx, level, "RPC error", attrs...)

			return resp, err
		}
	}
}

// classify picks the log level for a failed call.
func classify(err error) (slog.Level, string, string) {
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		return slog.LevelError, connect.CodeUnknown.String(), err.Error()
	}

	code := connectErr.Code()
	switch code {
	case connect.CodeInternal, connect.CodeUnknown, connect.CodeDataLoss, connect.CodeUnavailable:
		return slog.LevelError, code.String(), connectErr.Message()
	default:
		return slog.LevelWarn, code.String(), connectErr.Message()
	}
}
