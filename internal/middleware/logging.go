package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// caller is filled in by RequireAuth once the token is verified. The logging
// interceptor installs it before authentication runs so it can read the
// identity after the call returns.
type caller struct {
	userID int64
}

type callerKey struct{}

func setCaller(ctx context.Context, userID int64) {
	if c, ok := ctx.Value(callerKey{}).(*caller); ok {
		c.userID = userID
	}
}

// LoggingInterceptor logs each RPC with its procedure, the authenticated
// user, the duration and the result code. A nil logger uses slog.Default.
func LoggingInterceptor(logger *slog.Logger) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			log := logger
			if log == nil {
				log = slog.Default()
			}

			c := &caller{userID: GetUserID(ctx)}
			start := time.Now()

			resp, err := next(context.WithValue(ctx, callerKey{}, c), req)

			attrs := []any{
				"procedure", req.Spec().Procedure,
				"user_id", c.userID,
				"duration_ms", time.Since(start).Milliseconds(),
			}
			switch code := connect.CodeOf(err); {
			case err == nil:
				log.InfoContext(ctx, "RPC ok", attrs...)
			case code == connect.CodeInternal || code == connect.CodeUnknown:
				log.ErrorContext(ctx, "RPC error", append(attrs, "error", err)...)
			default:
				log.WarnContext(ctx, "RPC rejected", append(attrs, "code", code, "error", errorMessage(err))...)
			}
			return resp, err
		}
	}
}

func errorMessage(err error) string {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr.Message()
	}
	return err.Error()
}
