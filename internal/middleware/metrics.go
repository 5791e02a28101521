package middleware

import (
	"context"

	"connectrpc.com/connect"

	"github.com/mmynk/skinsgame/internal/metrics"
)

// MetricsInterceptor counts RPC calls by procedure and result code.
func MetricsInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			resp, err := next(ctx, req)

			code := "ok"
			if err != nil {
				code = connect.CodeOf(err).String()
			}
			metrics.RPCRequests.WithLabelValues(req.Spec().Procedure, code).Inc()

			return resp, err
		}
	}
}
