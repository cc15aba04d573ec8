package middleware

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/pomodoro-api/internal/api/shared"
)

// TraceMiddleware attaches a trace ID to every request context. Apply it
// early so all downstream handlers and logs can correlate on it.
func TraceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())
		traceID := shared.GetTraceID(ctx)

		slog.With(slog.String("trace_id", traceID)).Debug("request started",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
