package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// LoggingMiddleware logs one line per completed request. Paths in quiet are
// logged at debug level.
func LoggingMiddleware(logger *zap.Logger, quiet ...string) func(http.Handler) http.Handler {
	quietPaths := make(map[string]bool, len(quiet))
	for _, p := range quiet {
		quietPaths[p] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			fields := []zap.Field{
				zap.String("request_id", middleware.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", status),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("remote_addr", r.RemoteAddr),
			}

			switch {
			case quietPaths[r.URL.Path]:
				logger.Debug("Request completed", fields...)
			case status >= http.StatusInternalServerError:
				logger.Error("Request failed", fields...)
			case status >= http.StatusBadRequest:
				logger.Warn("Request rejected", fields...)
			default:
				logger.Info("Request completed", fields...)
			}
		})
	}
}
