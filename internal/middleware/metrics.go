package middleware

import (
	"net/http"
	"time"

	"dogs-api/internal/platform/metrics"
)

// Metrics registra conteo y latencia por patrón de ruta (no por path crudo).
func Metrics(m *metrics.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r)

			m.RecordHTTPRequest(routePattern(r), r.Method, rec.status, time.Since(start))
		})
	}
}
