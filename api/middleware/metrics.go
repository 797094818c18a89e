package middleware

import (
	"net/http"
	"time"

	"github.com/angelmondragon/reviewhub-backend/pkg/metrics"
)

// Metrics records request counts and latency labelled by the matched route
// pattern.
func Metrics(m *metrics.HTTPMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if m == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w}
			start := time.Now()
			next.ServeHTTP(rec, r)
			route := routePattern(r)
			if route == r.URL.Path && rec.code() == http.StatusNotFound {
				route = "unmatched"
			}
			m.Observe(r.Method, route, rec.code(), time.Since(start))
		})
	}
}
