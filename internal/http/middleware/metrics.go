package middleware

import (
	"net/http"

	"github.com/aanand-mishra/attendance-api/internal/metrics"
	"github.com/jonboulle/clockwork"
)

// RouteUnmatched labels requests no pattern matched, such as mux 405s.
const RouteUnmatched = "unmatched"

// Metrics records the outcome of every request, labelled with the mux
// pattern that served it rather than the raw path, to keep label
// cardinality fixed.
//
// ServeMux sets Pattern on the *http.Request it receives, so this must wrap
// the mux with no middleware in between that replaces the request
// (r.WithContext). Recoverer passes r through unchanged.
func Metrics(m *metrics.Metrics, clock clockwork.Clock) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := clock.Now()
			rec := newStatusRecorder(w)

			// Observe runs deferred so a panic escaping next is still counted.
			defer func() {
				status := rec.status
				if rvr := recover(); rvr != nil {
					m.Observe(routeOf(r), r.Method, http.StatusInternalServerError, clock.Since(start))
					panic(rvr)
				}
				m.Observe(routeOf(r), r.Method, status, clock.Since(start))
			}()

			next.ServeHTTP(rec, r)
		})
	}
}

func routeOf(r *http.Request) string {
	if r.Pattern == "" {
		return RouteUnmatched
	}
	return r.Pattern
}
