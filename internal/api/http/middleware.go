package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/soundverse/soundverse/internal/metrics"
)

// collectMetrics counts every completed request exactly once, after the
// response has been written, so the final status code is known.
func collectMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			// The route pattern is only known once routing has happened.
			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = r.URL.Path
			}

			metrics.RecordRequest(r.Method, route, strconv.Itoa(status), time.Since(start))
		}()

		next.ServeHTTP(ww, r)
	})
}
