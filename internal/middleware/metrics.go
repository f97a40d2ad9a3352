package middleware

import (
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// RequestObserver records one served request. *metrics.Metrics satisfies it.
type RequestObserver interface {
	ObserveRequest(method string, status int)
}

// NewRequestMetrics returns a middleware that reports the method and final
// status of every request to obs.
func NewRequestMetrics(obs RequestObserver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				// Nothing was written explicitly; net/http sends 200.
				status = http.StatusOK
			}
			obs.ObserveRequest(r.Method, status)
		})
	}
}
