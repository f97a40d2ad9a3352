package handler

import (
	"net/http"
	"runtime/debug"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// recoverer turns a panic in any later handler into a logged 500 carrying the
// usual error envelope. http.ErrAbortHandler is re-raised so net/http can
// abort the connection as intended.
func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			s.logger.ErrorContext(r.Context(), "panic serving request",
				"request_id", chimiddleware.GetReqID(r.Context()),
				"panic", rec,
				"stack", string(debug.Stack()),
			)
			respondJSON(w, http.StatusInternalServerError, errorBody(msgProcessingError))
		}()
		next.ServeHTTP(w, r)
	})
}
