// Package middleware provides reusable HTTP middleware for the travel inquiry API.
package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/rs/cors"
)

// AllowedMethods are the methods the inquiry form may use cross-origin.
var AllowedMethods = []string{http.MethodPost, http.MethodOptions}

// AllowedHeaders is the fixed set of request headers a cross-origin caller
// may send. It matches what API gateway style clients attach.
var AllowedHeaders = []string{
	"Content-Type",
	"X-Amz-Date",
	"Authorization",
	"X-Api-Key",
	"X-Amz-Security-Token",
}

// NewCORSHandler returns a middleware that applies CORS headers based on allowedOrigins.
// Each entry must be a full origin (scheme + host, no trailing slash) or "*".
//
// rs/cors decides whether the origin is allowed. Every response to an allowed
// origin then carries the same fixed Access-Control-Allow-Methods and
// Access-Control-Allow-Headers, pre-flight included; when "*" is allowed,
// Access-Control-Allow-Origin: * is sent even without an Origin header.
// OPTIONS requests are answered here with 204 and never reach next.
func NewCORSHandler(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:     allowedOrigins,
		AllowedMethods:     AllowedMethods,
		AllowedHeaders:     AllowedHeaders,
		OptionsPassthrough: true,
	})
	allowAll := slices.Contains(allowedOrigins, "*")
	methods := strings.Join(AllowedMethods, ", ")
	headers := strings.Join(AllowedHeaders, ",")

	return func(next http.Handler) http.Handler {
		return c.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			switch {
			case allowAll:
				h.Set("Access-Control-Allow-Origin", "*")
			case r.Header.Get("Origin") != "" && c.OriginAllowed(r):
				h.Set("Access-Control-Allow-Origin", r.Header.Get("Origin"))
			}
			if h.Get("Access-Control-Allow-Origin") != "" {
				h.Set("Access-Control-Allow-Methods", methods)
				h.Set("Access-Control-Allow-Headers", headers)
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		}))
	}
}
