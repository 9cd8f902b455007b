// Package requesttime provides middleware for request-scoped time.
// Every timestamp produced while handling one request (envelope metadata,
// handler payloads, durations) is measured from the same instant.
package requesttime

import (
	"net/http"
	"time"

	"nebula/pkg/requestcontext"
)

// Middleware captures the current time at the start of the request
// and stores it in the context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
