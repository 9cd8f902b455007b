package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"nebula/pkg/requestcontext"
)

// RequestIDHeader echoes the generated request ID back to the client.
const RequestIDHeader = "X-Request-ID"

// RequestID assigns every request a fresh UUID. Client-supplied IDs are not
// trusted so the ID stays unique per call.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set(RequestIDHeader, id)
		ctx := requestcontext.WithRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
