package middleware

import (
	"net/http"

	"padel-booking/pkg/utils"
)

// RequestID adds a unique request ID to each request
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = utils.GenerateRequestID()
		}

		w.Header().Set("X-Request-ID", requestID)

		ctx := utils.SetRequestIDContext(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
