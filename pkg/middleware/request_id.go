package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/matchday-lens/core/pkg/logger"
)

const requestIDHeader = "X-Request-ID"

// RequestID assigns a correlation id to every request, honoring one supplied
// by the caller, and puts a request-scoped logger on the context.
func RequestID(log *logger.Logger, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		w.Header().Set(requestIDHeader, requestID)

		reqLogger := log.WithRequestID(requestID)
		next(w, r.WithContext(reqLogger.ToContext(r.Context())))
	}
}
