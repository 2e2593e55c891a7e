package middleware

import (
	"net/http"
	"strings"

	"padel-booking/pkg/utils"

	"go.uber.org/zap"
)

const internalErrorPage = `<!DOCTYPE html><html lang="es"><head><meta charset="utf-8"><title>Error</title></head>` +
	`<body><h1>Error interno del servidor</h1><p><a href="/booking">Volver al inicio</a></p></body></html>`

// Recover middleware
func Recover(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}

					logger.Error("PANIC recovered",
						zap.Any("error", err),
						zap.String("path", r.URL.Path),
						zap.String("method", r.Method),
						zap.String("request_id", utils.GetRequestIDFromContext(r.Context())),
						zap.Stack("stack"),
					)

					if strings.HasPrefix(r.URL.Path, "/api/") {
						utils.ResponseInternalError(w, "Internal server error")
						return
					}
					w.Header().Set("Content-Type", "text/html; charset=utf-8")
					w.WriteHeader(http.StatusInternalServerError)
					w.Write([]byte(internalErrorPage))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
