package middleware

import (
	"net/http"

	"padel-booking/pkg/utils"

	"go.uber.org/zap"
)

// Session identifies the browser through a signed cookie and puts the
// session id in the request context. A missing, tampered or malformed
// cookie starts a new session.
func Session(signer *utils.CookieSigner, cfg utils.SessionConfig, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := ""

			if cookie, err := r.Cookie(cfg.CookieName); err == nil {
				id, err := signer.Verify(cookie.Value)
				switch {
				case err != nil:
					logger.Warn("Rejected session cookie",
						zap.Error(err),
						zap.String("request_id", utils.GetRequestIDFromContext(r.Context())),
					)
				case !utils.IsValidSessionID(id):
					logger.Warn("Malformed session id", zap.String("session_id", id))
				default:
					sessionID = id
				}
			}

			if sessionID == "" {
				sessionID = utils.GenerateSessionID()
			}

			// sliding expiry, the cookie lives as long as the stored session
			http.SetCookie(w, &http.Cookie{
				Name:     cfg.CookieName,
				Value:    signer.Sign(sessionID),
				Path:     "/",
				MaxAge:   int(cfg.TTL.Seconds()),
				HttpOnly: true,
				Secure:   cfg.CookieSecure,
				SameSite: http.SameSiteLaxMode,
			})

			ctx := utils.SetSessionContext(r.Context(), sessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
