package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/inkwellpress/inkwell-backend/pkg/config"
	"github.com/inkwellpress/inkwell-backend/pkg/logger"
)

type cartSessionKey struct{}

// CartSession assigns every visitor a stable cart session id carried in a
// cookie. First-time visitors get a fresh uuid; the id rides the request
// context from here on.
func CartSession(cfg config.CartConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	cookieName := cfg.SessionCookie
	maxAge := int(cfg.SnapshotTTL / time.Second)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := ""
			if cookie, err := r.Cookie(cookieName); err == nil {
				if _, parseErr := uuid.Parse(cookie.Value); parseErr == nil {
					sessionID = cookie.Value
				}
			}

			if sessionID == "" {
				sessionID = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     cookieName,
					Value:    sessionID,
					Path:     "/",
					MaxAge:   maxAge,
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := WithCartSession(r.Context(), sessionID)
			if logg != nil {
				ctx = logg.WithCartSession(ctx, sessionID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithCartSession stores the cart session id on the context.
func WithCartSession(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, cartSessionKey{}, sessionID)
}

// CartSessionFromContext returns the cart session id, or "" when the
// middleware did not run.
func CartSessionFromContext(ctx context.Context) string {
	if sessionID, ok := ctx.Value(cartSessionKey{}).(string); ok {
		return sessionID
	}
	return ""
}
