package mw

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/namax/internal/logger"
)

// ClientHeader lets non-browser callers pick their scope explicitly.
const ClientHeader = "X-Namax-Client"

const clientCookieMaxAge = 400 * 24 * time.Hour

type (
	clientKey     struct{}
	clientSlotKey struct{}
)

// withClientSlot lets an outer middleware learn the id resolved further in.
func withClientSlot(ctx context.Context, slot *string) context.Context {
	return context.WithValue(ctx, clientSlotKey{}, slot)
}

// ClientID returns the client scope id set by ClientScope, or "" outside it.
func ClientID(ctx context.Context) string {
	id, _ := ctx.Value(clientKey{}).(string)
	return id
}

// WithClientID stores a client id in ctx.
func WithClientID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, clientKey{}, id)
}

// ClientScope resolves the client id from the X-Namax-Client header, then the
// cookie. Missing or malformed ids are replaced by a fresh uuid v4, which is
// sent back as a cookie.
func ClientScope(cookieName string, secure bool, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseClientID(r.Header.Get(ClientHeader))
			if !ok {
				if c, err := r.Cookie(cookieName); err == nil {
					id, ok = parseClientID(c.Value)
				}
			}

			if !ok {
				id = uuid.NewString()
				log.Debug("issuing client id", logger.String("client", id))
				http.SetCookie(w, &http.Cookie{
					Name:     cookieName,
					Value:    id,
					Path:     "/",
					MaxAge:   int(clientCookieMaxAge.Seconds()),
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			if slot, ok := r.Context().Value(clientSlotKey{}).(*string); ok {
				*slot = id
			}
			next.ServeHTTP(w, r.WithContext(WithClientID(r.Context(), id)))
		})
	}
}

func parseClientID(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	u, err := uuid.Parse(raw)
	if err != nil {
		return "", false
	}
	return u.String(), true
}
