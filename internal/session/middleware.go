package session

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Apserty/ADENGAPPA-NAALU-PERU/internal/api"
)

type contextKey struct{}

// NewContext attaches the authenticated user snapshot to a request context.
func NewContext(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, contextKey{}, user)
}

// FromContext returns the authenticated user attached by Middleware.
func FromContext(ctx context.Context) (User, bool) {
	user, ok := ctx.Value(contextKey{}).(User)
	return user, ok
}

// Middleware rejects requests without a valid session cookie and attaches the
// session's user snapshot to the context for the wrapped handler.
func Middleware(store Store, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(CookieName)
		if err != nil {
			reject(w, api.Response{
				Error:   fmt.Errorf("session middleware: %w", err),
				Code:    http.StatusUnauthorized,
				Message: "Not authenticated.",
			})
			return
		}

		user, ok, err := store.Lookup(r.Context(), cookie.Value)
		if err != nil {
			reject(w, api.Response{
				Error:   fmt.Errorf("session middleware: %w", err),
				Code:    http.StatusInternalServerError,
				Message: "Failed to check session.",
			})
			return
		}

		if !ok {
			reject(w, api.Response{
				Error:   fmt.Errorf("session middleware: unknown token"),
				Code:    http.StatusUnauthorized,
				Message: "Not authenticated.",
			})
			return
		}

		next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), user)))
	})
}

func reject(w http.ResponseWriter, res api.Response) {
	slog.Error(res.Error.Error())

	if err := res.Encode(w); err != nil {
		slog.Error(err.Error())
	}
}
