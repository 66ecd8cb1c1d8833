package middleware

import (
	"context"
	"net/http"

	log "github.com/sirupsen/logrus"

	"microblog/internal/httputil"
	"microblog/internal/model"
	"microblog/internal/service"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	// UserKey is the context key for the resolved user
	UserKey contextKey = "user"
)

// ResolveAPIKey resolves the api-key header to a user and stores it in the
// request context. There is no unauthorized branch: unknown or missing keys
// resolve to the test user, so every handler downstream always has an
// identity. Only an infrastructure failure stops the request.
func ResolveAPIKey(users *service.UserService, writer *httputil.Writer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			apiKey := r.Header.Get("api-key")

			user, err := users.Resolve(r.Context(), apiKey)
			if err != nil {
				log.Errorf("[Middleware] Failed to resolve api key: %v", err)
				writer.InternalError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserFromContext extracts the resolved user from the request context.
func GetUserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(UserKey).(*model.User)
	return user, ok
}
