package auth

import (
	"context"
	"net/http"
	"strings"
)

// contextKey is a package-private type for context keys. Only this package
// can create keys of this type, so no other package can shadow or read the
// userID value by guessing a string key.
type contextKey string

const userIDKey contextKey = "userID"

// RequireAuth enforces authentication on protected routes.
//
// The token is read from the "Authorization: Bearer <jwt>" header or, for
// browser sessions, from the "token" HttpOnly cookie. On success the
// verified userID is stored in the request context; otherwise the chain
// stops with 401.
func RequireAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := extractUserID(r, tokens)
			if err != nil {
				// http.Error would stamp text/plain over the JSON body.
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"unauthorized","message":"valid authentication required"}`))
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext retrieves the verified user ID placed by RequireAuth.
// Returns ("", false) for anonymous requests.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

// extractUserID locates the JWT on the request and validates it.
// Header wins over cookie when both are present.
func extractUserID(r *http.Request, tokens *TokenService) (string, error) {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return tokens.Validate(strings.TrimPrefix(h, "Bearer "))
	}

	cookie, err := r.Cookie("token")
	if err != nil {
		// http.ErrNoCookie: no token at all — anonymous request
		return "", err
	}

	return tokens.Validate(cookie.Value)
}
