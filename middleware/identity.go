package middleware

import (
	"context"
	"net/http"
)

type contextKey string

const UserIDKey contextKey = "userID"

// UserIDHeader names the header the upstream proxy sets after
// authenticating the caller. This service trusts it as-is; authentication
// itself lives outside this deployment.
const UserIDHeader = "X-User-ID"

// IdentityMiddleware extracts the caller's user identity and puts it on
// the request context. Requests without an identity are rejected before
// reaching any handler.
func IdentityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get(UserIDHeader)
		if userID == "" {
			http.Error(w, "Missing "+UserIDHeader+" header", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID extracts the user identity from context
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok
}
