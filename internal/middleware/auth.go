package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/simplebank/backend/internal/logger"
)

type contextKey string

const userIDKey contextKey = "userID"

var (
	errMissingSecret = errors.New("jwt secret not configured")
	errMissingUserID = errors.New("token has no user_id claim")
)

// Auth verifies HS256 bearer tokens signed with secret and stores the
// user_id claim in the request context. Tokens are issued elsewhere.
// When enabled is false every request passes through untouched.
func Auth(secret string, enabled bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !enabled {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Get token from Authorization header
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Authorization header required", http.StatusUnauthorized)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, "Invalid authorization header format", http.StatusUnauthorized)
				return
			}

			userID, err := validateToken(parts[1], secret)
			if err != nil {
				logger.Warnf("[AUTH] rejected token from %s: %v", r.RemoteAddr, err)
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext returns the authenticated user id, if any.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok
}

func validateToken(tokenString, secret string) (string, error) {
	if secret == "" {
		return "", errMissingSecret
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", jwt.ErrTokenSignatureInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", jwt.ErrTokenInvalidClaims
	}

	userID, ok := claims["user_id"]
	if !ok || userID == nil {
		return "", errMissingUserID
	}

	switch v := userID.(type) {
	case float64:
		return fmt.Sprintf("%d", int64(v)), nil
	default:
		return fmt.Sprintf("%v", v), nil
	}
}
