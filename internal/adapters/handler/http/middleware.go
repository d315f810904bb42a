package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type contextKey string

// MemberIDKey carries the authenticated member's ID through the request
// context once the access token checks out.
const MemberIDKey contextKey = "memberID"

// AuthMiddleware validates the access token cookie and rejects the request
// with 401 before any handler runs.
func AuthMiddleware(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie("access_token")
			if err != nil {
				http.Error(w, "Unauthorized: missing access token", http.StatusUnauthorized)
				return
			}

			memberID, err := parseAccessToken(cookie.Value, jwtSecret)
			if err != nil {
				http.Error(w, "Unauthorized: "+err.Error(), http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), MemberIDKey, memberID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func parseAccessToken(tokenString, secret string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return uuid.Nil, fmt.Errorf("invalid token claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, fmt.Errorf("missing subject claim")
	}

	memberID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid subject claim")
	}
	return memberID, nil
}

func memberIDFrom(r *http.Request) (uuid.UUID, bool) {
	id, ok := r.Context().Value(MemberIDKey).(uuid.UUID)
	return id, ok
}
