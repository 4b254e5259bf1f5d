package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt"
)

const authCookieName = "auth_token"

type AuthMiddleware struct {
	accessSecret string
}

func NewAuthMiddleware(accessSecret string) *AuthMiddleware {
	return &AuthMiddleware{
		accessSecret: accessSecret,
	}
}

// Wrap verifies the caller's token from the auth cookie (browser clients) or
// the Authorization header (CLI clients) and stashes the subject in X-UserId.
func (am *AuthMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := ""
		if c, err := r.Cookie(authCookieName); err == nil {
			tokenString = c.Value
		}
		if tokenString == "" {
			tokenString = strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		}
		if tokenString == "" {
			unauthorized(w, fmt.Errorf("authentication required"))
			return
		}

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			return []byte(am.accessSecret), nil
		})
		if err != nil || !token.Valid {
			unauthorized(w, fmt.Errorf("invalid token"))
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			unauthorized(w, fmt.Errorf("invalid claims"))
			return
		}

		userId, ok := claims["user_id"].(string)
		if !ok || userId == "" {
			unauthorized(w, fmt.Errorf("user not found in token"))
			return
		}

		r.Header.Set("X-UserId", userId)

		next.ServeHTTP(w, r)
	})
}

func unauthorized(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": err.Error(),
		"code":  http.StatusUnauthorized,
	})
}
