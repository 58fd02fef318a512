package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"

	"github.com/warunglabs/kasirpos/pkg/types"
)

const authContextKey = "auth"

// AuthMiddleware resolves the bearer token once per request into an explicit
// types.AuthContext stored in gin.Context. Handlers retrieve it via
// AuthFromContext and pass it to services; nothing downstream reads ambient
// session state. Requests without a valid token are rejected with 401.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth, err := resolveAuth(c.GetHeader("Authorization"), jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "UNAUTHORIZED",
			})
			return
		}
		c.Set(authContextKey, auth)
		c.Next()
	}
}

// AuthFromContext returns the caller identity attached by AuthMiddleware,
// or nil when the request is unauthenticated.
func AuthFromContext(c *gin.Context) *types.AuthContext {
	if v, ok := c.Get(authContextKey); ok {
		if auth, ok := v.(*types.AuthContext); ok {
			return auth
		}
	}
	return nil
}

func resolveAuth(header, secret string) (*types.AuthContext, error) {
	raw := strings.TrimPrefix(header, "Bearer ")
	if raw == "" || raw == header {
		return nil, fmt.Errorf("missing bearer token")
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, fmt.Errorf("token has no subject")
	}
	role, _ := claims["role"].(string)
	if role == "" {
		role = string(types.RoleCashier)
	}
	return &types.AuthContext{UserID: sub, Role: types.Role(role)}, nil
}
