// Package middleware provides gin middleware for bearer-token
// authentication and role-based authorization.
package middleware

import (
	"net/http"
	"strings"

	"github.com/Carlos43525/GardenNetApi/web/service"

	"github.com/gin-gonic/gin"
)

const claimsKey = "authClaims"

// JWTAuth validates the Authorization header and stores the token claims in
// the request context. Requests without a valid token are rejected with 401.
func JWTAuth(tokens *service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization token required"})
			c.Abort()
			return
		}

		claims, err := tokens.Parse(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireRole allows the request through when the token carries any of the
// given roles. Runs after JWTAuth.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool)
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		for _, role := range claims.Roles {
			if allowed[role] {
				c.Next()
				return
			}
		}
		c.AbortWithStatus(http.StatusForbidden)
	}
}

// GetClaims returns the claims stored by JWTAuth, or nil.
func GetClaims(c *gin.Context) *service.AuthClaims {
	value, exists := c.Get(claimsKey)
	if !exists {
		return nil
	}
	claims, _ := value.(*service.AuthClaims)
	return claims
}
