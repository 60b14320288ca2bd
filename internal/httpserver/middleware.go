package httpserver

import (
	"net/http"
	"strings"

	"shop-backend/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const userCtxKey = "authUser"

// requestIDMiddleware assigns an X-Request-ID when the client did not send one.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// authMiddleware resolves the bearer token to a user and rejects the request
// when it cannot.
func authMiddleware(accounts AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		user, err := accounts.LookupByToken(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		c.Set(userCtxKey, user)
		c.Next()
	}
}

// optionalAuthMiddleware resolves the user when a valid token is present, and
// lets the request through either way. Catalog reads use it to fill isLiked.
func optionalAuthMiddleware(accounts AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if user, err := accounts.LookupByToken(c.Request.Context(), token); err == nil {
				c.Set(userCtxKey, user)
			}
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	for _, prefix := range []string{"Bearer ", "Token "} {
		if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
			return strings.TrimSpace(header[len(prefix):])
		}
	}
	return ""
}

func currentUser(c *gin.Context) *domain.User {
	if v, ok := c.Get(userCtxKey); ok {
		if u, ok := v.(*domain.User); ok {
			return u
		}
	}
	return nil
}

func viewerID(c *gin.Context) *string {
	if u := currentUser(c); u != nil {
		return &u.ID
	}
	return nil
}
