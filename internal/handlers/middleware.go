package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// userIDKey is the gin context key the authenticated user id is stored under.
const userIDKey = "userId"

// userIdMiddleware authenticates the bearer token and stores the user id in
// the request context for downstream handlers.
func (h *Handler) userIdMiddleware(c *gin.Context) {
	token, errMsg := bearerToken(c.GetHeader("Authorization"))
	if errMsg != "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errMsg})
		return
	}

	userId, err := h.services.ParseToken(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		return
	}

	c.Set(userIDKey, userId)
	c.Next()
}

// bearerToken extracts the token from an Authorization header. A non-empty
// errMsg describes the rejection for the client.
func bearerToken(header string) (token, errMsg string) {
	if header == "" {
		return "", "missing Authorization header"
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", "invalid Authorization header format"
	}
	return parts[1], ""
}
