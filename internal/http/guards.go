package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"account-service/internal/auth"
)

const (
	identityKey = "accounts.identity"
	payloadKey  = "accounts.payload"
)

// requireAuth verifies the raw authorization header and attaches the claims to the request.
func (h *Handler) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("Authorization")
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization token"})
			return
		}

		claims, err := h.tokens.Verify(raw)
		if err != nil {
			h.logger.WithError(err).WithField("path", c.Request.URL.Path).Warn("token verification failed")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(identityKey, claims)
		c.Next()
	}
}

func identityFrom(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}

type userRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// validateUser checks the shape of a registration body.
func validateUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req userRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "name, a valid email and password are required"})
			return
		}
		c.Set(payloadKey, req)
		c.Next()
	}
}

func validateLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
			return
		}
		c.Set(payloadKey, req)
		c.Next()
	}
}

// requireUserFields rejects updates that omit any field. Existing clients expect 401 here.
func requireUserFields() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req userRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "name, email and password are required"})
			return
		}
		c.Set(payloadKey, req)
		c.Next()
	}
}
