package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resumind-backend/internal/identity"
	"resumind-backend/internal/shared/server/respond"
)

const (
	subjectKey = "subject"
	guestKey   = "isGuest"
)

// Auth gates requests on the identity collaborator. A bearer token accepted by
// sessions yields an authenticated subject; an X-Guest-Id header yields a
// guest subject. Everything else is rejected.
func Auth(sessions identity.Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader != "" {
			if !strings.HasPrefix(authHeader, "Bearer ") {
				respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
				return
			}
			token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
			if token == "" || !sessions.IsAuthenticated(token) {
				respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
				return
			}
			c.Set(subjectKey, "token")
			c.Set(guestKey, false)
			c.Next()
			return
		}

		guestID := strings.TrimSpace(c.GetHeader("X-Guest-Id"))
		if guestID == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "Missing identity", nil)
			return
		}

		c.Set(subjectKey, "guest:"+guestID)
		c.Set(guestKey, true)
		c.Next()
	}
}

// SubjectFromContext fetches the subject set by the auth middleware.
func SubjectFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(subjectKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}
