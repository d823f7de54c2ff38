// Package handlers serves the storefront and admin HTTP surface.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vikas-mobiles/be/session"
)

const (
	SessionCookie = "session_id"
	sessionKey    = "session"
)

// SessionMiddleware attaches the shopper's session to the request, starting
// a new one when the cookie is missing or expired.
func SessionMiddleware(registry *session.Registry, maxAge int) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := c.Cookie(SessionCookie)
		s, _ := registry.GetOrCreate(id)
		// refreshed on every request to track the registry's idle TTL
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookie, s.ID, maxAge, "/", "", false, true)
		c.Set(sessionKey, s)
		c.Next()
	}
}

func currentSession(c *gin.Context) *session.Session {
	return c.MustGet(sessionKey).(*session.Session)
}
