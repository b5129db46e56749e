package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const sessionCookie = "session_id"

const sessionCookieMaxAge = 60 * 60 * 24 * 365

// sessionMiddleware mints an anonymous session cookie when one is absent.
// The session id keys the per-session viewed flags and the anonymous theme
// preference.
func (h *Handler) sessionMiddleware(c *gin.Context) {
	sessionID, err := c.Cookie(sessionCookie)
	if err != nil || sessionID == "" {
		sessionID = uuid.NewString()
		c.SetCookie(sessionCookie, sessionID, sessionCookieMaxAge, "/", "", false, true)
	}

	c.Set("session-id", sessionID)

	c.Next()
}
