package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}

	return strings.Split(header, " ")[1]
}

func (h *Handler) authMiddleware(c *gin.Context) {
	accessToken := bearerToken(c)
	if accessToken == "" {
		c.JSON(http.StatusUnauthorized, dtoError(errNotAuthorized))
		c.Abort()
		return
	}

	user, err := h.getUserFromAccessToken(c.Request.Context(), accessToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dtoError(errNotAuthorized))
		c.Abort()
		return
	}

	c.Set("user", *user)

	c.Next()
}
