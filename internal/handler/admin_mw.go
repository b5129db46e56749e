package handler

import (
	"net/http"
	"os"
	"strings"

	"github.com/blogify/blog-service/pkg/utils"
	"github.com/gin-gonic/gin"
)

func (h *Handler) adminMiddleware(c *gin.Context) {
	accessToken := bearerToken(c)
	if accessToken == "" {
		c.JSON(http.StatusUnauthorized, dtoError(errNotAuthorized))
		c.Abort()
		return
	}

	claims, err := utils.DecodeJWT(accessToken, []byte(os.Getenv("ACCESS_SECRET")))
	if err != nil {
		c.JSON(http.StatusUnauthorized, dtoError(errNotAuthorized))
		c.Abort()
		return
	}

	role, _ := claims["role"].(string)
	role = strings.ToLower(role)
	if role != "mod" && role != "admin" {
		c.JSON(http.StatusForbidden, dtoError(errNoAccess))
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
