package handler

import (
	"net/http"

	"github.com/blogify/blog-service/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *Handler) usersGetProfile(c *gin.Context) {
	offset, ok := h.offsetFromRequest(c)
	if !ok {
		return
	}

	profile, err := h.services.User.GetProfile(c.Request.Context(), c.Param("username"), offset)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, *profile)
}

func (h *Handler) subscriptionToggle(c *gin.Context) {
	user := h.getUserFromRequest(c)

	subscribed, err := h.services.User.ToggleSubscription(c.Request.Context(), user.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToggleSubscriptionResponse{Subscribed: subscribed})
}

func (h *Handler) themeToggle(c *gin.Context) {
	newTheme, err := h.services.User.ToggleTheme(
		c.Request.Context(),
		h.getUserIDFromRequest(c),
		h.getSessionIDFromRequest(c),
	)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToggleThemeResponse{NewTheme: newTheme})
}
