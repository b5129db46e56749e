package handler

import (
	"context"
	"net/http"

	"github.com/blogify/blog-service/internal/model"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handler) toggleEngagement(
	c *gin.Context,
	toggle func(ctx context.Context, postID int64, userID uuid.UUID) (*model.EngagementState, error),
) {
	user := h.getUserFromRequest(c)

	postID, ok := h.postIDFromRequest(c)
	if !ok {
		return
	}

	state, err := toggle(c.Request.Context(), postID, user.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, *state)
}
