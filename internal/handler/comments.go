package handler

import (
	"net/http"
	"strconv"

	"github.com/blogify/blog-service/internal/dto"
	"github.com/blogify/blog-service/internal/model"
	"github.com/gin-gonic/gin"
)

func (h *Handler) commentIDFromRequest(c *gin.Context) (int64, bool) {
	commentID, err := strconv.ParseInt(c.Param("commentID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dtoError(errInvalidCommentID))
		return 0, false
	}
	return commentID, true
}

func (h *Handler) commentsAdd(c *gin.Context) {
	user := h.getUserFromRequest(c)

	postID, ok := h.postIDFromRequest(c)
	if !ok {
		return
	}

	var input dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dtoError(err))
		return
	}

	author := model.UserAuthor{
		ID:          user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		AvatarURL:   user.AvatarURL,
	}

	createdComment, err := h.services.Comment.Add(c.Request.Context(), postID, author, input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, *createdComment)
}

func (h *Handler) commentsLoadMore(c *gin.Context) {
	postID, ok := h.postIDFromRequest(c)
	if !ok {
		return
	}

	offset, ok := h.offsetFromRequest(c)
	if !ok {
		return
	}

	batch, err := h.services.Comment.LoadMore(c.Request.Context(), postID, offset)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, *batch)
}

func (h *Handler) commentsGetReplies(c *gin.Context) {
	commentID, ok := h.commentIDFromRequest(c)
	if !ok {
		return
	}

	replies, err := h.services.Comment.GetReplies(c.Request.Context(), commentID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, replies)
}

func (h *Handler) commentsDelete(c *gin.Context) {
	user := h.getUserFromRequest(c)

	commentID, ok := h.commentIDFromRequest(c)
	if !ok {
		return
	}

	if err := h.services.Comment.Delete(c.Request.Context(), commentID, user.ID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, "comment deleted"))
}
