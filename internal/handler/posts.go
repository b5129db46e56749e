package handler

import (
	"net/http"
	"strconv"

	"github.com/blogify/blog-service/internal/dto"
	"github.com/blogify/blog-service/internal/model"
	"github.com/gin-gonic/gin"
)

func (h *Handler) postIDFromRequest(c *gin.Context) (int64, bool) {
	postID, err := strconv.ParseInt(c.Param("postID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dtoError(errInvalidPostID))
		return 0, false
	}
	return postID, true
}

func (h *Handler) postsList(c *gin.Context) {
	filter := model.ParseFeedFilter(c.Query("filter"))

	feed, err := h.services.Post.GetFeedPage(c.Request.Context(), filter, h.getUserIDFromRequest(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, *feed)
}

func (h *Handler) postsLoadMore(c *gin.Context) {
	offset, ok := h.offsetFromRequest(c)
	if !ok {
		return
	}
	filter := model.ParseFeedFilter(c.Query("filter"))

	batch, err := h.services.Post.LoadMore(c.Request.Context(), filter, h.getUserIDFromRequest(c), offset)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, *batch)
}

func (h *Handler) postsSearch(c *gin.Context) {
	offset, ok := h.offsetFromRequest(c)
	if !ok {
		return
	}

	var input dto.SearchPostsRequest
	if err := c.ShouldBindQuery(&input); err != nil {
		c.JSON(http.StatusBadRequest, dtoError(err))
		return
	}

	results, err := h.services.Post.Search(c.Request.Context(), input.Query, input.SearchCategory, input.SearchTag, offset)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, *results)
}

func (h *Handler) postsGetMy(c *gin.Context) {
	user := h.getUserFromRequest(c)

	offset, ok := h.offsetFromRequest(c)
	if !ok {
		return
	}

	posts, err := h.services.Post.GetMyPosts(c.Request.Context(), user.ID, offset)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, *posts)
}

func (h *Handler) postsGetFavorites(c *gin.Context) {
	user := h.getUserFromRequest(c)

	offset, ok := h.offsetFromRequest(c)
	if !ok {
		return
	}

	posts, err := h.services.Post.GetFavorites(c.Request.Context(), user.ID, offset)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, *posts)
}

func (h *Handler) postsGetBySlug(c *gin.Context) {
	detail, err := h.services.Post.GetDetail(
		c.Request.Context(),
		c.Param("postSlug"),
		h.getSessionIDFromRequest(c),
		h.getUserIDFromRequest(c),
	)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, *detail)
}

func (h *Handler) postsCreate(c *gin.Context) {
	user := h.getUserFromRequest(c)

	var input dto.CreatePostRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dtoError(err))
		return
	}

	createdPost, err := h.services.Post.Create(c.Request.Context(), user.ID, input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, *createdPost)
}

func (h *Handler) postsEdit(c *gin.Context) {
	user := h.getUserFromRequest(c)

	postID, ok := h.postIDFromRequest(c)
	if !ok {
		return
	}

	var input dto.EditPostRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dtoError(err))
		return
	}

	updatedPost, err := h.services.Post.Update(c.Request.Context(), postID, user.ID, input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, *updatedPost)
}

func (h *Handler) postsDelete(c *gin.Context) {
	user := h.getUserFromRequest(c)

	postID, ok := h.postIDFromRequest(c)
	if !ok {
		return
	}

	if err := h.services.Post.Delete(c.Request.Context(), postID, user.ID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, "post deleted"))
}

func (h *Handler) postsLike(c *gin.Context) {
	h.toggleEngagement(c, h.services.Engagement.ToggleLike)
}

func (h *Handler) postsDislike(c *gin.Context) {
	h.toggleEngagement(c, h.services.Engagement.ToggleDislike)
}

func (h *Handler) postsFavorite(c *gin.Context) {
	h.toggleEngagement(c, h.services.Engagement.ToggleFavorite)
}
