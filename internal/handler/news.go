package handler

import (
	"net/http"

	"github.com/blogify/blog-service/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *Handler) newsList(c *gin.Context) {
	items, err := h.services.News.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

func (h *Handler) newsCreate(c *gin.Context) {
	var input dto.CreateNewsRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dtoError(err))
		return
	}

	createdNews, err := h.services.News.Create(c.Request.Context(), input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, *createdNews)
}

func (h *Handler) newsUpdate(c *gin.Context) {
	postID, ok := h.postIDFromRequest(c)
	if !ok {
		return
	}

	var input dto.UpdateNewsRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dtoError(err))
		return
	}

	updatedNews, err := h.services.News.Update(c.Request.Context(), postID, input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, *updatedNews)
}

func (h *Handler) newsDelete(c *gin.Context) {
	postID, ok := h.postIDFromRequest(c)
	if !ok {
		return
	}

	if err := h.services.News.Delete(c.Request.Context(), postID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, "news item and its post deleted"))
}
