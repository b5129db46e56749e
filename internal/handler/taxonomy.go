package handler

import (
	"net/http"

	"github.com/blogify/blog-service/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *Handler) categoriesList(c *gin.Context) {
	categories, err := h.services.Taxonomy.GetCategories(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

func (h *Handler) categoriesCreate(c *gin.Context) {
	var input dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dtoError(err))
		return
	}

	category, err := h.services.Taxonomy.CreateCategory(c.Request.Context(), input.Name)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, *category)
}

func (h *Handler) categoryPosts(c *gin.Context) {
	offset, ok := h.offsetFromRequest(c)
	if !ok {
		return
	}

	posts, err := h.services.Post.GetByCategory(c.Request.Context(), c.Param("categorySlug"), offset)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, *posts)
}

func (h *Handler) tagsList(c *gin.Context) {
	tags, err := h.services.Taxonomy.GetTags(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tags)
}

func (h *Handler) tagPosts(c *gin.Context) {
	offset, ok := h.offsetFromRequest(c)
	if !ok {
		return
	}

	posts, err := h.services.Post.GetByTag(c.Request.Context(), c.Param("tagSlug"), offset)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, *posts)
}
