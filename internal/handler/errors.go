package handler

import (
	"errors"
	"net/http"

	"github.com/blogify/blog-service/internal/dto"
	"github.com/blogify/blog-service/internal/service"
	"github.com/gin-gonic/gin"
)

var (
	errNotAuthorized      = errors.New("user is not authorized")
	errNoAccess           = errors.New("no access")
	errInvalidAccessToken = errors.New("invalid access token")
	errInvalidPostID      = errors.New("invalid post ID")
	errInvalidCommentID   = errors.New("invalid comment ID")
	errInvalidOffset      = errors.New("offset must be a non-negative integer")
)

func dtoError(err error) dto.BasicResponse {
	return dto.NewBasicResponse(false, err.Error())
}

// respondError maps service errors onto HTTP statuses: validation failures
// to 400, missing entities to 404, ownership violations to 403.
func (h *Handler) respondError(c *gin.Context, err error) {
	var status int
	switch {
	case errors.Is(err, service.ErrTitleTooShort),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidNewsType),
		errors.Is(err, service.ErrEmptyCommentContent),
		errors.Is(err, service.ErrParentCommentMismatch),
		errors.Is(err, service.ErrSlugTaken),
		errors.Is(err, service.ErrNewsAlreadyExists),
		errors.Is(err, service.ErrCategoryAlreadyExists),
		errors.Is(err, service.ErrCategoryNameRequired):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrPostNotFound),
		errors.Is(err, service.ErrCommentNotFound),
		errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrTagNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrNewsNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrNotPostAuthor),
		errors.Is(err, service.ErrNotCommentAuthor):
		status = http.StatusForbidden
	default:
		status = http.StatusInternalServerError
	}

	c.JSON(status, dtoError(err))
}
