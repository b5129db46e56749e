package service

import "errors"

var (
	ErrInternal              = errors.New("internal server error")
	ErrPostNotFound          = errors.New("post not found")
	ErrCommentNotFound       = errors.New("comment not found")
	ErrCategoryNotFound      = errors.New("category not found")
	ErrTagNotFound           = errors.New("tag not found")
	ErrUserNotFound          = errors.New("user not found")
	ErrNewsNotFound          = errors.New("news item not found")
	ErrNewsAlreadyExists     = errors.New("news item already exists for this post")
	ErrTitleTooShort         = errors.New("title must be at least 5 characters long")
	ErrInvalidStatus         = errors.New("status must be either 'draft' or 'published'")
	ErrInvalidNewsType       = errors.New("news type must be one of: announcement, update, event, maintenance")
	ErrEmptyCommentContent   = errors.New("comment content must not be empty")
	ErrParentCommentMismatch = errors.New("parent comment belongs to another post")
	ErrSlugTaken             = errors.New("slug is already in use")
	ErrNotPostAuthor         = errors.New("user is not the author of this post")
	ErrNotCommentAuthor      = errors.New("user is not the author of this comment")
	ErrCategoryAlreadyExists = errors.New("category with the same slug already exists")
	ErrCategoryNameRequired  = errors.New("category name must not be empty")
)
