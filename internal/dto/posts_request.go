package dto

type CreatePostRequest struct {
	Title      string  `json:"title" binding:"required"`
	Content    string  `json:"content" binding:"required"`
	ImageURL   *string `json:"image_url"`
	CategoryID *int64  `json:"category_id"`
	Tags       string  `json:"tags"` // comma-separated
	Status     string  `json:"status"`
}

type EditPostRequest struct {
	Title      *string `json:"title"`
	Content    *string `json:"content"`
	ImageURL   *string `json:"image_url"`
	CategoryID *int64  `json:"category_id"`
	Tags       *string `json:"tags"` // comma-separated, replaces the tag set
	Status     *string `json:"status"`
}

type SearchPostsRequest struct {
	Query          string `form:"q"`
	SearchCategory bool   `form:"category"`
	SearchTag      bool   `form:"tag"`
}
