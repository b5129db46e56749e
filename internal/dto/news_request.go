package dto

type CreateNewsRequest struct {
	PostID      int64  `json:"post_id" binding:"required"`
	Type        string `json:"type" binding:"required"`
	IsImportant bool   `json:"is_important"`
	Pinned      bool   `json:"pinned"`
}

type UpdateNewsRequest struct {
	Type        *string `json:"type"`
	IsImportant *bool   `json:"is_important"`
	Pinned      *bool   `json:"pinned"`
}
