package dto

import "github.com/blogify/blog-service/internal/model"

type ProfileResponse struct {
	User    model.UserAuthor  `json:"user"`
	Posts   []*model.FullPost `json:"posts"`
	HasMore bool              `json:"has_more"`
}
