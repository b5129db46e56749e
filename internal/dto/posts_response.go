package dto

import "github.com/blogify/blog-service/internal/model"

type PostFeedResponse struct {
	Posts   []*model.FullPost `json:"posts"`
	HasMore bool              `json:"has_more"`
	Filter  string            `json:"filter"`
	Stats   model.FeedStats   `json:"stats"`
}

type LoadMorePostsResponse struct {
	Posts   []*model.FullPost `json:"posts"`
	HasMore bool              `json:"has_more"`
}

type PostDetailResponse struct {
	Post            model.FullPost        `json:"post"`
	Engagement      model.EngagementState `json:"engagement"`
	Comments        []*model.FullComment  `json:"comments"`
	HasMoreComments bool                  `json:"has_more_comments"`
	CommentsCount   int64                 `json:"comments_count"`
}

type LoadMoreCommentsResponse struct {
	Comments []*model.FullComment `json:"comments"`
	HasMore  bool                 `json:"has_more"`
}

type AddCommentResponse struct {
	Comment       model.FullComment `json:"comment"`
	CommentsCount int64             `json:"comments_count"`
}
