package service

import (
	"context"

	"github.com/blogify/blog-service/internal/dto"
	"github.com/blogify/blog-service/internal/mailer"
	"github.com/blogify/blog-service/internal/model"
	"github.com/blogify/blog-service/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	POSTS_PER_BATCH    = 6
	COMMENTS_PER_BATCH = 5
)

type Post interface {
	Create(ctx context.Context, authorID uuid.UUID, input dto.CreatePostRequest) (*model.Post, error)
	Update(ctx context.Context, postID int64, authorID uuid.UUID, input dto.EditPostRequest) (*model.Post, error)
	Delete(ctx context.Context, postID int64, authorID uuid.UUID) error
	GetFeedPage(ctx context.Context, filter model.FeedFilter, userID *uuid.UUID) (*dto.PostFeedResponse, error)
	LoadMore(ctx context.Context, filter model.FeedFilter, userID *uuid.UUID, offset int) (*dto.LoadMorePostsResponse, error)
	GetDetail(ctx context.Context, slug string, sessionID string, userID *uuid.UUID) (*dto.PostDetailResponse, error)
	Search(ctx context.Context, query string, matchCategory bool, matchTag bool, offset int) (*dto.LoadMorePostsResponse, error)
	GetByCategory(ctx context.Context, categorySlug string, offset int) (*dto.LoadMorePostsResponse, error)
	GetByTag(ctx context.Context, tagSlug string, offset int) (*dto.LoadMorePostsResponse, error)
	GetMyPosts(ctx context.Context, authorID uuid.UUID, offset int) (*dto.LoadMorePostsResponse, error)
	GetFavorites(ctx context.Context, userID uuid.UUID, offset int) (*dto.LoadMorePostsResponse, error)
}

type Comment interface {
	Add(ctx context.Context, postID int64, author model.UserAuthor, input dto.CreateCommentRequest) (*dto.AddCommentResponse, error)
	LoadMore(ctx context.Context, postID int64, offset int) (*dto.LoadMoreCommentsResponse, error)
	GetReplies(ctx context.Context, commentID int64) ([]*model.FullComment, error)
	Delete(ctx context.Context, commentID int64, authorID uuid.UUID) error
}

type Engagement interface {
	ToggleLike(ctx context.Context, postID int64, userID uuid.UUID) (*model.EngagementState, error)
	ToggleDislike(ctx context.Context, postID int64, userID uuid.UUID) (*model.EngagementState, error)
	ToggleFavorite(ctx context.Context, postID int64, userID uuid.UUID) (*model.EngagementState, error)
}

type News interface {
	List(ctx context.Context) ([]*model.NewsPost, error)
	Create(ctx context.Context, input dto.CreateNewsRequest) (*model.News, error)
	Update(ctx context.Context, postID int64, input dto.UpdateNewsRequest) (*model.News, error)
	Delete(ctx context.Context, postID int64) error
}

type User interface {
	Ensure(ctx context.Context, user model.User) (*model.User, error)
	GetProfile(ctx context.Context, username string, offset int) (*dto.ProfileResponse, error)
	ToggleSubscription(ctx context.Context, userID uuid.UUID) (bool, error)
	ToggleTheme(ctx context.Context, userID *uuid.UUID, sessionID string) (string, error)
}

type Taxonomy interface {
	CreateCategory(ctx context.Context, name string) (*model.Category, error)
	GetCategories(ctx context.Context) ([]*model.Category, error)
	GetTags(ctx context.Context) ([]*model.Tag, error)
}

type Notification interface {
	DispatchImportantNews(ctx context.Context, post *model.Post)
}

type Service struct {
	Post
	Comment
	Engagement
	News
	Taxonomy
	User
}

func New(logger *zap.Logger, repo *repository.Repository, mail mailer.Mailer) *Service {
	notifications := newNotificationService(logger, repo, mail)

	return &Service{
		Post:       newPostService(logger, repo, notifications),
		Comment:    newCommentService(logger, repo),
		Engagement: newEngagementService(logger, repo),
		News:       newNewsService(logger, repo, notifications),
		Taxonomy:   newTaxonomyService(logger, repo),
		User:       newUserService(logger, repo),
	}
}
