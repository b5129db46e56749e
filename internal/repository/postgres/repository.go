package postgres

import (
	"context"
	"errors"

	"github.com/blogify/blog-service/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Post interface {
	Create(ctx context.Context, post model.Post, tags []model.Tag) (*model.Post, error)
	Update(ctx context.Context, post model.Post, tags []model.Tag) (*model.Post, error)
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*model.Post, error)
	FindBySlug(ctx context.Context, slug string) (*model.FullPost, error)
	FindFeed(ctx context.Context, filter model.FeedFilter, followeeIDs []uuid.UUID, limit int, offset int) ([]*model.FullPost, int64, error)
	FeedStats(ctx context.Context) (*model.FeedStats, error)
	Search(ctx context.Context, query string, matchCategory bool, matchTag bool, limit int, offset int) ([]*model.FullPost, int64, error)
	FindByCategory(ctx context.Context, categoryID int64, limit int, offset int) ([]*model.FullPost, int64, error)
	FindByTag(ctx context.Context, tagID int64, limit int, offset int) ([]*model.FullPost, int64, error)
	FindAuthorPosts(ctx context.Context, authorID uuid.UUID, includeDrafts bool, limit int, offset int) ([]*model.FullPost, int64, error)
	FindFavoritePosts(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]*model.FullPost, int64, error)
	IncrViews(ctx context.Context, id int64) error
	MarkViewed(ctx context.Context, postID int64, userID uuid.UUID) error
}

type Comment interface {
	Create(ctx context.Context, comment model.Comment) (*model.Comment, error)
	FindByID(ctx context.Context, id int64) (*model.Comment, error)
	FindRootComments(ctx context.Context, postID int64, limit int, offset int) ([]*model.FullComment, int64, error)
	FindReplies(ctx context.Context, parentID int64) ([]*model.FullComment, error)
	CountForPost(ctx context.Context, postID int64) (int64, error)
	Delete(ctx context.Context, commentID int64, authorID uuid.UUID) error
}

type Engagement interface {
	ToggleLike(ctx context.Context, postID int64, userID uuid.UUID) (*model.EngagementState, error)
	ToggleDislike(ctx context.Context, postID int64, userID uuid.UUID) (*model.EngagementState, error)
	ToggleFavorite(ctx context.Context, postID int64, userID uuid.UUID) (*model.EngagementState, error)
	State(ctx context.Context, postID int64, userID *uuid.UUID) (*model.EngagementState, error)
}

type News interface {
	Create(ctx context.Context, news model.News) (*model.News, error)
	Update(ctx context.Context, news model.News) (*model.News, error)
	FindByPostID(ctx context.Context, postID int64) (*model.News, error)
	FindPublished(ctx context.Context) ([]*model.NewsPost, error)
	Delete(ctx context.Context, postID int64) error
	EnforceSinglePinned(ctx context.Context, keepPostID int64) error
	MarkNotificationSent(ctx context.Context, postID int64) error
}

type Taxonomy interface {
	CreateCategory(ctx context.Context, name string) (*model.Category, error)
	FindCategories(ctx context.Context) ([]*model.Category, error)
	FindCategoryByID(ctx context.Context, id int64) (*model.Category, error)
	FindCategoryBySlug(ctx context.Context, slug string) (*model.Category, error)
	FindTags(ctx context.Context) ([]*model.Tag, error)
	FindTagBySlug(ctx context.Context, slug string) (*model.Tag, error)
}

type User interface {
	Upsert(ctx context.Context, user model.User) (*model.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindSubscribers(ctx context.Context) ([]*model.User, error)
	ToggleSubscription(ctx context.Context, id uuid.UUID) (bool, error)
	ToggleTheme(ctx context.Context, id uuid.UUID) (string, error)
	FindFolloweeIDs(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error)
}

type PostgresRepository struct {
	Post
	Comment
	Engagement
	News
	Taxonomy
	User
}

func New(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{
		Post:       newPostRepo(db),
		Comment:    newCommentRepo(db),
		Engagement: newEngagementRepo(db),
		News:       newNewsRepo(db),
		Taxonomy:   newTaxonomyRepo(db),
		User:       newUserRepo(db),
	}
}

// IsUniqueViolation reports whether err is a postgres unique constraint
// violation (duplicate slug, duplicate junction row).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
