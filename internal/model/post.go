package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

type FeedFilter string

const (
	FilterAll       FeedFilter = "all"
	FilterTrending  FeedFilter = "trending"
	FilterPopular   FeedFilter = "popular"
	FilterNew       FeedFilter = "new"
	FilterFollowing FeedFilter = "following"
)

func ParseFeedFilter(s string) FeedFilter {
	switch FeedFilter(s) {
	case FilterTrending, FilterPopular, FilterNew, FilterFollowing:
		return FeedFilter(s)
	default:
		return FilterAll
	}
}

type Post struct {
	ID         int64     `json:"id"`
	AuthorID   uuid.UUID `json:"author_id"`
	Title      string    `json:"title"`
	Slug       string    `json:"slug"`
	Content    string    `json:"content"`
	ImageURL   *string   `json:"image_url"`
	CategoryID *int64    `json:"category_id"`
	Status     string    `json:"status"`
	Views      int64     `json:"views"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type FullPost struct {
	Post     Post       `json:"post"`
	Author   UserAuthor `json:"author"`
	Category *Category  `json:"category"`
	Tags     []string   `json:"tags"`
}

// FeedStats is recomputed on every listing request over all published
// non-news posts. Nothing here is cached.
type FeedStats struct {
	TotalPosts     int64 `json:"total_posts"`
	TotalAuthors   int64 `json:"total_authors"`
	TotalComments  int64 `json:"total_comments"`
	TotalFavorites int64 `json:"total_favorites"`
	TotalViews     int64 `json:"total_views"`
	TotalLikes     int64 `json:"total_likes"`
}

type EngagementState struct {
	HasLiked       bool  `json:"has_liked"`
	HasDisliked    bool  `json:"has_disliked"`
	IsFavorite     bool  `json:"is_favorite"`
	LikesCount     int64 `json:"likes_count"`
	DislikesCount  int64 `json:"dislikes_count"`
	FavoritesCount int64 `json:"favorites_count"`
}
