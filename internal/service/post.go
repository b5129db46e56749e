package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/blogify/blog-service/internal/dto"
	"github.com/blogify/blog-service/internal/model"
	"github.com/blogify/blog-service/internal/repository"
	"github.com/blogify/blog-service/internal/repository/postgres"
	"github.com/blogify/blog-service/internal/repository/redisrepo"
	"github.com/blogify/blog-service/pkg/slugify"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const MIN_TITLE_LENGTH = 5

const viewedKeyTTL = time.Hour * 24

type postService struct {
	logger        *zap.Logger
	repo          *repository.Repository
	notifications Notification
}

func newPostService(logger *zap.Logger, repo *repository.Repository, notifications Notification) Post {
	return &postService{
		logger:        logger,
		repo:          repo,
		notifications: notifications,
	}
}

func parseTags(input string) []model.Tag {
	var tags []model.Tag
	seen := make(map[string]struct{})
	for _, part := range strings.Split(input, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		tagSlug := slugify.Make(name)
		if _, dup := seen[tagSlug]; dup {
			continue
		}
		seen[tagSlug] = struct{}{}
		tags = append(tags, model.Tag{Name: name, Slug: tagSlug})
	}

	return tags
}

func validStatus(status string) bool {
	return status == model.StatusDraft || status == model.StatusPublished
}

func (s *postService) Create(ctx context.Context, authorID uuid.UUID, input dto.CreatePostRequest) (*model.Post, error) {
	title := strings.TrimSpace(input.Title)
	if utf8.RuneCountInString(title) < MIN_TITLE_LENGTH {
		return nil, ErrTitleTooShort
	}

	status := input.Status
	if status == "" {
		status = model.StatusDraft
	}
	if !validStatus(status) {
		return nil, ErrInvalidStatus
	}

	if input.CategoryID != nil {
		if _, err := s.repo.Postgres.Taxonomy.FindCategoryByID(ctx, *input.CategoryID); err != nil {
			if err == pgx.ErrNoRows {
				return nil, ErrCategoryNotFound
			}
			s.logger.Sugar().Errorf("failed to find category(%d): %s", *input.CategoryID, err.Error())
			return nil, ErrInternal
		}
	}

	post := model.Post{
		AuthorID:   authorID,
		Title:      title,
		Slug:       slugify.Make(title),
		Content:    input.Content,
		ImageURL:   input.ImageURL,
		CategoryID: input.CategoryID,
		Status:     status,
	}

	createdPost, err := s.repo.Postgres.Post.Create(ctx, post, parseTags(input.Tags))
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return nil, ErrSlugTaken
		}
		s.logger.Sugar().Errorf("failed to create user(%s) post: %s", authorID.String(), err.Error())
		return nil, ErrInternal
	}

	if createdPost.Status == model.StatusPublished {
		s.afterPublish(ctx, createdPost)
	}

	return createdPost, nil
}

func (s *postService) Update(ctx context.Context, postID int64, authorID uuid.UUID, input dto.EditPostRequest) (*model.Post, error) {
	existing, err := s.repo.Postgres.Post.FindByID(ctx, postID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrPostNotFound
		}
		s.logger.Sugar().Errorf("failed to find post(%d): %s", postID, err.Error())
		return nil, ErrInternal
	}

	if existing.AuthorID != authorID {
		return nil, ErrNotPostAuthor
	}

	title := existing.Title
	if input.Title != nil {
		title = strings.TrimSpace(*input.Title)
	}
	if utf8.RuneCountInString(title) < MIN_TITLE_LENGTH {
		return nil, ErrTitleTooShort
	}

	status := existing.Status
	if input.Status != nil {
		status = *input.Status
	}
	if !validStatus(status) {
		return nil, ErrInvalidStatus
	}

	content := existing.Content
	if input.Content != nil {
		content = *input.Content
	}

	imageURL := existing.ImageURL
	if input.ImageURL != nil {
		imageURL = input.ImageURL
	}

	categoryID := existing.CategoryID
	if input.CategoryID != nil {
		if _, err := s.repo.Postgres.Taxonomy.FindCategoryByID(ctx, *input.CategoryID); err != nil {
			if err == pgx.ErrNoRows {
				return nil, ErrCategoryNotFound
			}
			s.logger.Sugar().Errorf("failed to find category(%d): %s", *input.CategoryID, err.Error())
			return nil, ErrInternal
		}
		categoryID = input.CategoryID
	}

	tags, err := s.resolveTags(ctx, existing, input.Tags)
	if err != nil {
		return nil, err
	}

	post := model.Post{
		ID:         postID,
		Title:      title,
		Slug:       slugify.Make(title), // recomputed on every save
		Content:    content,
		ImageURL:   imageURL,
		CategoryID: categoryID,
		Status:     status,
	}

	updatedPost, err := s.repo.Postgres.Post.Update(ctx, post, tags)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return nil, ErrSlugTaken
		}
		s.logger.Sugar().Errorf("failed to update post(%d): %s", postID, err.Error())
		return nil, ErrInternal
	}

	if updatedPost.Status == model.StatusPublished {
		s.afterPublish(ctx, updatedPost)
	}

	return updatedPost, nil
}

func (s *postService) resolveTags(ctx context.Context, existing *model.Post, input *string) ([]model.Tag, error) {
	if input != nil {
		return parseTags(*input), nil
	}

	// Tag set untouched: re-read the current tags since the repository
	// replaces them wholesale on update.
	full, err := s.repo.Postgres.Post.FindBySlug(ctx, existing.Slug)
	if err != nil {
		s.logger.Sugar().Errorf("failed to load post(%d) tags: %s", existing.ID, err.Error())
		return nil, ErrInternal
	}

	var tags []model.Tag
	for _, name := range full.Tags {
		tags = append(tags, model.Tag{Name: name, Slug: slugify.Make(name)})
	}

	return tags, nil
}

// afterPublish runs the write hooks that react to a post being saved in the
// published state: the pinned-news invariant and the important-news email
// fan-out.
func (s *postService) afterPublish(ctx context.Context, post *model.Post) {
	if err := s.repo.Postgres.News.EnforceSinglePinned(ctx, post.ID); err != nil {
		s.logger.Sugar().Errorf("failed to enforce single pinned news for post(%d): %s", post.ID, err.Error())
	}

	s.notifications.DispatchImportantNews(ctx, post)
}

func (s *postService) Delete(ctx context.Context, postID int64, authorID uuid.UUID) error {
	existing, err := s.repo.Postgres.Post.FindByID(ctx, postID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return ErrPostNotFound
		}
		s.logger.Sugar().Errorf("failed to find post(%d): %s", postID, err.Error())
		return ErrInternal
	}

	if existing.AuthorID != authorID {
		return ErrNotPostAuthor
	}

	if err := s.repo.Postgres.Post.Delete(ctx, postID); err != nil {
		s.logger.Sugar().Errorf("failed to delete post(%d): %s", postID, err.Error())
		return ErrInternal
	}

	return nil
}

// resolveFeed applies the `following` fallback: unauthenticated requesters
// get the `new` ordering instead.
func (s *postService) resolveFeed(ctx context.Context, filter model.FeedFilter, userID *uuid.UUID) (model.FeedFilter, []uuid.UUID) {
	if filter != model.FilterFollowing {
		return filter, nil
	}
	if userID == nil {
		return model.FilterNew, nil
	}

	followeeIDs, err := s.repo.Postgres.User.FindFolloweeIDs(ctx, *userID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find user(%s) followees: %s", userID.String(), err.Error())
		return model.FilterNew, nil
	}

	return model.FilterFollowing, followeeIDs
}

func nonNilPosts(posts []*model.FullPost) []*model.FullPost {
	if posts == nil {
		return []*model.FullPost{}
	}
	return posts
}

func (s *postService) GetFeedPage(ctx context.Context, filter model.FeedFilter, userID *uuid.UUID) (*dto.PostFeedResponse, error) {
	resolved, followeeIDs := s.resolveFeed(ctx, filter, userID)

	posts, total, err := s.repo.Postgres.Post.FindFeed(ctx, resolved, followeeIDs, POSTS_PER_BATCH, 0)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find feed(%s): %s", resolved, err.Error())
		return nil, ErrInternal
	}

	stats, err := s.repo.Postgres.Post.FeedStats(ctx)
	if err != nil {
		s.logger.Sugar().Errorf("failed to compute feed stats: %s", err.Error())
		return nil, ErrInternal
	}

	return &dto.PostFeedResponse{
		Posts:   nonNilPosts(posts),
		HasMore: hasMore(0, POSTS_PER_BATCH, total),
		Filter:  string(filter),
		Stats:   *stats,
	}, nil
}

func (s *postService) LoadMore(ctx context.Context, filter model.FeedFilter, userID *uuid.UUID, offset int) (*dto.LoadMorePostsResponse, error) {
	resolved, followeeIDs := s.resolveFeed(ctx, filter, userID)

	posts, total, err := s.repo.Postgres.Post.FindFeed(ctx, resolved, followeeIDs, POSTS_PER_BATCH, offset)
	if err != nil {
		s.logger.Sugar().Errorf("failed to load more feed(%s) posts: %s", resolved, err.Error())
		return nil, ErrInternal
	}

	return &dto.LoadMorePostsResponse{
		Posts:   nonNilPosts(posts),
		HasMore: hasMore(offset, POSTS_PER_BATCH, total),
	}, nil
}

func (s *postService) GetDetail(ctx context.Context, slug string, sessionID string, userID *uuid.UUID) (*dto.PostDetailResponse, error) {
	post, err := s.repo.Postgres.Post.FindBySlug(ctx, slug)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrPostNotFound
		}
		s.logger.Sugar().Errorf("failed to find post by slug(%s): %s", slug, err.Error())
		return nil, ErrInternal
	}

	s.countView(ctx, post, sessionID, userID)

	var requesterID *uuid.UUID
	if userID != nil {
		requesterID = userID
	}
	engagement, err := s.repo.Postgres.Engagement.State(ctx, post.Post.ID, requesterID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to read post(%d) engagement state: %s", post.Post.ID, err.Error())
		return nil, ErrInternal
	}

	comments, rootTotal, err := s.repo.Postgres.Comment.FindRootComments(ctx, post.Post.ID, COMMENTS_PER_BATCH, 0)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find post(%d) comments: %s", post.Post.ID, err.Error())
		return nil, ErrInternal
	}
	if comments == nil {
		comments = []*model.FullComment{}
	}

	commentsCount, err := s.repo.Postgres.Comment.CountForPost(ctx, post.Post.ID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to count post(%d) comments: %s", post.Post.ID, err.Error())
		return nil, ErrInternal
	}

	return &dto.PostDetailResponse{
		Post:            *post,
		Engagement:      *engagement,
		Comments:        comments,
		HasMoreComments: hasMore(0, COMMENTS_PER_BATCH, rootTotal),
		CommentsCount:   commentsCount,
	}, nil
}

// countView increments the view counter at most once per session, keyed by
// explicit session state in redis rather than anything ambient. Failures
// here never fail the detail request.
func (s *postService) countView(ctx context.Context, post *model.FullPost, sessionID string, userID *uuid.UUID) {
	if sessionID != "" {
		firstView, err := s.repo.Redis.Default.SetNX(ctx, redisrepo.SessionViewedKey(sessionID, post.Post.ID), 1, viewedKeyTTL)
		if err != nil {
			s.logger.Sugar().Errorf("failed to set viewed flag for post(%d): %s", post.Post.ID, err.Error())
		} else if firstView {
			if err := s.repo.Postgres.Post.IncrViews(ctx, post.Post.ID); err != nil {
				s.logger.Sugar().Errorf("failed to increment views for post(%d): %s", post.Post.ID, err.Error())
			} else {
				post.Post.Views++
			}
		}
	}

	if userID != nil && *userID != post.Post.AuthorID {
		if err := s.repo.Postgres.Post.MarkViewed(ctx, post.Post.ID, *userID); err != nil {
			s.logger.Sugar().Errorf("failed to mark post(%d) viewed by user(%s): %s", post.Post.ID, userID.String(), err.Error())
		}
	}
}

func (s *postService) Search(ctx context.Context, query string, matchCategory bool, matchTag bool, offset int) (*dto.LoadMorePostsResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return &dto.LoadMorePostsResponse{Posts: []*model.FullPost{}, HasMore: false}, nil
	}

	posts, total, err := s.repo.Postgres.Post.Search(ctx, query, matchCategory, matchTag, POSTS_PER_BATCH, offset)
	if err != nil {
		s.logger.Sugar().Errorf("failed to search posts: %s", err.Error())
		return nil, ErrInternal
	}

	return &dto.LoadMorePostsResponse{
		Posts:   nonNilPosts(posts),
		HasMore: hasMore(offset, POSTS_PER_BATCH, total),
	}, nil
}

func (s *postService) GetByCategory(ctx context.Context, categorySlug string, offset int) (*dto.LoadMorePostsResponse, error) {
	category, err := s.repo.Postgres.Taxonomy.FindCategoryBySlug(ctx, categorySlug)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrCategoryNotFound
		}
		s.logger.Sugar().Errorf("failed to find category by slug(%s): %s", categorySlug, err.Error())
		return nil, ErrInternal
	}

	posts, total, err := s.repo.Postgres.Post.FindByCategory(ctx, category.ID, POSTS_PER_BATCH, offset)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find category(%d) posts: %s", category.ID, err.Error())
		return nil, ErrInternal
	}

	return &dto.LoadMorePostsResponse{
		Posts:   nonNilPosts(posts),
		HasMore: hasMore(offset, POSTS_PER_BATCH, total),
	}, nil
}

func (s *postService) GetByTag(ctx context.Context, tagSlug string, offset int) (*dto.LoadMorePostsResponse, error) {
	tag, err := s.repo.Postgres.Taxonomy.FindTagBySlug(ctx, tagSlug)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrTagNotFound
		}
		s.logger.Sugar().Errorf("failed to find tag by slug(%s): %s", tagSlug, err.Error())
		return nil, ErrInternal
	}

	posts, total, err := s.repo.Postgres.Post.FindByTag(ctx, tag.ID, POSTS_PER_BATCH, offset)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find tag(%d) posts: %s", tag.ID, err.Error())
		return nil, ErrInternal
	}

	return &dto.LoadMorePostsResponse{
		Posts:   nonNilPosts(posts),
		HasMore: hasMore(offset, POSTS_PER_BATCH, total),
	}, nil
}

func (s *postService) GetMyPosts(ctx context.Context, authorID uuid.UUID, offset int) (*dto.LoadMorePostsResponse, error) {
	posts, total, err := s.repo.Postgres.Post.FindAuthorPosts(ctx, authorID, true, POSTS_PER_BATCH, offset)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find author(%s) posts: %s", authorID.String(), err.Error())
		return nil, ErrInternal
	}

	return &dto.LoadMorePostsResponse{
		Posts:   nonNilPosts(posts),
		HasMore: hasMore(offset, POSTS_PER_BATCH, total),
	}, nil
}

func (s *postService) GetFavorites(ctx context.Context, userID uuid.UUID, offset int) (*dto.LoadMorePostsResponse, error) {
	posts, total, err := s.repo.Postgres.Post.FindFavoritePosts(ctx, userID, POSTS_PER_BATCH, offset)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find user(%s) favorite posts: %s", userID.String(), err.Error())
		return nil, ErrInternal
	}

	return &dto.LoadMorePostsResponse{
		Posts:   nonNilPosts(posts),
		HasMore: hasMore(offset, POSTS_PER_BATCH, total),
	}, nil
}
