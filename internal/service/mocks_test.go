package service

import (
	"context"
	"time"

	"github.com/blogify/blog-service/internal/model"
	"github.com/blogify/blog-service/internal/repository"
	"github.com/blogify/blog-service/internal/repository/postgres"
	"github.com/blogify/blog-service/internal/repository/redisrepo"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Fakes embed the repository interfaces and override only the methods a
// test exercises; calling anything else panics, which is the point.

type fakePostRepo struct {
	postgres.Post
	create            func(ctx context.Context, post model.Post, tags []model.Tag) (*model.Post, error)
	update            func(ctx context.Context, post model.Post, tags []model.Tag) (*model.Post, error)
	findByID          func(ctx context.Context, id int64) (*model.Post, error)
	findBySlug        func(ctx context.Context, slug string) (*model.FullPost, error)
	findFeed          func(ctx context.Context, filter model.FeedFilter, followeeIDs []uuid.UUID, limit int, offset int) ([]*model.FullPost, int64, error)
	feedStats         func(ctx context.Context) (*model.FeedStats, error)
	search            func(ctx context.Context, query string, matchCategory bool, matchTag bool, limit int, offset int) ([]*model.FullPost, int64, error)
	findAuthorPosts   func(ctx context.Context, authorID uuid.UUID, includeDrafts bool, limit int, offset int) ([]*model.FullPost, int64, error)
	incrViews         func(ctx context.Context, id int64) error
	markViewed        func(ctx context.Context, postID int64, userID uuid.UUID) error
}

func (f *fakePostRepo) Create(ctx context.Context, post model.Post, tags []model.Tag) (*model.Post, error) {
	return f.create(ctx, post, tags)
}

func (f *fakePostRepo) Update(ctx context.Context, post model.Post, tags []model.Tag) (*model.Post, error) {
	return f.update(ctx, post, tags)
}

func (f *fakePostRepo) FindByID(ctx context.Context, id int64) (*model.Post, error) {
	return f.findByID(ctx, id)
}

func (f *fakePostRepo) FindBySlug(ctx context.Context, slug string) (*model.FullPost, error) {
	return f.findBySlug(ctx, slug)
}

func (f *fakePostRepo) FindFeed(ctx context.Context, filter model.FeedFilter, followeeIDs []uuid.UUID, limit int, offset int) ([]*model.FullPost, int64, error) {
	return f.findFeed(ctx, filter, followeeIDs, limit, offset)
}

func (f *fakePostRepo) FeedStats(ctx context.Context) (*model.FeedStats, error) {
	return f.feedStats(ctx)
}

func (f *fakePostRepo) Search(ctx context.Context, query string, matchCategory bool, matchTag bool, limit int, offset int) ([]*model.FullPost, int64, error) {
	return f.search(ctx, query, matchCategory, matchTag, limit, offset)
}

func (f *fakePostRepo) FindAuthorPosts(ctx context.Context, authorID uuid.UUID, includeDrafts bool, limit int, offset int) ([]*model.FullPost, int64, error) {
	return f.findAuthorPosts(ctx, authorID, includeDrafts, limit, offset)
}

func (f *fakePostRepo) IncrViews(ctx context.Context, id int64) error {
	return f.incrViews(ctx, id)
}

func (f *fakePostRepo) MarkViewed(ctx context.Context, postID int64, userID uuid.UUID) error {
	return f.markViewed(ctx, postID, userID)
}

type fakeCommentRepo struct {
	postgres.Comment
	create           func(ctx context.Context, comment model.Comment) (*model.Comment, error)
	findByID         func(ctx context.Context, id int64) (*model.Comment, error)
	findRootComments func(ctx context.Context, postID int64, limit int, offset int) ([]*model.FullComment, int64, error)
	countForPost     func(ctx context.Context, postID int64) (int64, error)
	del              func(ctx context.Context, commentID int64, authorID uuid.UUID) error
}

func (f *fakeCommentRepo) Create(ctx context.Context, comment model.Comment) (*model.Comment, error) {
	return f.create(ctx, comment)
}

func (f *fakeCommentRepo) FindByID(ctx context.Context, id int64) (*model.Comment, error) {
	return f.findByID(ctx, id)
}

func (f *fakeCommentRepo) FindRootComments(ctx context.Context, postID int64, limit int, offset int) ([]*model.FullComment, int64, error) {
	return f.findRootComments(ctx, postID, limit, offset)
}

func (f *fakeCommentRepo) CountForPost(ctx context.Context, postID int64) (int64, error) {
	return f.countForPost(ctx, postID)
}

func (f *fakeCommentRepo) Delete(ctx context.Context, commentID int64, authorID uuid.UUID) error {
	return f.del(ctx, commentID, authorID)
}

type fakeEngagementRepo struct {
	postgres.Engagement
	toggleLike func(ctx context.Context, postID int64, userID uuid.UUID) (*model.EngagementState, error)
	state      func(ctx context.Context, postID int64, userID *uuid.UUID) (*model.EngagementState, error)
}

func (f *fakeEngagementRepo) ToggleLike(ctx context.Context, postID int64, userID uuid.UUID) (*model.EngagementState, error) {
	return f.toggleLike(ctx, postID, userID)
}

func (f *fakeEngagementRepo) State(ctx context.Context, postID int64, userID *uuid.UUID) (*model.EngagementState, error) {
	return f.state(ctx, postID, userID)
}

type fakeNewsRepo struct {
	postgres.News
	create               func(ctx context.Context, news model.News) (*model.News, error)
	update               func(ctx context.Context, news model.News) (*model.News, error)
	findByPostID         func(ctx context.Context, postID int64) (*model.News, error)
	del                  func(ctx context.Context, postID int64) error
	enforceSinglePinned  func(ctx context.Context, keepPostID int64) error
	markNotificationSent func(ctx context.Context, postID int64) error
}

func (f *fakeNewsRepo) Create(ctx context.Context, news model.News) (*model.News, error) {
	return f.create(ctx, news)
}

func (f *fakeNewsRepo) Update(ctx context.Context, news model.News) (*model.News, error) {
	return f.update(ctx, news)
}

func (f *fakeNewsRepo) FindByPostID(ctx context.Context, postID int64) (*model.News, error) {
	return f.findByPostID(ctx, postID)
}

func (f *fakeNewsRepo) Delete(ctx context.Context, postID int64) error {
	return f.del(ctx, postID)
}

func (f *fakeNewsRepo) EnforceSinglePinned(ctx context.Context, keepPostID int64) error {
	return f.enforceSinglePinned(ctx, keepPostID)
}

func (f *fakeNewsRepo) MarkNotificationSent(ctx context.Context, postID int64) error {
	return f.markNotificationSent(ctx, postID)
}

type fakeTaxonomyRepo struct {
	postgres.Taxonomy
	findCategoryByID func(ctx context.Context, id int64) (*model.Category, error)
}

func (f *fakeTaxonomyRepo) FindCategoryByID(ctx context.Context, id int64) (*model.Category, error) {
	return f.findCategoryByID(ctx, id)
}

type fakeUserRepo struct {
	postgres.User
	findByUsername     func(ctx context.Context, username string) (*model.User, error)
	findSubscribers    func(ctx context.Context) ([]*model.User, error)
	toggleTheme        func(ctx context.Context, id uuid.UUID) (string, error)
	toggleSubscription func(ctx context.Context, id uuid.UUID) (bool, error)
	findFolloweeIDs    func(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error)
}

func (f *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return f.findByUsername(ctx, username)
}

func (f *fakeUserRepo) FindSubscribers(ctx context.Context) ([]*model.User, error) {
	return f.findSubscribers(ctx)
}

func (f *fakeUserRepo) ToggleTheme(ctx context.Context, id uuid.UUID) (string, error) {
	return f.toggleTheme(ctx, id)
}

func (f *fakeUserRepo) ToggleSubscription(ctx context.Context, id uuid.UUID) (bool, error) {
	return f.toggleSubscription(ctx, id)
}

func (f *fakeUserRepo) FindFolloweeIDs(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	return f.findFolloweeIDs(ctx, id)
}

// fakeRedis is an in-memory stand-in for the session state store.
type fakeRedis struct {
	data map[string]string
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: make(map[string]string)}
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	f.data[key] = toString(value)
	return nil
}

func (f *fakeRedis) SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error) {
	if _, ok := f.data[key]; ok {
		return false, nil
	}
	f.data[key] = toString(value)
	return true, nil
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	value, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(value, nil)
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	var deleted int64
	for _, key := range keys {
		if _, ok := f.data[key]; ok {
			delete(f.data, key)
			deleted++
		}
	}
	return redis.NewIntResult(deleted, nil)
}

func toString(value interface{}) string {
	if s, ok := value.(string); ok {
		return s
	}
	return "1"
}

type sentMail struct {
	to      string
	subject string
	body    string
}

type fakeMailer struct {
	sent    []sentMail
	failFor map[string]error
}

func (f *fakeMailer) Send(to string, subject string, htmlBody string) error {
	if err, ok := f.failFor[to]; ok {
		return err
	}
	f.sent = append(f.sent, sentMail{to: to, subject: subject, body: htmlBody})
	return nil
}

type fakeNotifier struct {
	dispatched []*model.Post
}

func (f *fakeNotifier) DispatchImportantNews(ctx context.Context, post *model.Post) {
	f.dispatched = append(f.dispatched, post)
}

func testRepo(pg *postgres.PostgresRepository, rdb redisrepo.Default) *repository.Repository {
	return &repository.Repository{
		Postgres: pg,
		Redis:    &redisrepo.RedisRepository{Default: rdb},
	}
}
