package service

import (
	"context"
	"testing"

	"github.com/blogify/blog-service/internal/dto"
	"github.com/blogify/blog-service/internal/model"
	"github.com/blogify/blog-service/internal/repository/postgres"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestNewsService(pg *postgres.PostgresRepository) (News, *fakeNotifier) {
	notifier := &fakeNotifier{}
	return newNewsService(zap.NewNop(), testRepo(pg, newFakeRedis()), notifier), notifier
}

func TestNewsService_CreateInvalidType(t *testing.T) {
	s, _ := newTestNewsService(&postgres.PostgresRepository{})

	_, err := s.Create(context.Background(), dto.CreateNewsRequest{PostID: 1, Type: "gossip"})
	assert.ErrorIs(t, err, ErrInvalidNewsType)
}

func TestNewsService_CreatePostNotFound(t *testing.T) {
	pg := &postgres.PostgresRepository{
		Post: &fakePostRepo{
			findByID: func(ctx context.Context, id int64) (*model.Post, error) {
				return nil, pgx.ErrNoRows
			},
		},
	}

	s, _ := newTestNewsService(pg)

	_, err := s.Create(context.Background(), dto.CreateNewsRequest{PostID: 1, Type: model.NewsTypeUpdate})
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestNewsService_CreateDuplicate(t *testing.T) {
	pg := &postgres.PostgresRepository{
		Post: &fakePostRepo{
			findByID: func(ctx context.Context, id int64) (*model.Post, error) {
				return &model.Post{ID: id}, nil
			},
		},
		News: &fakeNewsRepo{
			create: func(ctx context.Context, news model.News) (*model.News, error) {
				return nil, &pgconn.PgError{Code: "23505"}
			},
		},
	}

	s, _ := newTestNewsService(pg)

	_, err := s.Create(context.Background(), dto.CreateNewsRequest{PostID: 1, Type: model.NewsTypeUpdate})
	assert.ErrorIs(t, err, ErrNewsAlreadyExists)
}

func TestNewsService_Create(t *testing.T) {
	pg := &postgres.PostgresRepository{
		Post: &fakePostRepo{
			findByID: func(ctx context.Context, id int64) (*model.Post, error) {
				return &model.Post{ID: id}, nil
			},
		},
		News: &fakeNewsRepo{
			create: func(ctx context.Context, news model.News) (*model.News, error) {
				return &news, nil
			},
		},
	}

	s, notifier := newTestNewsService(pg)

	created, err := s.Create(context.Background(), dto.CreateNewsRequest{
		PostID:      1,
		Type:        model.NewsTypeEvent,
		IsImportant: true,
		Pinned:      true,
	})

	require.NoError(t, err)
	assert.Equal(t, model.NewsTypeEvent, created.Type)
	assert.True(t, created.IsImportant)
	assert.True(t, created.Pinned)
	assert.False(t, created.NotificationSent)

	// The dispatcher decides whether the fan-out actually fires.
	require.Len(t, notifier.dispatched, 1)
	assert.Equal(t, int64(1), notifier.dispatched[0].ID)
}

func TestNewsService_UpdateNotFound(t *testing.T) {
	pg := &postgres.PostgresRepository{
		News: &fakeNewsRepo{
			findByPostID: func(ctx context.Context, postID int64) (*model.News, error) {
				return nil, pgx.ErrNoRows
			},
		},
	}

	s, _ := newTestNewsService(pg)

	_, err := s.Update(context.Background(), 1, dto.UpdateNewsRequest{})
	assert.ErrorIs(t, err, ErrNewsNotFound)
}

func TestNewsService_UpdateMergesPatch(t *testing.T) {
	pinned := true

	var gotNews model.News
	pg := &postgres.PostgresRepository{
		News: &fakeNewsRepo{
			findByPostID: func(ctx context.Context, postID int64) (*model.News, error) {
				return &model.News{PostID: postID, Type: model.NewsTypeUpdate, IsImportant: true}, nil
			},
			update: func(ctx context.Context, news model.News) (*model.News, error) {
				gotNews = news
				return &news, nil
			},
		},
		Post: &fakePostRepo{
			findByID: func(ctx context.Context, id int64) (*model.Post, error) {
				return &model.Post{ID: id, Status: model.StatusPublished}, nil
			},
		},
	}

	s, notifier := newTestNewsService(pg)

	_, err := s.Update(context.Background(), 1, dto.UpdateNewsRequest{Pinned: &pinned})

	require.NoError(t, err)
	assert.True(t, gotNews.Pinned)
	// Untouched fields keep their stored values.
	assert.Equal(t, model.NewsTypeUpdate, gotNews.Type)
	assert.True(t, gotNews.IsImportant)
	assert.Len(t, notifier.dispatched, 1)
}

func TestNewsService_UpdateInvalidType(t *testing.T) {
	pg := &postgres.PostgresRepository{
		News: &fakeNewsRepo{
			findByPostID: func(ctx context.Context, postID int64) (*model.News, error) {
				return &model.News{PostID: postID, Type: model.NewsTypeUpdate}, nil
			},
		},
	}

	s, _ := newTestNewsService(pg)

	badType := "gossip"
	_, err := s.Update(context.Background(), 1, dto.UpdateNewsRequest{Type: &badType})
	assert.ErrorIs(t, err, ErrInvalidNewsType)
}

func TestNewsService_DeleteNotFound(t *testing.T) {
	pg := &postgres.PostgresRepository{
		News: &fakeNewsRepo{
			del: func(ctx context.Context, postID int64) error {
				return pgx.ErrNoRows
			},
		},
	}

	s, _ := newTestNewsService(pg)

	assert.ErrorIs(t, s.Delete(context.Background(), 1), ErrNewsNotFound)
}
