package service

import (
	"context"
	"testing"

	"github.com/blogify/blog-service/internal/dto"
	"github.com/blogify/blog-service/internal/model"
	"github.com/blogify/blog-service/internal/repository/postgres"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCommentService(pg *postgres.PostgresRepository) Comment {
	return newCommentService(zap.NewNop(), testRepo(pg, newFakeRedis()))
}

func testAuthor() model.UserAuthor {
	return model.UserAuthor{ID: uuid.New(), Username: "commenter"}
}

func TestCommentService_AddEmptyContent(t *testing.T) {
	s := newTestCommentService(&postgres.PostgresRepository{})

	_, err := s.Add(context.Background(), 1, testAuthor(), dto.CreateCommentRequest{Content: "   "})
	assert.ErrorIs(t, err, ErrEmptyCommentContent)
}

func TestCommentService_AddPostNotFound(t *testing.T) {
	pg := &postgres.PostgresRepository{
		Post: &fakePostRepo{
			findByID: func(ctx context.Context, id int64) (*model.Post, error) {
				return nil, pgx.ErrNoRows
			},
		},
	}

	s := newTestCommentService(pg)

	_, err := s.Add(context.Background(), 1, testAuthor(), dto.CreateCommentRequest{Content: "hello"})
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestCommentService_AddParentFromAnotherPost(t *testing.T) {
	parentID := int64(5)
	pg := &postgres.PostgresRepository{
		Post: &fakePostRepo{
			findByID: func(ctx context.Context, id int64) (*model.Post, error) {
				return &model.Post{ID: id}, nil
			},
		},
		Comment: &fakeCommentRepo{
			findByID: func(ctx context.Context, id int64) (*model.Comment, error) {
				return &model.Comment{ID: id, PostID: 99}, nil
			},
		},
	}

	s := newTestCommentService(pg)

	_, err := s.Add(context.Background(), 1, testAuthor(), dto.CreateCommentRequest{
		Content:  "reply",
		ParentID: &parentID,
	})
	assert.ErrorIs(t, err, ErrParentCommentMismatch)
}

func TestCommentService_Add(t *testing.T) {
	author := testAuthor()

	pg := &postgres.PostgresRepository{
		Post: &fakePostRepo{
			findByID: func(ctx context.Context, id int64) (*model.Post, error) {
				return &model.Post{ID: id}, nil
			},
		},
		Comment: &fakeCommentRepo{
			create: func(ctx context.Context, comment model.Comment) (*model.Comment, error) {
				created := comment
				created.ID = 3
				return &created, nil
			},
			countForPost: func(ctx context.Context, postID int64) (int64, error) {
				return 4, nil
			},
		},
	}

	s := newTestCommentService(pg)

	resp, err := s.Add(context.Background(), 1, author, dto.CreateCommentRequest{Content: "  hello there  "})

	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.Comment.Comment.ID)
	assert.Equal(t, "hello there", resp.Comment.Comment.Content)
	assert.Equal(t, author, resp.Comment.Author)
	assert.Equal(t, int64(4), resp.CommentsCount)
}

func TestCommentService_LoadMoreHasMore(t *testing.T) {
	pg := &postgres.PostgresRepository{
		Post: &fakePostRepo{
			findByID: func(ctx context.Context, id int64) (*model.Post, error) {
				return &model.Post{ID: id}, nil
			},
		},
		Comment: &fakeCommentRepo{
			findRootComments: func(ctx context.Context, postID int64, limit int, offset int) ([]*model.FullComment, int64, error) {
				return []*model.FullComment{{}, {}}, 12, nil
			},
		},
	}

	s := newTestCommentService(pg)

	batch, err := s.LoadMore(context.Background(), 1, 10)

	require.NoError(t, err)
	assert.Len(t, batch.Comments, 2)
	assert.False(t, batch.HasMore)
}

func TestCommentService_DeleteNotAuthor(t *testing.T) {
	pg := &postgres.PostgresRepository{
		Comment: &fakeCommentRepo{
			findByID: func(ctx context.Context, id int64) (*model.Comment, error) {
				return &model.Comment{ID: id, AuthorID: uuid.New()}, nil
			},
		},
	}

	s := newTestCommentService(pg)

	err := s.Delete(context.Background(), 1, uuid.New())
	assert.ErrorIs(t, err, ErrNotCommentAuthor)
}

func TestCommentService_Delete(t *testing.T) {
	authorID := uuid.New()

	var deleted bool
	pg := &postgres.PostgresRepository{
		Comment: &fakeCommentRepo{
			findByID: func(ctx context.Context, id int64) (*model.Comment, error) {
				return &model.Comment{ID: id, AuthorID: authorID}, nil
			},
			del: func(ctx context.Context, commentID int64, userID uuid.UUID) error {
				deleted = true
				return nil
			},
		},
	}

	s := newTestCommentService(pg)

	require.NoError(t, s.Delete(context.Background(), 1, authorID))
	assert.True(t, deleted)
}
