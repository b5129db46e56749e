package service

import (
	"context"
	"strings"

	"github.com/blogify/blog-service/internal/dto"
	"github.com/blogify/blog-service/internal/model"
	"github.com/blogify/blog-service/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type commentService struct {
	logger *zap.Logger
	repo   *repository.Repository
}

func newCommentService(logger *zap.Logger, repo *repository.Repository) Comment {
	return &commentService{
		logger: logger,
		repo:   repo,
	}
}

func (s *commentService) Add(ctx context.Context, postID int64, author model.UserAuthor, input dto.CreateCommentRequest) (*dto.AddCommentResponse, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, ErrEmptyCommentContent
	}

	if _, err := s.repo.Postgres.Post.FindByID(ctx, postID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrPostNotFound
		}
		s.logger.Sugar().Errorf("failed to find post(%d): %s", postID, err.Error())
		return nil, ErrInternal
	}

	if input.ParentID != nil {
		parent, err := s.repo.Postgres.Comment.FindByID(ctx, *input.ParentID)
		if err != nil {
			if err == pgx.ErrNoRows {
				return nil, ErrCommentNotFound
			}
			s.logger.Sugar().Errorf("failed to find parent comment(%d): %s", *input.ParentID, err.Error())
			return nil, ErrInternal
		}
		if parent.PostID != postID {
			return nil, ErrParentCommentMismatch
		}
	}

	comment := model.Comment{
		PostID:   postID,
		ParentID: input.ParentID,
		AuthorID: author.ID,
		Content:  content,
	}

	createdComment, err := s.repo.Postgres.Comment.Create(ctx, comment)
	if err != nil {
		s.logger.Sugar().Errorf("failed to create comment on post(%d): %s", postID, err.Error())
		return nil, ErrInternal
	}

	commentsCount, err := s.repo.Postgres.Comment.CountForPost(ctx, postID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to count post(%d) comments: %s", postID, err.Error())
		return nil, ErrInternal
	}

	return &dto.AddCommentResponse{
		Comment: model.FullComment{
			Comment: *createdComment,
			Author:  author,
		},
		CommentsCount: commentsCount,
	}, nil
}

func (s *commentService) LoadMore(ctx context.Context, postID int64, offset int) (*dto.LoadMoreCommentsResponse, error) {
	if _, err := s.repo.Postgres.Post.FindByID(ctx, postID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrPostNotFound
		}
		s.logger.Sugar().Errorf("failed to find post(%d): %s", postID, err.Error())
		return nil, ErrInternal
	}

	comments, total, err := s.repo.Postgres.Comment.FindRootComments(ctx, postID, COMMENTS_PER_BATCH, offset)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find post(%d) comments: %s", postID, err.Error())
		return nil, ErrInternal
	}
	if comments == nil {
		comments = []*model.FullComment{}
	}

	return &dto.LoadMoreCommentsResponse{
		Comments: comments,
		HasMore:  hasMore(offset, COMMENTS_PER_BATCH, total),
	}, nil
}

func (s *commentService) GetReplies(ctx context.Context, commentID int64) ([]*model.FullComment, error) {
	if _, err := s.repo.Postgres.Comment.FindByID(ctx, commentID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrCommentNotFound
		}
		s.logger.Sugar().Errorf("failed to find comment(%d): %s", commentID, err.Error())
		return nil, ErrInternal
	}

	replies, err := s.repo.Postgres.Comment.FindReplies(ctx, commentID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find comment(%d) replies: %s", commentID, err.Error())
		return nil, ErrInternal
	}
	if replies == nil {
		replies = []*model.FullComment{}
	}

	return replies, nil
}

func (s *commentService) Delete(ctx context.Context, commentID int64, authorID uuid.UUID) error {
	comment, err := s.repo.Postgres.Comment.FindByID(ctx, commentID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return ErrCommentNotFound
		}
		s.logger.Sugar().Errorf("failed to find comment(%d): %s", commentID, err.Error())
		return ErrInternal
	}

	if comment.AuthorID != authorID {
		return ErrNotCommentAuthor
	}

	if err := s.repo.Postgres.Comment.Delete(ctx, commentID, authorID); err != nil {
		s.logger.Sugar().Errorf("failed to delete comment(%d): %s", commentID, err.Error())
		return ErrInternal
	}

	return nil
}
