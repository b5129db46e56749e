package service

import (
	"context"

	"github.com/blogify/blog-service/internal/dto"
	"github.com/blogify/blog-service/internal/model"
	"github.com/blogify/blog-service/internal/repository"
	"github.com/blogify/blog-service/internal/repository/postgres"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type newsService struct {
	logger        *zap.Logger
	repo          *repository.Repository
	notifications Notification
}

func newNewsService(logger *zap.Logger, repo *repository.Repository, notifications Notification) News {
	return &newsService{
		logger:        logger,
		repo:          repo,
		notifications: notifications,
	}
}

func (s *newsService) List(ctx context.Context) ([]*model.NewsPost, error) {
	items, err := s.repo.Postgres.News.FindPublished(ctx)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find published news: %s", err.Error())
		return nil, ErrInternal
	}
	if items == nil {
		items = []*model.NewsPost{}
	}

	return items, nil
}

func (s *newsService) Create(ctx context.Context, input dto.CreateNewsRequest) (*model.News, error) {
	if !model.IsValidNewsType(input.Type) {
		return nil, ErrInvalidNewsType
	}

	post, err := s.repo.Postgres.Post.FindByID(ctx, input.PostID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrPostNotFound
		}
		s.logger.Sugar().Errorf("failed to find post(%d): %s", input.PostID, err.Error())
		return nil, ErrInternal
	}

	news := model.News{
		PostID:      input.PostID,
		Type:        input.Type,
		IsImportant: input.IsImportant,
		Pinned:      input.Pinned,
	}

	createdNews, err := s.repo.Postgres.News.Create(ctx, news)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return nil, ErrNewsAlreadyExists
		}
		s.logger.Sugar().Errorf("failed to create news for post(%d): %s", input.PostID, err.Error())
		return nil, ErrInternal
	}

	// Marking a published post important fires the fan-out right away.
	s.notifications.DispatchImportantNews(ctx, post)

	return createdNews, nil
}

func (s *newsService) Update(ctx context.Context, postID int64, input dto.UpdateNewsRequest) (*model.News, error) {
	existing, err := s.repo.Postgres.News.FindByPostID(ctx, postID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNewsNotFound
		}
		s.logger.Sugar().Errorf("failed to find news for post(%d): %s", postID, err.Error())
		return nil, ErrInternal
	}

	if input.Type != nil {
		if !model.IsValidNewsType(*input.Type) {
			return nil, ErrInvalidNewsType
		}
		existing.Type = *input.Type
	}
	if input.IsImportant != nil {
		existing.IsImportant = *input.IsImportant
	}
	if input.Pinned != nil {
		existing.Pinned = *input.Pinned
	}

	updatedNews, err := s.repo.Postgres.News.Update(ctx, *existing)
	if err != nil {
		s.logger.Sugar().Errorf("failed to update news for post(%d): %s", postID, err.Error())
		return nil, ErrInternal
	}

	if post, err := s.repo.Postgres.Post.FindByID(ctx, postID); err != nil {
		s.logger.Sugar().Errorf("failed to find post(%d): %s", postID, err.Error())
	} else {
		s.notifications.DispatchImportantNews(ctx, post)
	}

	return updatedNews, nil
}

func (s *newsService) Delete(ctx context.Context, postID int64) error {
	if err := s.repo.Postgres.News.Delete(ctx, postID); err != nil {
		if err == pgx.ErrNoRows {
			return ErrNewsNotFound
		}
		s.logger.Sugar().Errorf("failed to delete news for post(%d): %s", postID, err.Error())
		return ErrInternal
	}

	return nil
}
