package service

import (
	"context"

	"github.com/blogify/blog-service/internal/model"
	"github.com/blogify/blog-service/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type engagementService struct {
	logger *zap.Logger
	repo   *repository.Repository
}

func newEngagementService(logger *zap.Logger, repo *repository.Repository) Engagement {
	return &engagementService{
		logger: logger,
		repo:   repo,
	}
}

func (s *engagementService) toggle(
	ctx context.Context,
	postID int64,
	userID uuid.UUID,
	action string,
	do func(ctx context.Context, postID int64, userID uuid.UUID) (*model.EngagementState, error),
) (*model.EngagementState, error) {
	state, err := do(ctx, postID, userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrPostNotFound
		}
		s.logger.Sugar().Errorf("failed to toggle %s on post(%d) for user(%s): %s", action, postID, userID.String(), err.Error())
		return nil, ErrInternal
	}

	return state, nil
}

func (s *engagementService) ToggleLike(ctx context.Context, postID int64, userID uuid.UUID) (*model.EngagementState, error) {
	return s.toggle(ctx, postID, userID, "like", s.repo.Postgres.Engagement.ToggleLike)
}

func (s *engagementService) ToggleDislike(ctx context.Context, postID int64, userID uuid.UUID) (*model.EngagementState, error) {
	return s.toggle(ctx, postID, userID, "dislike", s.repo.Postgres.Engagement.ToggleDislike)
}

func (s *engagementService) ToggleFavorite(ctx context.Context, postID int64, userID uuid.UUID) (*model.EngagementState, error) {
	return s.toggle(ctx, postID, userID, "favorite", s.repo.Postgres.Engagement.ToggleFavorite)
}
