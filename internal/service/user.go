package service

import (
	"context"
	"time"

	"github.com/blogify/blog-service/internal/dto"
	"github.com/blogify/blog-service/internal/model"
	"github.com/blogify/blog-service/internal/repository"
	"github.com/blogify/blog-service/internal/repository/redisrepo"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const sessionThemeTTL = time.Hour * 24 * 30

type userService struct {
	logger *zap.Logger
	repo   *repository.Repository
}

func newUserService(logger *zap.Logger, repo *repository.Repository) User {
	return &userService{
		logger: logger,
		repo:   repo,
	}
}

func (s *userService) Ensure(ctx context.Context, user model.User) (*model.User, error) {
	ensuredUser, err := s.repo.Postgres.User.Upsert(ctx, user)
	if err != nil {
		s.logger.Sugar().Errorf("failed to upsert user(%s): %s", user.ID.String(), err.Error())
		return nil, ErrInternal
	}

	return ensuredUser, nil
}

func (s *userService) GetProfile(ctx context.Context, username string, offset int) (*dto.ProfileResponse, error) {
	user, err := s.repo.Postgres.User.FindByUsername(ctx, username)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrUserNotFound
		}
		s.logger.Sugar().Errorf("failed to find user(%s): %s", username, err.Error())
		return nil, ErrInternal
	}

	posts, total, err := s.repo.Postgres.Post.FindAuthorPosts(ctx, user.ID, false, POSTS_PER_BATCH, offset)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find user(%s) posts: %s", username, err.Error())
		return nil, ErrInternal
	}
	if posts == nil {
		posts = []*model.FullPost{}
	}

	return &dto.ProfileResponse{
		User: model.UserAuthor{
			ID:          user.ID,
			Username:    user.Username,
			DisplayName: user.DisplayName,
			AvatarURL:   user.AvatarURL,
		},
		Posts:   posts,
		HasMore: hasMore(offset, POSTS_PER_BATCH, total),
	}, nil
}

func (s *userService) ToggleSubscription(ctx context.Context, userID uuid.UUID) (bool, error) {
	subscribed, err := s.repo.Postgres.User.ToggleSubscription(ctx, userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return false, ErrUserNotFound
		}
		s.logger.Sugar().Errorf("failed to toggle user(%s) subscription: %s", userID.String(), err.Error())
		return false, ErrInternal
	}

	return subscribed, nil
}

// ToggleTheme flips the stored theme for authenticated users and a
// session-scoped theme for anonymous ones.
func (s *userService) ToggleTheme(ctx context.Context, userID *uuid.UUID, sessionID string) (string, error) {
	if userID != nil {
		theme, err := s.repo.Postgres.User.ToggleTheme(ctx, *userID)
		if err != nil {
			if err == pgx.ErrNoRows {
				return "", ErrUserNotFound
			}
			s.logger.Sugar().Errorf("failed to toggle user(%s) theme: %s", userID.String(), err.Error())
			return "", ErrInternal
		}
		if sessionID != "" {
			// The account theme wins from here on; drop the anonymous override.
			if err := s.repo.Redis.Default.Del(ctx, redisrepo.SessionThemeKey(sessionID)).Err(); err != nil {
				s.logger.Sugar().Errorf("failed to clear session(%s) theme: %s", sessionID, err.Error())
			}
		}
		return theme, nil
	}

	currentTheme, err := s.repo.Redis.Default.Get(ctx, redisrepo.SessionThemeKey(sessionID)).Result()
	if err != nil && err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get session(%s) theme: %s", sessionID, err.Error())
		return "", ErrInternal
	}
	if err == redis.Nil || currentTheme == "" {
		currentTheme = model.ThemeDark
	}

	newTheme := model.ThemeLight
	if currentTheme == model.ThemeLight {
		newTheme = model.ThemeDark
	}

	if err := s.repo.Redis.Default.Set(ctx, redisrepo.SessionThemeKey(sessionID), newTheme, sessionThemeTTL); err != nil {
		s.logger.Sugar().Errorf("failed to set session(%s) theme: %s", sessionID, err.Error())
		return "", ErrInternal
	}

	return newTheme, nil
}
