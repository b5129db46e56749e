package service

import (
	"context"
	"testing"

	"github.com/blogify/blog-service/internal/model"
	"github.com/blogify/blog-service/internal/repository/postgres"
	"github.com/blogify/blog-service/internal/repository/redisrepo"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestUserService_GetProfileNotFound(t *testing.T) {
	pg := &postgres.PostgresRepository{
		User: &fakeUserRepo{
			findByUsername: func(ctx context.Context, username string) (*model.User, error) {
				return nil, pgx.ErrNoRows
			},
		},
	}

	s := newUserService(zap.NewNop(), testRepo(pg, newFakeRedis()))

	_, err := s.GetProfile(context.Background(), "ghost", 0)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_GetProfileExcludesDrafts(t *testing.T) {
	userID := uuid.New()

	var gotIncludeDrafts bool
	pg := &postgres.PostgresRepository{
		User: &fakeUserRepo{
			findByUsername: func(ctx context.Context, username string) (*model.User, error) {
				return &model.User{ID: userID, Username: username}, nil
			},
		},
		Post: &fakePostRepo{
			findAuthorPosts: func(ctx context.Context, authorID uuid.UUID, includeDrafts bool, limit int, offset int) ([]*model.FullPost, int64, error) {
				gotIncludeDrafts = includeDrafts
				return nil, 0, nil
			},
		},
	}

	s := newUserService(zap.NewNop(), testRepo(pg, newFakeRedis()))

	profile, err := s.GetProfile(context.Background(), "writer", 0)

	require.NoError(t, err)
	assert.False(t, gotIncludeDrafts)
	assert.Equal(t, userID, profile.User.ID)
	assert.Empty(t, profile.Posts)
}

func TestUserService_ToggleThemeAuthenticated(t *testing.T) {
	userID := uuid.New()
	pg := &postgres.PostgresRepository{
		User: &fakeUserRepo{
			toggleTheme: func(ctx context.Context, id uuid.UUID) (string, error) {
				return model.ThemeLight, nil
			},
		},
	}

	s := newUserService(zap.NewNop(), testRepo(pg, newFakeRedis()))

	theme, err := s.ToggleTheme(context.Background(), &userID, "session-1")

	require.NoError(t, err)
	assert.Equal(t, model.ThemeLight, theme)
}

func TestUserService_ToggleThemeAuthenticatedClearsSessionTheme(t *testing.T) {
	userID := uuid.New()
	rdb := newFakeRedis()
	rdb.data[redisrepo.SessionThemeKey("session-1")] = model.ThemeLight

	pg := &postgres.PostgresRepository{
		User: &fakeUserRepo{
			toggleTheme: func(ctx context.Context, id uuid.UUID) (string, error) {
				return model.ThemeDark, nil
			},
		},
	}

	s := newUserService(zap.NewNop(), testRepo(pg, rdb))

	theme, err := s.ToggleTheme(context.Background(), &userID, "session-1")

	require.NoError(t, err)
	assert.Equal(t, model.ThemeDark, theme)

	// The stale anonymous override is gone.
	_, ok := rdb.data[redisrepo.SessionThemeKey("session-1")]
	assert.False(t, ok)
}

func TestUserService_ToggleThemeAnonymous(t *testing.T) {
	rdb := newFakeRedis()
	s := newUserService(zap.NewNop(), testRepo(&postgres.PostgresRepository{}, rdb))

	// Anonymous sessions start dark, so the first toggle goes light.
	theme, err := s.ToggleTheme(context.Background(), nil, "session-1")
	require.NoError(t, err)
	assert.Equal(t, model.ThemeLight, theme)

	theme, err = s.ToggleTheme(context.Background(), nil, "session-1")
	require.NoError(t, err)
	assert.Equal(t, model.ThemeDark, theme)

	// A different session keeps its own state.
	theme, err = s.ToggleTheme(context.Background(), nil, "session-2")
	require.NoError(t, err)
	assert.Equal(t, model.ThemeLight, theme)
}

func TestUserService_ToggleSubscription(t *testing.T) {
	pg := &postgres.PostgresRepository{
		User: &fakeUserRepo{
			toggleSubscription: func(ctx context.Context, id uuid.UUID) (bool, error) {
				return false, nil
			},
		},
	}

	s := newUserService(zap.NewNop(), testRepo(pg, newFakeRedis()))

	subscribed, err := s.ToggleSubscription(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.False(t, subscribed)
}
