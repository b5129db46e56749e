package postgres

import (
	"context"

	"github.com/blogify/blog-service/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type userRepo struct {
	db *pgxpool.Pool
}

func newUserRepo(db *pgxpool.Pool) User {
	return &userRepo{
		db: db,
	}
}

// Upsert keeps the local profile row in sync with the identity carried by
// the access token. Theme and subscription flags are owned locally and are
// never overwritten by a token refresh.
func (r *userRepo) Upsert(ctx context.Context, user model.User) (*model.User, error) {
	if err := r.db.QueryRow(
		ctx,
		`INSERT INTO users(id, username, email, display_name, avatar_url, theme, subscribed_to_important_news)
		VALUES($1, $2, $3, $4, $5, $6, false)
		ON CONFLICT (id) DO UPDATE
		SET username = EXCLUDED.username, email = EXCLUDED.email, display_name = EXCLUDED.display_name, avatar_url = EXCLUDED.avatar_url
		RETURNING theme, subscribed_to_important_news, created_at`,
		user.ID,
		user.Username,
		user.Email,
		user.DisplayName,
		user.AvatarURL,
		model.ThemeDark,
	).Scan(&user.Theme, &user.SubscribedToImportantNews, &user.CreatedAt); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepo) scanUser(row interface{ Scan(...any) error }) (*model.User, error) {
	var user model.User
	if err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.DisplayName,
		&user.AvatarURL,
		&user.Theme,
		&user.SubscribedToImportantNews,
		&user.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &user, nil
}

const userColumns = "id, username, email, display_name, avatar_url, theme, subscribed_to_important_news, created_at"

func (r *userRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return r.scanUser(r.db.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id))
}

func (r *userRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.scanUser(r.db.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE username = $1", username))
}

func (r *userRepo) FindSubscribers(ctx context.Context) ([]*model.User, error) {
	rows, err := r.db.Query(ctx, "SELECT "+userColumns+" FROM users WHERE subscribed_to_important_news")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		user, err := r.scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

func (r *userRepo) ToggleSubscription(ctx context.Context, id uuid.UUID) (bool, error) {
	var subscribed bool
	if err := r.db.QueryRow(
		ctx,
		"UPDATE users SET subscribed_to_important_news = NOT subscribed_to_important_news WHERE id = $1 RETURNING subscribed_to_important_news",
		id,
	).Scan(&subscribed); err != nil {
		return false, err
	}

	return subscribed, nil
}

func (r *userRepo) ToggleTheme(ctx context.Context, id uuid.UUID) (string, error) {
	var theme string
	if err := r.db.QueryRow(
		ctx,
		"UPDATE users SET theme = CASE WHEN theme = 'dark' THEN 'light' ELSE 'dark' END WHERE id = $1 RETURNING theme",
		id,
	).Scan(&theme); err != nil {
		return "", err
	}

	return theme, nil
}

func (r *userRepo) FindFolloweeIDs(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, "SELECT followee_id FROM user_follows WHERE follower_id = $1", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []uuid.UUID{}
	for rows.Next() {
		var followeeID uuid.UUID
		if err := rows.Scan(&followeeID); err != nil {
			return nil, err
		}
		ids = append(ids, followeeID)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}
