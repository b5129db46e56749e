package postgres

import (
	"context"

	"github.com/blogify/blog-service/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type newsRepo struct {
	db *pgxpool.Pool
}

func newNewsRepo(db *pgxpool.Pool) News {
	return &newsRepo{
		db: db,
	}
}

// unpinOthers keeps the "at most one pinned among published" invariant.
// It runs inside the same transaction as the write that pinned keepPostID.
func (r *newsRepo) unpinOthers(ctx context.Context, tx pgx.Tx, keepPostID int64) error {
	_, err := tx.Exec(ctx, "UPDATE news SET pinned = false WHERE pinned AND post_id <> $1", keepPostID)
	return err
}

func (r *newsRepo) postIsPublished(ctx context.Context, tx pgx.Tx, postID int64) (bool, error) {
	var status string
	if err := tx.QueryRow(ctx, "SELECT status FROM posts WHERE id = $1", postID).Scan(&status); err != nil {
		return false, err
	}
	return status == model.StatusPublished, nil
}

func (r *newsRepo) Create(ctx context.Context, news model.News) (*model.News, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	created, err := r.createTx(ctx, tx, news)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}

func (r *newsRepo) createTx(ctx context.Context, tx pgx.Tx, news model.News) (*model.News, error) {
	if _, err := tx.Exec(
		ctx,
		`INSERT INTO news(post_id, news_type, is_important, pinned, notification_sent)
		VALUES($1, $2, $3, $4, false)`,
		news.PostID,
		news.Type,
		news.IsImportant,
		news.Pinned,
	); err != nil {
		return nil, err
	}

	if news.Pinned {
		published, err := r.postIsPublished(ctx, tx, news.PostID)
		if err != nil {
			return nil, err
		}
		if published {
			if err := r.unpinOthers(ctx, tx, news.PostID); err != nil {
				return nil, err
			}
		}
	}

	return &news, nil
}

func (r *newsRepo) Update(ctx context.Context, news model.News) (*model.News, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	updated, err := r.updateTx(ctx, tx, news)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return updated, nil
}

func (r *newsRepo) updateTx(ctx context.Context, tx pgx.Tx, news model.News) (*model.News, error) {
	if err := tx.QueryRow(
		ctx,
		`UPDATE news
		SET news_type = $1, is_important = $2, pinned = $3
		WHERE post_id = $4
		RETURNING notification_sent`,
		news.Type,
		news.IsImportant,
		news.Pinned,
		news.PostID,
	).Scan(&news.NotificationSent); err != nil {
		return nil, err
	}

	if news.Pinned {
		published, err := r.postIsPublished(ctx, tx, news.PostID)
		if err != nil {
			return nil, err
		}
		if published {
			if err := r.unpinOthers(ctx, tx, news.PostID); err != nil {
				return nil, err
			}
		}
	}

	return &news, nil
}

func (r *newsRepo) FindByPostID(ctx context.Context, postID int64) (*model.News, error) {
	var news model.News
	if err := r.db.QueryRow(
		ctx,
		"SELECT post_id, news_type, is_important, pinned, notification_sent FROM news WHERE post_id = $1",
		postID,
	).Scan(
		&news.PostID,
		&news.Type,
		&news.IsImportant,
		&news.Pinned,
		&news.NotificationSent,
	); err != nil {
		return nil, err
	}

	return &news, nil
}

func (r *newsRepo) FindPublished(ctx context.Context) ([]*model.NewsPost, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT
		n.post_id, n.news_type, n.is_important, n.pinned, n.notification_sent,
		p.id, p.author_id, p.title, p.slug, p.content, p.image_url, p.category_id, p.status, p.views, p.created_at, p.updated_at,
		u.username, u.display_name, u.avatar_url
		FROM news n
		JOIN posts p ON p.id = n.post_id
		JOIN users u ON u.id = p.author_id
		WHERE p.status = $1
		ORDER BY n.pinned DESC, p.created_at DESC`,
		model.StatusPublished,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*model.NewsPost
	for rows.Next() {
		var item model.NewsPost
		if err := rows.Scan(
			&item.News.PostID,
			&item.News.Type,
			&item.News.IsImportant,
			&item.News.Pinned,
			&item.News.NotificationSent,
			&item.Post.Post.ID,
			&item.Post.Post.AuthorID,
			&item.Post.Post.Title,
			&item.Post.Post.Slug,
			&item.Post.Post.Content,
			&item.Post.Post.ImageURL,
			&item.Post.Post.CategoryID,
			&item.Post.Post.Status,
			&item.Post.Post.Views,
			&item.Post.Post.CreatedAt,
			&item.Post.Post.UpdatedAt,
			&item.Post.Author.Username,
			&item.Post.Author.DisplayName,
			&item.Post.Author.AvatarURL,
		); err != nil {
			return nil, err
		}
		item.Post.Author.ID = item.Post.Post.AuthorID
		item.Post.Tags = []string{}

		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// Delete removes the news row and its underlying post; comments and
// junction rows go with the post via ON DELETE CASCADE.
func (r *newsRepo) Delete(ctx context.Context, postID int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	ct, err := tx.Exec(ctx, "DELETE FROM news WHERE post_id = $1", postID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	if _, err := tx.Exec(ctx, "DELETE FROM posts WHERE id = $1", postID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// EnforceSinglePinned unpins every other news row in one conditional
// statement: nothing happens unless keepPostID itself is pinned.
func (r *newsRepo) EnforceSinglePinned(ctx context.Context, keepPostID int64) error {
	return enforceSinglePinned(ctx, r.db, keepPostID)
}

func enforceSinglePinned(ctx context.Context, db execer, keepPostID int64) error {
	_, err := db.Exec(
		ctx,
		`UPDATE news SET pinned = false
		WHERE pinned AND post_id <> $1
		AND EXISTS (SELECT 1 FROM news WHERE post_id = $1 AND pinned)`,
		keepPostID,
	)
	return err
}

func (r *newsRepo) MarkNotificationSent(ctx context.Context, postID int64) error {
	_, err := r.db.Exec(ctx, "UPDATE news SET notification_sent = true WHERE post_id = $1", postID)
	return err
}
