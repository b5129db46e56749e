package postgres

import (
	"context"

	"github.com/blogify/blog-service/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type engagementRepo struct {
	db *pgxpool.Pool
}

func newEngagementRepo(db *pgxpool.Pool) Engagement {
	return &engagementRepo{
		db: db,
	}
}

func (r *engagementRepo) postExists(ctx context.Context, tx pgx.Tx, postID int64) error {
	var id int64
	return tx.QueryRow(ctx, "SELECT id FROM posts WHERE id = $1", postID).Scan(&id)
}

// toggleReaction removes the user from the primary set if present, otherwise
// adds them and clears the opposite set in the same transaction. A user can
// never end up in both sets.
func (r *engagementRepo) toggleReaction(ctx context.Context, postID int64, userID uuid.UUID, primary string, opposite string) (*model.EngagementState, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	state, err := r.toggleReactionTx(ctx, tx, postID, userID, primary, opposite)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return state, nil
}

func (r *engagementRepo) toggleReactionTx(ctx context.Context, tx pgx.Tx, postID int64, userID uuid.UUID, primary string, opposite string) (*model.EngagementState, error) {
	if err := r.postExists(ctx, tx, postID); err != nil {
		return nil, err
	}

	ct, err := tx.Exec(ctx, "DELETE FROM "+primary+" WHERE post_id = $1 AND user_id = $2", postID, userID)
	if err != nil {
		return nil, err
	}

	if ct.RowsAffected() == 0 {
		if _, err := tx.Exec(
			ctx,
			"INSERT INTO "+primary+"(post_id, user_id) VALUES($1, $2) ON CONFLICT DO NOTHING",
			postID,
			userID,
		); err != nil {
			return nil, err
		}
		if _, err := tx.Exec(ctx, "DELETE FROM "+opposite+" WHERE post_id = $1 AND user_id = $2", postID, userID); err != nil {
			return nil, err
		}
	}

	return r.stateTx(ctx, tx, postID, &userID)
}

func (r *engagementRepo) ToggleLike(ctx context.Context, postID int64, userID uuid.UUID) (*model.EngagementState, error) {
	return r.toggleReaction(ctx, postID, userID, "post_likes", "post_dislikes")
}

func (r *engagementRepo) ToggleDislike(ctx context.Context, postID int64, userID uuid.UUID) (*model.EngagementState, error) {
	return r.toggleReaction(ctx, postID, userID, "post_dislikes", "post_likes")
}

func (r *engagementRepo) ToggleFavorite(ctx context.Context, postID int64, userID uuid.UUID) (*model.EngagementState, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	state, err := r.toggleFavoriteTx(ctx, tx, postID, userID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return state, nil
}

func (r *engagementRepo) toggleFavoriteTx(ctx context.Context, tx pgx.Tx, postID int64, userID uuid.UUID) (*model.EngagementState, error) {
	if err := r.postExists(ctx, tx, postID); err != nil {
		return nil, err
	}

	ct, err := tx.Exec(ctx, "DELETE FROM post_favorites WHERE post_id = $1 AND user_id = $2", postID, userID)
	if err != nil {
		return nil, err
	}
	if ct.RowsAffected() == 0 {
		if _, err := tx.Exec(
			ctx,
			"INSERT INTO post_favorites(post_id, user_id) VALUES($1, $2) ON CONFLICT DO NOTHING",
			postID,
			userID,
		); err != nil {
			return nil, err
		}
	}

	return r.stateTx(ctx, tx, postID, &userID)
}

type queryRower interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (r *engagementRepo) stateTx(ctx context.Context, q queryRower, postID int64, userID *uuid.UUID) (*model.EngagementState, error) {
	var state model.EngagementState

	if err := q.QueryRow(
		ctx,
		`SELECT
		(SELECT COUNT(*) FROM post_likes WHERE post_id = $1),
		(SELECT COUNT(*) FROM post_dislikes WHERE post_id = $1),
		(SELECT COUNT(*) FROM post_favorites WHERE post_id = $1)`,
		postID,
	).Scan(&state.LikesCount, &state.DislikesCount, &state.FavoritesCount); err != nil {
		return nil, err
	}

	if userID == nil {
		return &state, nil
	}

	if err := q.QueryRow(
		ctx,
		`SELECT
		EXISTS(SELECT 1 FROM post_likes WHERE post_id = $1 AND user_id = $2),
		EXISTS(SELECT 1 FROM post_dislikes WHERE post_id = $1 AND user_id = $2),
		EXISTS(SELECT 1 FROM post_favorites WHERE post_id = $1 AND user_id = $2)`,
		postID,
		*userID,
	).Scan(&state.HasLiked, &state.HasDisliked, &state.IsFavorite); err != nil {
		return nil, err
	}

	return &state, nil
}

func (r *engagementRepo) State(ctx context.Context, postID int64, userID *uuid.UUID) (*model.EngagementState, error) {
	return r.stateTx(ctx, r.db, postID, userID)
}
