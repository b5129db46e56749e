package postgres

import (
	"context"

	"github.com/blogify/blog-service/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type commentRepo struct {
	db *pgxpool.Pool
}

func newCommentRepo(db *pgxpool.Pool) Comment {
	return &commentRepo{
		db: db,
	}
}

func (r *commentRepo) Create(ctx context.Context, comment model.Comment) (*model.Comment, error) {
	if err := r.db.QueryRow(
		ctx,
		`INSERT INTO comments(post_id, parent_id, author_id, content)
		VALUES($1, $2, $3, $4)
		RETURNING id, created_at`,
		comment.PostID,
		comment.ParentID,
		comment.AuthorID,
		comment.Content,
	).Scan(&comment.ID, &comment.CreatedAt); err != nil {
		return nil, err
	}

	return &comment, nil
}

func (r *commentRepo) FindByID(ctx context.Context, id int64) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.QueryRow(
		ctx,
		"SELECT id, parent_id, post_id, author_id, content, created_at FROM comments WHERE id = $1",
		id,
	).Scan(
		&comment.ID,
		&comment.ParentID,
		&comment.PostID,
		&comment.AuthorID,
		&comment.Content,
		&comment.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &comment, nil
}

func (r *commentRepo) scanFullComments(rows pgx.Rows) ([]*model.FullComment, error) {
	var comments []*model.FullComment
	for rows.Next() {
		var comment model.FullComment
		if err := rows.Scan(
			&comment.Comment.ID,
			&comment.Comment.ParentID,
			&comment.Comment.PostID,
			&comment.Comment.AuthorID,
			&comment.Comment.Content,
			&comment.Comment.CreatedAt,
			&comment.Author.Username,
			&comment.Author.DisplayName,
			&comment.Author.AvatarURL,
		); err != nil {
			return nil, err
		}
		comment.Author.ID = comment.Comment.AuthorID

		comments = append(comments, &comment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return comments, nil
}

func (r *commentRepo) FindRootComments(ctx context.Context, postID int64, limit int, offset int) ([]*model.FullComment, int64, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT
		c.id, c.parent_id, c.post_id, c.author_id, c.content, c.created_at, u.username, u.display_name, u.avatar_url
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.post_id = $1 AND c.parent_id IS NULL
		ORDER BY c.created_at DESC
		LIMIT $2
		OFFSET $3`,
		postID,
		limit,
		offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	comments, err := r.scanFullComments(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRow(
		ctx,
		"SELECT COUNT(*) FROM comments WHERE post_id = $1 AND parent_id IS NULL",
		postID,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	return comments, total, nil
}

func (r *commentRepo) FindReplies(ctx context.Context, parentID int64) ([]*model.FullComment, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT
		c.id, c.parent_id, c.post_id, c.author_id, c.content, c.created_at, u.username, u.display_name, u.avatar_url
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.parent_id = $1
		ORDER BY c.created_at ASC`,
		parentID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanFullComments(rows)
}

func (r *commentRepo) CountForPost(ctx context.Context, postID int64) (int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM comments WHERE post_id = $1", postID).Scan(&total); err != nil {
		return 0, err
	}

	return total, nil
}

func (r *commentRepo) Delete(ctx context.Context, commentID int64, authorID uuid.UUID) error {
	_, err := r.db.Exec(ctx, "DELETE FROM comments WHERE id = $1 AND author_id = $2", commentID, authorID)
	return err
}
