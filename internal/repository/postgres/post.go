package postgres

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/blogify/blog-service/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postRepo struct {
	db *pgxpool.Pool
}

func newPostRepo(db *pgxpool.Pool) Post {
	return &postRepo{
		db: db,
	}
}

func scanFullPost(rows pgx.Rows) (*model.FullPost, error) {
	var post model.FullPost
	var categoryName, categorySlug *string
	if err := rows.Scan(
		&post.Post.ID,
		&post.Post.AuthorID,
		&post.Post.Title,
		&post.Post.Slug,
		&post.Post.Content,
		&post.Post.ImageURL,
		&post.Post.CategoryID,
		&post.Post.Status,
		&post.Post.Views,
		&post.Post.CreatedAt,
		&post.Post.UpdatedAt,
		&post.Author.Username,
		&post.Author.DisplayName,
		&post.Author.AvatarURL,
		&categoryName,
		&categorySlug,
	); err != nil {
		return nil, err
	}

	post.Author.ID = post.Post.AuthorID
	if post.Post.CategoryID != nil && categoryName != nil {
		post.Category = &model.Category{
			ID:   *post.Post.CategoryID,
			Name: *categoryName,
			Slug: *categorySlug,
		}
	}

	return &post, nil
}

func (r *postRepo) queryFullPosts(ctx context.Context, builder sq.SelectBuilder) ([]*model.FullPost, error) {
	sqlStr, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*model.FullPost
	for rows.Next() {
		post, err := scanFullPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachTags(ctx, posts); err != nil {
		return nil, err
	}

	return posts, nil
}

func (r *postRepo) attachTags(ctx context.Context, posts []*model.FullPost) error {
	if len(posts) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(posts))
	byID := make(map[int64]*model.FullPost, len(posts))
	for _, post := range posts {
		post.Tags = []string{}
		ids = append(ids, post.Post.ID)
		byID[post.Post.ID] = post
	}

	rows, err := r.db.Query(
		ctx,
		`SELECT pt.post_id, t.name
		FROM post_tags pt
		JOIN tags t ON t.id = pt.tag_id
		WHERE pt.post_id = ANY($1)
		ORDER BY t.name`,
		ids,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var postID int64
		var tag string
		if err := rows.Scan(&postID, &tag); err != nil {
			return err
		}
		if post, exists := byID[postID]; exists {
			post.Tags = append(post.Tags, tag)
		}
	}

	return rows.Err()
}

func (r *postRepo) count(ctx context.Context, builder sq.SelectBuilder) (int64, error) {
	sqlStr, args, err := builder.ToSql()
	if err != nil {
		return 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, sqlStr, args...).Scan(&total); err != nil {
		return 0, err
	}

	return total, nil
}

func (r *postRepo) replaceTags(ctx context.Context, tx pgx.Tx, postID int64, tags []model.Tag) error {
	if _, err := tx.Exec(ctx, "DELETE FROM post_tags WHERE post_id = $1", postID); err != nil {
		return err
	}

	for _, tag := range tags {
		var tagID int64
		if err := tx.QueryRow(
			ctx,
			`INSERT INTO tags(name, slug) VALUES($1, $2)
			ON CONFLICT (slug) DO UPDATE SET name = tags.name
			RETURNING id`,
			tag.Name,
			tag.Slug,
		).Scan(&tagID); err != nil {
			return err
		}

		if _, err := tx.Exec(
			ctx,
			"INSERT INTO post_tags(post_id, tag_id) VALUES($1, $2) ON CONFLICT DO NOTHING",
			postID,
			tagID,
		); err != nil {
			return err
		}
	}

	return nil
}

func (r *postRepo) Create(ctx context.Context, post model.Post, tags []model.Tag) (*model.Post, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := tx.QueryRow(
		ctx,
		`INSERT INTO posts(author_id, title, slug, content, image_url, category_id, status)
		VALUES($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, views, created_at, updated_at`,
		post.AuthorID,
		post.Title,
		post.Slug,
		post.Content,
		post.ImageURL,
		post.CategoryID,
		post.Status,
	).Scan(&post.ID, &post.Views, &post.CreatedAt, &post.UpdatedAt); err != nil {
		return nil, err
	}

	if err := r.replaceTags(ctx, tx, post.ID, tags); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *postRepo) Update(ctx context.Context, post model.Post, tags []model.Tag) (*model.Post, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := tx.QueryRow(
		ctx,
		`UPDATE posts
		SET title = $1, slug = $2, content = $3, image_url = $4, category_id = $5, status = $6, updated_at = now()
		WHERE id = $7
		RETURNING author_id, views, created_at, updated_at`,
		post.Title,
		post.Slug,
		post.Content,
		post.ImageURL,
		post.CategoryID,
		post.Status,
		post.ID,
	).Scan(&post.AuthorID, &post.Views, &post.CreatedAt, &post.UpdatedAt); err != nil {
		return nil, err
	}

	if err := r.replaceTags(ctx, tx, post.ID, tags); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *postRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, "DELETE FROM posts WHERE id = $1", id)
	return err
}

func (r *postRepo) FindByID(ctx context.Context, id int64) (*model.Post, error) {
	var post model.Post
	if err := r.db.QueryRow(
		ctx,
		`SELECT id, author_id, title, slug, content, image_url, category_id, status, views, created_at, updated_at
		FROM posts WHERE id = $1`,
		id,
	).Scan(
		&post.ID,
		&post.AuthorID,
		&post.Title,
		&post.Slug,
		&post.Content,
		&post.ImageURL,
		&post.CategoryID,
		&post.Status,
		&post.Views,
		&post.CreatedAt,
		&post.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *postRepo) FindBySlug(ctx context.Context, slug string) (*model.FullPost, error) {
	builder := psql.Select(feedColumns...).
		From("posts p").
		Join("users u ON u.id = p.author_id").
		LeftJoin("categories c ON c.id = p.category_id").
		Where(sq.Eq{"p.slug": slug})

	posts, err := r.queryFullPosts(ctx, builder)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, pgx.ErrNoRows
	}

	return posts[0], nil
}

func (r *postRepo) FindFeed(ctx context.Context, filter model.FeedFilter, followeeIDs []uuid.UUID, limit int, offset int) ([]*model.FullPost, int64, error) {
	builder := feedQuery(filter, followeeIDs).
		Limit(uint64(limit)).
		Offset(uint64(offset))

	posts, err := r.queryFullPosts(ctx, builder)
	if err != nil {
		return nil, 0, err
	}

	total, err := r.count(ctx, feedCountQuery(filter, followeeIDs))
	if err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

func (r *postRepo) FeedStats(ctx context.Context) (*model.FeedStats, error) {
	var stats model.FeedStats
	if err := r.db.QueryRow(
		ctx,
		`SELECT
		COUNT(p.id),
		COUNT(DISTINCT p.author_id),
		(SELECT COUNT(*) FROM comments c
			JOIN posts cp ON cp.id = c.post_id
			LEFT JOIN news cn ON cn.post_id = cp.id
			WHERE cp.status = 'published' AND cn.post_id IS NULL),
		(SELECT COUNT(*) FROM post_favorites f
			JOIN posts fp ON fp.id = f.post_id
			LEFT JOIN news fn ON fn.post_id = fp.id
			WHERE fp.status = 'published' AND fn.post_id IS NULL),
		COALESCE(SUM(p.views), 0),
		(SELECT COUNT(*) FROM post_likes l
			JOIN posts lp ON lp.id = l.post_id
			LEFT JOIN news ln ON ln.post_id = lp.id
			WHERE lp.status = 'published' AND ln.post_id IS NULL)
		FROM posts p
		LEFT JOIN news n ON n.post_id = p.id
		WHERE p.status = 'published' AND n.post_id IS NULL`,
	).Scan(
		&stats.TotalPosts,
		&stats.TotalAuthors,
		&stats.TotalComments,
		&stats.TotalFavorites,
		&stats.TotalViews,
		&stats.TotalLikes,
	); err != nil {
		return nil, err
	}

	return &stats, nil
}

func (r *postRepo) Search(ctx context.Context, query string, matchCategory bool, matchTag bool, limit int, offset int) ([]*model.FullPost, int64, error) {
	builder := searchQuery(query, matchCategory, matchTag).
		Limit(uint64(limit)).
		Offset(uint64(offset))

	posts, err := r.queryFullPosts(ctx, builder)
	if err != nil {
		return nil, 0, err
	}

	total, err := r.count(ctx, searchCountQuery(query, matchCategory, matchTag))
	if err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

func (r *postRepo) FindByCategory(ctx context.Context, categoryID int64, limit int, offset int) ([]*model.FullPost, int64, error) {
	builder := psql.Select(feedColumns...).
		From("posts p").
		Join("users u ON u.id = p.author_id").
		LeftJoin("categories c ON c.id = p.category_id").
		Where(sq.Eq{"p.status": model.StatusPublished, "p.category_id": categoryID}).
		OrderBy("p.created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	posts, err := r.queryFullPosts(ctx, builder)
	if err != nil {
		return nil, 0, err
	}

	total, err := r.count(ctx, psql.Select("COUNT(*)").
		From("posts p").
		Where(sq.Eq{"p.status": model.StatusPublished, "p.category_id": categoryID}))
	if err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

func (r *postRepo) FindByTag(ctx context.Context, tagID int64, limit int, offset int) ([]*model.FullPost, int64, error) {
	builder := feedBase().
		Join("post_tags pt ON pt.post_id = p.id").
		Where(sq.Eq{"pt.tag_id": tagID}).
		OrderBy("p.created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	posts, err := r.queryFullPosts(ctx, builder)
	if err != nil {
		return nil, 0, err
	}

	total, err := r.count(ctx, psql.Select("COUNT(*)").
		From("posts p").
		Join("post_tags pt ON pt.post_id = p.id").
		LeftJoin("news n ON n.post_id = p.id").
		Where(sq.Eq{"p.status": model.StatusPublished, "pt.tag_id": tagID}).
		Where("n.post_id IS NULL"))
	if err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

func (r *postRepo) FindAuthorPosts(ctx context.Context, authorID uuid.UUID, includeDrafts bool, limit int, offset int) ([]*model.FullPost, int64, error) {
	builder := psql.Select(feedColumns...).
		From("posts p").
		Join("users u ON u.id = p.author_id").
		LeftJoin("categories c ON c.id = p.category_id").
		Where(sq.Eq{"p.author_id": authorID}).
		OrderBy("p.created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	countBuilder := psql.Select("COUNT(*)").
		From("posts p").
		Where(sq.Eq{"p.author_id": authorID})

	if !includeDrafts {
		builder = builder.Where(sq.Eq{"p.status": model.StatusPublished})
		countBuilder = countBuilder.Where(sq.Eq{"p.status": model.StatusPublished})
	}

	posts, err := r.queryFullPosts(ctx, builder)
	if err != nil {
		return nil, 0, err
	}

	total, err := r.count(ctx, countBuilder)
	if err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

func (r *postRepo) FindFavoritePosts(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]*model.FullPost, int64, error) {
	builder := psql.Select(feedColumns...).
		From("posts p").
		Join("post_favorites pf ON pf.post_id = p.id").
		Join("users u ON u.id = p.author_id").
		LeftJoin("categories c ON c.id = p.category_id").
		Where(sq.Eq{"pf.user_id": userID}).
		OrderBy("p.created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	posts, err := r.queryFullPosts(ctx, builder)
	if err != nil {
		return nil, 0, err
	}

	total, err := r.count(ctx, psql.Select("COUNT(*)").
		From("post_favorites pf").
		Where(sq.Eq{"pf.user_id": userID}))
	if err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

// IncrViews relies on the database doing the increment so concurrent
// requests from different sessions cannot lose updates.
func (r *postRepo) IncrViews(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, "UPDATE posts SET views = views + 1 WHERE id = $1", id)
	return err
}

func (r *postRepo) MarkViewed(ctx context.Context, postID int64, userID uuid.UUID) error {
	_, err := r.db.Exec(
		ctx,
		"INSERT INTO post_views(post_id, user_id) VALUES($1, $2) ON CONFLICT DO NOTHING",
		postID,
		userID,
	)
	return err
}
