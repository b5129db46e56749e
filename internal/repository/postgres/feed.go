package postgres

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/blogify/blog-service/internal/model"
	"github.com/google/uuid"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var feedColumns = []string{
	"p.id", "p.author_id", "p.title", "p.slug", "p.content", "p.image_url",
	"p.category_id", "p.status", "p.views", "p.created_at", "p.updated_at",
	"u.username", "u.display_name", "u.avatar_url",
	"c.name", "c.slug",
}

// feedBase is the common view for all feed listings: published posts that
// are not news items, with their author and optional category joined in.
func feedBase() sq.SelectBuilder {
	return psql.Select(feedColumns...).
		From("posts p").
		Join("users u ON u.id = p.author_id").
		LeftJoin("categories c ON c.id = p.category_id").
		LeftJoin("news n ON n.post_id = p.id").
		Where(sq.Eq{"p.status": model.StatusPublished}).
		Where("n.post_id IS NULL")
}

func feedQuery(filter model.FeedFilter, followeeIDs []uuid.UUID) sq.SelectBuilder {
	q := feedBase()

	switch filter {
	case model.FilterTrending:
		q = q.Where(sq.Gt{"p.views": 0}).
			OrderBy("p.views DESC", "p.created_at DESC")
	case model.FilterPopular:
		q = q.LeftJoin("post_favorites pf ON pf.post_id = p.id").
			GroupBy("p.id", "u.id", "c.id").
			OrderBy("COUNT(pf.user_id) DESC", "p.created_at DESC")
	case model.FilterFollowing:
		q = q.Where(sq.Eq{"p.author_id": followeeIDs}).
			OrderBy("p.created_at DESC")
	default:
		q = q.OrderBy("p.created_at DESC")
	}

	return q
}

func feedCountQuery(filter model.FeedFilter, followeeIDs []uuid.UUID) sq.SelectBuilder {
	q := psql.Select("COUNT(*)").
		From("posts p").
		LeftJoin("news n ON n.post_id = p.id").
		Where(sq.Eq{"p.status": model.StatusPublished}).
		Where("n.post_id IS NULL")

	switch filter {
	case model.FilterTrending:
		q = q.Where(sq.Gt{"p.views": 0})
	case model.FilterFollowing:
		q = q.Where(sq.Eq{"p.author_id": followeeIDs})
	}

	return q
}

func searchQuery(query string, matchCategory bool, matchTag bool) sq.SelectBuilder {
	pattern := "%" + query + "%"

	match := sq.Or{
		sq.ILike{"p.title": pattern},
		sq.ILike{"p.content": pattern},
	}

	q := feedBase()
	if matchCategory {
		match = append(match, sq.ILike{"c.name": pattern})
	}
	if matchTag {
		q = q.LeftJoin("post_tags spt ON spt.post_id = p.id").
			LeftJoin("tags st ON st.id = spt.tag_id")
		match = append(match, sq.ILike{"st.name": pattern})
	}

	return q.Where(match).
		GroupBy("p.id", "u.id", "c.id").
		OrderBy("p.created_at DESC")
}

func searchCountQuery(query string, matchCategory bool, matchTag bool) sq.SelectBuilder {
	pattern := "%" + query + "%"

	match := sq.Or{
		sq.ILike{"p.title": pattern},
		sq.ILike{"p.content": pattern},
	}

	q := psql.Select("COUNT(DISTINCT p.id)").
		From("posts p").
		LeftJoin("categories c ON c.id = p.category_id").
		LeftJoin("news n ON n.post_id = p.id").
		Where(sq.Eq{"p.status": model.StatusPublished}).
		Where("n.post_id IS NULL")

	if matchCategory {
		match = append(match, sq.ILike{"c.name": pattern})
	}
	if matchTag {
		q = q.LeftJoin("post_tags spt ON spt.post_id = p.id").
			LeftJoin("tags st ON st.id = spt.tag_id")
		match = append(match, sq.ILike{"st.name": pattern})
	}

	return q.Where(match)
}
