package postgres

import (
	"context"

	"github.com/blogify/blog-service/internal/model"
	"github.com/blogify/blog-service/pkg/slugify"
	"github.com/jackc/pgx/v5/pgxpool"
)

type taxonomyRepo struct {
	db *pgxpool.Pool
}

func newTaxonomyRepo(db *pgxpool.Pool) Taxonomy {
	return &taxonomyRepo{
		db: db,
	}
}

func (r *taxonomyRepo) CreateCategory(ctx context.Context, name string) (*model.Category, error) {
	category := model.Category{
		Name: name,
		Slug: slugify.Make(name),
	}
	if err := r.db.QueryRow(
		ctx,
		"INSERT INTO categories(name, slug) VALUES($1, $2) RETURNING id",
		category.Name,
		category.Slug,
	).Scan(&category.ID); err != nil {
		return nil, err
	}

	return &category, nil
}

func (r *taxonomyRepo) FindCategories(ctx context.Context) ([]*model.Category, error) {
	rows, err := r.db.Query(ctx, "SELECT id, name, slug FROM categories ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*model.Category
	for rows.Next() {
		var category model.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.Slug); err != nil {
			return nil, err
		}
		categories = append(categories, &category)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return categories, nil
}

func (r *taxonomyRepo) FindCategoryByID(ctx context.Context, id int64) (*model.Category, error) {
	var category model.Category
	if err := r.db.QueryRow(
		ctx,
		"SELECT id, name, slug FROM categories WHERE id = $1",
		id,
	).Scan(&category.ID, &category.Name, &category.Slug); err != nil {
		return nil, err
	}

	return &category, nil
}

func (r *taxonomyRepo) FindCategoryBySlug(ctx context.Context, slug string) (*model.Category, error) {
	var category model.Category
	if err := r.db.QueryRow(
		ctx,
		"SELECT id, name, slug FROM categories WHERE slug = $1",
		slug,
	).Scan(&category.ID, &category.Name, &category.Slug); err != nil {
		return nil, err
	}

	return &category, nil
}

func (r *taxonomyRepo) FindTags(ctx context.Context) ([]*model.Tag, error) {
	rows, err := r.db.Query(ctx, "SELECT id, name, slug FROM tags ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []*model.Tag
	for rows.Next() {
		var tag model.Tag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.Slug); err != nil {
			return nil, err
		}
		tags = append(tags, &tag)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tags, nil
}

func (r *taxonomyRepo) FindTagBySlug(ctx context.Context, slug string) (*model.Tag, error) {
	var tag model.Tag
	if err := r.db.QueryRow(
		ctx,
		"SELECT id, name, slug FROM tags WHERE slug = $1",
		slug,
	).Scan(&tag.ID, &tag.Name, &tag.Slug); err != nil {
		return nil, err
	}

	return &tag, nil
}
