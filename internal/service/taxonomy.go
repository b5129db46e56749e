package service

import (
	"context"
	"strings"

	"github.com/blogify/blog-service/internal/model"
	"github.com/blogify/blog-service/internal/repository"
	"github.com/blogify/blog-service/internal/repository/postgres"
	"go.uber.org/zap"
)

type taxonomyService struct {
	logger *zap.Logger
	repo   *repository.Repository
}

func newTaxonomyService(logger *zap.Logger, repo *repository.Repository) Taxonomy {
	return &taxonomyService{
		logger: logger,
		repo:   repo,
	}
}

func (s *taxonomyService) CreateCategory(ctx context.Context, name string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrCategoryNameRequired
	}

	category, err := s.repo.Postgres.Taxonomy.CreateCategory(ctx, name)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return nil, ErrCategoryAlreadyExists
		}
		s.logger.Sugar().Errorf("failed to create category(%s): %s", name, err.Error())
		return nil, ErrInternal
	}

	return category, nil
}

func (s *taxonomyService) GetCategories(ctx context.Context) ([]*model.Category, error) {
	categories, err := s.repo.Postgres.Taxonomy.FindCategories(ctx)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find categories: %s", err.Error())
		return nil, ErrInternal
	}
	if categories == nil {
		categories = []*model.Category{}
	}

	return categories, nil
}

func (s *taxonomyService) GetTags(ctx context.Context) ([]*model.Tag, error) {
	tags, err := s.repo.Postgres.Taxonomy.FindTags(ctx)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find tags: %s", err.Error())
		return nil, ErrInternal
	}
	if tags == nil {
		tags = []*model.Tag{}
	}

	return tags, nil
}
