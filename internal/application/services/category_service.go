package services

import (
	"context"
	"fmt"

	"github.com/taskboard/core/internal/domain/entities"
	"github.com/taskboard/core/internal/infrastructure/logger"
	"github.com/taskboard/core/internal/ports"
)

// CategoryService handles category-related operations
type CategoryService struct {
	store  ports.DocumentStore
	logger *logger.Logger
}

// NewCategoryService creates a new category service
func NewCategoryService(store ports.DocumentStore, logger *logger.Logger) *CategoryService {
	return &CategoryService{
		store:  store,
		logger: logger,
	}
}

// ListCategories returns the full category sequence in storage order.
func (s *CategoryService) ListCategories(ctx context.Context) ([]entities.Category, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}

	return doc.Categories, nil
}

// CreateCategory sanitizes and appends a new category.
func (s *CategoryService) CreateCategory(ctx context.Context, req ports.CreateCategoryRequest) (*entities.Category, error) {
	if req.Name == "" {
		return nil, entities.ErrMissingFields
	}

	color := req.Color
	if color == "" {
		color = entities.DefaultColor
	}

	category := entities.Category{
		ID:        entities.NewID(),
		Name:      entities.Sanitize(req.Name),
		Color:     color,
		CreatedAt: entities.Now(),
	}

	err := s.store.Update(ctx, func(doc *entities.Document) error {
		doc.Categories = append(doc.Categories, category)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("persist category: %w", err)
	}

	s.logger.Info("Category created", "category_id", category.ID, "name", category.Name)

	return &category, nil
}

// UpdateCategory applies the fields present in req to an existing category.
func (s *CategoryService) UpdateCategory(ctx context.Context, id int64, req ports.UpdateCategoryRequest) (*entities.Category, error) {
	var updated entities.Category
	err := s.store.Update(ctx, func(doc *entities.Document) error {
		i := doc.FindCategory(id)
		if i < 0 {
			return entities.ErrCategoryNotFound
		}

		category := &doc.Categories[i]
		if req.Name != nil {
			category.Name = entities.Sanitize(*req.Name)
		}
		if req.Color != nil {
			category.Color = *req.Color
		}
		category.UpdatedAt = entities.Now()

		updated = *category
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Category updated", "category_id", updated.ID)

	return &updated, nil
}

// DeleteCategory removes a category unless a task still references it.
func (s *CategoryService) DeleteCategory(ctx context.Context, id int64) (*entities.Category, error) {
	var removed entities.Category
	err := s.store.Update(ctx, func(doc *entities.Document) error {
		i := doc.FindCategory(id)
		if i < 0 {
			return entities.ErrCategoryNotFound
		}
		if doc.CategoryInUse(id) {
			return entities.ErrCategoryInUse
		}

		removed = doc.Categories[i]
		doc.Categories = append(doc.Categories[:i], doc.Categories[i+1:]...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Category deleted", "category_id", removed.ID, "name", removed.Name)

	return &removed, nil
}
