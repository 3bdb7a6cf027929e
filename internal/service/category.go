package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/savorly/recipebook-backend/internal/models"
)

// CategoryService maintains the category directory.
type CategoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryService instance.
func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

// ListCategories returns all categories ordered by name.
func (s *CategoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.WithContext(ctx).Order("name, id").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// GetCategory retrieves a category by ID.
func (s *CategoryService) GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := s.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

// CreateCategory stores a category with a slug derived from its name.
func (s *CategoryService) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	if err := s.validateName(ctx, name, uuid.Nil); err != nil {
		return nil, err
	}
	category := models.Category{
		Name: name,
		Slug: Slugify(name),
	}
	if err := s.db.WithContext(ctx).Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// UpdateCategory renames a category, rederiving its slug.
func (s *CategoryService) UpdateCategory(ctx context.Context, id uuid.UUID, name string) (*models.Category, error) {
	category, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validateName(ctx, name, id); err != nil {
		return nil, err
	}
	updates := map[string]interface{}{
		"name": name,
		"slug": Slugify(name),
	}
	if err := s.db.WithContext(ctx).Model(category).Updates(updates).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes a category and its recipe links.
func (s *CategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	category, err := s.GetCategory(ctx, id)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM category_recipe WHERE category_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(category).Error
	})
}

// validateName rejects empty names and slugs already taken by another
// category.
func (s *CategoryService) validateName(ctx context.Context, name string, self uuid.UUID) error {
	ve := NewValidationError()
	if name == "" {
		ve.Add("name", "The category name is required.")
		return ve
	}
	if len(name) > 100 {
		ve.Add("name", "The category name must not exceed 100 characters.")
		return ve
	}
	var count int64
	q := s.db.WithContext(ctx).Model(&models.Category{}).Where("slug = ?", Slugify(name))
	if self != uuid.Nil {
		q = q.Where("id <> ?", self)
	}
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		ve.Add("name", "The category name has already been taken.")
		return ve
	}
	return nil
}

// Slugify derives a URL-safe slug from a category name: lowercase, runs
// of non-alphanumerics collapsed to single hyphens.
func Slugify(name string) string {
	var b strings.Builder
	hyphen := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			hyphen = false
		default:
			if !hyphen && b.Len() > 0 {
				b.WriteByte('-')
				hyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
