package service

import (
	"errors"
	"strings"

	"github.com/blogicum/internal/db"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryInvalid  = errors.New("category is missing required fields")
)

// CategoryService wraps category related database operations.
type CategoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a CategoryService instance.
func NewCategoryService(gdb *gorm.DB) *CategoryService {
	return &CategoryService{db: gdb}
}

// GetPublishedBySlug resolves a category for public listing. Unpublished
// categories are reported as missing.
func (s *CategoryService) GetPublishedBySlug(slug string) (*db.Category, error) {
	var category db.Category
	err := s.db.Where("slug = ? AND is_published = ?", strings.TrimSpace(slug), true).
		First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

// ListPublished returns published categories ordered by title, for navigation
// and the post form selector.
func (s *CategoryService) ListPublished() ([]db.Category, error) {
	var categories []db.Category
	if err := s.db.Where("is_published = ?", true).
		Order("title asc").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Create persists a new category.
func (s *CategoryService) Create(title, description, slug string) (*db.Category, error) {
	title = strings.TrimSpace(title)
	slug = strings.TrimSpace(slug)
	if title == "" || slug == "" {
		return nil, ErrCategoryInvalid
	}

	category := db.Category{
		Title:       title,
		Description: strings.TrimSpace(description),
		Slug:        slug,
		IsPublished: true,
	}
	if err := s.db.Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// Delete removes a category and detaches dependent posts. The posts survive
// with a nil category, which makes them invisible to the public until they
// are re-categorized.
func (s *CategoryService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&db.Post{}).
			Where("category_id = ?", id).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&db.Category{}, id).Error
	})
}
