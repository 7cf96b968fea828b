package service

import (
	"errors"
	"strings"

	"github.com/blogicum/internal/db"
	"gorm.io/gorm"
)

var ErrLocationInvalid = errors.New("location name is required")

// LocationService wraps location related database operations.
type LocationService struct {
	db *gorm.DB
}

// NewLocationService creates a LocationService instance.
func NewLocationService(gdb *gorm.DB) *LocationService {
	return &LocationService{db: gdb}
}

// ListPublished returns published locations ordered by name.
func (s *LocationService) ListPublished() ([]db.Location, error) {
	var locations []db.Location
	if err := s.db.Where("is_published = ?", true).
		Order("name asc").
		Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

// Create persists a new location.
func (s *LocationService) Create(name string) (*db.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrLocationInvalid
	}

	location := db.Location{Name: name, IsPublished: true}
	if err := s.db.Create(&location).Error; err != nil {
		return nil, err
	}
	return &location, nil
}

// Delete removes a location and detaches dependent posts without deleting
// them.
func (s *LocationService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&db.Post{}).
			Where("location_id = ?", id).
			Update("location_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&db.Location{}, id).Error
	})
}
