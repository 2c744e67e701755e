package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/vanskyhawk/kanban/internal/models"
	"gorm.io/gorm"
)

var ErrTagExists = errors.New("tag already exists")

// Tags are a single global palette shared by all boards.
type TagService struct {
	db *gorm.DB
}

func NewTagService(db *gorm.DB) *TagService {
	return &TagService{db: db}
}

// List returns all tags sorted by name.
func (s *TagService) List() ([]models.Tag, error) {
	var tags []models.Tag
	if err := s.db.Order("name asc").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch tags: %w", err)
	}
	return tags, nil
}

// Create adds a tag. Names are unique case-insensitively.
func (s *TagService) Create(name, color string) (*models.Tag, error) {
	name = strings.TrimSpace(name)

	var existing models.Tag
	if err := s.db.Where("LOWER(name) = LOWER(?)", name).First(&existing).Error; err == nil {
		return nil, ErrTagExists
	}

	tag := models.Tag{
		ID:    uuid.NewString(),
		Name:  name,
		Color: color,
	}
	if err := s.db.Create(&tag).Error; err != nil {
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}
	return &tag, nil
}
