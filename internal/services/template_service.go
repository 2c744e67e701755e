package services

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/vanskyhawk/kanban/internal/dto"
	"github.com/vanskyhawk/kanban/internal/models"
	"gorm.io/gorm"
)

// Templates are reusable card blueprints shared across all boards.
type TemplateService struct {
	db *gorm.DB
}

func NewTemplateService(db *gorm.DB) *TemplateService {
	return &TemplateService{db: db}
}

// List returns all templates sorted by name, with tag IDs decoded.
func (s *TemplateService) List() ([]dto.TemplateView, error) {
	var templates []models.Template
	if err := s.db.Order("name asc").Find(&templates).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch templates: %w", err)
	}

	views := make([]dto.TemplateView, 0, len(templates))
	for _, t := range templates {
		views = append(views, templateView(&t))
	}
	return views, nil
}

// Create stores a card blueprint. Tag IDs are kept as a JSON list and
// resolved against the palette at apply time, so deleted tags degrade
// gracefully.
func (s *TemplateService) Create(req *dto.CreateTemplateRequest) (*dto.TemplateView, error) {
	priority := models.Priority(req.Priority)
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !models.ValidPriority(priority) {
		return nil, fmt.Errorf("invalid priority: %s", req.Priority)
	}

	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}
	encoded, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tags: %w", err)
	}

	tmpl := models.Template{
		ID:       uuid.NewString(),
		Name:     req.Name,
		Title:    req.Title,
		Notes:    req.Notes,
		TagIDs:   encoded,
		Priority: priority,
	}
	if err := s.db.Create(&tmpl).Error; err != nil {
		return nil, fmt.Errorf("failed to create template: %w", err)
	}

	view := templateView(&tmpl)
	return &view, nil
}

func templateView(t *models.Template) dto.TemplateView {
	var tags []string
	if len(t.TagIDs) > 0 {
		_ = json.Unmarshal(t.TagIDs, &tags)
	}
	if tags == nil {
		tags = []string{}
	}
	return dto.TemplateView{
		ID:        t.ID,
		Name:      t.Name,
		Title:     t.Title,
		Notes:     t.Notes,
		Tags:      tags,
		Priority:  t.Priority,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
