package store

import (
	"github.com/Food-order-lu/CRM-Task-manager/internal/models"

	"github.com/google/uuid"
)

// ListCommerces returns all leads, newest first.
func (s *Store) ListCommerces() ([]models.Commerce, error) {
	var commerces []models.Commerce
	err := s.db.Order("created_at DESC").Find(&commerces).Error
	return commerces, err
}

// GetCommerce returns one lead or gorm.ErrRecordNotFound.
func (s *Store) GetCommerce(id string) (*models.Commerce, error) {
	var commerce models.Commerce
	if err := s.db.Where("id = ?", id).First(&commerce).Error; err != nil {
		return nil, err
	}
	return &commerce, nil
}

// CreateCommerce inserts a lead with a generated id and defaults applied.
func (s *Store) CreateCommerce(fields map[string]any) (*models.Commerce, error) {
	status := models.CommerceProspect
	if raw := stringField(fields, "status"); raw != "" {
		status = models.NormalizeCommerceStatus(raw)
	}
	commerce := models.Commerce{
		ID:       uuid.NewString(),
		Name:     stringField(fields, "name"),
		Category: stringField(fields, "category"),
		Status:   status,
		Phone:    stringField(fields, "phone"),
		Email:    stringField(fields, "email"),
		Address:  stringField(fields, "address"),
		Notes:    stringField(fields, "notes"),
	}
	if err := s.db.Create(&commerce).Error; err != nil {
		return nil, err
	}
	return &commerce, nil
}

// UpdateCommerce applies a partial-field patch and returns the updated row.
func (s *Store) UpdateCommerce(id string, fields map[string]any) (*models.Commerce, error) {
	updates := NormalizeFields(fields)
	if raw, ok := updates["status"].(string); ok {
		updates["status"] = string(models.NormalizeCommerceStatus(raw))
	}
	if err := s.db.Model(&models.Commerce{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetCommerce(id)
}

// DeleteCommerce removes a lead; tasks referencing it keep living with the
// foreign key cleared.
func (s *Store) DeleteCommerce(id string) error {
	if err := s.db.Model(&models.Task{}).Where("commerce_id = ?", id).Update("commerce_id", nil).Error; err != nil {
		return err
	}
	return s.db.Where("id = ?", id).Delete(&models.Commerce{}).Error
}

// FindProjectByName returns the project with the exact name, or nil when none
// exists. Used by the lead→project automation's duplicate check.
func (s *Store) FindProjectByName(name string) (*models.Project, error) {
	var project models.Project
	err := s.db.Where("name = ?", name).First(&project).Error
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &project, nil
}
