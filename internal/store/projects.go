package store

import (
	"math"

	"github.com/Food-order-lu/CRM-Task-manager/internal/models"

	"github.com/google/uuid"
)

// ListProjects returns all projects, newest first.
func (s *Store) ListProjects() ([]models.Project, error) {
	var projects []models.Project
	err := s.db.Order("created_at DESC").Find(&projects).Error
	return projects, err
}

// GetProject returns one project or gorm.ErrRecordNotFound.
func (s *Store) GetProject(id string) (*models.Project, error) {
	var project models.Project
	if err := s.db.Where("id = ?", id).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// CreateProject inserts a project with a generated id and defaults applied.
// Progress starts at 0 regardless of input; it is derived from tasks.
func (s *Store) CreateProject(fields map[string]any) (*models.Project, error) {
	status := models.ProjectInProgress
	if raw := stringField(fields, "status"); raw != "" {
		status = models.NormalizeProjectStatus(raw)
	}
	project := models.Project{
		ID:          uuid.NewString(),
		Name:        stringField(fields, "name"),
		Status:      status,
		Description: stringField(fields, "description"),
	}
	if err := s.db.Create(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// UpdateProject applies a partial-field patch and returns the updated row.
// Progress is stripped from the patch; only RecomputeProjectProgress moves it.
func (s *Store) UpdateProject(id string, fields map[string]any) (*models.Project, error) {
	updates := NormalizeFields(fields)
	delete(updates, "progress")
	if raw, ok := updates["status"].(string); ok {
		updates["status"] = string(models.NormalizeProjectStatus(raw))
	}
	if len(updates) > 0 {
		if err := s.db.Model(&models.Project{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.GetProject(id)
}

// DeleteProject removes a project; tasks referencing it keep living with the
// foreign key cleared.
func (s *Store) DeleteProject(id string) error {
	if err := s.db.Model(&models.Task{}).Where("project_id = ?", id).Update("project_id", nil).Error; err != nil {
		return err
	}
	return s.db.Where("id = ?", id).Delete(&models.Project{}).Error
}

// RecomputeProjectProgress re-derives progress as round(100·done/total) over
// the project's tasks, 0 when the project owns none, and stores it.
func (s *Store) RecomputeProjectProgress(projectID string) (int, error) {
	var total, done int64
	if err := s.db.Model(&models.Task{}).Where("project_id = ?", projectID).Count(&total).Error; err != nil {
		return 0, err
	}
	if err := s.db.Model(&models.Task{}).
		Where("project_id = ? AND status = ?", projectID, models.TaskDone).
		Count(&done).Error; err != nil {
		return 0, err
	}

	progress := 0
	if total > 0 {
		progress = int(math.Round(100 * float64(done) / float64(total)))
	}
	err := s.db.Model(&models.Project{}).Where("id = ?", projectID).Update("progress", progress).Error
	return progress, err
}
