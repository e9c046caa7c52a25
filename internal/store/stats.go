package store

import "github.com/Food-order-lu/CRM-Task-manager/internal/models"

// CountLeads counts every commerce in the pipeline.
func (s *Store) CountLeads() (int64, error) {
	var n int64
	err := s.db.Model(&models.Commerce{}).Count(&n).Error
	return n, err
}

// CountActiveProjects counts projects that are not archived.
func (s *Store) CountActiveProjects() (int64, error) {
	var n int64
	err := s.db.Model(&models.Project{}).
		Where("status <> ?", models.ProjectArchived).
		Count(&n).Error
	return n, err
}

// CountLooseTasks counts tasks attached to neither a project nor a commerce
// and not yet done.
func (s *Store) CountLooseTasks() (int64, error) {
	var n int64
	err := s.db.Model(&models.Task{}).
		Where("project_id IS NULL AND commerce_id IS NULL AND status <> ?", models.TaskDone).
		Count(&n).Error
	return n, err
}
