package store

import (
	"errors"

	"github.com/Food-order-lu/CRM-Task-manager/internal/models"

	"github.com/google/uuid"
)

// Reference validation failures, mapped to 400 by the handlers.
var (
	ErrParentNotFound   = errors.New("parent task not found")
	ErrParentCycle      = errors.New("parent task would create a cycle")
	ErrProjectNotFound  = errors.New("project not found")
	ErrCommerceNotFound = errors.New("commerce not found")
)

// TaskWithCommerce is a task row joined with the owning commerce's display
// name, as served by the task list endpoint.
type TaskWithCommerce struct {
	models.Task
	CommerceName *string `json:"commerceName" gorm:"column:commerce_name"`
}

// ListTasks returns every task ordered by due date ascending (nulls last)
// then creation time descending, left-joined with the commerce name.
func (s *Store) ListTasks() ([]TaskWithCommerce, error) {
	var tasks []TaskWithCommerce
	err := s.db.Table("tasks").
		Select("tasks.*, commerces.name AS commerce_name").
		Joins("LEFT JOIN commerces ON commerces.id = tasks.commerce_id").
		Order("CASE WHEN tasks.due_date IS NULL THEN 1 ELSE 0 END, tasks.due_date ASC, tasks.created_at DESC").
		Find(&tasks).Error
	return tasks, err
}

// GetTask returns one task or gorm.ErrRecordNotFound.
func (s *Store) GetTask(id string) (*models.Task, error) {
	var task models.Task
	if err := s.db.Where("id = ?", id).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListTasksByProject returns a project's tasks ordered by creation time.
func (s *Store) ListTasksByProject(projectID string) ([]models.Task, error) {
	var tasks []models.Task
	err := s.db.Where("project_id = ?", projectID).Order("created_at ASC").Find(&tasks).Error
	return tasks, err
}

// ListTasksByCommerce returns a lead's tasks ordered by creation time.
func (s *Store) ListTasksByCommerce(commerceID string) ([]models.Task, error) {
	var tasks []models.Task
	err := s.db.Where("commerce_id = ?", commerceID).Order("created_at ASC").Find(&tasks).Error
	return tasks, err
}

// CreateTask inserts a task with a generated id and defaults applied. Field
// names may be camelCase or snake_case; both land on the same columns.
func (s *Store) CreateTask(fields map[string]any) (*models.Task, error) {
	norm := NormalizeFields(fields)

	status := models.TaskTodo
	if raw := stringField(norm, "status"); raw != "" {
		status = models.NormalizeTaskStatus(raw)
	}
	category := stringField(norm, "category")
	if category == "" {
		category = "🔧 Opérations"
	}
	assignee := stringField(norm, "assignee")
	if assignee == "" {
		assignee = "Unassigned"
	}

	task := models.Task{
		ID:            uuid.NewString(),
		Name:          stringField(norm, "name"),
		Status:        status,
		Category:      category,
		Assignee:      assignee,
		DueDate:       stringPtrField(norm, "due_date"),
		TimeSlot:      stringPtrField(norm, "time_slot"),
		IsInPerson:    coerceBool(norm["is_in_person"]),
		ProjectID:     stringPtrField(norm, "project_id"),
		CommerceID:    stringPtrField(norm, "commerce_id"),
		ParentID:      stringPtrField(norm, "parent_id"),
		GoogleEventID: stringPtrField(norm, "google_event_id"),
		Notes:         stringPtrField(norm, "notes"),
	}

	if err := s.validateTaskRefs(task.ParentID, task.ProjectID, task.CommerceID); err != nil {
		return nil, err
	}
	if err := s.db.Create(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask applies a partial-field patch and returns the updated row.
func (s *Store) UpdateTask(id string, fields map[string]any) (*models.Task, error) {
	if _, err := s.GetTask(id); err != nil {
		return nil, err
	}

	updates := NormalizeFields(fields)
	if raw, ok := updates["status"].(string); ok {
		updates["status"] = string(models.NormalizeTaskStatus(raw))
	}

	parentID := stringPtrField(updates, "parent_id")
	err := s.validateTaskRefs(
		parentID,
		stringPtrField(updates, "project_id"),
		stringPtrField(updates, "commerce_id"),
	)
	if err != nil {
		return nil, err
	}
	if parentID != nil {
		if err := s.checkParentCycle(id, *parentID); err != nil {
			return nil, err
		}
	}

	if len(updates) > 0 {
		if err := s.db.Model(&models.Task{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.GetTask(id)
}

// ListTaskTree returns the task plus every descendant reachable through
// parent_id, breadth-first. The seen set keeps the walk terminating even if
// the stored rows contain a parent cycle.
func (s *Store) ListTaskTree(id string) ([]models.Task, error) {
	root, err := s.GetTask(id)
	if err != nil {
		return nil, err
	}
	tree := []models.Task{*root}
	seen := map[string]bool{id: true}
	frontier := []string{id}
	for len(frontier) > 0 {
		var children []models.Task
		if err := s.db.Where("parent_id IN ?", frontier).Find(&children).Error; err != nil {
			return nil, err
		}
		frontier = frontier[:0]
		for _, child := range children {
			if seen[child.ID] {
				continue
			}
			seen[child.ID] = true
			tree = append(tree, child)
			frontier = append(frontier, child.ID)
		}
	}
	return tree, nil
}

// DeleteTask removes a task and cascades to its whole subtree, including the
// calendar-event mappings of every removed task.
func (s *Store) DeleteTask(id string) error {
	tree, err := s.ListTaskTree(id)
	if err != nil {
		return err
	}
	ids := make([]string, 0, len(tree))
	for _, task := range tree {
		ids = append(ids, task.ID)
	}
	if err := s.db.Where("task_id IN ?", ids).Delete(&models.TaskCalendarEvent{}).Error; err != nil {
		return err
	}
	return s.db.Where("id IN ?", ids).Delete(&models.Task{}).Error
}

// SetGoogleEventID stores (or clears, with nil) the task's legacy single
// remote-event correlation id.
func (s *Store) SetGoogleEventID(id string, eventID *string) error {
	return s.db.Model(&models.Task{}).Where("id = ?", id).Update("google_event_id", eventID).Error
}

// ListTaskEvents returns the per-assignee remote-event mapping of one task.
func (s *Store) ListTaskEvents(taskID string) (map[string]string, error) {
	var rows []models.TaskCalendarEvent
	if err := s.db.Where("task_id = ?", taskID).Find(&rows).Error; err != nil {
		return nil, err
	}
	events := make(map[string]string, len(rows))
	for _, row := range rows {
		events[row.Assignee] = row.EventID
	}
	return events, nil
}

// SaveTaskEvent records the remote event created for one (task, assignee).
func (s *Store) SaveTaskEvent(taskID, assignee, eventID string) error {
	row := models.TaskCalendarEvent{TaskID: taskID, Assignee: assignee, EventID: eventID}
	return s.db.Save(&row).Error
}

// DeleteTaskEvent drops the mapping after the remote event is gone.
func (s *Store) DeleteTaskEvent(taskID, assignee string) error {
	return s.db.Where("task_id = ? AND assignee = ?", taskID, assignee).
		Delete(&models.TaskCalendarEvent{}).Error
}

// checkParentCycle walks the ancestor chain starting at the proposed parent;
// reaching the task itself means the reparenting would close a cycle.
func (s *Store) checkParentCycle(id, parentID string) error {
	current := parentID
	for {
		if current == id {
			return ErrParentCycle
		}
		var parent models.Task
		err := s.db.Select("parent_id").Where("id = ?", current).First(&parent).Error
		if err != nil {
			if isNotFound(err) {
				return nil
			}
			return err
		}
		if parent.ParentID == nil {
			return nil
		}
		current = *parent.ParentID
	}
}

func (s *Store) validateTaskRefs(parentID, projectID, commerceID *string) error {
	if parentID != nil {
		if err := s.db.Where("id = ?", *parentID).First(&models.Task{}).Error; err != nil {
			if isNotFound(err) {
				return ErrParentNotFound
			}
			return err
		}
	}
	if projectID != nil {
		if err := s.db.Where("id = ?", *projectID).First(&models.Project{}).Error; err != nil {
			if isNotFound(err) {
				return ErrProjectNotFound
			}
			return err
		}
	}
	if commerceID != nil {
		if err := s.db.Where("id = ?", *commerceID).First(&models.Commerce{}).Error; err != nil {
			if isNotFound(err) {
				return ErrCommerceNotFound
			}
			return err
		}
	}
	return nil
}
