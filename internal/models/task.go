package models

import (
	"strings"
	"time"
)

// Task represents a task in the system. Tasks form a tree via ParentID and
// may belong to a project, a commerce, both, or neither. Assignee is a
// denormalized comma-separated list of person names.
type Task struct {
	ID            string     `json:"id" gorm:"primaryKey"`
	Name          string     `json:"name" gorm:"not null"`
	Status        TaskStatus `json:"status" gorm:"not null;default:'todo'"`
	Category      string     `json:"category" gorm:"default:'🔧 Opérations'"`
	Assignee      string     `json:"assignee" gorm:"default:'Unassigned'"`
	DueDate       *string    `json:"dueDate" gorm:"column:due_date"`
	TimeSlot      *string    `json:"timeSlot" gorm:"column:time_slot"`
	IsInPerson    bool       `json:"isInPerson" gorm:"column:is_in_person;default:false"`
	ProjectID     *string    `json:"projectId" gorm:"column:project_id"`
	CommerceID    *string    `json:"commerceId" gorm:"column:commerce_id"`
	ParentID      *string    `json:"parentId" gorm:"column:parent_id"`
	GoogleEventID *string    `json:"googleEventId" gorm:"column:google_event_id"`
	Notes         *string    `json:"notes"`
	CreatedAt     time.Time  `json:"created_at" gorm:"column:created_at;autoCreateTime"`
}

// TableName specifies the table name for Task Model
func (Task) TableName() string {
	return "tasks"
}

// Assignees splits the comma-separated assignee field into trimmed names,
// dropping empties and the "Unassigned" placeholder.
func (t Task) Assignees() []string {
	var out []string
	for _, part := range strings.Split(t.Assignee, ",") {
		name := strings.TrimSpace(part)
		if name == "" || strings.EqualFold(name, "Unassigned") {
			continue
		}
		out = append(out, name)
	}
	return out
}

// TaskCalendarEvent maps a task to the remote calendar event created for one
// assignee. A task with several connected assignees owns one row per person.
type TaskCalendarEvent struct {
	TaskID   string `json:"taskId" gorm:"column:task_id;primaryKey"`
	Assignee string `json:"assignee" gorm:"primaryKey"`
	EventID  string `json:"eventId" gorm:"column:event_id;not null"`
}

// TableName specifies the table name for TaskCalendarEvent Model
func (TaskCalendarEvent) TableName() string {
	return "task_calendar_events"
}
