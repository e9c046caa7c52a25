package models

import "time"

// Project represents a delivery project, optionally auto-created from a won
// lead. Progress is derived from the owned tasks and recomputed after every
// task mutation; it is never set directly by callers.
type Project struct {
	ID          string        `json:"id" gorm:"primaryKey"`
	Name        string        `json:"name" gorm:"not null"`
	Status      ProjectStatus `json:"status" gorm:"not null;default:'inProgress'"`
	Progress    int           `json:"progress" gorm:"default:0"`
	Description string        `json:"description"`
	CreatedAt   time.Time     `json:"created_at" gorm:"column:created_at;autoCreateTime"`
}

// TableName specifies the table name for Project Model
func (Project) TableName() string {
	return "projects"
}
