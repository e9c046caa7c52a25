package models

import "time"

// Commerce represents a lead in the CRM pipeline
type Commerce struct {
	ID        string         `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"not null"`
	Category  string         `json:"category"`
	Status    CommerceStatus `json:"status" gorm:"not null;default:'prospect'"`
	Phone     string         `json:"phone"`
	Email     string         `json:"email"`
	Address   string         `json:"address"`
	Notes     string         `json:"notes"`
	CreatedAt time.Time      `json:"created_at" gorm:"column:created_at;autoCreateTime"`
}

// TableName specifies the table name for Commerce Model
func (Commerce) TableName() string {
	return "commerces"
}
