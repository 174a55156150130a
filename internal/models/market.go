package models

import (
	"time"

	"github.com/google/uuid"
)

// Market represents a single tradeable question tied to one condition
type Market struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ConditionID string    `gorm:"size:66;uniqueIndex;not null" json:"condition_id"`
	EventID     uuid.UUID `gorm:"type:uuid;not null;index" json:"event_id"`
	Title       string    `gorm:"size:500;not null" json:"title"`
	Slug        string    `gorm:"size:255;index" json:"slug"`
	Question    string    `gorm:"type:text" json:"question"`
	IconURL     string    `gorm:"size:500" json:"icon_url"`
	IsActive    bool      `gorm:"default:true;index" json:"is_active"`
	IsResolved  bool      `gorm:"default:false" json:"is_resolved"`
	Condition   Condition `gorm:"foreignKey:ConditionID;references:ID" json:"condition,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name for Market model
func (Market) TableName() string {
	return "markets"
}
