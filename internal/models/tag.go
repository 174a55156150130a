package models

import (
	"time"
)

// Tag represents a source category that events are grouped under
type Tag struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"size:255;not null" json:"name"`
	Slug           string    `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	IsMainCategory bool      `gorm:"default:false" json:"is_main_category"`
	DisplayOrder   int       `gorm:"default:0" json:"display_order"`
	CreatedAt      time.Time `json:"created_at"`
}

// TableName specifies the table name for Tag model
func (Tag) TableName() string {
	return "tags"
}
