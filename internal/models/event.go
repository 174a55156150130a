package models

import (
	"time"

	"github.com/google/uuid"
)

// Event represents a top-level prediction event that one or more markets hang off
type Event struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title              string    `gorm:"size:500;not null" json:"title"`
	Slug               string    `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Status             string    `gorm:"size:50;default:active;index" json:"status"` // active, closed, resolved
	ActiveMarketsCount int       `gorm:"default:0" json:"active_markets_count"`
	TotalMarketsCount  int       `gorm:"default:0" json:"total_markets_count"`
	Markets            []Market  `gorm:"foreignKey:EventID" json:"markets,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

// TableName specifies the table name for Event model
func (Event) TableName() string {
	return "events"
}

// EventTag links an event to a tag (many-to-many membership)
type EventTag struct {
	ID      uint      `gorm:"primaryKey" json:"id"`
	EventID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_event_tags_pair" json:"event_id"`
	TagID   uint      `gorm:"not null;uniqueIndex:idx_event_tags_pair" json:"tag_id"`
}

func (EventTag) TableName() string {
	return "event_tags"
}
