package models

import (
	"time"
)

// Condition represents the resolution contract a market settles against.
// Identifiers are synthetic placeholders until a real oracle integration
// supplies them.
type Condition struct {
	ID          string    `gorm:"size:66;primaryKey" json:"id"`
	Oracle      string    `gorm:"size:42;not null" json:"oracle"`
	QuestionID  string    `gorm:"size:66;not null" json:"question_id"`
	Creator     string    `gorm:"size:42;not null" json:"creator"`
	ArweaveHash string    `gorm:"size:43" json:"arweave_hash"`
	Resolved    bool      `gorm:"default:false" json:"resolved"`
	Outcomes    []Outcome `gorm:"foreignKey:ConditionID" json:"outcomes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name for Condition model
func (Condition) TableName() string {
	return "conditions"
}
