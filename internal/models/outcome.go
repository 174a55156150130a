package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Outcome represents one possible answer to a market's question.
// CurrentPrice is seeded to an equal split so all outcomes of a fresh
// market sum to 1.0.
type Outcome struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	ConditionID  string          `gorm:"size:66;not null;uniqueIndex:idx_outcomes_condition_index" json:"condition_id"`
	OutcomeText  string          `gorm:"size:255;not null" json:"outcome_text"`
	OutcomeIndex int             `gorm:"not null;uniqueIndex:idx_outcomes_condition_index" json:"outcome_index"`
	TokenID      string          `gorm:"size:66;not null" json:"token_id"`
	CurrentPrice decimal.Decimal `gorm:"type:decimal(10,4);not null" json:"current_price"`
	CreatedAt    time.Time       `json:"created_at"`
}

// TableName specifies the table name for Outcome model
func (Outcome) TableName() string {
	return "outcomes"
}
