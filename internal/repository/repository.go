package repository

import (
	"context"
	"errors"

	"market-ingest/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrEventVanished is returned when an event insert is ignored on conflict
// but the conflicting row cannot be read back. Callers skip the candidate's
// dependent rows instead of writing orphans.
var ErrEventVanished = errors.New("event insert ignored but row not found")

// Repository exposes conflict-tolerant writes over the event graph. Every
// Create* method uses insert-or-ignore semantics: a unique-key conflict is
// the expected steady state on re-runs, not an error.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// EnsureTag looks a tag up by slug and inserts it if absent. Returns the
// tag and whether this call created it.
func (r *Repository) EnsureTag(ctx context.Context, name, slug string) (*models.Tag, bool, error) {
	var existing models.Tag
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	tag := models.Tag{
		Name:           name,
		Slug:           slug,
		IsMainCategory: true,
		DisplayOrder:   10,
	}
	if err := r.db.WithContext(ctx).Create(&tag).Error; err != nil {
		return nil, false, err
	}
	return &tag, true, nil
}

// CreateCondition inserts a condition row, ignoring a primary-key conflict
func (r *Repository) CreateCondition(ctx context.Context, condition *models.Condition) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(condition).Error
}

// EnsureEvent inserts an event, ignoring a slug conflict. On conflict the
// existing row is read back so the caller gets a usable identifier either
// way. Returns the event id and whether this call created the row.
func (r *Repository) EnsureEvent(ctx context.Context, event *models.Event) (uuid.UUID, bool, error) {
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slug"}},
		DoNothing: true,
	}).Create(event)
	if result.Error != nil {
		return uuid.Nil, false, result.Error
	}
	if result.RowsAffected > 0 {
		return event.ID, true, nil
	}

	var existing models.Event
	err := r.db.WithContext(ctx).Where("slug = ?", event.Slug).First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, false, ErrEventVanished
		}
		return uuid.Nil, false, err
	}
	return existing.ID, false, nil
}

// LinkEventTag inserts the event-tag membership row, ignoring a duplicate pair
func (r *Repository) LinkEventTag(ctx context.Context, eventID uuid.UUID, tagID uint) error {
	link := models.EventTag{EventID: eventID, TagID: tagID}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error
}

// CreateMarket inserts a market row, ignoring a condition-id conflict
func (r *Repository) CreateMarket(ctx context.Context, market *models.Market) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(market).Error
}

// CreateOutcome inserts an outcome row, ignoring a (condition, index) conflict
func (r *Repository) CreateOutcome(ctx context.Context, outcome *models.Outcome) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(outcome).Error
}
