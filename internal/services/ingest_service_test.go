package services

import (
	"context"
	"testing"

	"market-ingest/internal/ident"
	"market-ingest/internal/models"
	"market-ingest/internal/repository"
	"market-ingest/internal/sources"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Discard,
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Tag{},
		&models.Event{},
		&models.Condition{},
		&models.EventTag{},
		&models.Market{},
		&models.Outcome{},
	)
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	return db
}

// stubSource feeds a fixed bundle into the pipeline
type stubSource struct {
	bundle sources.Bundle
}

func (s stubSource) Fetch(ctx context.Context) sources.Bundle {
	return s.bundle
}

func newService(db *gorm.DB, srcs ...sources.Source) *IngestService {
	return NewIngestService(repository.NewRepository(db), ident.NewCryptoMinter(), srcs)
}

func tableCounts(t *testing.T, db *gorm.DB) map[string]int64 {
	counts := map[string]int64{}
	for table, model := range map[string]interface{}{
		"tags":       &models.Tag{},
		"events":     &models.Event{},
		"conditions": &models.Condition{},
		"event_tags": &models.EventTag{},
		"markets":    &models.Market{},
		"outcomes":   &models.Outcome{},
	} {
		var n int64
		if err := db.Model(model).Count(&n).Error; err != nil {
			t.Fatalf("failed to count %s: %v", table, err)
		}
		counts[table] = n
	}
	return counts
}

func TestSeedSingleBinaryEvent(t *testing.T) {
	db := setupTestDB(t)

	src := stubSource{bundle: sources.Bundle{
		Name: "Test Source",
		Slug: "test-source",
		Events: []sources.Candidate{{
			Title:    "Will it happen?",
			Slug:     "will-it-happen",
			Question: "Will the thing happen by year end?",
			Outcomes: []string{"Yes", "No"},
		}},
	}}

	stats := newService(db, src).Run(context.Background())

	if stats.EventsCreated != 1 || stats.TagsCreated != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}

	counts := tableCounts(t, db)
	want := map[string]int64{
		"tags": 1, "events": 1, "conditions": 1,
		"event_tags": 1, "markets": 1, "outcomes": 2,
	}
	for table, n := range want {
		if counts[table] != n {
			t.Errorf("expected %d %s rows, got %d", n, table, counts[table])
		}
	}

	var outcomes []models.Outcome
	if err := db.Order("outcome_index").Find(&outcomes).Error; err != nil {
		t.Fatalf("failed to read outcomes: %v", err)
	}
	for _, o := range outcomes {
		if got := o.CurrentPrice.StringFixed(4); got != "0.5000" {
			t.Errorf("outcome %d priced %s, want 0.5000", o.OutcomeIndex, got)
		}
	}
}

func TestRerunIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	service := newService(db, sources.Curated()...)
	ctx := context.Background()

	service.Run(ctx)
	first := tableCounts(t, db)

	stats := service.Run(ctx)
	second := tableCounts(t, db)

	for table, n := range first {
		if second[table] != n {
			t.Errorf("re-run grew %s from %d to %d rows", table, n, second[table])
		}
	}
	if stats.EventsCreated != 0 {
		t.Errorf("re-run created %d events", stats.EventsCreated)
	}
	if stats.EventsExisting == 0 {
		t.Error("re-run did not report existing events")
	}
}

func TestPriceSumInvariant(t *testing.T) {
	db := setupTestDB(t)

	src := stubSource{bundle: sources.Bundle{
		Name: "Triple",
		Slug: "triple",
		Events: []sources.Candidate{{
			Title:    "Three-way outcome",
			Slug:     "three-way-outcome",
			Question: "Which of three?",
			Outcomes: []string{"A", "B", "C"},
		}},
	}}
	newService(db, src).Run(context.Background())

	var outcomes []models.Outcome
	if err := db.Find(&outcomes).Error; err != nil {
		t.Fatalf("failed to read outcomes: %v", err)
	}
	if len(outcomes) != 3 {
		t.Fatalf("expected 3 outcomes, got %d", len(outcomes))
	}

	sum := decimal.Zero
	for _, o := range outcomes {
		if got := o.CurrentPrice.StringFixed(4); got != "0.3333" {
			t.Errorf("outcome priced %s, want 0.3333", got)
		}
		sum = sum.Add(o.CurrentPrice)
	}

	diff := sum.Sub(decimal.NewFromInt(1)).Abs()
	if diff.GreaterThan(decimal.RequireFromString("0.0001")) {
		t.Errorf("price sum %s is outside tolerance", sum)
	}
}

func TestOutcomeIndexesContiguous(t *testing.T) {
	db := setupTestDB(t)

	newService(db, sources.Curated()...).Run(context.Background())

	var conditions []models.Condition
	if err := db.Find(&conditions).Error; err != nil {
		t.Fatalf("failed to read conditions: %v", err)
	}
	if len(conditions) == 0 {
		t.Fatal("no conditions seeded")
	}

	for _, cond := range conditions {
		var outcomes []models.Outcome
		if err := db.Where("condition_id = ?", cond.ID).Order("outcome_index").Find(&outcomes).Error; err != nil {
			t.Fatalf("failed to read outcomes for %s: %v", cond.ID, err)
		}
		for i, o := range outcomes {
			if o.OutcomeIndex != i {
				t.Errorf("condition %s has index %d at position %d", cond.ID, o.OutcomeIndex, i)
			}
		}
	}
}

func TestReferentialIntegrity(t *testing.T) {
	db := setupTestDB(t)

	newService(db, sources.Curated()...).Run(context.Background())

	var markets []models.Market
	if err := db.Find(&markets).Error; err != nil {
		t.Fatalf("failed to read markets: %v", err)
	}
	if len(markets) != 6 {
		t.Fatalf("expected 6 markets from the curated catalog, got %d", len(markets))
	}

	for _, m := range markets {
		var cond models.Condition
		if err := db.First(&cond, "id = ?", m.ConditionID).Error; err != nil {
			t.Errorf("market %d references missing condition %s", m.ID, m.ConditionID)
		}
		var ev models.Event
		if err := db.First(&ev, "id = ?", m.EventID).Error; err != nil {
			t.Errorf("market %d references missing event %s", m.ID, m.EventID)
		}
	}

	var outcomes []models.Outcome
	if err := db.Find(&outcomes).Error; err != nil {
		t.Fatalf("failed to read outcomes: %v", err)
	}
	for _, o := range outcomes {
		var cond models.Condition
		if err := db.First(&cond, "id = ?", o.ConditionID).Error; err != nil {
			t.Errorf("outcome %d references missing condition %s", o.ID, o.ConditionID)
		}
	}
}

func TestDegradedSourceDoesNotBlockOthers(t *testing.T) {
	db := setupTestDB(t)

	// A failed feed degrades to its named bundle with zero candidates
	degraded := stubSource{bundle: sources.Bundle{
		Name: "GDELT Project",
		Slug: "gdelt-project",
	}}

	srcs := append(sources.Curated(), degraded)
	newService(db, srcs...).Run(context.Background())

	counts := tableCounts(t, db)
	if counts["events"] != 6 {
		t.Errorf("expected 6 curated events, got %d", counts["events"])
	}

	var tag models.Tag
	if err := db.First(&tag, "slug = ?", "gdelt-project").Error; err != nil {
		t.Fatalf("degraded source's tag missing: %v", err)
	}

	var links int64
	db.Model(&models.EventTag{}).Where("tag_id = ?", tag.ID).Count(&links)
	if links != 0 {
		t.Errorf("degraded source has %d event links, want 0", links)
	}
}

func TestEqualSplitPrice(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{2, "0.5000"},
		{3, "0.3333"},
		{4, "0.2500"},
		{5, "0.2000"},
		{0, "0.0000"},
	}

	for _, tt := range tests {
		if got := equalSplitPrice(tt.n).StringFixed(4); got != tt.want {
			t.Errorf("equalSplitPrice(%d) = %s, want %s", tt.n, got, tt.want)
		}
	}
}

func TestSkipCandidateKeepsProcessingOthers(t *testing.T) {
	db := setupTestDB(t)

	src := stubSource{bundle: sources.Bundle{
		Name: "Mixed",
		Slug: "mixed",
		Events: []sources.Candidate{
			{Title: "First", Slug: "first-event", Question: "Q1", Outcomes: []string{"Yes", "No"}},
			{Title: "Second", Slug: "second-event", Question: "Q2", Outcomes: []string{"Yes", "No"}},
		},
	}}

	stats := newService(db, src).Run(context.Background())
	if stats.EventsCreated != 2 {
		t.Errorf("expected 2 events created, got %d", stats.EventsCreated)
	}
	if stats.Candidates != 2 {
		t.Errorf("expected 2 candidates processed, got %d", stats.Candidates)
	}
}
