package services

import (
	"context"
	"errors"
	"log"
	"sync"

	"market-ingest/internal/ident"
	"market-ingest/internal/models"
	"market-ingest/internal/repository"
	"market-ingest/internal/sources"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	ConditionIDLength = 66
	AddressLength     = 42
	ArweaveHashLength = 43
	TokenIDLength     = 66
	PriceDecimals     = 4

	DefaultMarketIcon = "/images/default-market.png"
)

// Stats summarizes one pipeline run for the progress trace
type Stats struct {
	Sources        int
	Candidates     int
	TagsCreated    int
	EventsCreated  int
	EventsExisting int
	Skipped        int
}

// IngestService materializes source bundles into the tag/event/condition/
// market/outcome graph with conflict-tolerant writes, so repeated runs
// against the same store are safe.
type IngestService struct {
	repo    *repository.Repository
	minter  ident.Minter
	sources []sources.Source
}

func NewIngestService(repo *repository.Repository, minter ident.Minter, srcs []sources.Source) *IngestService {
	return &IngestService{
		repo:    repo,
		minter:  minter,
		sources: srcs,
	}
}

// Run fetches every source and upserts its candidates. Fetches run
// concurrently; writes are strictly sequential because later rows of a
// candidate depend on identifiers produced earlier. Row-level failures are
// logged and skipped, never escalated.
func (s *IngestService) Run(ctx context.Context) Stats {
	log.Println("Starting ingestion run...")

	bundles := s.fetchBundles(ctx)

	var stats Stats
	stats.Sources = len(bundles)

	for _, bundle := range bundles {
		s.processBundle(ctx, bundle, &stats)
	}

	log.Printf("Ingestion completed: %d sources, %d candidates, %d events created, %d existing, %d skipped",
		stats.Sources, stats.Candidates, stats.EventsCreated, stats.EventsExisting, stats.Skipped)
	return stats
}

// fetchBundles fetches all sources concurrently and returns their bundles
// in source order, so write order is stable across runs.
func (s *IngestService) fetchBundles(ctx context.Context) []sources.Bundle {
	bundles := make([]sources.Bundle, len(s.sources))

	var wg sync.WaitGroup
	for i, src := range s.sources {
		wg.Add(1)
		go func(i int, src sources.Source) {
			defer wg.Done()
			bundles[i] = src.Fetch(ctx)
		}(i, src)
	}
	wg.Wait()

	return bundles
}

func (s *IngestService) processBundle(ctx context.Context, bundle sources.Bundle, stats *Stats) {
	log.Printf("Processing source: %s (%d candidates)", bundle.Name, len(bundle.Events))

	tag, created, err := s.repo.EnsureTag(ctx, bundle.Name, bundle.Slug)
	if err != nil {
		log.Printf("Failed to ensure tag %s: %v", bundle.Slug, err)
		stats.Skipped += len(bundle.Events)
		return
	}
	if created {
		stats.TagsCreated++
		log.Printf("Created tag '%s' (ID: %d)", tag.Name, tag.ID)
	} else {
		log.Printf("Tag '%s' exists (ID: %d)", tag.Name, tag.ID)
	}

	for _, candidate := range bundle.Events {
		stats.Candidates++
		s.processCandidate(ctx, candidate, tag.ID, stats)
	}
}

// processCandidate writes one candidate's rows in dependency order:
// condition, event, tag link, market, outcomes.
func (s *IngestService) processCandidate(ctx context.Context, c sources.Candidate, tagID uint, stats *Stats) {
	// The condition id is derived from the slug rather than minted randomly
	// so a re-run reproduces it and every dependent insert collapses to a
	// conflict no-op.
	conditionID := s.minter.DeriveHex(c.Slug, ConditionIDLength)

	condition := models.Condition{
		ID:          conditionID,
		Oracle:      s.minter.MintHex(AddressLength),
		QuestionID:  s.minter.DeriveHex("question:"+c.Slug, ConditionIDLength),
		Creator:     s.minter.MintHex(AddressLength),
		ArweaveHash: s.minter.MintHex(ArweaveHashLength),
		Resolved:    false,
	}
	if err := s.repo.CreateCondition(ctx, &condition); err != nil {
		log.Printf("Failed to create condition for %s: %v", c.Slug, err)
	}

	event := models.Event{
		ID:                 uuid.New(),
		Title:              c.Title,
		Slug:               c.Slug,
		Status:             "active",
		ActiveMarketsCount: 1,
		TotalMarketsCount:  1,
	}
	eventID, created, err := s.repo.EnsureEvent(ctx, &event)
	if err != nil {
		if errors.Is(err, repository.ErrEventVanished) {
			log.Printf("Event %s vanished between insert and lookup, skipping", c.Slug)
		} else {
			log.Printf("Failed to ensure event %s: %v", c.Slug, err)
		}
		stats.Skipped++
		return
	}
	if created {
		stats.EventsCreated++
		log.Printf("Created event: %s", c.Title)
	} else {
		stats.EventsExisting++
		log.Printf("Event exists: %s", c.Title)
	}

	if err := s.repo.LinkEventTag(ctx, eventID, tagID); err != nil {
		log.Printf("Failed to link event %s to tag %d: %v", c.Slug, tagID, err)
	}

	market := models.Market{
		ConditionID: conditionID,
		EventID:     eventID,
		Title:       c.Title,
		Slug:        c.Slug,
		Question:    c.Question,
		IconURL:     DefaultMarketIcon,
		IsActive:    true,
		IsResolved:  false,
	}
	if err := s.repo.CreateMarket(ctx, &market); err != nil {
		log.Printf("Failed to create market for %s: %v", c.Slug, err)
	}

	price := equalSplitPrice(len(c.Outcomes))
	for i, label := range c.Outcomes {
		outcome := models.Outcome{
			ConditionID:  conditionID,
			OutcomeText:  label,
			OutcomeIndex: i,
			TokenID:      s.minter.MintHex(TokenIDLength),
			CurrentPrice: price,
		}
		if err := s.repo.CreateOutcome(ctx, &outcome); err != nil {
			log.Printf("Failed to create outcome %d for %s: %v", i, c.Slug, err)
		}
	}
}

// equalSplitPrice returns 1/n rounded to 4 decimal places, so a fresh
// market's outcomes sum to 1.0 within rounding tolerance.
func equalSplitPrice(n int) decimal.Decimal {
	if n <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(1).DivRound(decimal.NewFromInt(int64(n)), PriceDecimals)
}
