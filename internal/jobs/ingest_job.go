package jobs

import (
	"context"
	"log"
	"time"

	"market-ingest/internal/services"
)

type IngestJob struct {
	service *services.IngestService
}

func NewIngestJob(service *services.IngestService) *IngestJob {
	return &IngestJob{service: service}
}

// Start begins the periodic ingestion job
func (j *IngestJob) Start(interval time.Duration) {
	go func() {
		ctx := context.Background()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			stats := j.service.Run(ctx)
			log.Printf("Scheduled ingestion run finished: %+v", stats)
		}
	}()
}
