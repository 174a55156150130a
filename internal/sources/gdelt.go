package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

const (
	GDELTDocURL = "https://api.gdeltproject.org/api/v2/doc/doc"

	gdeltName       = "GDELT Project"
	gdeltSlug       = "gdelt-project"
	gdeltKeyword    = "election"
	gdeltMaxRecords = 5
	gdeltTimespan   = "1w"
)

// GDELTSource maps articles from the GDELT doc search API into event
// candidates with a {Yes, No, Uncertain} outcome set.
type GDELTSource struct {
	httpClient *http.Client
	baseURL    string
}

type gdeltArticle struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

type gdeltResponse struct {
	Articles []gdeltArticle `json:"articles"`
}

func NewGDELTSource(timeout time.Duration) *GDELTSource {
	return &GDELTSource{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    GDELTDocURL,
	}
}

// Fetch queries the article feed and maps each headline into a candidate.
// Any failure degrades to an empty bundle.
func (s *GDELTSource) Fetch(ctx context.Context) Bundle {
	bundle := Bundle{Name: gdeltName, Slug: gdeltSlug}

	articles, err := s.fetchArticles(ctx)
	if err != nil {
		log.Printf("Failed to fetch GDELT events: %v", err)
		return bundle
	}

	for _, article := range articles {
		title := article.Title
		if title == "" {
			title = "Untitled Event"
		}
		bundle.Events = append(bundle.Events, Candidate{
			Title:    title,
			Slug:     SlugWithSuffix("gdelt", title),
			Question: fmt.Sprintf("Will the event described in %q have a significant outcome by the end of the year?", title),
			Outcomes: []string{"Yes", "No", "Uncertain"},
		})
	}

	return bundle
}

func (s *GDELTSource) fetchArticles(ctx context.Context) ([]gdeltArticle, error) {
	url := fmt.Sprintf("%s?query=%s&mode=artlist&format=json&maxrecords=%d&timespan=%s",
		s.baseURL, gdeltKeyword, gdeltMaxRecords, gdeltTimespan)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch articles: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GDELT API error: %d %s", resp.StatusCode, resp.Status)
	}

	var result gdeltResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return result.Articles, nil
}
