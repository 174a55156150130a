package sources

import (
	"context"
	"encoding/xml"
	"fmt"
	"log"
	"net/http"
	"time"
)

const (
	BBCWorldFeedURL = "http://feeds.bbci.co.uk/news/world/rss.xml"

	rssName     = "BBC World News"
	rssSlug     = "bbc-world-news"
	rssMaxItems = 5
)

// RSSSource maps entries from a syndicated news feed into binary {Yes, No}
// event candidates.
type RSSSource struct {
	httpClient *http.Client
	feedURL    string
}

// rssFeed covers just the item/title structure this adapter consumes.
// encoding/xml decodes both escaped and CDATA-wrapped titles into chardata.
type rssFeed struct {
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title string `xml:"title"`
}

func NewRSSSource(timeout time.Duration) *RSSSource {
	return &RSSSource{
		httpClient: &http.Client{Timeout: timeout},
		feedURL:    BBCWorldFeedURL,
	}
}

// Fetch pulls the feed and maps up to 5 items into candidates. Any failure
// degrades to an empty bundle.
func (s *RSSSource) Fetch(ctx context.Context) Bundle {
	bundle := Bundle{Name: rssName, Slug: rssSlug}

	items, err := s.fetchItems(ctx)
	if err != nil {
		log.Printf("Failed to fetch RSS events: %v", err)
		return bundle
	}

	if len(items) > rssMaxItems {
		items = items[:rssMaxItems]
	}

	for _, item := range items {
		title := item.Title
		if title == "" {
			title = "Unknown News"
		}
		bundle.Events = append(bundle.Events, Candidate{
			Title:    title,
			Slug:     SlugWithSuffix("bbc", title),
			Question: fmt.Sprintf("Will %q lead to major policy changes?", title),
			Outcomes: []string{"Yes", "No"},
		})
	}

	return bundle
}

func (s *RSSSource) fetchItems(ctx context.Context) ([]rssItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("RSS fetch error: %d %s", resp.StatusCode, resp.Status)
	}

	var feed rssFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	return feed.Channel.Items, nil
}
