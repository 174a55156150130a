package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"
)

func newTestGDELT(serverURL string) *GDELTSource {
	return &GDELTSource{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    serverURL,
	}
}

func TestGDELTFetchMapsArticles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("query"); got != "election" {
			t.Errorf("expected query=election, got %q", got)
		}
		if got := r.URL.Query().Get("maxrecords"); got != "5" {
			t.Errorf("expected maxrecords=5, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"articles":[{"title":"Senate Votes on New Bill!!"},{"title":"Polls Open Across the Country"}]}`))
	}))
	defer server.Close()

	bundle := newTestGDELT(server.URL).Fetch(context.Background())

	if bundle.Name != "GDELT Project" || bundle.Slug != "gdelt-project" {
		t.Errorf("unexpected bundle descriptor: %+v", bundle)
	}
	if len(bundle.Events) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(bundle.Events))
	}

	first := bundle.Events[0]
	if first.Title != "Senate Votes on New Bill!!" {
		t.Errorf("unexpected title: %q", first.Title)
	}
	slugPattern := regexp.MustCompile(`^gdelt-senate-votes-on-new-bill-[a-f0-9]{4}$`)
	if !slugPattern.MatchString(first.Slug) {
		t.Errorf("unexpected slug: %q", first.Slug)
	}
	if len(first.Outcomes) != 3 || first.Outcomes[2] != "Uncertain" {
		t.Errorf("expected {Yes, No, Uncertain}, got %v", first.Outcomes)
	}
}

func TestGDELTFetchDegradesOnServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
	}))
	defer server.Close()

	bundle := newTestGDELT(server.URL).Fetch(context.Background())

	if bundle.Slug != "gdelt-project" {
		t.Errorf("degraded bundle lost its descriptor: %+v", bundle)
	}
	if len(bundle.Events) != 0 {
		t.Errorf("expected empty bundle, got %d candidates", len(bundle.Events))
	}
}

func TestGDELTFetchDegradesOnMalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"articles": [`))
	}))
	defer server.Close()

	bundle := newTestGDELT(server.URL).Fetch(context.Background())
	if len(bundle.Events) != 0 {
		t.Errorf("expected empty bundle on parse failure, got %d candidates", len(bundle.Events))
	}
}

func TestGDELTFetchDegradesOnUnreachableHost(t *testing.T) {
	src := newTestGDELT("http://127.0.0.1:1")
	bundle := src.Fetch(context.Background())
	if len(bundle.Events) != 0 {
		t.Errorf("expected empty bundle, got %d candidates", len(bundle.Events))
	}
}

func TestGDELTFetchUntitledArticle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"articles":[{"url":"https://example.com/a"}]}`))
	}))
	defer server.Close()

	bundle := newTestGDELT(server.URL).Fetch(context.Background())
	if len(bundle.Events) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(bundle.Events))
	}
	if bundle.Events[0].Title != "Untitled Event" {
		t.Errorf("expected fallback title, got %q", bundle.Events[0].Title)
	}
}
