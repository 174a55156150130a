package sources

import (
	"context"
)

// staticSource serves one hand-curated bundle. It never touches the
// network, so it is always available.
type staticSource struct {
	bundle Bundle
}

func (s staticSource) Fetch(ctx context.Context) Bundle {
	return s.bundle
}

// Curated returns one source per curated catalog group
func Curated() []Source {
	out := make([]Source, 0, len(curatedBundles))
	for _, b := range curatedBundles {
		out = append(out, staticSource{bundle: b})
	}
	return out
}

var curatedBundles = []Bundle{
	{
		Name: "Global News",
		Slug: "global-news",
		Events: []Candidate{
			{
				Title:    "Will the US Inflation Rate drop below 2% in 2026?",
				Slug:     "us-inflation-below-2-percent-2026",
				Question: "Will the US CPI inflation rate be reported as strictly less than 2.0% for any month in 2026?",
				Outcomes: []string{"Yes", "No"},
			},
			{
				Title:    "Who will win the 2028 US Presidential Election?",
				Slug:     "us-election-winner-2028",
				Question: "Which party candidate will win the 2028 US Presidential Election?",
				Outcomes: []string{"Democrat", "Republican", "Other"},
			},
			{
				Title:    "Will GPT-6 be released before Q4 2026?",
				Slug:     "gpt-6-release-date",
				Question: "Will OpenAI release GPT-6 to the public before October 1st, 2026?",
				Outcomes: []string{"Yes", "No"},
			},
		},
	},
	{
		Name: "Sports Oracle",
		Slug: "sports-oracle",
		Events: []Candidate{
			{
				Title:    "Lakers vs Warriors: Who wins?",
				Slug:     "lakers-vs-warriors-2026-game",
				Question: "Who will win the NBA game between Los Angeles Lakers and Golden State Warriors on Feb 10, 2026?",
				Outcomes: []string{"Lakers", "Warriors"},
			},
			{
				Title:    "Super Bowl LXI Winner",
				Slug:     "super-bowl-lxi-winner",
				Question: "Which team will win Super Bowl LXI?",
				Outcomes: []string{"Chiefs", "49ers", "Lions", "Bills", "Other"},
			},
			{
				Title:    "Champions League 2026 Winner",
				Slug:     "champions-league-2026-winner",
				Question: "Who will win the UEFA Champions League 2025-2026?",
				Outcomes: []string{"Real Madrid", "Man City", "Bayern Munich", "Arsenal"},
			},
		},
	},
}
