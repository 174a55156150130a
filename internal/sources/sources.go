package sources

import (
	"context"
)

// Candidate is the normalized shape every adapter produces before the
// orchestrator materializes it into store rows.
type Candidate struct {
	Title    string
	Slug     string
	Question string
	Outcomes []string
}

// Bundle groups one origin's candidates under its tag descriptor
type Bundle struct {
	Name   string
	Slug   string
	Events []Candidate
}

// Source is a single origin of event candidates. Fetch never fails: any
// network or parse error is absorbed by the adapter, which returns its
// named bundle with zero candidates so one flaky feed cannot block the
// others.
type Source interface {
	Fetch(ctx context.Context) Bundle
}
