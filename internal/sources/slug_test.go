package sources

import (
	"regexp"
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Senate Votes on New Bill!!", "senate-votes-on-new-bill"},
		{"Hello, World", "hello-world"},
		{"--already--hyphenated--", "already-hyphenated"},
		{"UPPER case & symbols #1", "upper-case-symbols-1"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSlugifyTruncates(t *testing.T) {
	long := strings.Repeat("abcde ", 20)
	if got := Slugify(long); len(got) > 50 {
		t.Errorf("expected at most 50 chars, got %d: %q", len(got), got)
	}
}

func TestSlugWithSuffixPattern(t *testing.T) {
	slug := SlugWithSuffix("gdelt", "Senate Votes on New Bill!!")

	pattern := regexp.MustCompile(`^gdelt-senate-votes-on-new-bill-[a-f0-9]{4}$`)
	if !pattern.MatchString(slug) {
		t.Errorf("slug %q does not match expected pattern", slug)
	}
}

func TestSlugWithSuffixStableAcrossRuns(t *testing.T) {
	a := SlugWithSuffix("bbc", "Markets rally after rate cut")
	b := SlugWithSuffix("bbc", "Markets rally after rate cut")
	if a != b {
		t.Errorf("same headline produced different slugs: %q vs %q", a, b)
	}

	c := SlugWithSuffix("bbc", "Markets rally after rate cut!")
	if c == a {
		t.Error("near-identical headlines collapsed to the same slug")
	}
}
