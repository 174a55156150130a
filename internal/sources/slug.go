package sources

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
)

const maxSlugLen = 50

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns free text into a url-safe slug: lowercased, runs of
// non-alphanumeric characters collapsed to single hyphens, edge hyphens
// trimmed, truncated to 50 characters.
func Slugify(title string) string {
	slug := strings.ToLower(title)
	slug = nonAlnum.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > maxSlugLen {
		slug = slug[:maxSlugLen]
	}
	return slug
}

// SlugWithSuffix appends a 4-hex-char suffix derived from the original
// title, so near-identical headlines get distinct slugs while the same
// headline maps to the same slug on every run.
func SlugWithSuffix(prefix, title string) string {
	return prefix + "-" + Slugify(title) + "-" + slugSuffix(title)
}

func slugSuffix(title string) string {
	sum := sha256.Sum256([]byte(title))
	return hex.EncodeToString(sum[:2])
}
