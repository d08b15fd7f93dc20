// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package derive computes presentation metadata from raw post text:
// URL-friendly slugs, excerpts, and estimated read times. All functions
// are pure and deterministic; they accept empty input and return
// well-defined minimal results.
package derive

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	// DefaultExcerptLength is the excerpt cutoff in characters.
	DefaultExcerptLength = 150

	// DefaultWordsPerMinute is the reading speed used for read-time estimates.
	DefaultWordsPerMinute = 200

	// ellipsis marks a truncated excerpt.
	ellipsis = "..."
)

// nonAlphanumeric matches runs of anything that isn't a lowercase letter
// or digit. Runs collapse to a single hyphen.
var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// diacriticStripper decomposes characters (NFD) and drops combining marks,
// so "café" folds to "cafe" before slugification.
var diacriticStripper = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Slug creates a URL-friendly slug from the given string.
// Example: "Hello, World! 2026" → "hello-world-2026"
//
// Diacritics fold to their base letters; anything else outside [a-z0-9]
// becomes a single hyphen; leading and trailing hyphens are trimmed.
// Re-running Slug on its own output never introduces new characters.
func Slug(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	if folded, _, err := transform.String(diacriticStripper, result); err == nil {
		result = folded
	}
	result = nonAlphanumeric.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

// Excerpt returns the first maxLen characters of content, appending an
// ellipsis when truncation occurred. Content at or under the limit is
// returned unchanged. A maxLen of zero or less falls back to the default.
func Excerpt(content string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultExcerptLength
	}
	r := []rune(content)
	if len(r) <= maxLen {
		return content
	}
	return string(r[:maxLen]) + ellipsis
}

// ReadTime estimates the minutes needed to read content at the given
// words-per-minute rate, rounding up. The floor is 1 minute so empty or
// very short content still displays a sensible value. A wpm of zero or
// less falls back to the default.
func ReadTime(content string, wpm int) int {
	if wpm <= 0 {
		wpm = DefaultWordsPerMinute
	}
	words := len(strings.Fields(content))
	minutes := (words + wpm - 1) / wpm
	if minutes < 1 {
		return 1
	}
	return minutes
}
