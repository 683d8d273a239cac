package ingest

import (
	"regexp"
	"strings"
)

var (
	carriageReturns = regexp.MustCompile(`\r\n?`)
	excessNewlines  = regexp.MustCompile(`\n{3,}`)
	spaceRuns       = regexp.MustCompile(` {2,}`)
)

// Normalize collapses whitespace while preserving paragraph breaks.
// Carriage returns become newlines and runs of 3+ newlines collapse to a
// double newline so paragraph structure survives PDF extraction noise.
func Normalize(raw string) string {
	text := carriageReturns.ReplaceAllString(raw, "\n")
	text = excessNewlines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// flattenSpaces additionally collapses runs of spaces to one space.
// The section patterns match against this view - kerning artifacts in
// extracted headings ("C  ONCLUSION") otherwise defeat them.
func flattenSpaces(text string) string {
	return spaceRuns.ReplaceAllString(text, " ")
}
