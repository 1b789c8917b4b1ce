package ingest

import (
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Clean collapses every maximal run of whitespace into a single space and
// trims leading/trailing whitespace. Pure; applied to each page before the
// pages are concatenated into one stream.
func Clean(text string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
}
