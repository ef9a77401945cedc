package orchestrator

import (
	"regexp"
	"strings"
)

var (
	rawDataPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?is)\{[^}]*"name"[^}]*\}`),
		regexp.MustCompile(`(?is)\{[^}]*"price"[^}]*\}`),
		regexp.MustCompile(`(?is)\{[^}]*"brand"[^}]*\}`),
		regexp.MustCompile(`(?is)\[.*?"_id".*?\]`),
		// A SHOES_DATA block runs to the next blank line or the end of the text.
		regexp.MustCompile(`(?s)SHOES_DATA:.*?(?:\n\s*\n|\z)`),
	}
	blankRuns = regexp.MustCompile(`\n\s*\n\s*\n`)
)

// SanitizeReply strips raw catalog data a model sometimes echoes into its reply.
func SanitizeReply(reply string) string {
	out := reply
	for _, re := range rawDataPatterns {
		out = re.ReplaceAllString(out, "")
	}
	out = blankRuns.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out)
}
