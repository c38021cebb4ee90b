package rewrite

import (
	"regexp"
	"strings"
)

var (
	classStripRe    = regexp.MustCompile(`\s+class="[^"]*"`)
	emptyAltRe      = regexp.MustCompile(`\s+alt=""`)
	manyNewlinesRe  = regexp.MustCompile(`\n{3,}`)
	spaceRunRe      = regexp.MustCompile(`[ \t]+`)
	trailingSpaceRe = regexp.MustCompile(` +\n`)
	leadingSpaceRe  = regexp.MustCompile(`\n +`)
)

// optimizeForLLM compacts the document for machine ingestion. It drops
// class attributes and empty alts, then squeezes redundant whitespace
// down to at most two consecutive newlines and single interior spaces
// with none adjacent to a newline.
func optimizeForLLM(content string) string {
	content = classStripRe.ReplaceAllString(content, "")
	content = emptyAltRe.ReplaceAllString(content, "")
	content = manyNewlinesRe.ReplaceAllString(content, "\n\n")
	content = spaceRunRe.ReplaceAllString(content, " ")
	content = trailingSpaceRe.ReplaceAllString(content, "\n")
	content = leadingSpaceRe.ReplaceAllString(content, "\n")
	return content
}

// normalizeSpaces replaces non-breaking spaces with ordinary ones.
func normalizeSpaces(content string) string {
	return strings.ReplaceAll(content, "\u00a0", " ")
}
