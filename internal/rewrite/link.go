package rewrite

import "regexp"

// Relative repository paths only resolve inside the source tree; the
// published document needs absolute URLs. Patterns anchor on the opening
// quote or bracket, so absolute URLs and deeper path segments never match.
var (
	docAttrRe     = regexp.MustCompile(`((?:href|src)=")documents/`)
	docMarkdownRe = regexp.MustCompile(`(\[([^\]]+)\]\()documents/`)
	imagePathRe   = regexp.MustCompile(`((?:src|href|data-src-2x)="|\]\()images/`)
)

// documentLinks expands relative documents/ targets in href and src
// attributes.
func (r *Rewriter) documentLinks(content string) string {
	return docAttrRe.ReplaceAllString(content, "${1}"+r.docBase)
}

// markdownDocumentLinks expands relative documents/ targets in markdown
// links, [label](documents/...) and ![alt](documents/...) alike.
func (r *Rewriter) markdownDocumentLinks(content string) string {
	return docMarkdownRe.ReplaceAllString(content, "${1}"+r.docBase)
}

// imagePaths expands relative images/ targets in src, href and data-src-2x
// attributes and in markdown image references.
func (r *Rewriter) imagePaths(content string) string {
	return imagePathRe.ReplaceAllString(content, "${1}"+r.assetBase)
}
