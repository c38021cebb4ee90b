// Package rewrite turns raw documentation fragments into publishable
// markdown. Lazy-loaded embeds and images are rebuilt around their real
// sources and relative repository paths become absolute URLs; HTML tables
// are translated to markdown tables.
package rewrite

// Rewriter applies the full substitution sequence. docBase and assetBase are
// the absolute URL prefixes substituted for relative documents/ and images/
// paths; both end with a slash.
type Rewriter struct {
	docBase   string
	assetBase string
}

// New returns a Rewriter for the given URL prefixes.
func New(docBase, assetBase string) *Rewriter {
	return &Rewriter{docBase: docBase, assetBase: assetBase}
}

// Apply runs every pass over one fragment, in order. The order is load
// bearing: image tags must be rebuilt before path expansion so their
// promoted sources get expanded, and tables are translated after expansion
// so cell images carry absolute URLs.
func (r *Rewriter) Apply(content string) string {
	content = rewriteVideos(content)
	content = rewriteRetinaImages(content)
	content = rewriteDataSrcImages(content)
	content = r.documentLinks(content)
	content = r.markdownDocumentLinks(content)
	content = r.imagePaths(content)
	// A second pass picks up document links the first one missed.
	content = r.markdownDocumentLinks(content)
	content = stripImageHeights(content)
	content = translateTables(content)
	content = optimizeForLLM(content)
	content = normalizeSpaces(content)
	return content
}
