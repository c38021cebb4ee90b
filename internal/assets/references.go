// Package assets reconciles the images directory against what the combined
// document actually references, so orphaned files can be reported or removed.
package assets

import (
	"regexp"
	"strings"
)

// ExtractReferences returns the set of image filenames doc references
// through base, the absolute URL prefix the rewriting step substitutes for
// relative images/ paths. A reference runs to the next quote, closing paren,
// or whitespace, covering both <img src="..."> and ![alt](...) forms; only
// the final path segment names the file.
func ExtractReferences(doc, base string) map[string]bool {
	re := regexp.MustCompile(regexp.QuoteMeta(base) + `([^")\s]+)`)

	refs := make(map[string]bool)
	for _, m := range re.FindAllStringSubmatch(doc, -1) {
		path := m[1]
		if i := strings.LastIndex(path, "/"); i >= 0 {
			path = path[i+1:]
		}
		refs[path] = true
	}
	return refs
}
