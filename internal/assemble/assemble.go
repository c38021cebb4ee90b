// Package assemble builds the single combined document out of the ordered
// markdown fragments.
package assemble

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/tumult/hype-documentation/internal/rewrite"
)

// Separator sits between fragments in the combined document, never after
// the last one.
const Separator = "\n\n---\n\n"

// Source provides fragments by name. List returns names in combination
// order.
type Source interface {
	List() ([]string, error)
	Read(name string) (string, error)
}

// Assembler combines fragments into one document under a fixed title line.
type Assembler struct {
	src       Source
	rewriter  *rewrite.Rewriter
	title     string
	overrides map[string]string
	log       *slog.Logger
}

// New returns an Assembler. overrides maps fragment names to replacement
// content used instead of the stored text; replacements are still rewritten.
func New(src Source, rw *rewrite.Rewriter, title string, overrides map[string]string, log *slog.Logger) *Assembler {
	return &Assembler{src: src, rewriter: rw, title: title, overrides: overrides, log: log}
}

// Result reports what one Build produced.
type Result struct {
	Markdown  string
	Fragments []string
	Failed    int
}

// Build reads and rewrites every fragment in order and joins the results.
// A fragment that cannot be read contributes an inline error marker instead
// of its content; the build keeps going. An empty fragment set yields an
// empty Result and no error.
func (a *Assembler) Build() (Result, error) {
	names, err := a.src.List()
	if err != nil {
		return Result{}, err
	}
	if len(names) == 0 {
		return Result{}, nil
	}

	var sb strings.Builder
	sb.WriteString(a.title)
	sb.WriteString("\n\n")

	res := Result{Fragments: names}
	for i, name := range names {
		a.log.Info("processing fragment", "name", name)

		content, overridden := a.overrides[name]
		if !overridden {
			var err error
			content, err = a.src.Read(name)
			if err != nil {
				a.log.Error("read fragment", "name", name, "error", err)
				fmt.Fprintf(&sb, "*Error reading file %s: %v*", name, err)
				res.Failed++
				if i < len(names)-1 {
					sb.WriteString(Separator)
				}
				continue
			}
		}

		sb.WriteString(a.rewriter.Apply(content))
		if i < len(names)-1 {
			sb.WriteString(Separator)
		}
	}

	res.Markdown = sb.String()
	return res, nil
}
