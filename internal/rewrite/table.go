package rewrite

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var (
	tableBlockRe = regexp.MustCompile(`(?s)<table[^>]*>.*?</table>`)
	cellBrRe     = regexp.MustCompile(`<br>\s*`)
)

// translateTables converts every complete HTML table in content into a
// markdown table. A table that cannot be parsed into a header and rows is
// left exactly as it was.
func translateTables(content string) string {
	return tableBlockRe.ReplaceAllStringFunc(content, func(block string) string {
		md := translateTable(block)
		if md == "" {
			return block
		}
		return "\n" + md + "\n"
	})
}

// translateTable parses one table element with the streaming tokenizer. The
// tokenizer never repairs markup: a cell or row missing its end tag is never
// committed, so malformed tables come back empty and the caller keeps the
// original HTML.
func translateTable(block string) (md string) {
	defer func() {
		if recover() != nil {
			md = ""
		}
	}()

	z := html.NewTokenizer(strings.NewReader(block))
	b := &tableBuilder{}
	for {
		switch z.Next() {
		case html.ErrorToken:
			// End of input without a closing table tag.
			return ""
		case html.StartTagToken:
			b.startTag(z.Token())
		case html.SelfClosingTagToken:
			tok := z.Token()
			b.startTag(tok)
			b.endTag(tok.Data)
		case html.EndTagToken:
			tok := z.Token()
			if tok.Data == "table" {
				return b.render()
			}
			b.endTag(tok.Data)
		case html.TextToken:
			b.text(z.Token().Data)
		}
	}
}

// tableBuilder accumulates one table's header and data rows as the token
// stream arrives.
type tableBuilder struct {
	inHead bool
	inBody bool
	inCell bool

	cell    strings.Builder
	row     []string
	headers []string
	rows    [][]string
}

func (b *tableBuilder) startTag(tok html.Token) {
	switch tok.Data {
	case "table":
		b.headers = nil
		b.rows = nil
	case "thead":
		b.inHead = true
	case "tbody":
		b.inBody = true
	case "tr":
		b.row = b.row[:0]
	case "td", "th":
		b.inCell = true
		b.cell.Reset()
	case "br":
		if b.inCell {
			b.cell.WriteString("<br>")
		}
	case "img":
		b.img(tok)
	}
}

func (b *tableBuilder) endTag(name string) {
	switch name {
	case "thead":
		b.inHead = false
	case "tbody":
		b.inBody = false
	case "tr":
		committed := make([]string, len(b.row))
		copy(committed, b.row)
		// The first row outside an explicit body becomes the header.
		if b.inHead || (!b.inBody && len(b.headers) == 0) {
			b.headers = committed
		} else {
			b.rows = append(b.rows, committed)
		}
	case "td", "th":
		b.row = append(b.row, cleanCell(b.cell.String()))
		b.inCell = false
		b.cell.Reset()
	}
}

func (b *tableBuilder) text(data string) {
	if !b.inCell {
		return
	}
	if trimmed := strings.TrimSpace(data); trimmed != "" {
		b.cell.WriteString(trimmed)
	}
}

// img renders a cell image inline as markdown, preferring the highest
// resolution source the tag offers.
func (b *tableBuilder) img(tok html.Token) {
	if !b.inCell {
		return
	}
	var src, retina, dataSrc, alt string
	for _, a := range tok.Attr {
		switch a.Key {
		case "data-src-retina":
			retina = a.Val
		case "data-src":
			dataSrc = a.Val
		case "src":
			src = a.Val
		case "alt":
			alt = a.Val
		}
	}
	switch {
	case retina != "":
		src = retina
	case dataSrc != "":
		src = dataSrc
	}
	if src == "" {
		return
	}
	b.cell.WriteString("![" + alt + "](" + src + ")")
}

// render emits the markdown table, or "" when no header row ever formed.
// Every data row is padded or truncated to the header width.
func (b *tableBuilder) render() string {
	headers := b.headers
	rows := b.rows
	if len(headers) == 0 && len(rows) > 0 {
		headers = rows[0]
		rows = rows[1:]
	}
	if len(headers) == 0 {
		return ""
	}

	lines := make([]string, 0, len(rows)+2)
	lines = append(lines, "| "+strings.Join(headers, " | ")+" |")

	seps := make([]string, len(headers))
	for i := range seps {
		seps[i] = "---"
	}
	lines = append(lines, "| "+strings.Join(seps, " | ")+" |")

	for _, row := range rows {
		if len(row) > len(headers) {
			row = row[:len(headers)]
		}
		for len(row) < len(headers) {
			row = append(row, "")
		}
		lines = append(lines, "| "+strings.Join(row, " | ")+" |")
	}
	return strings.Join(lines, "\n")
}

// cleanCell normalizes one committed cell. Surrounding whitespace is
// trimmed and space or tab runs collapse to one space, keeping newlines.
// Whitespace after a <br> marker is removed.
func cleanCell(s string) string {
	s = strings.TrimSpace(s)
	s = spaceRunRe.ReplaceAllString(s, " ")
	s = cellBrRe.ReplaceAllString(s, "<br>")
	return s
}
