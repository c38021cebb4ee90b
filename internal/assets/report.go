package assets

import (
	"fmt"
	"os"
	"strings"
)

// WriteReport persists the unused-file list so a declined cleanup still
// leaves a record: a two-line summary header, a blank line, then one
// filename per line in sorted order.
func WriteReport(path, documentName string, res Result) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Unused image files (not referenced in %s)\n", documentName)
	fmt.Fprintf(&sb, "# Total: %d files, %d bytes\n\n", len(res.Unused), res.UnusedSize)
	for _, name := range res.Unused {
		sb.WriteString(name)
		sb.WriteByte('\n')
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
