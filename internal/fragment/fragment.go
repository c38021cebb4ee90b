package fragment

import (
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
)

// Dir lists and reads markdown fragments from a single directory. Listing is
// non-recursive, and the combined output file is never part of the input set.
type Dir struct {
	fsys    fs.FS
	exclude string
}

// NewDir returns a fragment source over the named directory. exclude is a
// bare filename (typically the output document) omitted from listings.
func NewDir(dir, exclude string) *Dir {
	return &Dir{fsys: os.DirFS(dir), exclude: exclude}
}

// FromFS is NewDir over an arbitrary filesystem.
func FromFS(fsys fs.FS, exclude string) *Dir {
	return &Dir{fsys: fsys, exclude: exclude}
}

// List returns the fragment filenames in lexicographic order. The numeric
// prefixes of the source files (01intro.md, 02quickstart.md, ...) make this
// the publication order.
func (d *Dir) List() ([]string, error) {
	entries, err := fs.ReadDir(d.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("list fragments: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".md") || name == d.exclude {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Read returns the content of a single fragment.
func (d *Dir) Read(name string) (string, error) {
	data, err := fs.ReadFile(d.fsys, name)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
