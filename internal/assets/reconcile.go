package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
)

// Reconciler compares one image directory against a reference set.
type Reconciler struct {
	Dir string
	Log *slog.Logger
}

// Result is one reconciliation: what the document references, what the
// directory holds, and the sorted difference.
type Result struct {
	Referenced int
	Inventory  map[string]int64
	Unused     []string
	UnusedSize int64
}

// Clean reports whether every file in the directory is referenced.
func (r Result) Clean() bool { return len(r.Unused) == 0 }

// Inventory lists the files directly inside the directory with their sizes.
// Subdirectories are not descended into. A missing directory is logged and
// treated as empty.
func (r *Reconciler) Inventory() (map[string]int64, error) {
	entries, err := os.ReadDir(r.Dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.Log.Warn("images folder does not exist", "dir", r.Dir)
			return map[string]int64{}, nil
		}
		return nil, fmt.Errorf("list images: %w", err)
	}

	inv := make(map[string]int64, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			r.Log.Warn("stat image", "name", e.Name(), "error", err)
			continue
		}
		inv[e.Name()] = info.Size()
	}
	return inv, nil
}

// Reconcile computes the unused set: every inventory file the reference set
// never names.
func (r *Reconciler) Reconcile(refs map[string]bool) (Result, error) {
	inv, err := r.Inventory()
	if err != nil {
		return Result{}, err
	}

	res := Result{Referenced: len(refs), Inventory: inv}
	for name, size := range inv {
		if !refs[name] {
			res.Unused = append(res.Unused, name)
			res.UnusedSize += size
		}
	}
	sort.Strings(res.Unused)
	return res, nil
}

// DeleteUnused removes the files in the unused set, continuing past
// individual failures. It returns the number of files deleted and the bytes
// freed.
func (r *Reconciler) DeleteUnused(res Result) (int, int64) {
	var deleted int
	var freed int64
	for _, name := range res.Unused {
		if err := os.Remove(filepath.Join(r.Dir, name)); err != nil {
			r.Log.Error("delete image", "name", name, "error", err)
			continue
		}
		size := res.Inventory[name]
		r.Log.Info("deleted unused image", "name", name, "bytes", size)
		deleted++
		freed += size
	}
	return deleted, freed
}
