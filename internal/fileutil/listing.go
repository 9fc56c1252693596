package fileutil

import (
	"fmt"
	"os"
	"strings"
)

// Listing is a one-level snapshot of an intake directory.
type Listing struct {
	// Files holds the names of all regular files, sorted by name.
	Files []string
	// Skipped holds the names of entries that are not regular files
	// (subdirectories, symlinks, sockets), sorted by name. They are
	// surfaced to the operator but never processed.
	Skipped []string
}

// ListIntake returns the direct entries of dir, split into processable
// files and skipped entries. The listing is non-recursive and ignores dot
// entries entirely.
func ListIntake(dir string) (*Listing, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list intake directory: %w", err)
	}

	listing := &Listing{}
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if entry.Type().IsRegular() {
			listing.Files = append(listing.Files, name)
		} else {
			listing.Skipped = append(listing.Skipped, name)
		}
	}
	return listing, nil
}
