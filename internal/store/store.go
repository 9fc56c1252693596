// Package store defines the layout of the client file store and the
// utilities that maintain the pipeline's root directories.
//
// The store is a plain directory tree keyed first by the reporting range
// start date and then by file type:
//
//	<storeRoot>/<DDMMYY>/<ext>/<client>
//
// The leaf file carries no extension: the type is encoded one level up in
// the path. The store is a drop target, not a database; there is no index
// and no access control beyond what the file system provides.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/harrison/curator/internal/naming"
)

// ErrMissingRoot marks an absent pipeline root directory. A missing root is
// a configuration error that aborts a whole batch; it is never a per-file
// failure.
var ErrMissingRoot = errors.New("directory does not exist")

// ResolveDir returns the destination directory for files whose reporting
// range starts at startToken and that carry the given extension. It is a
// pure path computation: no existence check, no directory creation.
func ResolveDir(storeRoot, startToken, extension string) string {
	return filepath.Join(storeRoot, startToken, extension)
}

// DestinationPath returns the full store path for a parsed file name. The
// leaf is the bare client token.
func DestinationPath(storeRoot string, fn naming.FileName) string {
	return filepath.Join(ResolveDir(storeRoot, fn.StartToken(), fn.Extension), fn.Client)
}

// CheckRoots verifies that both pipeline roots exist and are directories.
// Failures wrap ErrMissingRoot where the directory is absent, so callers
// can tell the fatal configuration case apart from per-file trouble.
func CheckRoots(intakeRoot, storeRoot string) error {
	if err := checkRoot("intake", intakeRoot); err != nil {
		return err
	}
	return checkRoot("store", storeRoot)
}

func checkRoot(role, dir string) error {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return fmt.Errorf("%s root %s: %w", role, dir, ErrMissingRoot)
	}
	if err != nil {
		return fmt.Errorf("check %s root %s: %w", role, dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s root %s is not a directory", role, dir)
	}
	return nil
}

// EnsureRoots creates the intake and store roots if they do not exist.
func EnsureRoots(intakeRoot, storeRoot string) error {
	if err := os.MkdirAll(intakeRoot, 0755); err != nil {
		return fmt.Errorf("create intake root: %w", err)
	}
	if err := os.MkdirAll(storeRoot, 0755); err != nil {
		return fmt.Errorf("create store root: %w", err)
	}
	return nil
}

// Reset removes every entry under storeRoot, keeping the root itself. It
// returns the number of direct entries removed. The pipeline never calls
// Reset; it exists for operators returning a store to its empty state.
func Reset(storeRoot string) (int, error) {
	entries, err := os.ReadDir(storeRoot)
	if err != nil {
		return 0, fmt.Errorf("read store root: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(storeRoot, entry.Name())); err != nil {
			return removed, fmt.Errorf("remove %s: %w", entry.Name(), err)
		}
		removed++
	}
	return removed, nil
}
