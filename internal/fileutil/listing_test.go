package fileutil

import (
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"testing"

	"github.com/harrison/curator/internal/naming"
)

func TestListIntake(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"b.csv", "a.csv", "z.json"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "archive"), 0755); err != nil {
		t.Fatalf("Mkdir failed: %v", err)
	}

	listing, err := ListIntake(dir)
	if err != nil {
		t.Fatalf("ListIntake returned error: %v", err)
	}

	wantFiles := []string{"a.csv", "b.csv", "z.json"}
	if !reflect.DeepEqual(listing.Files, wantFiles) {
		t.Errorf("Files = %v, want %v (sorted)", listing.Files, wantFiles)
	}

	wantSkipped := []string{"archive"}
	if !reflect.DeepEqual(listing.Skipped, wantSkipped) {
		t.Errorf("Skipped = %v, want %v", listing.Skipped, wantSkipped)
	}
}

func TestListIntakeIgnoresDotEntries(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{".curator.lock", ".DS_Store", "Acme.010125.051225.csv"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, ".git"), 0755); err != nil {
		t.Fatalf("Mkdir failed: %v", err)
	}

	listing, err := ListIntake(dir)
	if err != nil {
		t.Fatalf("ListIntake returned error: %v", err)
	}

	if len(listing.Files) != 1 || listing.Files[0] != "Acme.010125.051225.csv" {
		t.Errorf("Files = %v, dot files should be invisible", listing.Files)
	}
	if len(listing.Skipped) != 0 {
		t.Errorf("Skipped = %v, dot directories should be invisible", listing.Skipped)
	}
}

func TestListIntakeDoesNotRecurse(t *testing.T) {
	dir := t.TempDir()

	sub := filepath.Join(dir, "nested")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatalf("Mkdir failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(sub, "Acme.010125.051225.csv"), []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	listing, err := ListIntake(dir)
	if err != nil {
		t.Fatalf("ListIntake returned error: %v", err)
	}

	if len(listing.Files) != 0 {
		t.Errorf("Files = %v, nested files should be invisible", listing.Files)
	}
	if len(listing.Skipped) != 1 || listing.Skipped[0] != "nested" {
		t.Errorf("Skipped = %v, want the subdirectory itself", listing.Skipped)
	}
}

func TestListIntakeMissingDir(t *testing.T) {
	if _, err := ListIntake(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("ListIntake on a missing directory should fail")
	}
}

func TestWriteFixtures(t *testing.T) {
	dir := t.TempDir()

	names, err := WriteFixtures(dir, 10)
	if err != nil {
		t.Fatalf("WriteFixtures returned error: %v", err)
	}
	if len(names) != 10 {
		t.Fatalf("wrote %d fixtures, want 10", len(names))
	}

	valid, invalid := 0, 0
	for _, name := range names {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("fixture %s not on disk: %v", name, err)
		}
		if _, err := naming.Parse(name); err != nil {
			invalid++
		} else {
			valid++
		}
	}

	// Every fifth fixture is malformed.
	if valid != 8 || invalid != 2 {
		t.Errorf("got %d valid / %d invalid fixtures, want 8 / 2", valid, invalid)
	}
}

func TestWriteFixturesDeterministic(t *testing.T) {
	first, err := WriteFixtures(t.TempDir(), 7)
	if err != nil {
		t.Fatalf("WriteFixtures returned error: %v", err)
	}
	second, err := WriteFixtures(t.TempDir(), 7)
	if err != nil {
		t.Fatalf("WriteFixtures returned error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("fixture names differ between runs:\n%v\n%v", first, second)
	}

	// Names never collide.
	sorted := append([]string(nil), first...)
	sort.Strings(sorted)
	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1] {
			t.Errorf("duplicate fixture name %q", sorted[i])
		}
	}
}
