package filter_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/encryption4all/goseal/internal/filter"
)

// tree creates a small directory layout and returns its root.
func tree(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()

	files := []string{
		"a.txt",
		"b.sealed",
		filepath.Join("sub", "c.sealed"),
		filepath.Join("sub", "d.log"),
	}

	for _, name := range files {
		path := filepath.Join(dir, name)

		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			t.Fatalf("mkdir: %v", err)
		}

		if err := os.WriteFile(path, []byte(name), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	return dir
}

func TestResolveWalksDirectories(t *testing.T) {
	t.Parallel()

	dir := tree(t)

	files, scanned, err := filter.Resolve([]string{dir}, ".sealed", false)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if scanned != 4 {
		t.Errorf("scanned = %d, want 4", scanned)
	}

	if len(files) != 4 {
		t.Errorf("selected %d files, want 4: %v", len(files), files)
	}
}

func TestResolveSealedOnly(t *testing.T) {
	t.Parallel()

	dir := tree(t)

	files, scanned, err := filter.Resolve([]string{dir}, ".sealed", true)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if scanned != 4 {
		t.Errorf("scanned = %d, want 4", scanned)
	}

	want := []string{
		filepath.Join(dir, "b.sealed"),
		filepath.Join(dir, "sub", "c.sealed"),
	}

	if len(files) != len(want) {
		t.Fatalf("selected %v, want %v", files, want)
	}

	for i, f := range files {
		if f != want[i] {
			t.Errorf("files[%d] = %q, want %q", i, f, want[i])
		}
	}
}

func TestResolveExplicitFileBypassesFilter(t *testing.T) {
	t.Parallel()

	dir := tree(t)

	// A named file is processed even without the sealed suffix.
	files, _, err := filter.Resolve([]string{filepath.Join(dir, "a.txt")}, ".sealed", true)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if len(files) != 1 || files[0] != filepath.Join(dir, "a.txt") {
		t.Errorf("files = %v, want the explicit file", files)
	}
}

func TestResolveDeduplicates(t *testing.T) {
	t.Parallel()

	dir := tree(t)
	explicit := filepath.Join(dir, "b.sealed")

	files, _, err := filter.Resolve([]string{explicit, dir}, ".sealed", true)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	count := 0

	for _, f := range files {
		if f == explicit {
			count++
		}
	}

	if count != 1 {
		t.Errorf("explicit file appeared %d times, want once", count)
	}
}

func TestResolveErrors(t *testing.T) {
	t.Parallel()

	dir := tree(t)

	if _, _, err := filter.Resolve([]string{filepath.Join(dir, "missing")}, "", false); err == nil {
		t.Error("expected error for a missing path")
	}

	empty := t.TempDir()

	if _, _, err := filter.Resolve([]string{empty}, ".sealed", true); err == nil {
		t.Error("expected error when nothing matches")
	}
}
