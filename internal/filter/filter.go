// Package filter resolves positional arguments into the list of files to
// process. Explicit files pass through untouched; directories are walked,
// and when unsealing only files carrying the sealed suffix are selected.
package filter

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Resolve expands args into concrete file paths. sealedOnly restricts
// walked directory entries to files ending in suffix. It returns the
// selected files and the total number of candidates scanned.
func Resolve(args []string, suffix string, sealedOnly bool) (files []string, scanned int, err error) {
	seen := make(map[string]struct{})

	add := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}

		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, arg := range args {
		arg = filepath.Clean(arg)

		info, err := os.Stat(arg)
		if err != nil {
			return nil, scanned, fmt.Errorf("stat %q: %w", arg, err)
		}

		if !info.IsDir() {
			// Explicit file: bypass suffix filtering.
			scanned++

			add(arg)

			continue
		}

		walked, total, err := walkDir(arg, suffix, sealedOnly)
		if err != nil {
			return nil, scanned, err
		}

		scanned += total

		for _, path := range walked {
			add(path)
		}
	}

	if len(files) == 0 {
		return nil, scanned, fmt.Errorf("no files to process under: %v", args)
	}

	return files, scanned, nil
}

// walkDir walks root recursively, keeping files that pass the suffix filter.
func walkDir(root, suffix string, sealedOnly bool) (files []string, total int, err error) {
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		total++

		if sealedOnly && !strings.HasSuffix(path, suffix) {
			return nil
		}

		files = append(files, path)

		return nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("walking %q: %w", root, err)
	}

	return files, total, nil
}
