// Package fileutil provides shared file operation helpers.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
)

const executableBits = 0o111

// AtomicWrite stages output in a temporary file next to the destination and
// renames it into place on Commit, so a failed run never leaves a partial
// output file behind.
type AtomicWrite struct {
	// SrcInfo is the stat result of the source file.
	SrcInfo os.FileInfo

	// IsExec reports whether the source file had any execute bit set.
	IsExec bool

	// File is the temporary file to write output into.
	File *os.File

	tmpName   string
	committed bool
}

// Begin stats the source file and creates the temporary file in the
// destination directory. Callers must defer Abort.
func Begin(src, outPath string) (*AtomicWrite, error) {
	info, err := os.Stat(src)
	if err != nil {
		return nil, fmt.Errorf("getting file info for %q: %w", src, err)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(outPath), ".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("creating temporary file: %w", err)
	}

	return &AtomicWrite{
		SrcInfo: info,
		IsExec:  info.Mode()&executableBits != 0,
		File:    tmpFile,
		tmpName: tmpFile.Name(),
	}, nil
}

// Abort closes the temporary file and removes it unless Commit succeeded.
// It is intended as a deferred call.
func (a *AtomicWrite) Abort() {
	if a.committed {
		return
	}

	a.File.Close()       //nolint:errcheck,gosec // best-effort cleanup
	os.Remove(a.tmpName) //nolint:errcheck,gosec // best-effort cleanup
}

// Commit sets permissions, closes the temporary file and renames it to
// outPath, optionally carrying over the source modification time. It
// returns the size of the final output file.
func (a *AtomicWrite) Commit(outPath string, perm os.FileMode, preserveTimestamps bool) (int64, error) {
	if err := os.Chmod(a.tmpName, perm); err != nil {
		return 0, fmt.Errorf("setting file permissions: %w", err)
	}

	if err := a.File.Close(); err != nil {
		return 0, fmt.Errorf("closing temporary file: %w", err)
	}

	if err := os.Rename(a.tmpName, outPath); err != nil {
		return 0, fmt.Errorf("renaming output file: %w", err)
	}

	a.committed = true

	if preserveTimestamps {
		modTime := a.SrcInfo.ModTime()
		if err := os.Chtimes(outPath, modTime, modTime); err != nil {
			return 0, fmt.Errorf("preserving timestamps: %w", err)
		}
	}

	outInfo, err := os.Stat(outPath)
	if err != nil {
		return 0, fmt.Errorf("stat output %q: %w", outPath, err)
	}

	return outInfo.Size(), nil
}
