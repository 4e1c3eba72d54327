package imguisys

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/magefile/mage/sh"
)

// CopyTree replaces dst with a copy of the directory tree at src.
//
// Every file is copied, every subdirectory is recursed into and nothing is
// filtered. Symlinks are followed so the copy holds real files. Any stale
// content at dst is removed first, which keeps the copied file set identical
// to the source file set.
//
// # Errors
//
// The first filesystem error aborts the copy and is returned wrapped with
// the path it occurred on. There are no retries.
func CopyTree(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("vendor %s: %w", src, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("vendor %s: not a directory", src)
	}

	if err := sh.Rm(dst); err != nil {
		return fmt.Errorf("vendor: clear %s: %w", dst, err)
	}

	return copyDir(src, dst, map[string]bool{})
}

// copyDir copies src to dst. ancestors holds the resolved directories being
// copied above this one; reaching one of them again through a symlink is a
// loop.
func copyDir(src, dst string, ancestors map[string]bool) error {
	// WalkDir does not descend into a symlinked root.
	resolved, err := filepath.EvalSymlinks(src)
	if err != nil {
		return fmt.Errorf("vendor: resolve %s: %w", src, err)
	}
	if ancestors[resolved] {
		return fmt.Errorf("vendor: symlink loop at %s", src)
	}
	ancestors[resolved] = true
	defer delete(ancestors, resolved)
	src = resolved

	if err := os.MkdirAll(dst, 0o755); err != nil {
		return fmt.Errorf("vendor: create %s: %w", dst, err)
	}

	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("vendor: read %s: %w", path, err)
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if d.Type()&fs.ModeSymlink != 0 {
			resolved, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("vendor: resolve %s: %w", path, err)
			}
			if resolved.IsDir() {
				return copyDir(path, target, ancestors)
			}
			return copyFile(path, target)
		}

		if d.IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("vendor: create %s: %w", target, err)
			}
			return nil
		}

		return copyFile(path, target)
	})
}

func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("vendor: create %s: %w", filepath.Dir(dst), err)
	}
	if err := sh.Copy(dst, src); err != nil {
		return fmt.Errorf("vendor: %w", err)
	}
	return nil
}
