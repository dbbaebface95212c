package source

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileRecord describes one entry of an analyzed source tree. Records are
// produced once by the walk (or the tree API) and never mutated afterwards.
type FileRecord struct {
	Name         string `json:"name"`
	Kind         string `json:"type"` // "file" or "directory"
	Path         string `json:"path"` // root-relative, forward slashes, leading "/"
	Extension    string `json:"extension,omitempty"`
	SizeBytes    int64  `json:"size,omitempty"`
	AbsolutePath string `json:"-"` // only for content reads, never persisted
}

// Record kinds.
const (
	KindFile      = "file"
	KindDirectory = "directory"
)

// IsFile reports whether the record is a regular file entry.
func (r FileRecord) IsFile() bool {
	return r.Kind == KindFile
}

// directories never descended into during the walk
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"__pycache__":  true,
	"venv":         true,
	"env":          true,
	"target":       true,
	"build":        true,
	"dist":         true,
	".idea":        true,
	".vscode":      true,
	".gradle":      true,
}

// hidden files that still matter for stack inference
var allowedHidden = map[string]bool{
	".gitignore":     true,
	".env.example":   true,
	".dockerignore":  true,
	".gitlab-ci.yml": true,
}

func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || skipDirs[name]
}

func skipFile(name string) bool {
	if strings.HasPrefix(name, ".") {
		return !allowedHidden[name]
	}
	return false
}

// Walk collects FileRecords for every file and directory under root,
// excluding version-control internals, dependency caches and hidden files
// outside the allow-list. Paths are root-relative with forward slashes.
func Walk(root string) ([]FileRecord, error) {
	var records []FileRecord

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		relSlash := "/" + filepath.ToSlash(rel)

		if d.IsDir() {
			if skipDir(d.Name()) {
				return filepath.SkipDir
			}
			records = append(records, FileRecord{
				Name:         d.Name(),
				Kind:         KindDirectory,
				Path:         relSlash,
				AbsolutePath: path,
			})
			return nil
		}

		if skipFile(d.Name()) {
			return nil
		}

		var size int64
		if info, err := d.Info(); err == nil {
			size = info.Size()
		}
		records = append(records, FileRecord{
			Name:         d.Name(),
			Kind:         KindFile,
			Path:         relSlash,
			Extension:    strings.ToLower(filepath.Ext(d.Name())),
			SizeBytes:    size,
			AbsolutePath: path,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return records, nil
}

// FindByName returns the absolute path of the first file record with the
// given name, or "" when the tree has no such file (or the record carries
// no absolute path, as in tree-API mode).
func FindByName(records []FileRecord, name string) string {
	for _, r := range records {
		if r.IsFile() && r.Name == name {
			return r.AbsolutePath
		}
	}
	return ""
}

// HasFile reports whether any file record carries the given name.
func HasFile(records []FileRecord, name string) bool {
	for _, r := range records {
		if r.IsFile() && r.Name == name {
			return true
		}
	}
	return false
}

// RemoveAll deletes a fetch temp directory, fixing up read-only entries
// that git leaves behind on some platforms.
func RemoveAll(dir string) {
	if dir == "" {
		return
	}
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err == nil && !d.IsDir() {
			_ = os.Chmod(path, 0o600)
		}
		return nil
	})
	_ = os.RemoveAll(dir)
}
