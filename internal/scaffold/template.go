package scaffold

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrTemplateTooLarge = errors.New("template exceeds size limits")
)

// Template limits.
const (
	MaxTemplateFiles = 10000
	MaxTemplateBytes = 100 * 1024 * 1024
)

// skipDir is never scanned or copied.
const skipDir = "node_modules"

// interpolated lists the files whose placeholders are replaced on copy.
var interpolated = []string{"package.json", "README.md", "index.html"}

// renames maps template file names to their names in the new project.
// _gitignore keeps npm from dropping the file on publish; _biome.json keeps
// the template out of the CLI's own Biome config discovery.
var renames = map[string]string{
	"_gitignore":  ".gitignore",
	"_biome.json": "biome.json",
}

// TemplateStats is the size of a validated template.
type TemplateStats struct {
	Files int
	Bytes int64
}

// ValidateTemplate walks tree and rejects it when it holds more than
// MaxTemplateFiles files or MaxTemplateBytes bytes. node_modules is skipped.
func ValidateTemplate(tree fs.FS) (TemplateStats, error) {
	var stats TemplateStats
	err := fs.WalkDir(tree, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == skipDir {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		stats.Files++
		stats.Bytes += info.Size()
		if stats.Files > MaxTemplateFiles {
			return fmt.Errorf("%w: more than %d files", ErrTemplateTooLarge, MaxTemplateFiles)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return stats, fmt.Errorf("%w: %v", ErrTemplateNotFound, err)
		}
		return stats, err
	}
	if stats.Bytes > MaxTemplateBytes {
		return stats, fmt.Errorf("%w: %.2fMB exceeds %dMB", ErrTemplateTooLarge,
			float64(stats.Bytes)/(1024*1024), MaxTemplateBytes/(1024*1024))
	}
	return stats, nil
}

// Vars are the placeholder values for a new project.
type Vars struct {
	ProjectName string
	PackageName string
}

// CopyTemplate copies tree into target, skipping node_modules, then fills in
// placeholders and applies the template file renames. target is created if
// needed; existing files with the same names are overwritten.
func CopyTemplate(tree fs.FS, target string, vars Vars) error {
	if err := os.MkdirAll(target, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", target, err)
	}

	err := fs.WalkDir(tree, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Name() == skipDir {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		dest := filepath.Join(target, filepath.FromSlash(p))
		if d.IsDir() {
			return os.MkdirAll(dest, 0755)
		}
		data, err := fs.ReadFile(tree, p)
		if err != nil {
			return err
		}
		return os.WriteFile(dest, data, 0644)
	})
	if err != nil {
		return fmt.Errorf("copying template: %w", err)
	}

	if err := interpolate(target, vars); err != nil {
		return err
	}

	for from, to := range renames {
		src := filepath.Join(target, from)
		if _, err := os.Stat(src); err != nil {
			continue
		}
		if err := os.Rename(src, filepath.Join(target, to)); err != nil {
			return fmt.Errorf("renaming %s: %w", from, err)
		}
	}
	return nil
}

func interpolate(dir string, vars Vars) error {
	r := strings.NewReplacer(
		"{{projectName}}", vars.ProjectName,
		"{{packageName}}", vars.PackageName,
	)
	for _, name := range interpolated {
		p := filepath.Join(dir, name)
		data, err := os.ReadFile(p)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("reading %s: %w", name, err)
		}
		if err := os.WriteFile(p, []byte(r.Replace(string(data))), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
	}
	return nil
}

// IsEmptyDir reports whether dir is missing or has no entries.
func IsEmptyDir(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return len(entries) == 0, nil
}
