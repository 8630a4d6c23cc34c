package biome

import (
	"bufio"
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/AsierDev/zero-setup-biome/internal/detect"
	"github.com/AsierDev/zero-setup-biome/internal/jsondoc"
	"github.com/AsierDev/zero-setup-biome/internal/manifest"
)

// GeneratedFolders are folders that commonly hold generated code. Each
// existing one is excluded.
var GeneratedFolders = []string{
	"src/api/gen",
	"src/generated",
	"generated",
	"gen",
	"src/types/generated",
}

// BaselineExcludes are always added to files.includes.
var BaselineExcludes = []string{
	"!**/gen/**",
	"!**/generated/**",
	"!**/*.generated.*",
	"!**/*.d.ts",
	"!**/dist/**",
	"!**/build/**",
	"!**/node_modules/**",
}

// eslintConfigsWithIgnorePatterns are the dedicated ESLint configs whose
// ignorePatterns can be read without evaluating code.
var eslintConfigsWithIgnorePatterns = []string{
	".eslintrc.json",
	".eslintrc",
	".eslintrc.yaml",
	".eslintrc.yml",
}

// Aggregate collects the negated exclude globs for dir: existing generated
// folders, the ESLint ignore list and the baseline. extraFolders are extra
// generated-folder candidates and may be doublestar patterns. The result has
// no duplicates and keeps first-seen order.
func Aggregate(dir string, extraFolders []string) []string {
	set := newOrderedSet()
	set.add(GeneratedFolderExcludes(dir, extraFolders)...)
	set.add(ESLintIgnorePatterns(dir)...)
	set.add(BaselineExcludes...)
	return set.items
}

// GeneratedFolderExcludes returns "!**/<folder>/**" for every candidate
// folder that exists under dir.
func GeneratedFolderExcludes(dir string, extraFolders []string) []string {
	fsys := os.DirFS(dir)
	set := newOrderedSet()
	candidates := append(append([]string(nil), GeneratedFolders...), extraFolders...)
	for _, pattern := range candidates {
		pattern = strings.Trim(filepath.ToSlash(pattern), "/")
		if pattern == "" || !doublestar.ValidatePattern(pattern) {
			continue
		}
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			continue
		}
		for _, m := range matches {
			if info, err := fs.Stat(fsys, m); err == nil && info.IsDir() {
				set.add("!**/" + m + "/**")
			}
		}
	}
	return set.items
}

// ESLintIgnorePatterns reads the ESLint ignore list from the first non-empty
// source: .eslintignore, a dedicated JSON or YAML config's ignorePatterns,
// then the manifest eslintConfig.ignorePatterns. Sources are never merged.
// Every returned pattern is negated.
func ESLintIgnorePatterns(dir string) []string {
	if data, err := os.ReadFile(filepath.Join(dir, detect.ESLintIgnoreFile)); err == nil {
		if patterns := ParseIgnoreFile(data); len(patterns) > 0 {
			return patterns
		}
	}

	for _, name := range eslintConfigsWithIgnorePatterns {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			continue
		}
		if patterns := NormalizeConfigPatterns(readIgnorePatterns(name, data)); len(patterns) > 0 {
			return patterns
		}
	}

	if m, err := manifest.Read(dir); err == nil {
		raw, _ := m.Document().Strings("eslintConfig.ignorePatterns")
		return NormalizeConfigPatterns(raw)
	}
	return nil
}

// ParseIgnoreFile converts .eslintignore content to negated globs. Blank
// lines and comments are skipped. Lines starting with "!" re-include paths,
// which Biome's includes cannot express, so they are dropped.
func ParseIgnoreFile(data []byte) []string {
	set := newOrderedSet()
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			continue
		}
		if p, ok := negate(line); ok {
			set.add(p)
		}
	}
	return set.items
}

// NormalizeConfigPatterns converts an ignorePatterns array to negated globs.
// A "!" entry re-includes paths in ESLint but would exclude them in Biome, so
// it is dropped as in ParseIgnoreFile.
func NormalizeConfigPatterns(patterns []string) []string {
	set := newOrderedSet()
	for _, raw := range patterns {
		raw = strings.TrimSpace(raw)
		if raw == "" || strings.HasPrefix(raw, "!") {
			continue
		}
		if p, ok := negate(raw); ok {
			set.add(p)
		}
	}
	return set.items
}

func negate(pattern string) (string, bool) {
	pattern = strings.TrimRight(pattern, "/")
	if pattern == "" || !doublestar.ValidatePattern(pattern) {
		return "", false
	}
	return "!" + pattern, true
}

func readIgnorePatterns(name string, data []byte) []string {
	var doc struct {
		IgnorePatterns []string `yaml:"ignorePatterns"`
	}
	switch filepath.Ext(name) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil
		}
		return doc.IgnorePatterns
	}
	jd, err := jsondoc.Parse(data)
	if err != nil {
		// .eslintrc without an extension may also be YAML.
		if name == ".eslintrc" && yaml.Unmarshal(data, &doc) == nil {
			return doc.IgnorePatterns
		}
		return nil
	}
	patterns, _ := jd.Strings("ignorePatterns")
	return patterns
}

// IsWildcardInclude reports whether p includes every file.
func IsWildcardInclude(p string) bool {
	return p == "**" || p == "**/*"
}

// MergeIncludes adds excludes to includes with set semantics. When includes
// has no wildcard entry, "**" is put first so the excludes apply to
// something.
func MergeIncludes(includes, excludes []string) []string {
	set := newOrderedSet()
	hasWildcard := false
	for _, p := range includes {
		if IsWildcardInclude(p) {
			hasWildcard = true
			break
		}
	}
	if !hasWildcard {
		set.add("**")
	}
	set.add(includes...)
	set.add(excludes...)
	return set.items
}

type orderedSet struct {
	seen  map[string]bool
	items []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]bool)}
}

func (s *orderedSet) add(values ...string) {
	for _, v := range values {
		if s.seen[v] {
			continue
		}
		s.seen[v] = true
		s.items = append(s.items, v)
	}
}
