// Package manifest reads and updates package.json while preserving every
// field it does not touch.
package manifest

import (
	"fmt"
	"path/filepath"

	"github.com/tidwall/gjson"

	"github.com/AsierDev/zero-setup-biome/internal/jsondoc"
)

// FileName is the manifest file name.
const FileName = "package.json"

// Manifest is a parsed package.json.
type Manifest struct {
	path string
	doc  *jsondoc.Doc
}

// Read parses dir/package.json.
func Read(dir string) (*Manifest, error) {
	path := filepath.Join(dir, FileName)
	doc, err := jsondoc.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", FileName, err)
	}
	return &Manifest{path: path, doc: doc}, nil
}

// FromDocument wraps an already parsed object (used by tests and callers that
// hold the JSON in memory).
func FromDocument(doc *jsondoc.Doc) *Manifest {
	return &Manifest{doc: doc}
}

// Document exposes the underlying ordered tree.
func (m *Manifest) Document() *jsondoc.Doc {
	return m.doc
}

// Name returns the "name" field.
func (m *Manifest) Name() string {
	s, _ := m.doc.String("name")
	return s
}

// DependencyNames returns dependency names from "dependencies" then
// "devDependencies", in declaration order, each name once.
func (m *Manifest) DependencyNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, field := range []string{"dependencies", "devDependencies"} {
		for _, name := range m.doc.Keys(field) {
			if seen[name] {
				continue
			}
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// HasDependency reports whether name is declared in dependencies or
// devDependencies.
func (m *Manifest) HasDependency(name string) bool {
	for _, field := range []string{"dependencies", "devDependencies"} {
		if m.doc.Has(jsondoc.Path(field, name)) {
			return true
		}
	}
	return false
}

// Script returns scripts[name].
func (m *Manifest) Script(name string) (string, bool) {
	return m.doc.String(jsondoc.Path("scripts", name))
}

// MergeScripts sets every entry of scripts, keeping other scripts and their
// order. It reports whether anything changed.
func (m *Manifest) MergeScripts(keys []string, scripts map[string]string) (bool, error) {
	changed := false
	for _, k := range keys {
		v := scripts[k]
		if cur, ok := m.Script(k); ok && cur == v {
			continue
		}
		if err := m.doc.Set(jsondoc.Path("scripts", k), v); err != nil {
			return changed, err
		}
		changed = true
	}
	return changed, nil
}

// HasField reports whether a top-level field holds a truthy value
// (present, not null, not false, not an empty string).
func (m *Manifest) HasField(name string) bool {
	v := m.doc.Get(jsondoc.Path(name))
	switch v.Type {
	case gjson.Null, gjson.False:
		return false
	case gjson.String:
		return v.Str != ""
	}
	return v.Exists()
}

// Field returns a top-level field.
func (m *Manifest) Field(name string) gjson.Result {
	return m.doc.Get(jsondoc.Path(name))
}

// Write saves the manifest back to the file it was read from.
func (m *Manifest) Write() error {
	if m.path == "" {
		return fmt.Errorf("writing %s: manifest has no backing file", FileName)
	}
	if err := jsondoc.WriteFile(m.path, m.doc); err != nil {
		return fmt.Errorf("writing %s: %w", FileName, err)
	}
	return nil
}
