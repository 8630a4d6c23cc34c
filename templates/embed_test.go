package templates

import (
	"io/fs"
	"testing"
)

func TestLookup(t *testing.T) {
	for _, name := range Names() {
		tree, ok := Lookup(name)
		if !ok {
			t.Fatalf("Lookup(%q) not found", name)
		}
		for _, f := range []string{"package.json", "README.md", "index.html", "_gitignore", "_biome.json", "src/App.tsx"} {
			if _, err := fs.Stat(tree, f); err != nil {
				t.Errorf("template %s missing %s: %v", name, f, err)
			}
		}
	}

	if _, ok := Lookup("vue-js"); ok {
		t.Error("Lookup(vue-js) found a template that is not embedded")
	}
}

func TestDefaultIsAvailable(t *testing.T) {
	if _, ok := Lookup(Default); !ok {
		t.Errorf("default template %q is not embedded", Default)
	}
}
