// Package testutil provides test helper utilities for zero-setup-biome tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// TempProject creates a temporary directory with the given files and returns its path.
// Files is a map of relative path -> content. Directories are created as needed.
// A path ending in "/" creates an empty directory.
// The directory is automatically cleaned up when the test finishes.
func TempProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()

	for relPath, content := range files {
		absPath := filepath.Join(dir, relPath)
		if relPath[len(relPath)-1] == '/' {
			if err := os.MkdirAll(absPath, 0755); err != nil {
				t.Fatalf("creating directory %s: %v", relPath, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
			t.Fatalf("creating directory for %s: %v", relPath, err)
		}
		if err := os.WriteFile(absPath, []byte(content), 0644); err != nil {
			t.Fatalf("writing %s: %v", relPath, err)
		}
	}

	return dir
}

// Snapshot returns every regular file under dir mapped to its contents.
// Used to assert that an operation performed no file-system mutation.
func Snapshot(t *testing.T, dir string) map[string]string {
	t.Helper()
	out := make(map[string]string)
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(dir, path)
		if d.IsDir() {
			out[rel+"/"] = ""
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		out[rel] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("snapshot %s: %v", dir, err)
	}
	return out
}

// SortedKeys returns the keys of m in sorted order.
func SortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// PackageJSON marshals a manifest map with two-space indentation.
func PackageJSON(pkg map[string]interface{}) string {
	data, _ := json.MarshalIndent(pkg, "", "  ")
	return string(data)
}

// LegacyProject returns a project with ESLint and Prettier configured through
// dedicated files, plus TypeScript.
func LegacyProject() map[string]string {
	pkg := map[string]interface{}{
		"name":    "legacy-app",
		"version": "1.0.0",
		"dependencies": map[string]string{
			"react": "^18.0.0",
		},
		"devDependencies": map[string]string{
			"eslint":                           "^8.0.0",
			"prettier":                         "^3.0.0",
			"typescript":                       "^5.0.0",
			"@typescript-eslint/parser":        "^6.0.0",
			"eslint-config-prettier":           "^9.0.0",
			"eslint-plugin-react":              "^7.0.0",
			"prettier-plugin-tailwindcss":      "^0.5.0",
			"@typescript-eslint/eslint-plugin": "^6.0.0",
		},
		"scripts": map[string]string{
			"build": "tsc && vite build",
			"lint":  "eslint .",
		},
	}

	return map[string]string{
		"package.json":      PackageJSON(pkg),
		".eslintrc.json":    `{"extends": ["eslint:recommended"], "ignorePatterns": ["coverage/", "legacy/**"]}`,
		".prettierrc.json":  `{"singleQuote": true, "trailingComma": "all", "semi": false}`,
		".eslintignore":     "# comment\nstorybook-static/\n",
		".prettierignore":   "dist\n",
		"package-lock.json": "{}",
		"src/index.ts":      `export const main = () => console.log("hello");`,
	}
}

// ManifestOnlyProject returns a project whose ESLint and Prettier configs
// live inside package.json.
func ManifestOnlyProject() map[string]string {
	pkg := map[string]interface{}{
		"name": "embedded-config",
		"devDependencies": map[string]string{
			"eslint":   "^8.0.0",
			"prettier": "^3.0.0",
		},
		"eslintConfig": map[string]interface{}{
			"extends":        []string{"react-app"},
			"ignorePatterns": []string{"public/", "!public/keep.js"},
		},
		"prettier": map[string]interface{}{
			"tabWidth": 4,
			"useTabs":  true,
		},
	}
	return map[string]string{
		"package.json": PackageJSON(pkg),
		"yarn.lock":    "",
	}
}

// CleanProject returns a project with no ESLint or Prettier setup at all.
func CleanProject() map[string]string {
	pkg := map[string]interface{}{
		"name": "clean-app",
		"dependencies": map[string]string{
			"react": "^18.0.0",
		},
		"devDependencies": map[string]string{
			"typescript": "^5.0.0",
		},
	}
	return map[string]string{
		"package.json": PackageJSON(pkg),
		"src/main.ts":  "console.log(1)\n",
	}
}

// BiomeProject returns a project that already has Biome configured.
func BiomeProject() map[string]string {
	pkg := map[string]interface{}{
		"name": "biome-app",
		"devDependencies": map[string]string{
			"@biomejs/biome": "^1.9.0",
			"prettier":       "^3.0.0",
		},
	}
	return map[string]string{
		"package.json": PackageJSON(pkg),
		"biome.json":   `{"$schema": "https://biomejs.dev/schemas/1.9.0/schema.json", "files": {"includes": ["src/**"]}}`,
		".prettierrc":  "trailingComma: es5\nprintWidth: 100\n",
	}
}
