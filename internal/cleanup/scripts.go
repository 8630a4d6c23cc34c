// scripts.go merges the Biome scripts into package.json.
package cleanup

import (
	"fmt"

	"github.com/AsierDev/zero-setup-biome/internal/manifest"
)

// ScriptNames is the order the Biome scripts are written in.
var ScriptNames = []string{"lint", "lint:fix", "format"}

// BiomeScripts are the package.json scripts written after a migration.
var BiomeScripts = map[string]string{
	"lint":     "biome check .",
	"lint:fix": "biome check --write .",
	"format":   "biome format --write .",
}

// UpdateScripts merges BiomeScripts into dir/package.json, keeping every
// other script. Returns true when the file was rewritten.
func UpdateScripts(dir string) (bool, error) {
	m, err := manifest.Read(dir)
	if err != nil {
		return false, err
	}
	changed, err := m.MergeScripts(ScriptNames, BiomeScripts)
	if err != nil {
		return false, fmt.Errorf("updating scripts: %w", err)
	}
	if !changed {
		return false, nil
	}
	if err := m.Write(); err != nil {
		return false, fmt.Errorf("updating scripts: %w", err)
	}
	return true, nil
}
