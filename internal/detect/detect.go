// Package detect inspects a project directory for ESLint, Prettier and Biome.
// This file provides Detect and the fixed config file lists.
package detect

import (
	"os"
	"path/filepath"

	"github.com/AsierDev/zero-setup-biome/internal/manifest"
)

// BiomeConfigFile is the Biome configuration document.
const BiomeConfigFile = "biome.json"

// Ignore files owned by the legacy tools.
const (
	ESLintIgnoreFile   = ".eslintignore"
	PrettierIgnoreFile = ".prettierignore"
)

// ProjectInfo is the detection result for one directory. It is computed fresh
// on every call.
type ProjectInfo struct {
	HasESLint      bool
	HasPrettier    bool
	HasBiome       bool
	HasManifest    bool
	ESLintConfig   string // first matching ESLint config file, "" if none
	PrettierConfig string // first matching Prettier config file, "" if none
	PackageManager PackageManager
}

// NothingToMigrate reports whether neither legacy tool is configured.
func (p ProjectInfo) NothingToMigrate() bool {
	return !p.HasESLint && !p.HasPrettier
}

// eslintConfigs is checked in order; the first existing file wins.
var eslintConfigs = []string{
	".eslintrc.js",
	".eslintrc.cjs",
	".eslintrc.json",
	".eslintrc.yaml",
	".eslintrc.yml",
	".eslintrc",
	"eslint.config.js",
	"eslint.config.mjs",
	"eslint.config.cjs",
}

// prettierConfigs is checked in order; the first existing file wins.
var prettierConfigs = []string{
	".prettierrc",
	".prettierrc.json",
	".prettierrc.yaml",
	".prettierrc.yml",
	".prettierrc.toml",
	".prettierrc.js",
	".prettierrc.cjs",
	".prettierrc.mjs",
	"prettier.config.js",
	"prettier.config.cjs",
	"prettier.config.mjs",
}

// ESLintConfigFiles returns the known ESLint config file names in precedence order.
func ESLintConfigFiles() []string {
	return append([]string(nil), eslintConfigs...)
}

// PrettierConfigFiles returns the known Prettier config file names in precedence order.
func PrettierConfigFiles() []string {
	return append([]string(nil), prettierConfigs...)
}

// Detect scans dir. userAgent is the package manager's user-agent signal
// (npm_config_user_agent), passed in rather than read from the environment.
// A missing or malformed package.json never fails detection; it is reported
// as HasManifest=false and contributes no embedded config signals.
func Detect(dir, userAgent string) ProjectInfo {
	info := ProjectInfo{
		ESLintConfig:   firstExisting(dir, eslintConfigs),
		PrettierConfig: firstExisting(dir, prettierConfigs),
		HasBiome:       fileExists(filepath.Join(dir, BiomeConfigFile)),
		PackageManager: DetectPackageManager(dir, userAgent),
	}

	var eslintInPkg, prettierInPkg bool
	if m, err := manifest.Read(dir); err == nil {
		info.HasManifest = true
		eslintInPkg = m.HasField("eslintConfig")
		prettierInPkg = m.HasField("prettier")
	}

	info.HasESLint = info.ESLintConfig != "" || eslintInPkg
	info.HasPrettier = info.PrettierConfig != "" || prettierInPkg
	return info
}

// ExistingLegacyFiles returns every ESLint/Prettier config and ignore file
// present in dir: ESLint configs, .eslintignore, Prettier configs,
// .prettierignore, in that order.
func ExistingLegacyFiles(dir string) []string {
	var found []string
	appendIf := func(name string) {
		if fileExists(filepath.Join(dir, name)) {
			found = append(found, name)
		}
	}
	for _, f := range eslintConfigs {
		appendIf(f)
	}
	appendIf(ESLintIgnoreFile)
	for _, f := range prettierConfigs {
		appendIf(f)
	}
	appendIf(PrettierIgnoreFile)
	return found
}

func firstExisting(dir string, names []string) string {
	for _, name := range names {
		if fileExists(filepath.Join(dir, name)) {
			return name
		}
	}
	return ""
}

// fileExists returns true if path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
