// Package cleanup removes ESLint/Prettier packages and files after a
// migration and points package.json scripts at Biome.
package cleanup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/AsierDev/zero-setup-biome/internal/detect"
	"github.com/AsierDev/zero-setup-biome/internal/exec"
	"github.com/AsierDev/zero-setup-biome/internal/manifest"
)

// DepsToRemove reads package.json in dir and returns its legacy packages.
func DepsToRemove(dir string, keep ...string) ([]string, error) {
	m, err := manifest.Read(dir)
	if err != nil {
		return nil, err
	}
	return Classify(m.DependencyNames(), keep...), nil
}

// Uninstall removes deps with the project's package manager. It is a no-op
// for an empty list.
func Uninstall(ctx context.Context, runner exec.Runner, dir string, pm detect.PackageManager, deps []string) error {
	if len(deps) == 0 {
		return nil
	}
	args := pm.RemoveArgs(deps...)
	if _, err := runner.Run(ctx, dir, args[0], args[1:]...); err != nil {
		return fmt.Errorf("uninstalling %d packages: %w", len(deps), err)
	}
	return nil
}

// ESLintFiles lists the ESLint config and ignore file names. They are kept
// for manual review when the ESLint migration did not succeed.
func ESLintFiles() []string {
	return append(detect.ESLintConfigFiles(), detect.ESLintIgnoreFile)
}

// RemoveLegacyFiles deletes every known ESLint/Prettier config and ignore
// file in dir except the names in keep. Only names from the fixed lists are
// touched. If dryRun is true nothing is deleted; the function only returns
// the names that would be removed. Returns the list of removed file names.
func RemoveLegacyFiles(dir string, dryRun bool, keep ...string) ([]string, error) {
	var candidates []string
	for _, name := range detect.ExistingLegacyFiles(dir) {
		if !slices.Contains(keep, name) {
			candidates = append(candidates, name)
		}
	}
	if dryRun {
		return candidates, nil
	}

	var removed []string
	for _, name := range candidates {
		path := filepath.Join(dir, name)
		if err := os.Remove(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return removed, fmt.Errorf("removing %s: %w", name, err)
		}
		removed = append(removed, name)
	}
	return removed, nil
}
