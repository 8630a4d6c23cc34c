package migrate

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/AsierDev/zero-setup-biome/internal/biome"
	"github.com/AsierDev/zero-setup-biome/internal/manifest"
)

// Validate checks a migrated project and returns one message per problem.
// pkg is the Biome package name expected among the dependencies.
func Validate(dir, pkg string) []string {
	var issues []string

	if _, err := os.Stat(filepath.Join(dir, biome.ConfigFile)); err != nil {
		issues = append(issues, biome.ConfigFile+" not found")
	}

	m, err := manifest.Read(dir)
	if err != nil {
		return append(issues, "package.json could not be read")
	}
	if !m.HasDependency(pkg) {
		issues = append(issues, pkg+" not found in dependencies")
	}
	if lint, _ := m.Script("lint"); !strings.Contains(lint, "biome") {
		issues = append(issues, `package.json "lint" script does not use Biome`)
	}
	return issues
}
