// pm.go contains package manager detection and command construction.
package detect

import (
	"fmt"
	"path/filepath"
	"strings"
)

// PackageManager identifies a JavaScript package manager.
type PackageManager string

const (
	NPM  PackageManager = "npm"
	PNPM PackageManager = "pnpm"
	Yarn PackageManager = "yarn"
	Bun  PackageManager = "bun"
)

// PackageManagers lists the supported package managers.
var PackageManagers = []PackageManager{NPM, PNPM, Yarn, Bun}

// ParsePackageManager validates a user-supplied package manager name.
func ParsePackageManager(s string) (PackageManager, error) {
	for _, pm := range PackageManagers {
		if string(pm) == s {
			return pm, nil
		}
	}
	return "", fmt.Errorf("unknown package manager %q (want npm, pnpm, yarn or bun)", s)
}

// userAgentOrder is the substring priority for the user-agent signal.
// "pnpm" and "yarn" user agents also mention npm, so npm is checked last.
var userAgentOrder = []PackageManager{Bun, PNPM, Yarn, NPM}

// lockfiles is checked in order; the first existing lockfile wins.
var lockfiles = []struct {
	name string
	pm   PackageManager
}{
	{"bun.lockb", Bun},
	{"pnpm-lock.yaml", PNPM},
	{"yarn.lock", Yarn},
	{"package-lock.json", NPM},
}

// DetectPackageManager picks the package manager for dir.
// The user-agent signal of the invoking command wins over lockfile evidence;
// npm is the fallback.
func DetectPackageManager(dir, userAgent string) PackageManager {
	if userAgent != "" {
		for _, pm := range userAgentOrder {
			if strings.Contains(userAgent, string(pm)) {
				return pm
			}
		}
	}

	for _, lf := range lockfiles {
		if fileExists(filepath.Join(dir, lf.name)) {
			return lf.pm
		}
	}

	return NPM
}

// InstallArgs returns the command that installs all dependencies.
func (pm PackageManager) InstallArgs() []string {
	switch pm {
	case Bun:
		return []string{"bun", "install"}
	case PNPM:
		return []string{"pnpm", "install"}
	case Yarn:
		return []string{"yarn"}
	default:
		return []string{"npm", "install"}
	}
}

// AddDevArgs returns the command that adds pkgs as dev dependencies.
func (pm PackageManager) AddDevArgs(pkgs ...string) []string {
	verb := "add"
	if pm == NPM || pm == "" {
		verb = "install"
	}
	return append([]string{pm.bin(), verb, "-D"}, pkgs...)
}

// RemoveArgs returns the command that uninstalls pkgs.
func (pm PackageManager) RemoveArgs(pkgs ...string) []string {
	verb := "remove"
	if pm == NPM || pm == "" {
		verb = "uninstall"
	}
	return append([]string{pm.bin(), verb}, pkgs...)
}

// RunCommand returns the shell text that runs a package.json script.
func (pm PackageManager) RunCommand(script string) string {
	switch pm {
	case Bun:
		return "bun run " + script
	case PNPM:
		return "pnpm " + script
	case Yarn:
		return "yarn " + script
	default:
		return "npm run " + script
	}
}

func (pm PackageManager) bin() string {
	if pm == "" {
		return string(NPM)
	}
	return string(pm)
}
