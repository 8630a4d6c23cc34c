// classify.go decides which declared dependencies belong to ESLint or Prettier.
package cleanup

import "strings"

// matchKind is how a pattern is compared against a package name.
type matchKind int

const (
	matchExact  matchKind = iota // name == value
	matchPrefix                  // name starts with value
	matchScope                   // name is inside the npm scope value ("@scope/")
	matchInfix                   // name contains value anywhere
)

type depPattern struct {
	kind  matchKind
	value string
}

func (p depPattern) matches(name string) bool {
	switch p.kind {
	case matchExact:
		return name == p.value
	case matchPrefix, matchScope:
		return strings.HasPrefix(name, p.value)
	case matchInfix:
		return strings.Contains(name, p.value)
	}
	return false
}

// legacyPatterns covers the ESLint and Prettier package families.
var legacyPatterns = []depPattern{
	{matchExact, "eslint"},
	{matchPrefix, "eslint-"},
	{matchScope, "@eslint/"},
	{matchScope, "@typescript-eslint/"},
	{matchInfix, "eslint-plugin-"},
	{matchInfix, "eslint-config-"},

	{matchExact, "prettier"},
	{matchPrefix, "prettier-"},
	{matchScope, "@prettier/"},
}

// protectedPackages are never classified as legacy, whatever the patterns say.
var protectedPackages = map[string]bool{
	"@biomejs/biome": true,
}

// IsLegacyDependency reports whether name is an ESLint or Prettier package.
// Only the name is inspected, never the version.
func IsLegacyDependency(name string) bool {
	if protectedPackages[name] {
		return false
	}
	for _, p := range legacyPatterns {
		if p.matches(name) {
			return true
		}
	}
	return false
}

// Classify returns the legacy packages among names, in first-seen order and
// without duplicates. keep lists extra package names that must never be
// returned (the configured Biome package).
func Classify(names []string, keep ...string) []string {
	kept := make(map[string]bool, len(keep))
	for _, k := range keep {
		kept[k] = true
	}

	seen := make(map[string]bool)
	var out []string
	for _, name := range names {
		if seen[name] || kept[name] {
			continue
		}
		seen[name] = true
		if IsLegacyDependency(name) {
			out = append(out, name)
		}
	}
	return out
}
