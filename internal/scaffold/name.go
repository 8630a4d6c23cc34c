// Package scaffold creates a new project from an embedded template.
package scaffold

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// ErrInvalidProjectName wraps every project-name rejection.
var ErrInvalidProjectName = errors.New("invalid project name")

// MaxNameLength is npm's package name limit.
const MaxNameLength = 214

var (
	invalidNameChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1F]`)
	reservedNames    = map[string]bool{"node_modules": true, "favicon.ico": true}
)

// ValidateName checks a project name before anything is created. The name
// becomes a directory under the working directory, so traversal and
// absolute paths are rejected along with characters npm or the file system
// cannot take.
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	switch {
	case trimmed == "":
		return fmt.Errorf("%w: project name cannot be empty", ErrInvalidProjectName)
	case filepath.IsAbs(trimmed) || strings.HasPrefix(trimmed, "/") || strings.Contains(trimmed, ".."):
		return fmt.Errorf("%w: path traversal not allowed", ErrInvalidProjectName)
	case strings.HasPrefix(trimmed, ".") || strings.HasPrefix(trimmed, "_"):
		return fmt.Errorf("%w: project name cannot start with . or _", ErrInvalidProjectName)
	case invalidNameChars.MatchString(trimmed):
		return fmt.Errorf("%w: project name contains invalid characters", ErrInvalidProjectName)
	case reservedNames[strings.ToLower(trimmed)]:
		return fmt.Errorf("%w: %q is a reserved name", ErrInvalidProjectName, trimmed)
	case len(trimmed) > MaxNameLength:
		return fmt.Errorf("%w: project name must be at most %d characters", ErrInvalidProjectName, MaxNameLength)
	}
	return nil
}

var (
	whitespace      = regexp.MustCompile(`\s+`)
	nonPackageChars = regexp.MustCompile(`[^a-z0-9~-]`)
	repeatedDashes  = regexp.MustCompile(`-{2,}`)
)

// ToPackageName derives an npm package name from a project name.
func ToPackageName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = whitespace.ReplaceAllString(s, "-")
	s = nonPackageChars.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	return repeatedDashes.ReplaceAllString(s, "-")
}
