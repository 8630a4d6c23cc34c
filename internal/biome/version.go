package biome

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/coreos/go-semver/semver"
)

// ErrVersionTooOld is returned by CheckVersion when the installed Biome is
// older than the supported minimum.
var ErrVersionTooOld = errors.New("biome version is below the supported minimum")

// ErrNoVersion is returned when no version number appears in the output of
// `biome --version`.
var ErrNoVersion = errors.New("could not determine biome version")

var versionPattern = regexp.MustCompile(`(\d+\.\d+\.\d+)`)

// ParseVersion extracts the first X.Y.Z from `biome --version` output.
func ParseVersion(output string) (*semver.Version, error) {
	match := versionPattern.FindString(output)
	if match == "" {
		return nil, ErrNoVersion
	}
	return semver.NewVersion(match)
}

// CheckVersion parses output and compares it with minimum.
func CheckVersion(output, minimum string) (*semver.Version, error) {
	floor, err := semver.NewVersion(minimum)
	if err != nil {
		return nil, fmt.Errorf("minimum biome version %q: %w", minimum, err)
	}
	v, err := ParseVersion(output)
	if err != nil {
		return nil, err
	}
	if v.LessThan(*floor) {
		return v, fmt.Errorf("%w: found %s, need %s or newer", ErrVersionTooOld, v, floor)
	}
	return v, nil
}
