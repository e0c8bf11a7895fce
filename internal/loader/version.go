package loader

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// MinVersion is the oldest loader release whose profile format matches what
// the serializer emits (load_early and inline dependency tables).
const MinVersion = "0.6.0"

// CompareVersions compares two version strings using semver.
// Returns -1 if a < b, 0 if equal, 1 if a > b.
// Handles "v" prefix tolerance (strips leading "v" before parsing).
func CompareVersions(a, b string) (int, error) {
	av, err := parseSemver(a)
	if err != nil {
		return 0, fmt.Errorf("parsing version %q: %w", a, err)
	}
	bv, err := parseSemver(b)
	if err != nil {
		return 0, fmt.Errorf("parsing version %q: %w", b, err)
	}
	return av.Compare(bv), nil
}

// IsSupported reports whether a loader version is at least MinVersion.
func IsSupported(version string) (bool, error) {
	cmp, err := CompareVersions(version, MinVersion)
	if err != nil {
		return false, err
	}
	return cmp >= 0, nil
}

// parseSemver strips a leading "v" and parses the version string.
func parseSemver(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(version, "v")
	return semver.NewVersion(version)
}
