// Package retype rewrites text edits on Bubble Tea input controls through
// chains of transformers and keeps the caret where the user expects it.
//
// The library lives in subpackages: buffer (text model and index units),
// control (control and handler contracts), intercept (edit interception and
// caret correction), field (Bubble Tea controls) and preset (ready-made
// transformers).
package retype

import (
	_ "embed"
	"regexp"
	"strings"
)

var semverRE = regexp.MustCompile(`^(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)(?:-[0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*)?(?:\+[0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*)?$`)

//go:embed VERSION
var embeddedVersion string

// Version returns the library version without the leading `v`.
func Version() string {
	return strings.TrimSpace(embeddedVersion)
}

// VersionTag returns Version as a git tag.
func VersionTag() string {
	return "v" + Version()
}

// IsSemver reports whether v is a SemVer 2.0.0 string.
func IsSemver(v string) bool {
	return semverRE.MatchString(strings.TrimSpace(v))
}

// VersionIsSemver reports whether the embedded version is valid SemVer.
func VersionIsSemver() bool {
	return IsSemver(Version())
}
