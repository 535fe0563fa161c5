// Package wysiwyg is a rich-text editor component for Bubble Tea programs.
// The editor package holds the component; this package carries release
// metadata.
package wysiwyg

import (
	_ "embed"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

//go:embed VERSION
var embeddedVersion string

var semverRE = regexp.MustCompile(`^(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)(?:-([0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*))?(?:\+([0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*))?$`)

// Semver is a parsed SemVer 2.0.0 version.
type Semver struct {
	Major, Minor, Patch int
	Pre                 string
	Build               string
}

// ParseSemver parses v, which must not carry a leading "v".
func ParseSemver(v string) (Semver, error) {
	m := semverRE.FindStringSubmatch(strings.TrimSpace(v))
	if m == nil {
		return Semver{}, fmt.Errorf("not a semver version: %q", v)
	}
	var s Semver
	for i, dst := range []*int{&s.Major, &s.Minor, &s.Patch} {
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return Semver{}, fmt.Errorf("version %q: %w", v, err)
		}
		*dst = n
	}
	s.Pre, s.Build = m[4], m[5]
	return s, nil
}

// Less orders versions by precedence. Build metadata is ignored and
// pre-release identifiers compare as plain strings.
func (s Semver) Less(o Semver) bool {
	switch {
	case s.Major != o.Major:
		return s.Major < o.Major
	case s.Minor != o.Minor:
		return s.Minor < o.Minor
	case s.Patch != o.Patch:
		return s.Patch < o.Patch
	case s.Pre == o.Pre:
		return false
	case s.Pre == "":
		return false
	case o.Pre == "":
		return true
	}
	return s.Pre < o.Pre
}

// Version returns the module version without the leading "v".
func Version() string {
	return strings.TrimSpace(embeddedVersion)
}

// VersionTag returns the git tag for Version.
func VersionTag() string {
	return "v" + Version()
}
