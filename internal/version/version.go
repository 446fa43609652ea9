package version

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/fatih/color"
)

// Version information for the cqasm front-end.
// GitCommit and BuildDate can be overridden at build time via -ldflags.

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)

	// Version is the semantic version reported by GetVersion.
	Version = "1.0.0"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// GetVersion reports the front-end's own semantic version as a dotted string.
func GetVersion() string { return Version }

// Semver parses Version.
func Semver() (*semver.Version, error) {
	v, err := semver.NewVersion(Version)
	if err != nil {
		return nil, fmt.Errorf("invalid tool version %q: %w", Version, err)
	}
	return v, nil
}

// Satisfies reports whether the tool version matches a constraint such as ">=1.0, <2".
func Satisfies(constraint string) (bool, error) {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, fmt.Errorf("invalid version constraint %q: %w", constraint, err)
	}
	v, err := Semver()
	if err != nil {
		return false, err
	}
	return c.Check(v), nil
}

// Banner renders "cqasm 1.0.0 (commit, date)"; colored renders the components in color.
func Banner(colored bool) string {
	text := Version
	if colored {
		if v, err := Semver(); err == nil {
			text = versionMajorColor.Sprint(v.Major()) + "." +
				versionMinorColor.Sprint(v.Minor()) + "." +
				versionPatchColor.Sprint(v.Patch())
			if pre := v.Prerelease(); pre != "" {
				text += "-" + pre
			}
		}
	}
	var extra []string
	if GitCommit != "" {
		extra = append(extra, GitCommit)
	}
	if BuildDate != "" {
		extra = append(extra, BuildDate)
	}
	if len(extra) == 0 {
		return "cqasm " + text
	}
	return fmt.Sprintf("cqasm %s (%s)", text, strings.Join(extra, ", "))
}
