// Package version holds build metadata for the bigcalc CLI.
package version

import (
	"runtime/debug"
	"strings"

	"github.com/fatih/color"
)

// These variables can be overridden at build time via -ldflags.
var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit message.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)
)

// Styled renders v with its major, minor and patch parts colored.
// Anything that is not MAJOR.MINOR.PATCH[-suffix] is returned unchanged.
func Styled(v string) string {
	core, suffix, hasSuffix := strings.Cut(v, "-")
	parts := strings.Split(core, ".")
	if len(parts) != 3 {
		return v
	}
	out := majorColor.Sprint(parts[0]) + "." + minorColor.Sprint(parts[1]) + "." + patchColor.Sprint(parts[2])
	if hasSuffix {
		out += "-" + suffix
	}
	return out
}

// Info is the resolved build metadata.
type Info struct {
	Version    string
	GitCommit  string
	GitMessage string
	BuildDate  string
}

// Current returns the ldflags values, filling a missing commit or date
// from the VCS stamp the go tool embeds in the binary.
func Current() Info {
	info := Info{
		Version:    strings.TrimSpace(Version),
		GitCommit:  strings.TrimSpace(GitCommit),
		GitMessage: strings.TrimSpace(GitMessage),
		BuildDate:  strings.TrimSpace(BuildDate),
	}
	if info.Version == "" {
		info.Version = "dev"
	}
	if info.GitCommit != "" && info.BuildDate != "" {
		return info
	}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.GitCommit == "" {
				info.GitCommit = s.Value
			}
		case "vcs.time":
			if info.BuildDate == "" {
				info.BuildDate = s.Value
			}
		}
	}
	return info
}
