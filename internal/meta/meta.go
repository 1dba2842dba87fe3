// Package meta holds build metadata shared by the generator and the CLI.
package meta

import (
	_ "embed"
	"fmt"
	"runtime/debug"
	"strings"
)

//go:embed VERSION
var embeddedVersion string

// BaseVersion returns the release version recorded in the source tree.
func BaseVersion() string {
	return strings.TrimSpace(embeddedVersion)
}

// Version describes the running binary. A module version set by go install
// wins; source builds report "devel-<base>", with "+<rev>" appended when the
// VCS revision is known and "-dirty" when the tree had local changes.
func Version() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return BaseVersion()
	}
	return describe(BaseVersion(), info)
}

func describe(base string, info *debug.BuildInfo) string {
	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}

	settings := make(map[string]string, len(info.Settings))
	for _, s := range info.Settings {
		settings[s.Key] = s.Value
	}

	var b strings.Builder
	b.WriteString("devel-")
	b.WriteString(base)
	if rev := settings["vcs.revision"]; len(rev) >= 7 {
		b.WriteString("+")
		b.WriteString(rev[:7])
	}
	if settings["vcs.modified"] == "true" {
		b.WriteString("-dirty")
	}
	return b.String()
}

// GeneratedBy returns the provenance line written at the top of generated
// files.
func GeneratedBy(version string) string {
	return fmt.Sprintf("Generated by idlgen %s. DO NOT EDIT.", version)
}
