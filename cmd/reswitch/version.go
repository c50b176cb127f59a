package main

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
)

// Set with -ldflags "-X main.version=... -X main.commit=..." for releases.
var (
	version = "dev"
	commit  = "unknown"
)

const (
	modulePath = "github.com/praetorian-inc/reswitch"
	enginePath = "github.com/dlclark/regexp2"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long: `Display the reswitch version, the commit it was built from and the
version of the regexp engine switches are compiled with.

Release builds set the version and commit through -ldflags. Otherwise they
are read from the module and VCS information embedded by "go build" or
"go install".`,
	RunE: runVersion,
}

// buildVersion describes the running binary.
type buildVersion struct {
	Version  string
	Module   string
	Commit   string
	Modified bool
	Engine   string
}

// readBuildVersion fills in whatever the ldflags left at their defaults from
// the embedded build info.
func readBuildVersion(info *debug.BuildInfo, ok bool) buildVersion {
	v := buildVersion{
		Version: version,
		Module:  modulePath,
		Commit:  commit,
		Engine:  "unknown",
	}
	if !ok || info == nil {
		return v
	}

	if info.Main.Path != "" {
		v.Module = info.Main.Path
	}
	if v.Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		v.Version = strings.TrimPrefix(info.Main.Version, "v")
	}

	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if v.Commit == "unknown" {
				v.Commit = s.Value
			}
		case "vcs.modified":
			v.Modified = s.Value == "true"
		}
	}

	for _, dep := range info.Deps {
		if dep.Path == enginePath {
			v.Engine = dep.Version
			if dep.Replace != nil {
				v.Engine = dep.Replace.Version
			}
			break
		}
	}

	return v
}

func runVersion(cmd *cobra.Command, args []string) error {
	v := readBuildVersion(debug.ReadBuildInfo())

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "reswitch %s\n", v.Version)
	fmt.Fprintf(out, "Module: %s\n", v.Module)
	if v.Modified {
		fmt.Fprintf(out, "Commit: %s (modified)\n", v.Commit)
	} else {
		fmt.Fprintf(out, "Commit: %s\n", v.Commit)
	}
	fmt.Fprintf(out, "Engine: regexp2 %s\n", v.Engine)
	fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
	fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	return nil
}
