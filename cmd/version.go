package cmd

import (
	"fmt"
	"io"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is set with -ldflags "-X github.com/abhisek/wordiz/cmd.version=v1.2.3".
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and build details",
	Run: func(cmd *cobra.Command, args []string) {
		info, _ := debug.ReadBuildInfo()
		printVersion(cmd.OutOrStdout(), info)
	},
}

// buildVersion returns the ldflags version, or the module version recorded
// by `go install` when none was stamped.
func buildVersion() string {
	info, _ := debug.ReadBuildInfo()
	return resolveVersion(info)
}

func resolveVersion(info *debug.BuildInfo) string {
	if version != "(devel)" || info == nil {
		return version
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}
	return version
}

func printVersion(w io.Writer, info *debug.BuildInfo) {
	fmt.Fprintln(w, "wordiz", resolveVersion(info))
	if info == nil {
		return
	}
	settings := make(map[string]string, len(info.Settings))
	for _, s := range info.Settings {
		settings[s.Key] = s.Value
	}
	if rev := settings["vcs.revision"]; rev != "" {
		if len(rev) > 12 {
			rev = rev[:12]
		}
		if settings["vcs.modified"] == "true" {
			rev += "-dirty"
		}
		fmt.Fprintln(w, "  commit:", rev)
	}
	if info.GoVersion != "" {
		fmt.Fprintln(w, "  go:    ", info.GoVersion)
	}
}
