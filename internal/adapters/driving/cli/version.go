package cli

import (
	"runtime/debug"

	"github.com/spf13/cobra"
)

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long: `Print the ideapad version, the commit it was built from and the
backend it talks to.`,
	Args: cobra.NoArgs,
	Run:  runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, _ []string) {
	cmd.Printf("ideapad version %s\n", version)

	if info, ok := readBuildInfo(); ok {
		b := buildDetails(info)
		if b.revision != "" {
			rev := b.revision
			if len(rev) > 12 {
				rev = rev[:12]
			}
			if b.modified {
				rev += " (modified)"
			}
			cmd.Printf("  commit:  %s\n", rev)
		}
		if b.time != "" {
			cmd.Printf("  built:   %s\n", b.time)
		}
		cmd.Printf("  go:      %s\n", info.GoVersion)
	}
	cmd.Printf("  backend: %s\n", currentConfig().BackendURL)
}

type buildInfo struct {
	revision string
	time     string
	modified bool
}

func buildDetails(info *debug.BuildInfo) buildInfo {
	var b buildInfo
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			b.revision = s.Value
		case "vcs.time":
			b.time = s.Value
		case "vcs.modified":
			b.modified = s.Value == "true"
		}
	}
	return b
}
