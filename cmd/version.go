package cmd

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// ModulePath is reported when the binary carries no build info
const ModulePath = "github.com/killallgit/podradio"

// Set with -ldflags "-X github.com/killallgit/podradio/cmd.Version=..."
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print podradio build information",
	Long: `Print the podradio release, the commit it was built from and the
Go toolchain and platform of this binary.

When GitCommit was not set at link time the VCS revision recorded by
the Go toolchain is used instead.`,
	Run: runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolP("short", "s", false, "print just the version number")
}

// buildInfo is what the version command reports
type buildInfo struct {
	module  string
	version string
	commit  string
	built   string
	goVer   string
	target  string
}

func currentBuild() buildInfo {
	b := buildInfo{
		module:  ModulePath,
		version: "v" + Version,
		commit:  GitCommit,
		built:   BuildTime,
		goVer:   runtime.Version(),
		target:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return b
	}
	if info.Main.Path != "" {
		b.module = info.Main.Path
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if b.commit == "unknown" && s.Value != "" {
				b.commit = s.Value
			}
		case "vcs.time":
			if b.built == "unknown" && s.Value != "" {
				b.built = s.Value
			}
		}
	}
	return b
}

func runVersion(cmd *cobra.Command, args []string) {
	b := currentBuild()
	out := cmd.OutOrStdout()

	if short, _ := cmd.Flags().GetBool("short"); short {
		fmt.Fprintln(out, b.version)
		return
	}
	printBuild(out, b)
}

func printBuild(w io.Writer, b buildInfo) {
	fmt.Fprintf(w, "podradio %s\n", b.version)
	for _, row := range [][2]string{
		{"module", b.module},
		{"commit", b.commit},
		{"built", b.built},
		{"go", b.goVer},
		{"platform", b.target},
	} {
		fmt.Fprintf(w, "  %-9s %s\n", row[0]+":", row[1])
	}
}
