package cmd

import (
	"runtime/debug"

	"github.com/spf13/cobra"

	"vhpidbg.dev/pkg/vhpidbg/internal/protocol"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the version information",
		Long:  "Displays the build version, the debug protocol version and the Go version used to build vhpidbg.",
		Run: func(cmd *cobra.Command, _ []string) {
			version := "unknown"
			goVersion := "unknown"

			if info, ok := debug.ReadBuildInfo(); ok {
				goVersion = info.GoVersion

				if info.Main.Version != "" {
					version = info.Main.Version
				}
			}

			cmd.Println("vhpidbg version\t", version)
			cmd.Println("protocol version\t", protocol.Version)
			cmd.Println("go version\t", goVersion)
		},
	}
}

// versionCmd represents the version command.
var versionCmd = newVersionCmd()

func init() {
	rootCmd.AddCommand(versionCmd)
}
