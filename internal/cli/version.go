package cli

import (
	"runtime"

	"github.com/spf13/cobra"
)

// Version information set via ldflags during build.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("petstore %s\n", Version)
			cmd.Printf("  Commit:     %s\n", Commit)
			cmd.Printf("  Build Date: %s\n", BuildDate)
			cmd.Printf("  Go Version: %s\n", runtime.Version())
		},
	}
}
