package command

import (
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is set at link time with -ldflags "-X ...command.version=v1.2.3".
var version = ""

// Version returns the version of the dmtgen binary.
func Version() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(devel)"
}

// NewVersionCommand returns the version subcommand.
func NewVersionCommand(cli *CLI) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: Highlight("dmtgen version") + "\n\n" +
			"Display the current version of dmtgen.\n",
		Args: ExactArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			cli.Println(Version())
		},
	}
}
