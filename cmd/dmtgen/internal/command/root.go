package command

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/syssam/dmtgen/cmd/dmtgen/internal/view"
)

var (
	outputFlag string
	debugFlag  bool
)

// NewRootCommand returns the dmtgen command without subcommands.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dmtgen",
		Short: "Generate Go packages from DMT blueprints",
		Long: Highlight("Usage: dmtgen [global options] <subcommand> [args]") + "\n\n" +
			"dmtgen compiles a tree of DMT blueprint and enum documents into Go\n" +
			"packages: one package per entity holding a struct with typed getters,\n" +
			"setters and a constructor applying the attribute defaults.\n",
		Version:       Version(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) == 0 {
				_ = cmd.Help()
			}
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.PersistentFlags().StringVarP(&outputFlag, "output", "o", "", "Output format. One of: (json | yaml | msgpack)")
	cmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Set log level to debug")
	return cmd
}

func setCobraUsageTemplate(root *cobra.Command) {
	cobra.AddTemplateFunc("StyleHeading", color.RGB(50, 108, 229).SprintFunc())
	usageTemplate := strings.NewReplacer(
		`Usage:`, `{{StyleHeading "Usage:"}}`,
		`Examples:`, `{{StyleHeading "Examples:"}}`,
		`Available Commands:`, `{{StyleHeading "Available Commands:"}}`,
		`Flags:`, `{{StyleHeading "Options:"}}`,
		`Global Flags:`, `{{StyleHeading "Global Options:"}}`,
	).Replace(root.UsageTemplate())
	root.SetUsageTemplate(usageTemplate)
	root.SetVersionTemplate("{{.Version}}\n")
}

// Execute runs dmtgen and exits.
func Execute() {
	root := NewRootCommand()
	setCobraUsageTemplate(root)

	_, noColor := os.LookupEnv("NO_COLOR")
	color.NoColor = noColor

	cli := NewCLI(os.Stdout, os.Stderr, view.LogLevelSilent)
	AddCommands(root, cli)

	// Flags are only known once cobra parsed them.
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		format, err := view.ParseFormat(outputFlag)
		if err != nil {
			return err
		}
		level, err := view.ParseLogLevel(os.Getenv("DMTGEN_LOG"))
		if err != nil {
			level = view.LogLevelSilent
		}
		if debugFlag {
			level = view.LogLevelDebug
		}
		cli.Format = format
		cli.Logger = view.NewLogger(os.Stderr, level)
		return nil
	}

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error:"), err)
		os.Exit(1)
	}
}

// AddCommands registers the subcommands of dmtgen on root.
func AddCommands(root *cobra.Command, cli *CLI) {
	root.AddCommand(
		NewGenerateCommand(cli),
		NewInspectCommand(cli),
		NewVersionCommand(cli),
	)
}
