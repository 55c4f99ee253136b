package command

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/syssam/dmtgen/compiler"
	"github.com/syssam/dmtgen/compiler/gen"
)

// GenerateOptions are the flags of the generate command.
type GenerateOptions struct {
	Config      string
	Package     string
	Header      string
	Version     string
	License     string
	Workers     int
	Cleanup     bool
	SourceOnly  bool
	LegacyBools bool
	Watch       bool
}

// NewGenerateCommand returns the generate subcommand.
func NewGenerateCommand(cli *CLI) *cobra.Command {
	opts := &GenerateOptions{}
	cmd := &cobra.Command{
		Use:   "generate [flags] <input_dir> [<output_dir>]",
		Short: "Generate Go packages from a schema tree",
		Long: Highlight("dmtgen generate") + "\n\n" +
			"Compile the blueprints and enums under input_dir into Go packages\n" +
			"written to output_dir/<name of input_dir>. Settings come from the\n" +
			"defaults, then the --config file, then the flags.\n",
		Example: "  dmtgen generate ./models\n" +
			"  dmtgen generate --cleanup --version 1.2.0 ./models ./out\n" +
			"  dmtgen generate --watch ./models",
		Args: RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config(cmd, args)
			if err != nil {
				return err
			}
			cfg.Logger = cli.Logger
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if !opts.Watch {
				if err := compiler.GenerateContext(ctx, args[0], cfg); err != nil {
					return err
				}
				cli.Printf("%s generated in %s\n", args[0], cfg.Target)
				return nil
			}
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()
			cli.Printf("watching %s, press Ctrl+C to stop\n", args[0])
			return compiler.Watch(ctx, args[0], cfg, func(err error) {
				if err != nil {
					cli.Logger.Error("generation failed", "error", err)
					cli.Println("generation failed:", err)
					return
				}
				cli.Printf("%s generated in %s\n", args[0], cfg.Target)
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.Config, "config", "", "YAML configuration file")
	f.StringVar(&opts.Package, "package", "", "Module path of the generated packages (default: the input directory name)")
	f.StringVar(&opts.Header, "header", "", "Header comment of every generated file")
	f.StringVar(&opts.Version, "version", gen.DefaultVersion, "Semantic version recorded in the generated package")
	f.StringVar(&opts.License, "license", gen.DefaultLicense, "License recorded in the generated package")
	f.IntVar(&opts.Workers, "workers", 0, "Parallel workers (default: GOMAXPROCS)")
	f.BoolVar(&opts.Cleanup, "cleanup", false, "Remove previously generated output first")
	f.BoolVar(&opts.SourceOnly, "source", false, "Only generate Go sources, no go.mod or doc.go")
	f.BoolVar(&opts.LegacyBools, "legacy-bool-defaults", false, "Treat every non-empty boolean default string as true")
	f.BoolVarP(&opts.Watch, "watch", "w", false, "Regenerate whenever a schema file changes")
	return cmd
}

// config builds the generation config. Only flags set on the command line
// override the config file.
func (o *GenerateOptions) config(cmd *cobra.Command, args []string) (*gen.Config, error) {
	var options []gen.Option
	if o.Config != "" {
		fileOpts, err := gen.LoadConfigFile(o.Config)
		if err != nil {
			return nil, err
		}
		options = append(options, fileOpts...)
	}
	changed := cmd.Flags().Changed
	if changed("package") {
		options = append(options, gen.WithPackage(o.Package))
	}
	if changed("header") {
		options = append(options, gen.WithHeader(o.Header))
	}
	if changed("version") {
		options = append(options, gen.WithVersion(o.Version))
	}
	if changed("license") {
		options = append(options, gen.WithLicense(o.License))
	}
	if changed("workers") {
		options = append(options, gen.WithWorkers(o.Workers))
	}
	if o.Cleanup {
		options = append(options, gen.WithCleanup())
	}
	if o.SourceOnly {
		options = append(options, gen.WithSourceOnly())
	}
	if o.LegacyBools {
		options = append(options, gen.WithLegacyBoolDefaults())
	}
	if len(args) > 1 {
		options = append(options, gen.WithTarget(args[1]))
	}
	return gen.NewConfig(options...)
}
