package command

import (
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/syssam/dmtgen/cmd/dmtgen/internal/view"
	"github.com/syssam/dmtgen/compiler"
	"github.com/syssam/dmtgen/compiler/gen"
)

// Inspection is the output of the inspect command.
type Inspection struct {
	Module string                 `json:"module" yaml:"module"`
	Models []*gen.GenerationModel `json:"models" yaml:"models"`
	Enums  []*gen.EnumModel       `json:"enums" yaml:"enums"`
}

// NewInspectCommand returns the inspect subcommand.
func NewInspectCommand(cli *CLI) *cobra.Command {
	var pkg string
	cmd := &cobra.Command{
		Use:   "inspect [flags] <input_dir>",
		Short: "Print the compiled generation models of a schema tree",
		Long: Highlight("dmtgen inspect") + "\n\n" +
			"Load and compile the schema tree under input_dir without writing\n" +
			"anything, and print the resulting models. Use -o to select json,\n" +
			"yaml or msgpack output.\n",
		Args: ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var options []gen.Option
			if pkg != "" {
				options = append(options, gen.WithPackage(pkg))
			}
			cfg, err := gen.NewConfig(options...)
			if err != nil {
				return err
			}
			cfg.Logger = cli.Logger
			g, err := compiler.LoadGraph(args[0], cfg)
			if err != nil {
				return err
			}
			out := &Inspection{Module: g.Module(), Models: g.Models, Enums: g.Enums}
			if cli.Format == view.FormatHuman {
				return printInspection(cli, out)
			}
			return view.Encode(cli.Writer, cli.Format, out)
		},
	}
	cmd.Flags().StringVar(&pkg, "package", "", "Module path of the generated packages")
	return cmd
}

func printInspection(cli *CLI, in *Inspection) error {
	cli.Println(Highlight("Module:"), in.Module)
	tw := tabwriter.NewWriter(cli.Writer, 0, 4, 2, ' ', 0)
	for _, m := range in.Models {
		cli.Println()
		cli.Println(Highlight("%s", m.Type), m.Module)
		for _, f := range m.Fields {
			kind := "primitive"
			switch {
			case f.IsCrossReference:
				kind = "reference"
			case f.IsEnum:
				kind = "enum"
			case f.IsEntity:
				kind = "entity"
			}
			if _, err := tw.Write([]byte("  " + strings.Join([]string{f.Name, f.Type, kind, f.Init}, "\t") + "\n")); err != nil {
				return err
			}
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	if len(in.Enums) > 0 {
		cli.Println()
		cli.Println(Highlight("Enums:"))
		for _, e := range in.Enums {
			values := make([]string, 0, len(e.Members))
			for _, m := range e.Members {
				values = append(values, m.Value)
			}
			if _, err := tw.Write([]byte("  " + e.Type + "\t" + e.Module + "\t" + strings.Join(values, ", ") + "\n")); err != nil {
				return err
			}
		}
		return tw.Flush()
	}
	return nil
}
