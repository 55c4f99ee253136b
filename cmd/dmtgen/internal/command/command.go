package command

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/syssam/dmtgen/cmd/dmtgen/internal/view"
)

// CLI is the state shared by all commands.
type CLI struct {
	*view.Stream
	Logger *slog.Logger
	Format view.Format
}

// Highlight formats a heading in the CLI accent color.
func Highlight(format string, a ...any) string {
	return color.RGB(50, 108, 229).Sprintf(format, a...)
}

// NewCLI returns a CLI printing to w and logging to logw.
func NewCLI(w, logw io.Writer, level view.LogLevel) *CLI {
	return &CLI{
		Stream: view.NewStream(w),
		Logger: view.NewLogger(logw, level),
	}
}

// ExactArgs fails unless exactly number arguments are given.
func ExactArgs(number int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) == number {
			return nil
		}
		return fmt.Errorf("expected %d arguments, got %d", number, len(args))
	}
}

// RangeArgs fails unless between minArgs and maxArgs arguments are given.
func RangeArgs(minArgs, maxArgs int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) >= minArgs && len(args) <= maxArgs {
			return nil
		}
		return fmt.Errorf("expected %d to %d arguments, got %d", minArgs, maxArgs, len(args))
	}
}

// MaxArgs fails when more than number arguments are given.
func MaxArgs(number int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) <= number {
			return nil
		}
		return fmt.Errorf("expected at most %d arguments, got %d", number, len(args))
	}
}
