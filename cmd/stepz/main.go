package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "stepz",
		Short: "Step-wise process demos",
		Long: `stepz is a CLI tool for exploring step-wise processes: values that are
advanced one step at a time, each step producing an output and a continuation or a
final terminal value.

Run the demos to see concatenation, piping, early termination and resumable
driving in action.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Disable default completion command
	root.CompletionOptions.DisableDefaultCmd = true

	root.AddCommand(newListCmd())
	root.AddCommand(newDemoCmd())
	return root
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all available demos",
		Long:  "Display a list of all available demos with descriptions.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Available demos:")
			fmt.Fprintln(out)
			for _, ex := range getAllExamples() {
				fmt.Fprintf(out, "  %-10s %s\n", ex.Name(), ex.Description())
			}
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
