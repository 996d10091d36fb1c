package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zoobzio/stepz"
	"go.uber.org/zap"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[37m"
)

type demoOptions struct {
	config  string
	all     bool
	verbose bool
}

func newDemoCmd() *cobra.Command {
	var opts demoOptions

	cmd := &cobra.Command{
		Use:   "demo [name]",
		Short: "Run demonstrations",
		Long: `Run demonstrations of stepz processes.

Each demo builds a process from the combinators, runs it through a Driver and prints
every output followed by the terminal.

Available demos:
  concat    Run one process after another and pair their terminals
  pipe      Feed a source through a transducer
  errors    Stop at the first failed result
  residual  Stop at the first value that cannot continue
  resume    Interrupt a run and resume it from the remainder`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) != 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}

			var completions []string
			for _, ex := range getAllExamples() {
				if strings.HasPrefix(ex.Name(), toComplete) {
					completions = append(completions, ex.Name())
				}
			}
			return completions, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) > 0 {
				name = args[0]
			}
			env, err := opts.env(cmd)
			if err != nil {
				return err
			}
			defer env.Logger.Sync() //nolint:errcheck
			return runDemo(cmd.Context(), env, name, opts.all)
		},
	}

	cmd.Flags().BoolVar(&opts.all, "all", false, "Run all demos sequentially")
	cmd.Flags().StringVar(&opts.config, "config", "", "YAML driver config (max_steps, timeout, log_level)")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log every driver run at debug level")
	return cmd
}

func (o demoOptions) env(cmd *cobra.Command) (*Env, error) {
	var cfg stepz.Config
	if o.config != "" {
		loaded, err := stepz.LoadConfig(o.config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	var logger *zap.Logger
	var err error
	if o.verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = cfg.Logger()
	}
	if err != nil {
		return nil, err
	}

	return &Env{Out: cmd.OutOrStdout(), Config: cfg, Logger: logger}, nil
}

// runDemo runs one demo by name, or all of them.
func runDemo(ctx context.Context, env *Env, name string, all bool) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if all {
		for _, ex := range getAllExamples() {
			if err := runOne(ctx, env, ex); err != nil {
				return err
			}
		}
		return nil
	}

	if name == "" {
		return fmt.Errorf("no demo given\n\nRun 'stepz list' to see available demos, or pass --all")
	}

	ex, ok := getExampleByName(name)
	if !ok {
		return fmt.Errorf("unknown demo: %s\n\nRun 'stepz list' to see available demos", name)
	}
	return runOne(ctx, env, ex)
}

func runOne(ctx context.Context, env *Env, ex Example) error {
	fmt.Fprintf(env.Out, "\n%s═══ %s ═══%s\n", colorCyan, strings.ToUpper(ex.Name()), colorReset)
	fmt.Fprintf(env.Out, "%s%s%s\n\n", colorGray, ex.Description(), colorReset)
	if err := ex.Demo(ctx, env); err != nil {
		fmt.Fprintf(env.Out, "%s✗ %v%s\n", colorRed, err, colorReset)
		return fmt.Errorf("demo %s: %w", ex.Name(), err)
	}
	return nil
}

// printOutput and printTerminal keep the demos' output uniform.
func printOutput(env *Env, v any) {
	fmt.Fprintf(env.Out, "  %s→%s %v\n", colorGreen, colorReset, v)
}

func printTerminal(env *Env, v any) {
	fmt.Fprintf(env.Out, "  %s■%s %v\n", colorYellow, colorReset, v)
}
