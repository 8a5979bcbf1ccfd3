package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/napalu/cmdflow"
	"github.com/napalu/cmdflow/config"
	"github.com/napalu/cmdflow/errs"
	"github.com/napalu/cmdflow/types"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type rootOptions struct {
	configPath string
	logLevel   string
	ignoreCase bool
	quoted     bool
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:          "cmdflow",
		Short:        "Execute text commands against the demo modules",
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "configuration file (yaml, toml or json)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVarP(&opts.ignoreCase, "ignore-case", "i", false, "match aliases case-insensitively")
	root.PersistentFlags().BoolVarP(&opts.quoted, "quoted", "q", false, "split arguments with shell quoting rules")

	root.AddCommand(newRunCommand(opts), newReplCommand(opts), newListCommand(opts))
	return root
}

func newRunCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "run <input>...",
		Short:   "Execute every input concurrently and print the results in order",
		Example: `  cmdflow run "math add 1 2 3" "echo say hello world"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			engine, err := newEngine(opts)
			if err != nil {
				return err
			}
			return runInputs(command.Context(), engine, command.OutOrStdout(), arguments)
		},
	}
}

func newReplCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Read inputs from stdin and execute them one by one",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			engine, err := newEngine(opts)
			if err != nil {
				return err
			}
			return repl(command.Context(), engine, command.InOrStdin(), command.OutOrStdout())
		},
	}
}

func newListCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the demo commands with their parameters",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			engine, err := newEngine(opts)
			if err != nil {
				return err
			}
			listCommands(engine, command.OutOrStdout())
			return nil
		},
	}
}

func listCommands(engine *cmdflow.Engine, w io.Writer) {
	r := engine.Renderer()
	for _, cmd := range engine.Commands() {
		fmt.Fprintln(w, r.CommandUsage(cmd))
		for _, p := range cmd.Parameters() {
			fmt.Fprintln(w, "    "+r.ParameterUsage(p))
		}
	}
}

func newEngine(opts *rootOptions) (*cmdflow.Engine, error) {
	configs, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.logLevel != "" {
		configs = append(configs, cmdflow.WithLogLevel(opts.logLevel))
	}
	if opts.ignoreCase {
		configs = append(configs, cmdflow.WithComparison(types.IgnoreCase))
	}
	if opts.quoted {
		configs = append(configs, cmdflow.WithQuotedTokens(true))
	}

	modules, err := demoModules()
	if err != nil {
		return nil, err
	}
	configs = append(configs, cmdflow.WithModules(modules...))

	engine, err := cmdflow.NewEngineWith(configs...)
	if err != nil {
		return nil, err
	}
	registerDemoTypes(engine.TypeParsers())
	return engine, nil
}

type outcome struct {
	result cmdflow.Result
	err    error
}

func runInputs(ctx context.Context, engine *cmdflow.Engine, w io.Writer, inputs []string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	outcomes := make([]outcome, len(inputs))
	group, groupCtx := errgroup.WithContext(ctx)
	for i, input := range inputs {
		group.Go(func() error {
			result, err := engine.Execute(groupCtx, input)
			outcomes[i] = outcome{result: result, err: err}
			if errs.IsFault(err) {
				return err
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	var failed bool
	for i, o := range outcomes {
		fmt.Fprintf(w, "%s => %s\n", inputs[i], describe(o.result, o.err))
		if o.err != nil || !o.result.Success() {
			failed = true
		}
	}
	if failed {
		return errors.New("one or more inputs failed")
	}
	return nil
}

func describe(result cmdflow.Result, err error) string {
	if err != nil {
		return "error: " + err.Error()
	}
	if payload, ok := result.(cmdflow.PayloadResult); ok {
		return fmt.Sprint(payload.Value)
	}
	return result.Reason()
}
