// setctl manages named sets of addresses, networks, ports, and their
// combinations: create and destroy sets, add, delete, and test
// elements, and list or save them in restorable form. It runs one
// command per invocation or an interactive console.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/setctl/setctl/pkg/cli"
	"github.com/setctl/setctl/pkg/command"
	"github.com/setctl/setctl/pkg/session"
	"github.com/setctl/setctl/pkg/setfile"
	"github.com/setctl/setctl/pkg/setstore"
)

func main() {
	// A bare "-" argument is the old spelling of the interactive mode.
	for i, arg := range os.Args[1:] {
		if arg == "-" {
			os.Args[i+1] = "interactive"
			break
		}
	}
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		if errors.Is(err, command.ErrNotInSet) {
			// The result line is already printed; only the exit
			// status carries the miss.
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "setctl: %v\n", err)
		os.Exit(1)
	}
}

type rootFlags struct {
	exist  bool
	quiet  bool
	debug  bool
	output string
	state  string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	runner := &command.Runner{Store: setstore.New()}

	root := &cobra.Command{
		Use:   "setctl",
		Short: "manage named sets of addresses, networks and ports",
		Long: `setctl manages named sets of IP addresses, networks, ports,
protocol:port pairs, ethernet addresses, and combinations of these.
Sets are created with a type that fixes how elements look, and
elements are added, deleted, and tested against them.

Without a state file the registry lives only for one invocation; pass
--state to persist it between runs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if flags.debug {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			})))

			output, err := parseOutput(flags.output)
			if err != nil {
				return err
			}
			runner.Exist = flags.exist
			runner.Quiet = flags.quiet
			runner.Output = output
			if flags.state != "" {
				return runner.LoadState(cmd.Context(), flags.state)
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if flags.state == "" {
				return nil
			}
			return runner.SaveState(flags.state)
		},
	}

	pf := root.PersistentFlags()
	pf.BoolVarP(&flags.exist, "exist", "e", false,
		"tolerate existing sets and elements on create and add, missing ones on del")
	pf.BoolVarP(&flags.quiet, "quiet", "q", false, "suppress warnings")
	pf.BoolVar(&flags.debug, "debug", false, "enable debug logging")
	pf.StringVarP(&flags.output, "output", "o", "plain",
		"list output format: plain, save, xml or json")
	pf.StringVar(&flags.state, "state", "", "registry state file, loaded before and saved after the command")

	for _, sub := range runnerCommands(runner) {
		root.AddCommand(sub)
	}
	root.AddCommand(interactiveCmd(runner))
	root.AddCommand(applyCmd(runner))
	return root
}

func parseOutput(text string) (session.Output, error) {
	switch text {
	case "plain":
		return session.OutputPlain, nil
	case "save":
		return session.OutputSave, nil
	case "xml":
		return session.OutputXML, nil
	case "json":
		return session.OutputJSON, nil
	}
	return session.OutputPlain, fmt.Errorf("unknown output mode '%s'", text)
}

// runnerCommands wraps every registry command of the runner in a cobra
// command. The argument vectors pass through untouched so the one-shot
// commands, the console, and restore files share one grammar.
func runnerCommands(runner *command.Runner) []*cobra.Command {
	specs := []struct {
		use, short string
		aliases    []string
		minArgs    cobra.PositionalArgs
	}{
		{"create <setname> <typename> [option value]...", "create a new set", []string{"new"}, cobra.MinimumNArgs(2)},
		{"add <setname> <element> [option value]...", "add an element to a set", nil, cobra.MinimumNArgs(2)},
		{"del <setname> <element>", "delete an element from a set", nil, cobra.MinimumNArgs(2)},
		{"test <setname> <element>", "test whether an element is in a set", nil, cobra.MinimumNArgs(2)},
		{"destroy [setname]", "destroy one set, or all sets", nil, cobra.MaximumNArgs(1)},
		{"list [setname]", "list one set, or all sets", nil, cobra.MaximumNArgs(1)},
		{"save [setname]", "print sets as a restorable command stream", nil, cobra.MaximumNArgs(1)},
		{"flush [setname]", "remove the members of one set, or all sets", nil, cobra.MaximumNArgs(1)},
		{"rename <from> <to>", "rename a set", nil, cobra.ExactArgs(2)},
		{"swap <a> <b>", "swap the contents of two sets", nil, cobra.ExactArgs(2)},
		{"version", "print the version", nil, cobra.NoArgs},
	}

	cmds := make([]*cobra.Command, 0, len(specs)+1)
	for _, spec := range specs {
		spec := spec
		name := firstWord(spec.use)
		cmds = append(cmds, &cobra.Command{
			Use:     spec.use,
			Short:   spec.short,
			Aliases: spec.aliases,
			Args:    spec.minArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runner.Run(cmd.Context(), append([]string{name}, args...))
			},
		})
	}

	cmds = append(cmds, &cobra.Command{
		Use:   "restore [file]",
		Short: "replay a saved command stream from a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return runner.Run(cmd.Context(), []string{"restore", args[0]})
			}
			return runner.Restore(cmd.Context(), os.Stdin)
		},
	})
	return cmds
}

func firstWord(use string) string {
	for i := 0; i < len(use); i++ {
		if use[i] == ' ' {
			return use[:i]
		}
	}
	return use
}

func interactiveCmd(runner *command.Runner) *cobra.Command {
	return &cobra.Command{
		Use:     "interactive",
		Aliases: []string{"console"},
		Short:   "start the interactive console",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.New(runner).Run(cmd.Context())
		},
	}
}

func applyCmd(runner *command.Runner) *cobra.Command {
	return &cobra.Command{
		Use:   "apply <file.yaml>",
		Short: "create sets and members from a YAML set file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := setfile.Load(args[0])
			if err != nil {
				return err
			}
			return setfile.Apply(cmd.Context(), runner, f)
		},
	}
}
