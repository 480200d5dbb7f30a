// Package cli implements the interactive console: a readline loop
// dispatching set-management commands, with tab completion over
// command names, registered set names, and set type names.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/setctl/setctl/pkg/command"
	"github.com/setctl/setctl/pkg/settype"
)

var (
	warnPrint = color.New(color.FgYellow).FprintfFunc()
	errPrint  = color.New(color.FgRed).FprintfFunc()
)

// Console is the interactive command loop around a runner.
type Console struct {
	runner *command.Runner
	rl     *readline.Instance
}

// New creates a console. The runner's warning sink is rerouted to the
// console in color; quiet mode still suppresses it.
func New(runner *command.Runner) *Console {
	runner.Warn = func(msg string) { warnPrint(os.Stderr, "Warning: %s\n", msg) }
	return &Console{runner: runner}
}

func (c *Console) out() io.Writer {
	if c.runner.Out != nil {
		return c.runner.Out
	}
	return os.Stdout
}

// Run starts the loop and returns when the user quits or input ends.
func (c *Console) Run(ctx context.Context) error {
	var err error
	c.rl, err = readline.NewEx(&readline.Config{
		Prompt:          "setctl> ",
		HistoryFile:     "/tmp/setctl_history",
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
		AutoComplete:    &completer{runner: c.runner},
	})
	if err != nil {
		return fmt.Errorf("readline init: %w", err)
	}
	defer c.rl.Close()

	fmt.Fprintln(c.out(), "setctl interactive mode")
	fmt.Fprintln(c.out(), "Type 'help' for commands, 'quit' to leave")
	fmt.Fprintln(c.out())

	for {
		line, err := c.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			if err == io.EOF {
				break
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if err := c.dispatch(ctx, line); err != nil {
			if err == errExit {
				return nil
			}
			errPrint(os.Stderr, "error: %v\n", err)
		}
	}
	return nil
}

var errExit = fmt.Errorf("exit")

func (c *Console) dispatch(ctx context.Context, line string) error {
	argv := strings.Fields(line)
	switch argv[0] {
	case "quit", "exit":
		return errExit
	case "help", "?":
		c.printHelp()
		return nil
	}
	err := c.runner.Run(ctx, argv)
	if errors.Is(err, command.ErrNotInSet) {
		// The result line is already printed; the loop carries on.
		return nil
	}
	return err
}

func (c *Console) printHelp() {
	fmt.Fprint(c.out(), `Commands:
  create <setname> <typename> [args]  create a new set
  add <setname> <elem> [args]         add an element
  del <setname> <elem>                delete an element
  test <setname> <elem>               test element membership
  destroy [setname]                   destroy one set, or all
  list [setname]                      list one set, or all
  save [setname]                      print a restorable command stream
  restore <file>                      replay a saved command stream
  flush [setname]                     remove the members of one set, or all
  rename <from> <to>                  rename a set
  swap <a> <b>                        swap the contents of two sets
  version                             print the version
  quit                                leave the console
`)
	fmt.Fprintf(c.out(), "Set types: %s\n", strings.Join(settype.Names(), ", "))
}
