package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/anoideaopen/mx/core/export"
	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
)

func newShellCommand(c *console) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Run commands interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rl, err := readline.NewEx(&readline.Config{
				Prompt:          "mx> ",
				InterruptPrompt: "^C",
				EOFPrompt:       "exit",
				AutoComplete:    shellCompleter(c),
			})
			if err != nil {
				return fmt.Errorf("failed to create readline: %w", err)
			}
			defer rl.Close()

			out := c.out
			c.out = rl.Stdout()
			c.interactive = true
			defer func() {
				c.out = out
				c.interactive = false
			}()

			for {
				line, err := rl.Readline()
				if errors.Is(err, readline.ErrInterrupt) {
					continue
				}
				if err != nil {
					if errors.Is(err, io.EOF) {
						return nil
					}
					return err
				}

				args := strings.Fields(line)
				if len(args) == 0 {
					continue
				}
				if args[0] == "exit" || args[0] == "quit" {
					return nil
				}

				if err := runLine(cmd, c, args); err != nil {
					st := export.Status(err)
					fmt.Fprintf(rl.Stderr(), "%s: %s\n", st.Code(), st.Message())
				}
			}
		},
	}
}

// runLine runs one shell line through a fresh command tree so that flags do not
// leak between lines.
func runLine(parent *cobra.Command, c *console, args []string) error {
	root := &cobra.Command{
		Use:           "",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newCommands(c)...)
	root.SetArgs(args)
	root.SetOut(c.out)
	root.SetErr(c.out)

	return root.ExecuteContext(parent.Context())
}

func shellCompleter(c *console) *readline.PrefixCompleter {
	names := make([]readline.PrefixCompleterInterface, 0)
	for _, n := range c.exporter.Names() {
		names = append(names, readline.PcItem(n.String()))
	}

	items := make([]readline.PrefixCompleterInterface, 0)
	for _, cmd := range newCommands(c) {
		items = append(items, readline.PcItem(cmd.Name(), names...))
	}
	items = append(items, readline.PcItem("help"), readline.PcItem("exit"))

	return readline.NewPrefixCompleter(items...)
}
