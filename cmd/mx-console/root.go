package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/anoideaopen/mx/core/descriptor"
	"github.com/anoideaopen/mx/core/dispatch"
	"github.com/anoideaopen/mx/version"
	"github.com/spf13/cobra"
)

func newRootCommand(c *console) *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:          "mx-console",
		Short:        "Inspect and drive managed resources",
		Version:      version.Version(),
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if c.ready() {
				return nil
			}
			return c.start(cmd.Context(), configPath)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return c.stop(cmd.Context())
		},
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (JSON or YAML)")

	rootCmd.AddCommand(newCommands(c)...)
	rootCmd.AddCommand(newShellCommand(c))

	return rootCmd
}

// newCommands returns the commands available both from the command line and
// from the shell.
func newCommands(c *console) []*cobra.Command {
	return []*cobra.Command{
		newListCommand(c),
		newDescribeCommand(c),
		newDumpCommand(c),
		newGetCommand(c),
		newSetCommand(c),
		newInvokeCommand(c),
	}
}

func newListCommand(c *console) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered resources",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			for _, n := range c.exporter.Names() {
				fmt.Fprintln(c.out, n)
			}
			return nil
		},
	}
}

func newDescribeCommand(c *console) *cobra.Command {
	return &cobra.Command{
		Use:   "describe NAME",
		Short: "Show the attributes and operations of a resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			d, err := c.describe(args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(c.out, "%s\n%s\n\n", d.TypeName(), d.Description())

			w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ATTRIBUTE\tTYPE\tACCESS\tDESCRIPTION")
			for _, a := range d.Attributes() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", a.Name, a.Type, a.Access, a.Description)
			}
			fmt.Fprintln(w)
			fmt.Fprintln(w, "OPERATION\tRETURNS\tROLE\tDESCRIPTION")
			for _, o := range d.Operations() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", o.Signature, typeList(o), o.Role, o.Description)
			}
			return w.Flush()
		},
	}
}

func newDumpCommand(c *console) *cobra.Command {
	return &cobra.Command{
		Use:   "dump NAME",
		Short: "Dump the full descriptor of a resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			d, err := c.describe(args[0])
			if err != nil {
				return err
			}

			dump(c.out, d)
			return nil
		},
	}
}

func newGetCommand(c *console) *cobra.Command {
	return &cobra.Command{
		Use:   "get NAME ATTRIBUTE...",
		Short: "Read attributes",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := c.resolve(args[0])
			if err != nil {
				return err
			}

			if len(args) == 2 {
				v, err := c.exporter.Get(cmd.Context(), name, args[1])
				if err != nil {
					return err
				}
				fmt.Fprintf(c.out, "%s = %v\n", args[1], v)
				return nil
			}

			values, err := c.exporter.GetBatch(cmd.Context(), name, args[1:])
			if err != nil {
				return err
			}
			printValues(c, values)
			return nil
		},
	}
}

func newSetCommand(c *console) *cobra.Command {
	return &cobra.Command{
		Use:   "set NAME ATTRIBUTE VALUE",
		Short: "Write an attribute, VALUE is decoded into the attribute type",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := c.resolve(args[0])
			if err != nil {
				return err
			}
			return c.exporter.SetEncoded(cmd.Context(), name, args[1], args[2])
		},
	}
}

func newInvokeCommand(c *console) *cobra.Command {
	var types []string

	cmd := &cobra.Command{
		Use:   "invoke NAME OPERATION [ARG...]",
		Short: "Invoke an operation, arguments are decoded into the parameter types",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := c.resolve(args[0])
			if err != nil {
				return err
			}

			var typeNames []string
			if cmd.Flags().Changed("types") {
				typeNames = types
			}

			result, err := c.exporter.InvokeEncoded(cmd.Context(), name, args[1], args[2:], typeNames)
			if err != nil {
				return err
			}
			if result != nil {
				fmt.Fprintf(c.out, "%v\n", result)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&types, "types", nil, "parameter type names selecting the overload")

	return cmd
}

func (c *console) describe(s string) (*descriptor.Descriptor, error) {
	name, err := c.resolve(s)
	if err != nil {
		return nil, err
	}
	return c.exporter.Describe(name)
}

func printValues(c *console, values []dispatch.AttributeValue) {
	for _, v := range values {
		fmt.Fprintf(c.out, "%s = %v\n", v.Name, v.Value)
	}
}

func typeList(o *descriptor.Operation) string {
	if len(o.Results) == 0 {
		return "-"
	}
	names := make([]string, len(o.Results))
	for i, t := range o.Results {
		names[i] = t.String()
	}
	return strings.Join(names, ", ")
}
