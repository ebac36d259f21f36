// cmd/tidemark/commands.go
package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bethropolis/tidemark/internal/input"
	"github.com/bethropolis/tidemark/internal/markdown"
)

func newCommandsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "commands",
		Short: "List formatting commands and their key bindings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listCommands(cmd.OutOrStdout(), input.NewInputProcessor(c.cfg.Editor.Leader()))
		},
	}
}

func listCommands(w io.Writer, keys *input.InputProcessor) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, cmd := range markdown.Commands() {
		fmt.Fprintf(tw, "%s\t%s\n", cmd, strings.Join(keys.KeysFor(cmd), "  "))
	}
	return tw.Flush()
}
