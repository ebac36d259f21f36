// cmd/tidemark/state.go
package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/bethropolis/tidemark/internal/markdown"
	"github.com/bethropolis/tidemark/internal/statusbar"
)

var (
	badgeActive = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("6")).
			Padding(0, 1)
	badgeInactive = lipgloss.NewStyle().
			Faint(true).
			Padding(0, 1)
	blockLabel = lipgloss.NewStyle().Bold(true)
)

// renderBadges draws one badge per toolbar indicator.
func renderBadges(state markdown.FormatState) string {
	indicators := statusbar.Indicators(state)
	badges := make([]string, 0, len(indicators))
	for _, ind := range indicators {
		style := badgeInactive
		if ind.Active {
			style = badgeActive
		}
		badges = append(badges, style.Render(ind.Label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, badges...)
}

func newStateCmd(c *cli) *cobra.Command {
	var (
		sel    selectionFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "state [file]",
		Short: "Show the format state at a selection",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, _, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			engine := markdown.New(c.cfg.Markdown.EngineOptions())
			state := engine.StateAt(text, sel.selection())

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(state)
			}

			var b strings.Builder
			b.WriteString(renderBadges(state))
			b.WriteString("\n")
			b.WriteString(blockLabel.Render("block:"))
			b.WriteString(" ")
			b.WriteString(state.BlockType.String())
			_, err = fmt.Fprintln(out, b.String())
			return err
		},
	}
	sel.bind(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the state as JSON")
	return cmd
}
