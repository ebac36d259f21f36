// cmd/tidemark/render.go
package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bethropolis/tidemark/internal/render"
)

func newRenderCmd(c *cli) *cobra.Command {
	var (
		term       bool
		standalone bool
		style      string
		width      int
	)

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render markdown as HTML or for the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, path, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if term {
				if style == "" {
					style = c.cfg.Render.Style
				}
				if width <= 0 {
					width = c.cfg.Render.WordWrap
				}
				rendered, err := render.Terminal(text, style, width)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, rendered)
				return err
			}

			if standalone {
				return render.HTMLDocument(out, documentTitle(path), []byte(text))
			}
			return render.HTML(out, []byte(text))
		},
	}
	cmd.Flags().BoolVar(&term, "term", false, "Render for the terminal instead of HTML")
	cmd.Flags().BoolVar(&standalone, "standalone", false, "Wrap HTML output in a full document")
	cmd.Flags().StringVar(&style, "style", "", "Terminal style (auto, dark, light, notty...)")
	cmd.Flags().IntVar(&width, "width", 0, "Terminal word wrap width")
	cmd.MarkFlagsMutuallyExclusive("term", "standalone")
	return cmd
}

func documentTitle(path string) string {
	if path == "" {
		return "Untitled"
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
