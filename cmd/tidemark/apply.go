// cmd/tidemark/apply.go
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/bethropolis/tidemark/internal/markdown"
)

type selectionFlags struct {
	anchor int
	focus  int
}

func (s *selectionFlags) bind(cmd *cobra.Command) {
	cmd.Flags().IntVar(&s.anchor, "anchor", 0, "Selection anchor (rune offset)")
	cmd.Flags().IntVar(&s.focus, "focus", -1, "Selection focus (rune offset, defaults to the anchor)")
}

func (s *selectionFlags) selection() markdown.Selection {
	if s.focus < 0 {
		return markdown.Cursor(s.anchor)
	}
	return markdown.Selection{Anchor: s.anchor, Focus: s.focus}
}

// readInput reads the named file, or stdin when no file was given.
func readInput(cmd *cobra.Command, args []string) (string, string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), "", nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("read %s: %w", args[0], err)
	}
	return string(data), args[0], nil
}

func newApplyCmd(c *cli) *cobra.Command {
	var (
		sel   selectionFlags
		write bool
	)

	cmd := &cobra.Command{
		Use:   "apply <command> [file]",
		Short: "Apply a formatting command and print the result",
		Long: `Apply a formatting command to a file (or stdin) at the given selection
and print the resulting text. Use "tidemark commands" for the list of
command names.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, ok := markdown.ParseCommand(args[0])
			if !ok {
				return fmt.Errorf("unknown command %q", args[0])
			}
			text, path, err := readInput(cmd, args[1:])
			if err != nil {
				return err
			}

			engine := markdown.New(c.cfg.Markdown.EngineOptions())
			res, err := engine.Apply(fc, text, sel.selection())
			if err != nil {
				return err
			}
			logger.Debugf("apply %s: changed=%v selection=%d..%d", fc, res.Changed, res.Selection.Anchor, res.Selection.Focus)

			if write {
				if path == "" {
					return fmt.Errorf("--write needs a file argument")
				}
				if !res.Changed {
					return nil
				}
				return os.WriteFile(path, []byte(res.Text), 0o644)
			}
			_, err = io.WriteString(cmd.OutOrStdout(), res.Text)
			return err
		},
	}
	sel.bind(cmd)
	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write the result back to the file")
	return cmd
}
