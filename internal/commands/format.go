package commands

import (
	"fmt"

	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/bethropolis/tidemark/internal/markdown"
)

// FormatTarget is anything that can apply a markdown format command, usually
// the active editor.
type FormatTarget interface {
	DispatchFormatCommand(cmd markdown.Command) error
}

// RegisterFormatCommands registers one command per markdown format command
// (":bold", ":h2", ":table", ...) plus ":format <command>".
func RegisterFormatCommands(reg *Registry, target FormatTarget) error {
	for _, cmd := range markdown.Commands() {
		cmd := cmd
		err := reg.Register(string(cmd), func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("%s takes no arguments", cmd)
			}
			return target.DispatchFormatCommand(cmd)
		})
		if err != nil {
			return err
		}
	}

	return reg.Register("format", func(args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("usage: format <command>")
		}
		cmd, ok := markdown.ParseCommand(args[0])
		if !ok {
			return fmt.Errorf("%w: %s", markdown.ErrUnknownCommand, args[0])
		}
		logger.DebugTagf("commands", "format: dispatching %s", cmd)
		return target.DispatchFormatCommand(cmd)
	})
}
