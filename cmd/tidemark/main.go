// cmd/tidemark/main.go
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bethropolis/tidemark/internal/app"
	"github.com/bethropolis/tidemark/internal/config"
	"github.com/bethropolis/tidemark/internal/logger"
)

// cli holds state shared by every subcommand once the root pre-run loaded it.
type cli struct {
	flags     config.Flags
	cfg       *config.Config
	logCloser io.Closer
}

func newRootCmd() (*cobra.Command, *cli) {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:   "tidemark [file]",
		Short: "Markdown editor with formatting toggles",
		Long: `tidemark is a terminal markdown editor built around toggle-style
formatting commands: bold, headings, lists, quotes, tables and more.

Run it with a file to start editing, or use the subcommands to apply
formatting commands and inspect format state from scripts.`,
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
		RunE:              c.runEdit,
	}
	c.flags.Bind(rootCmd.PersistentFlags())

	editCmd := &cobra.Command{
		Use:   "edit [file]",
		Short: "Open the interactive editor",
		Args:  cobra.MaximumNArgs(1),
		RunE:  c.runEdit,
	}

	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(newApplyCmd(c))
	rootCmd.AddCommand(newStateCmd(c))
	rootCmd.AddCommand(newRenderCmd(c))
	rootCmd.AddCommand(newCommandsCmd(c))
	return rootCmd, c
}

func (c *cli) setup(cmd *cobra.Command, args []string) error {
	cfg, undecoded, err := config.Load(c.flags.ConfigFilePath, &c.flags)
	// The editor owns the terminal, so it always logs to a file. Scripting
	// subcommands stay quiet unless a log file was asked for.
	if cfg.Logger.LogFilePath == "" && isEditCommand(cmd) {
		cfg.Logger.LogFilePath = config.DefaultLogPath()
	}
	closer, logErr := logger.Setup(cfg.Logger)
	if logErr != nil {
		return logErr
	}
	c.cfg = cfg
	c.logCloser = closer

	if err != nil {
		logger.Warnf("Config: %v (using defaults)", err)
	}
	for _, key := range undecoded {
		logger.Warnf("Config: unknown key %q", key)
	}
	logger.Debugf("Running %q", cmd.CommandPath())
	return nil
}

func isEditCommand(cmd *cobra.Command) bool {
	return cmd == cmd.Root() || cmd.Name() == "edit"
}

func (c *cli) close() {
	if c.logCloser != nil {
		c.logCloser.Close()
	}
}

func (c *cli) runEdit(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) > 0 {
		path = args[0]
		logger.Debugf("File path specified: %s", path)
	} else {
		logger.Debugf("No file specified, starting empty.")
	}

	logger.Infof("Starting tidemark...")
	a, err := app.NewApp(c.cfg, app.Options{FilePath: path})
	if err != nil {
		return fmt.Errorf("initializing application: %w", err)
	}
	if err := a.Run(); err != nil {
		return fmt.Errorf("application exited: %w", err)
	}
	logger.Infof("tidemark finished.")
	return nil
}

func main() {
	rootCmd, c := newRootCmd()
	err := rootCmd.Execute()
	if err != nil {
		logger.Errorf("%v", err)
	}
	c.close()
	if err != nil {
		os.Exit(1)
	}
}
