package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bethropolis/tidemark/internal/commands"
	"github.com/bethropolis/tidemark/internal/editor"
	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/bethropolis/tidemark/internal/modehandler"
	"github.com/bethropolis/tidemark/internal/render"
	"github.com/bethropolis/tidemark/internal/statusbar"
)

var errUnsaved = errors.New("unsaved changes (add ! to override)")

// registerCommands fills the registry with the format commands, the theme
// commands and the built-in editor commands.
func (a *App) registerCommands() error {
	if err := commands.RegisterFormatCommands(a.commands, a.editor); err != nil {
		return fmt.Errorf("register format commands: %w", err)
	}
	if err := commands.RegisterThemeCommands(a.commands, a); err != nil {
		return fmt.Errorf("register theme commands: %w", err)
	}

	mh := a.modeHandler
	builtins := map[string]commands.Handler{
		"w": func(args []string) error {
			if !mh.Save(optionalArg(args)) {
				return errors.New("write failed")
			}
			return nil
		},
		"wq": func(args []string) error {
			if !mh.Save(optionalArg(args)) {
				return errors.New("write failed")
			}
			mh.Quit()
			return nil
		},
		"q": func(args []string) error {
			if a.editor.IsModified() {
				return errUnsaved
			}
			mh.Quit()
			return nil
		},
		"q!": func(args []string) error {
			mh.Quit()
			return nil
		},
		"e":  func(args []string) error { return a.edit(args, false) },
		"e!": func(args []string) error { return a.edit(args, true) },
		"undo": func(args []string) error {
			mh.Undo()
			return nil
		},
		"redo": func(args []string) error {
			mh.Redo()
			return nil
		},
		"yank": func(args []string) error {
			mh.Yank()
			return nil
		},
		"cut": func(args []string) error {
			mh.Cut()
			return nil
		},
		"paste": func(args []string) error {
			mh.Paste()
			return nil
		},
		"preview": func(args []string) error {
			mh.SetMode(modehandler.ModePreview)
			return nil
		},
		"export": func(args []string) error {
			path, err := exportHTML(a.editor, optionalArg(args))
			if err != nil {
				return err
			}
			a.SetStatusMessage("Exported HTML to %s", path)
			return nil
		},
		"find": func(args []string) error {
			if len(args) == 0 {
				mh.SetMode(modehandler.ModeFind)
				return nil
			}
			mh.Find(optionalArg(args))
			return nil
		},
		"findnext": func(args []string) error {
			mh.FindNext(true)
			return nil
		},
		"findprev": func(args []string) error {
			mh.FindNext(false)
			return nil
		},
		"s": func(args []string) error {
			return mh.Substitute(optionalArg(args))
		},
		"state": func(args []string) error {
			a.SetStatusMessage("State: %s", describeState(a.editor))
			return nil
		},
	}
	for name, handler := range builtins {
		if err := a.commands.Register(name, handler); err != nil {
			return fmt.Errorf("register :%s: %w", name, err)
		}
	}
	return nil
}

func optionalArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return strings.Join(args, " ")
}

// edit loads another file into the editor.
func (a *App) edit(args []string, force bool) error {
	path := optionalArg(args)
	if path == "" {
		path = a.editor.FilePath()
	}
	if path == "" {
		return errors.New("no file name")
	}
	if a.editor.IsModified() && !force {
		return errUnsaved
	}
	if err := a.editor.Load(path); err != nil {
		return err
	}
	a.SetStatusMessage("Editing %s", path)
	return nil
}

// exportHTML writes the buffer as a standalone HTML document. The default
// path is the buffer's file with an .html extension.
func exportHTML(ed editor.MarkdownEditor, path string) (string, error) {
	if path == "" {
		src := ed.FilePath()
		if src == "" {
			return "", errors.New("no file name for export (use :export <file>)")
		}
		path = strings.TrimSuffix(src, filepath.Ext(src)) + ".html"
	}
	title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	if err := render.HTMLDocument(f, title, []byte(ed.Value())); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	logger.Infof("Exported %s", path)
	return path, nil
}

// describeState lists the lit toolbar indicators for the selection.
func describeState(ed editor.MarkdownEditor) string {
	state := ed.FormatState()
	var active []string
	for _, ind := range statusbar.Indicators(state) {
		if ind.Active {
			active = append(active, ind.Label)
		}
	}
	if len(active) == 0 {
		return fmt.Sprintf("none (%s)", state.BlockType)
	}
	return strings.Join(active, " ")
}
