// internal/app/app.go
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bethropolis/tidemark/internal/commands"
	"github.com/bethropolis/tidemark/internal/config"
	"github.com/bethropolis/tidemark/internal/core/clipboard"
	"github.com/bethropolis/tidemark/internal/editor"
	"github.com/bethropolis/tidemark/internal/event"
	"github.com/bethropolis/tidemark/internal/highlight"
	"github.com/bethropolis/tidemark/internal/highlighter"
	"github.com/bethropolis/tidemark/internal/input"
	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/bethropolis/tidemark/internal/markdown"
	"github.com/bethropolis/tidemark/internal/modehandler"
	"github.com/bethropolis/tidemark/internal/plugin"
	"github.com/bethropolis/tidemark/internal/render"
	"github.com/bethropolis/tidemark/internal/statusbar"
	"github.com/bethropolis/tidemark/internal/theme"
	"github.com/bethropolis/tidemark/internal/tui"
	"github.com/gdamore/tcell/v2"
)

// previewStyle is the glamour style used inside the editor. tcell draws
// plain text, so the preview must not carry ANSI escapes.
const previewStyle = "notty"

// Options configure a new App.
type Options struct {
	FilePath  string
	Screen    tcell.Screen // nil opens the terminal
	ThemesDir string       // "" uses the user config dir
}

// App encapsulates the core components and main loop of the editor.
type App struct {
	cfg              *config.Config
	tuiManager       *tui.TUI
	editor           editor.MarkdownEditor
	statusBar        *statusbar.StatusBar
	toolbar          *statusbar.Toolbar
	eventManager     *event.Manager
	pluginManager    *plugin.Manager
	modeHandler      *modehandler.ModeHandler
	commands         *commands.Registry
	clipboard        *clipboard.Manager
	themeManager     *theme.Manager
	highlightManager *highlight.Manager
	view             *tui.View
	editorAPI        plugin.EditorAPI

	previewKey   string
	previewLines []string

	quit          chan struct{}
	redrawRequest chan struct{}
}

// NewApp creates and initializes a new application instance.
func NewApp(cfg *config.Config, opts Options) (*App, error) {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	themesDir := opts.ThemesDir
	if themesDir == "" {
		themesDir = theme.DefaultThemesDir(config.AppName)
	}
	themeManager := theme.NewManager(themesDir)

	var (
		tuiManager *tui.TUI
		err        error
	)
	defStyle := themeManager.Current().GetStyle(theme.StyleDefault)
	if opts.Screen != nil {
		tuiManager, err = tui.NewWithScreen(opts.Screen, defStyle)
	} else {
		tuiManager, err = tui.New(defStyle)
	}
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}

	eventManager := event.NewManager()
	engine := markdown.New(cfg.Markdown.EngineOptions())
	ed, err := editor.New(editor.Options{Backend: cfg.Editor.Backend, Engine: engine, Events: eventManager})
	if err != nil {
		tuiManager.Close()
		return nil, err
	}
	if opts.FilePath != "" {
		ed, err = loadFile(ed, opts.FilePath, editor.Options{Engine: engine, Events: eventManager})
		if err != nil {
			tuiManager.Close()
			return nil, err
		}
	}
	ed.Focus()

	a := &App{
		cfg:           cfg,
		tuiManager:    tuiManager,
		editor:        ed,
		statusBar:     statusbar.New(config.MessageTimeout),
		toolbar:       statusbar.NewToolbar(),
		eventManager:  eventManager,
		pluginManager: plugin.NewManager(),
		commands:      commands.NewRegistry(),
		clipboard:     clipboard.NewManager(cfg.Editor.SystemClipboard),
		themeManager:  themeManager,
		view:          tui.NewView(cfg.Editor.ScrollOff, cfg.Editor.TabWidth),
		quit:          make(chan struct{}),
		redrawRequest: make(chan struct{}, 1),
	}

	if h, err := highlighter.New(); err != nil {
		logger.Warnf("App: syntax highlighting disabled: %v", err)
	} else {
		a.highlightManager = highlight.NewManager(h, ed.Value, a.requestRedraw)
	}

	a.modeHandler = modehandler.New(modehandler.Config{
		Editor:         ed,
		InputProcessor: input.NewInputProcessor(cfg.Editor.Leader()),
		EventManager:   eventManager,
		StatusBar:      a.statusBar,
		Commands:       a.commands,
		Clipboard:      a.clipboard,
		QuitSignal:     a.quit,
		TabWidth:       cfg.Editor.TabWidth,
		LeaderTimeout:  config.LeaderTimeout,
		PageHeight:     a.pageHeight,
	})

	a.subscribeEvents()
	if err := a.registerCommands(); err != nil {
		tuiManager.Close()
		return nil, err
	}

	a.editorAPI = newEditorAPI(a)
	if err := registerPlugins(a.pluginManager); err != nil {
		logger.Warnf("App: %v", err)
	}
	a.pluginManager.InitializePlugins(a.editorAPI)

	// Initial state for the status bar, toolbar and highlighting.
	a.statusBar.SetFileInfo(ed.FilePath(), ed.IsModified())
	a.statusBar.SetEditorMode(modehandler.ModeNormal.String())
	a.statusBar.SetCursorInfo(ed.Cursor())
	a.toolbar.SetState(ed.FormatState())
	a.statusBar.SetBlockType(a.toolbar.State().BlockType)
	if a.highlightManager != nil {
		if err := a.highlightManager.Run(context.Background()); err != nil {
			logger.Warnf("App: Initial highlighting failed: %v", err)
		}
	}
	return a, nil
}

// Run starts the application's main event and drawing loops.
func (a *App) Run() error {
	defer a.tuiManager.Close()
	defer a.pluginManager.ShutdownPlugins()
	defer a.highlightManager.Shutdown()

	go a.eventLoop()

	a.eventManager.Dispatch(event.TypeAppReady, event.AppReadyData{})
	a.statusBar.SetTemporaryMessage("tidemark - Ctrl+S Save | Ctrl+P Command | Ctrl+R Preview | Esc Quit")
	a.requestRedraw()

	for {
		select {
		case <-a.quit:
			a.eventManager.Dispatch(event.TypeAppQuit, event.AppQuitData{})
			if a.editor.IsModified() {
				logger.Warnf("Exited with unsaved changes.")
			}
			logger.Infof("Exiting application.")
			return nil
		case <-a.redrawRequest:
			a.draw()
		}
	}
}

// eventLoop handles TUI events, delegating key events to ModeHandler.
func (a *App) eventLoop() {
	for {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			return
		}

		needsRedraw := false
		switch eventData := ev.(type) {
		case *tcell.EventResize:
			a.tuiManager.Sync()
			needsRedraw = true
		case *tcell.EventKey:
			needsRedraw = a.modeHandler.HandleKeyEvent(eventData)
			if a.modeHandler.LeaderPending() {
				a.scheduleLeaderFlush()
			}
		case *tcell.EventInterrupt:
			needsRedraw = a.modeHandler.FlushLeader()
		}

		if needsRedraw {
			a.requestRedraw()
		}
	}
}

// scheduleLeaderFlush posts an interrupt once the leader timeout passes so
// the event loop can type a lone leader key.
func (a *App) scheduleLeaderFlush() {
	time.AfterFunc(config.LeaderTimeout+10*time.Millisecond, func() {
		if err := a.tuiManager.PostEvent(tcell.NewEventInterrupt(nil)); err != nil {
			logger.Debugf("App: leader flush not posted: %v", err)
		}
	})
}

// requestRedraw sends a redraw signal non-blockingly.
func (a *App) requestRedraw() {
	select {
	case a.redrawRequest <- struct{}{}:
	default:
	}
}

// textRect is the band between the toolbar and the status bar.
func (a *App) textRect() tui.Rect {
	_, height := a.tuiManager.Size()
	statusHeight := a.cfg.Editor.StatusBarHeight
	if statusHeight <= 0 {
		statusHeight = config.StatusBarHeight
	}
	return tui.Rect{Y: config.ToolbarHeight, Height: height - config.ToolbarHeight - statusHeight}
}

// pageHeight is the PageUp/PageDown distance.
func (a *App) pageHeight() int {
	if h := a.textRect().Height; h > 0 {
		return h
	}
	return 1
}

// draw clears the screen and redraws all components.
func (a *App) draw() {
	th := a.themeManager.Current()
	width, height := a.tuiManager.Size()
	area := a.textRect()

	switch a.modeHandler.GetCurrentMode() {
	case modehandler.ModeCommand:
		a.statusBar.SetTemporaryMessage(":%s", a.modeHandler.GetCommandBuffer())
	case modehandler.ModeFind:
		a.statusBar.SetTemporaryMessage("/%s", a.modeHandler.GetFindBuffer())
	}

	a.tuiManager.Clear()
	a.toolbar.Draw(a.tuiManager.GetScreen(), 0, width, th)

	if a.modeHandler.GetCurrentMode() == modehandler.ModePreview {
		lines := a.preview(width)
		a.modeHandler.ClampPreview(len(lines) - area.Height)
		tui.DrawPreview(a.tuiManager, area, lines, a.modeHandler.PreviewTop(), th)
	} else {
		frame := a.frame()
		a.view.ScrollToCursor(frame.Lines, frame.Cursor, tui.TextAreaWidth(len(frame.Lines), width), area.Height)
		tui.DrawBuffer(a.tuiManager, area, a.view, frame, th)
		tui.DrawCursor(a.tuiManager, area, a.view, frame)
	}

	a.statusBar.Draw(a.tuiManager.GetScreen(), width, height, th)
	a.tuiManager.Show()
}

// frame snapshots the editor for drawing.
func (a *App) frame() tui.Frame {
	lines := strings.Split(a.editor.Value(), "\n")
	start, end, selecting := tui.SelectionRange(lines, a.editor.Selection())
	return tui.Frame{
		Lines:      lines,
		Cursor:     a.editor.Cursor(),
		SelStart:   start,
		SelEnd:     end,
		Selecting:  selecting,
		LineStyles: a.highlightManager.LineStyles,
	}
}

// preview renders the buffer with glamour, cached by text and width.
func (a *App) preview(width int) []string {
	text := a.editor.Value()
	key := fmt.Sprintf("%d:%s", width, text)
	if key == a.previewKey {
		return a.previewLines
	}
	out, err := render.Terminal(text, previewStyle, width)
	if err != nil {
		logger.Errorf("App: preview failed: %v", err)
		out = text
	}
	a.previewKey = key
	a.previewLines = strings.Split(out, "\n")
	return a.previewLines
}

// SetStatusMessage shows a temporary status bar message.
func (a *App) SetStatusMessage(format string, args ...interface{}) {
	a.statusBar.SetTemporaryMessage(format, args...)
	a.requestRedraw()
}

// GetTheme returns the active theme.
func (a *App) GetTheme() *theme.Theme {
	return a.themeManager.Current()
}

// SetTheme activates a theme by name and redraws.
func (a *App) SetTheme(name string) error {
	if err := a.themeManager.SetTheme(name); err != nil {
		return err
	}
	a.tuiManager.SetStyle(a.themeManager.Current().GetStyle(theme.StyleDefault))
	a.requestRedraw()
	return nil
}

// ListThemes returns the available theme names.
func (a *App) ListThemes() []string {
	return a.themeManager.ListThemes()
}

// Editor returns the editing surface.
func (a *App) Editor() editor.MarkdownEditor {
	return a.editor
}

// Commands returns the command registry.
func (a *App) Commands() *commands.Registry {
	return a.commands
}

// loadFile loads path into ed. A file the textarea backend cannot hold
// unchanged is opened in a buffer-backed editor instead.
func loadFile(ed editor.MarkdownEditor, path string, opts editor.Options) (editor.MarkdownEditor, error) {
	err := ed.Load(path)
	if err == nil || !errors.Is(err, editor.ErrUnsupportedText) {
		return ed, err
	}
	logger.Warnf("App: %v; falling back to the %s backend", err, config.BackendBuffer)
	opts.Backend = config.BackendBuffer
	fallback, ferr := editor.New(opts)
	if ferr != nil {
		return nil, ferr
	}
	if ferr := fallback.Load(path); ferr != nil {
		return nil, ferr
	}
	return fallback, nil
}
