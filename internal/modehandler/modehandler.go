// internal/modehandler/modehandler.go
package modehandler

import (
	"sync"
	"time"

	"github.com/bethropolis/tidemark/internal/commands"
	"github.com/bethropolis/tidemark/internal/core/clipboard"
	"github.com/bethropolis/tidemark/internal/core/find"
	"github.com/bethropolis/tidemark/internal/editor"
	"github.com/bethropolis/tidemark/internal/event"
	"github.com/bethropolis/tidemark/internal/input"
	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/bethropolis/tidemark/internal/statusbar"
	"github.com/gdamore/tcell/v2"
)

// InputMode defines the different states for user input.
type InputMode int

const (
	ModeNormal InputMode = iota
	ModeCommand
	ModePreview
	ModeFind
)

func (m InputMode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeCommand:
		return "COMMAND"
	case ModePreview:
		return "PREVIEW"
	case ModeFind:
		return "FIND"
	}
	return "UNKNOWN"
}

// ModeHandler manages input modes, command execution, and related state.
type ModeHandler struct {
	editor         editor.MarkdownEditor
	inputProcessor *input.InputProcessor
	eventManager   *event.Manager
	statusBar      *statusbar.StatusBar
	commands       *commands.Registry
	clipboard      *clipboard.Manager
	finder         *find.Manager
	quitSignal     chan<- struct{}
	quitOnce       sync.Once
	tabWidth       int
	pageHeight     func() int
	leaderTimeout  time.Duration
	now            func() time.Time

	currentMode      InputMode
	cmdBuffer        []rune
	findBuffer       []rune
	forceQuitPending bool
	leaderWaiting    bool
	leaderAt         time.Time
	previewTop       int
}

// Config holds dependencies for the ModeHandler.
type Config struct {
	Editor         editor.MarkdownEditor
	InputProcessor *input.InputProcessor
	EventManager   *event.Manager
	StatusBar      *statusbar.StatusBar
	Commands       *commands.Registry
	Clipboard      *clipboard.Manager
	QuitSignal     chan<- struct{} // Write-only channel to signal quit
	TabWidth       int
	LeaderTimeout  time.Duration
	PageHeight     func() int // rows of text visible, for PageUp/PageDown
}

// New creates a new ModeHandler.
func New(cfg Config) *ModeHandler {
	if cfg.Editor == nil || cfg.InputProcessor == nil || cfg.StatusBar == nil || cfg.Commands == nil || cfg.QuitSignal == nil {
		panic("modehandler.New: Missing required dependencies in Config")
	}
	if cfg.Clipboard == nil {
		cfg.Clipboard = clipboard.NewManager(false)
	}
	if cfg.PageHeight == nil {
		cfg.PageHeight = func() int { return 20 }
	}
	if cfg.TabWidth <= 0 {
		cfg.TabWidth = 4
	}
	return &ModeHandler{
		editor:         cfg.Editor,
		inputProcessor: cfg.InputProcessor,
		eventManager:   cfg.EventManager,
		statusBar:      cfg.StatusBar,
		commands:       cfg.Commands,
		clipboard:      cfg.Clipboard,
		finder:         find.NewManager(cfg.Editor),
		quitSignal:     cfg.QuitSignal,
		tabWidth:       cfg.TabWidth,
		pageHeight:     cfg.PageHeight,
		leaderTimeout:  cfg.LeaderTimeout,
		now:            time.Now,
		currentMode:    ModeNormal,
	}
}

// HandleKeyEvent decides what to do based on current mode and key event.
// Returns true if the event resulted in an action requiring redraw.
func (mh *ModeHandler) HandleKeyEvent(ev *tcell.EventKey) bool {
	mh.eventManager.Dispatch(event.TypeKeyPressed, event.KeyPressedData{KeyEvent: ev})

	actionEvent := mh.inputProcessor.ProcessEvent(ev)
	shift := ev.Modifiers()&tcell.ModShift != 0

	switch mh.currentMode {
	case ModeNormal:
		if mh.leaderWaiting {
			return mh.handleLeaderFollowup(actionEvent, shift)
		}
		return mh.executeAction(actionEvent, shift)
	case ModeCommand:
		return mh.handleActionCommand(actionEvent)
	case ModePreview:
		return mh.handleActionPreview(actionEvent)
	case ModeFind:
		return mh.handleActionFind(actionEvent)
	}
	logger.Warnf("ModeHandler: unknown input mode %v", mh.currentMode)
	return false
}

// SetMode switches modes. The editor is focused only in normal mode.
func (mh *ModeHandler) SetMode(mode InputMode) {
	if mode == mh.currentMode {
		return
	}
	mh.resetLeaderState()
	mh.currentMode = mode
	mh.cmdBuffer = mh.cmdBuffer[:0]
	mh.findBuffer = mh.findBuffer[:0]
	if mode == ModePreview {
		mh.previewTop = 0
	}
	if mode == ModeNormal {
		mh.editor.Focus()
	} else {
		mh.editor.Blur()
	}
	mh.statusBar.SetEditorMode(mode.String())
	mh.eventManager.Dispatch(event.TypeModeChanged, event.ModeChangedData{Mode: mode.String()})
	logger.Debugf("ModeHandler: entered %s mode", mode)
}

// GetCurrentMode returns the current input mode.
func (mh *ModeHandler) GetCurrentMode() InputMode {
	return mh.currentMode
}

// GetCommandBuffer returns the command line being typed.
func (mh *ModeHandler) GetCommandBuffer() string {
	if mh.currentMode == ModeCommand {
		return string(mh.cmdBuffer)
	}
	return ""
}

// GetFindBuffer returns the search term being typed.
func (mh *ModeHandler) GetFindBuffer() string {
	if mh.currentMode == ModeFind {
		return string(mh.findBuffer)
	}
	return ""
}

// PreviewTop returns the first visible preview line.
func (mh *ModeHandler) PreviewTop() int {
	return mh.previewTop
}

// ClampPreview keeps the preview scroll within [0, max].
func (mh *ModeHandler) ClampPreview(max int) {
	if mh.previewTop > max {
		mh.previewTop = max
	}
	if mh.previewTop < 0 {
		mh.previewTop = 0
	}
}

// Quit closes the quit channel once.
func (mh *ModeHandler) Quit() {
	mh.quitOnce.Do(func() { close(mh.quitSignal) })
}

// RequestQuit quits unless the buffer is modified. The first request on a
// modified buffer arms a warning and a second one quits.
func (mh *ModeHandler) RequestQuit() bool {
	if mh.editor.IsModified() && !mh.forceQuitPending {
		mh.statusBar.SetTemporaryMessage("Unsaved changes! Press ESC again or Ctrl+Q to force quit.")
		mh.forceQuitPending = true
		return false
	}
	mh.Quit()
	return true
}
