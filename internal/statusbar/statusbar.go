// Package statusbar draws the status line and the format toolbar.
package statusbar

import (
	"fmt"
	"sync"
	"time"

	"github.com/bethropolis/tidemark/internal/markdown"
	"github.com/bethropolis/tidemark/internal/theme"
	"github.com/bethropolis/tidemark/internal/types"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// StatusBar represents the UI component for the status line.
type StatusBar struct {
	mu             sync.RWMutex
	messageTimeout time.Duration
	now            func() time.Time

	filePath   string
	cursorPos  types.Position
	isModified bool
	editorMode string
	blockType  markdown.BlockType

	tempMessage     string
	tempMessageTime time.Time
}

// New creates a status bar. Temporary messages expire after messageTimeout.
func New(messageTimeout time.Duration) *StatusBar {
	return &StatusBar{
		messageTimeout: messageTimeout,
		now:            time.Now,
		blockType:      markdown.BlockParagraph,
	}
}

// SetFileInfo updates the file path shown in the status bar.
func (sb *StatusBar) SetFileInfo(path string, modified bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.filePath = path
	sb.isModified = modified
}

// SetCursorInfo updates the cursor position shown.
func (sb *StatusBar) SetCursorInfo(pos types.Position) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.cursorPos = pos
}

// SetEditorMode updates the displayed editor mode.
func (sb *StatusBar) SetEditorMode(mode string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.editorMode = mode
}

// SetBlockType updates the block type of the cursor line.
func (sb *StatusBar) SetBlockType(bt markdown.BlockType) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.blockType = bt
}

// SetTemporaryMessage displays a message for the configured duration.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = sb.now()
}

// ResetTemporaryMessage clears any temporary message being displayed.
func (sb *StatusBar) ResetTemporaryMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = ""
	sb.tempMessageTime = time.Time{}
}

// Text returns the line the status bar would draw now and whether it is a
// temporary message. Expired messages are cleared.
func (sb *StatusBar) Text() (string, bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	if !sb.tempMessageTime.IsZero() {
		if sb.now().Sub(sb.tempMessageTime) <= sb.messageTimeout {
			return sb.tempMessage, true
		}
		sb.tempMessage = ""
		sb.tempMessageTime = time.Time{}
	}
	return sb.defaultTextLocked(), false
}

func (sb *StatusBar) defaultTextLocked() string {
	fPath := sb.filePath
	if fPath == "" {
		fPath = "[No Name]"
	}
	modifiedIndicator := ""
	if sb.isModified {
		modifiedIndicator = " [+]"
	}
	modeIndicator := ""
	if sb.editorMode != "" {
		modeIndicator = fmt.Sprintf(" -- %s", sb.editorMode)
	}
	return fmt.Sprintf("%s%s -- %s -- Ln %d, Col %d%s",
		fPath, modifiedIndicator, sb.blockType, sb.cursorPos.Line+1, sb.cursorPos.Col+1, modeIndicator)
}

// Draw renders the status bar on the last screen row.
func (sb *StatusBar) Draw(screen tcell.Screen, width, height int, th *theme.Theme) {
	if height <= 0 || width <= 0 {
		return
	}
	text, temporary := sb.Text()
	style := th.GetStyle(theme.StyleStatusBar)
	if temporary {
		style = th.GetStyle(theme.StyleStatusBarMessage)
	} else {
		sb.mu.RLock()
		if sb.isModified {
			style = th.GetStyle(theme.StyleStatusBarModified)
		}
		sb.mu.RUnlock()
	}
	drawLine(screen, 0, height-1, width, text, style)
}

// drawLine fills row y from x with style and draws text by grapheme cluster.
// It returns the column after the last drawn cluster.
func drawLine(screen tcell.Screen, x, y, width int, text string, style tcell.Style) int {
	for col := x; col < width; col++ {
		screen.SetContent(col, y, ' ', nil, style)
	}
	return drawText(screen, x, y, width, text, style)
}

func drawText(screen tcell.Screen, x, y, width int, text string, style tcell.Style) int {
	gr := uniseg.NewGraphemes(text)
	currentX := x
	for gr.Next() {
		clusterWidth := gr.Width()
		if currentX+clusterWidth > width {
			break
		}
		runes := gr.Runes()
		if len(runes) > 0 {
			screen.SetContent(currentX, y, runes[0], runes[1:], style)
		}
		currentX += clusterWidth
	}
	return currentX
}
