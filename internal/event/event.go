// internal/event/event.go
package event

import (
	"fmt"

	"github.com/bethropolis/tidemark/internal/markdown"
	"github.com/bethropolis/tidemark/internal/types"
	"github.com/gdamore/tcell/v2"
)

// Type identifies the kind of event.
type Type int

// Define specific event types.
const (
	TypeUnknown Type = iota

	// Editor content
	TypeBufferModified // text changed (typing, delete, format command, undo/redo)
	TypeBufferLoaded   // a file was loaded into the editor
	TypeBufferSaved    // the buffer was written to disk

	// Cursor, selection and toolbar state
	TypeCursorMoved        // cursor position changed
	TypeSelectionChanged   // anchor or focus changed
	TypeFormatStateChanged // toolbar state recomputed for the selection
	TypeBlockTypeChanged   // a heading command settled on a new block type
	TypeFormatApplied      // a format command ran
	TypeFocusChanged       // editor gained or lost focus

	// UI
	TypeModeChanged // editor mode changed (normal, command, preview)
	TypeKeyPressed  // raw key press forwarded

	// Application lifecycle
	TypeAppReady // application fully initialized
	TypeAppQuit  // application about to terminate
)

var typeNames = map[Type]string{
	TypeUnknown:            "Unknown",
	TypeBufferModified:     "BufferModified",
	TypeBufferLoaded:       "BufferLoaded",
	TypeBufferSaved:        "BufferSaved",
	TypeCursorMoved:        "CursorMoved",
	TypeSelectionChanged:   "SelectionChanged",
	TypeFormatStateChanged: "FormatStateChanged",
	TypeBlockTypeChanged:   "BlockTypeChanged",
	TypeFormatApplied:      "FormatApplied",
	TypeFocusChanged:       "FocusChanged",
	TypeModeChanged:        "ModeChanged",
	TypeKeyPressed:         "KeyPressed",
	TypeAppReady:           "AppReady",
	TypeAppQuit:            "AppQuit",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type        // The kind of event
	Data interface{} // Payload carrying event-specific data
}

// BufferModifiedData describes a change to the editor text. Edit carries the
// byte ranges tree-sitter needs for an incremental reparse; FullReload is set
// when the whole text was replaced and the parse should start over.
type BufferModifiedData struct {
	Edit       types.EditInfo
	FullReload bool
}

// BufferLoadedData contains info about the loaded buffer.
type BufferLoadedData struct {
	FilePath string
}

// BufferSavedData contains info about the saved buffer.
type BufferSavedData struct {
	FilePath string
}

// CursorMovedData contains the new cursor position.
type CursorMovedData struct {
	NewPosition types.Position
}

// SelectionChangedData carries the new selection in rune offsets.
type SelectionChangedData struct {
	Selection markdown.Selection
}

// FormatStateChangedData carries the recomputed toolbar state.
type FormatStateChangedData struct {
	State markdown.FormatState
}

// BlockTypeChangedData is published after a heading command is committed.
type BlockTypeChangedData struct {
	BlockType markdown.BlockType
}

// FormatAppliedData reports a format command and whether it changed the text.
type FormatAppliedData struct {
	Command markdown.Command
	Changed bool
}

// FocusChangedData reports the new focus state.
type FocusChangedData struct {
	Focused bool
}

// ModeChangedData carries the name of the new mode.
type ModeChangedData struct {
	Mode string
}

// KeyPressedData contains the raw tcell key event.
type KeyPressedData struct {
	KeyEvent *tcell.EventKey
}

// AppQuitData could contain exit code or reason later.
type AppQuitData struct{}

// AppReadyData could contain initial config or state later.
type AppReadyData struct{}
