// internal/input/action.go
package input

import "github.com/bethropolis/tidemark/internal/markdown"

// Action represents a command or operation to be performed by the editor.
type Action int

// Define the set of possible editor actions.
const (
	// --- Meta Actions ---
	ActionUnknown   Action = iota // Default/invalid action
	ActionQuit                    // Esc: leave a mode, or quit when nothing is pending
	ActionForceQuit               // Quit without checking modified status
	ActionSave

	// --- Cursor Movement ---
	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionMovePageUp
	ActionMovePageDown
	ActionMoveHome // Beginning of line
	ActionMoveEnd  // End of line

	// --- Text Manipulation ---
	ActionInsertRune         // Requires Rune argument
	ActionInsertNewLine      // Enter
	ActionInsertTab          // Tab, expanded to spaces
	ActionDeleteCharForward  // Delete key
	ActionDeleteCharBackward // Backspace key
	ActionYank
	ActionCut
	ActionPaste
	ActionUndo
	ActionRedo

	// --- Markdown ---
	ActionFormat // Requires Command argument
	ActionLeader // Leader key pressed, the next rune picks a command

	// --- Editor Mode ---
	ActionEnterCommandMode
	ActionTogglePreview
	ActionEnterFindMode

	// --- Search ---
	ActionFindNext
	ActionFindPrevious
)

// ActionEvent represents a decoded input event resulting in an action.
type ActionEvent struct {
	Action  Action
	Rune    rune             // Used for ActionInsertRune and ActionLeader
	Command markdown.Command // Used for ActionFormat
}

// IsMovement reports whether the action only moves the cursor.
func (a Action) IsMovement() bool {
	switch a {
	case ActionMoveUp, ActionMoveDown, ActionMoveLeft, ActionMoveRight,
		ActionMovePageUp, ActionMovePageDown, ActionMoveHome, ActionMoveEnd:
		return true
	}
	return false
}
