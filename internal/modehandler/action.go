package modehandler

import (
	"strings"

	"github.com/bethropolis/tidemark/internal/input"
	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/bethropolis/tidemark/internal/markdown"
)

// executeAction handles actions when in ModeNormal.
func (mh *ModeHandler) executeAction(actionEvent input.ActionEvent, shift bool) bool {
	actionProcessed := true
	action := actionEvent.Action

	switch action {
	// Mode switching
	case input.ActionEnterCommandMode:
		mh.SetMode(ModeCommand)
		mh.statusBar.SetTemporaryMessage(":")
	case input.ActionTogglePreview:
		mh.SetMode(ModePreview)
	case input.ActionEnterFindMode:
		mh.SetMode(ModeFind)
		mh.statusBar.SetTemporaryMessage("/")

	// Search
	case input.ActionFindNext:
		actionProcessed = mh.FindNext(true)
	case input.ActionFindPrevious:
		actionProcessed = mh.FindNext(false)
	case input.ActionLeader:
		mh.leaderWaiting = true
		mh.leaderAt = mh.now()
		mh.statusBar.SetTemporaryMessage("%c-", actionEvent.Rune)

	// Quit/Save
	case input.ActionQuit:
		if sel := mh.editor.Selection(); !sel.IsCollapsed() {
			mh.editor.SetSelection(markdown.Selection{Anchor: sel.Focus, Focus: sel.Focus})
			break
		}
		mh.RequestQuit()
	case input.ActionForceQuit:
		mh.Quit()
		actionProcessed = false
	case input.ActionSave:
		mh.Save("")

	// Movement; Shift extends the selection
	case input.ActionMoveUp:
		mh.editor.MoveCursor(-1, 0, shift)
	case input.ActionMoveDown:
		mh.editor.MoveCursor(1, 0, shift)
	case input.ActionMoveLeft:
		mh.editor.MoveCursor(0, -1, shift)
	case input.ActionMoveRight:
		mh.editor.MoveCursor(0, 1, shift)
	case input.ActionMovePageUp:
		mh.editor.MoveCursor(-mh.pageHeight(), 0, shift)
	case input.ActionMovePageDown:
		mh.editor.MoveCursor(mh.pageHeight(), 0, shift)
	case input.ActionMoveHome:
		mh.editor.MoveToLineStart(shift)
	case input.ActionMoveEnd:
		mh.editor.MoveToLineEnd(shift)

	// Clipboard and history
	case input.ActionYank:
		actionProcessed = mh.Yank()
	case input.ActionCut:
		actionProcessed = mh.Cut()
	case input.ActionPaste:
		actionProcessed = mh.Paste()
	case input.ActionUndo:
		actionProcessed = mh.Undo()
	case input.ActionRedo:
		actionProcessed = mh.Redo()

	// Text modification
	case input.ActionInsertRune:
		mh.editor.InsertText(string(actionEvent.Rune))
	case input.ActionInsertNewLine:
		mh.editor.InsertText("\n")
	case input.ActionInsertTab:
		mh.editor.InsertText(strings.Repeat(" ", mh.tabWidth))
	case input.ActionDeleteCharBackward:
		mh.editor.DeleteBackward()
	case input.ActionDeleteCharForward:
		mh.editor.DeleteForward()

	// Markdown formatting
	case input.ActionFormat:
		actionProcessed = mh.ApplyFormat(actionEvent.Command)

	default:
		actionProcessed = false
	}

	if action != input.ActionQuit && action != input.ActionUnknown && actionProcessed {
		mh.forceQuitPending = false
	}
	return actionProcessed
}

// ApplyFormat runs a format command on the editor selection.
func (mh *ModeHandler) ApplyFormat(cmd markdown.Command) bool {
	if err := mh.editor.DispatchFormatCommand(cmd); err != nil {
		mh.statusBar.SetTemporaryMessage("Format failed: %v", err)
		logger.Debugf("ModeHandler: format %q: %v", cmd, err)
		return false
	}
	return true
}

// Save writes the buffer, to path when given.
func (mh *ModeHandler) Save(path string) bool {
	if path == "" && mh.editor.FilePath() == "" {
		mh.statusBar.SetTemporaryMessage("No file name (use :w <file>)")
		return false
	}
	if err := mh.editor.Save(path); err != nil {
		mh.statusBar.SetTemporaryMessage("Save FAILED: %v", err)
		logger.Errorf("ModeHandler: save failed: %v", err)
		return false
	}
	mh.statusBar.SetTemporaryMessage("Buffer saved to %s", mh.editor.FilePath())
	return true
}

// Yank copies the selection to the clipboard.
func (mh *ModeHandler) Yank() bool {
	text := mh.editor.SelectedText()
	if text == "" {
		mh.statusBar.SetTemporaryMessage("Nothing selected to copy")
		return false
	}
	if err := mh.clipboard.Copy(text); err != nil {
		mh.statusBar.SetTemporaryMessage("Yank failed: %v", err)
		logger.Debugf("Yank error: %v", err)
		return false
	}
	mh.statusBar.SetTemporaryMessage("Text copied to clipboard")
	return true
}

// Cut copies the selection to the clipboard and deletes it.
func (mh *ModeHandler) Cut() bool {
	if !mh.Yank() {
		return false
	}
	mh.editor.DeleteBackward()
	mh.statusBar.SetTemporaryMessage("Text cut to clipboard")
	return true
}

// Paste replaces the selection with the clipboard text.
func (mh *ModeHandler) Paste() bool {
	text, err := mh.clipboard.Paste()
	if err != nil {
		mh.statusBar.SetTemporaryMessage("Paste failed: %v", err)
		logger.Debugf("Paste error: %v", err)
		return false
	}
	if text == "" {
		mh.statusBar.SetTemporaryMessage("Clipboard empty - nothing to paste")
		return false
	}
	mh.editor.InsertText(text)
	return true
}

// Undo reverts the last edit.
func (mh *ModeHandler) Undo() bool {
	if !mh.editor.Undo() {
		mh.statusBar.SetTemporaryMessage("Nothing to undo")
		return false
	}
	return true
}

// Redo re-applies the last undone edit.
func (mh *ModeHandler) Redo() bool {
	if !mh.editor.Redo() {
		mh.statusBar.SetTemporaryMessage("Nothing to redo")
		return false
	}
	return true
}
