package modehandler

import (
	"errors"
	"strings"

	"github.com/bethropolis/tidemark/internal/commands"
	"github.com/bethropolis/tidemark/internal/input"
	"github.com/bethropolis/tidemark/internal/logger"
)

// handleActionCommand handles actions when in ModeCommand.
func (mh *ModeHandler) handleActionCommand(actionEvent input.ActionEvent) bool {
	switch actionEvent.Action {
	case input.ActionInsertRune, input.ActionLeader:
		mh.cmdBuffer = append(mh.cmdBuffer, actionEvent.Rune)

	case input.ActionDeleteCharBackward:
		if len(mh.cmdBuffer) == 0 {
			mh.statusBar.ResetTemporaryMessage()
			mh.SetMode(ModeNormal)
			return true
		}
		mh.cmdBuffer = mh.cmdBuffer[:len(mh.cmdBuffer)-1]

	case input.ActionInsertNewLine:
		line := string(mh.cmdBuffer)
		mh.SetMode(ModeNormal)
		mh.executeCommand(line)
		return true

	case input.ActionQuit:
		mh.statusBar.ResetTemporaryMessage()
		mh.SetMode(ModeNormal)
		logger.Debugf("ModeHandler: Canceled Command Mode via Escape")
		return true

	case input.ActionForceQuit:
		mh.Quit()
		return false

	default:
		return false
	}

	mh.statusBar.SetTemporaryMessage(":%s", string(mh.cmdBuffer))
	return true
}

// executeCommand parses and runs a command line.
func (mh *ModeHandler) executeCommand(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		mh.statusBar.ResetTemporaryMessage()
		return
	}
	// Commands set their own success message; clear the ":..." prompt first.
	mh.statusBar.ResetTemporaryMessage()
	if strings.HasPrefix(line, "s/") {
		line = "s " + line[1:]
	}
	name := strings.Fields(line)[0]
	logger.Debugf("ModeHandler: Executing command ':%s'", line)
	err := mh.commands.ExecuteLine(line)
	switch {
	case err == nil:
	case errors.Is(err, commands.ErrCommandNotFound):
		mh.statusBar.SetTemporaryMessage("Unknown command: %s", name)
	default:
		mh.statusBar.SetTemporaryMessage("Error executing command '%s': %v", name, err)
	}
}

// handleActionPreview handles actions when in ModePreview.
func (mh *ModeHandler) handleActionPreview(actionEvent input.ActionEvent) bool {
	switch actionEvent.Action {
	case input.ActionQuit, input.ActionTogglePreview:
		mh.SetMode(ModeNormal)
	case input.ActionForceQuit:
		mh.Quit()
		return false
	case input.ActionMoveUp:
		mh.previewTop--
	case input.ActionMoveDown:
		mh.previewTop++
	case input.ActionMovePageUp:
		mh.previewTop -= mh.pageHeight()
	case input.ActionMovePageDown:
		mh.previewTop += mh.pageHeight()
	case input.ActionMoveHome:
		mh.previewTop = 0
	case input.ActionEnterCommandMode:
		mh.SetMode(ModeCommand)
		mh.statusBar.SetTemporaryMessage(":")
	default:
		return false
	}
	if mh.previewTop < 0 {
		mh.previewTop = 0
	}
	return true
}
