package modehandler

import (
	"errors"

	"github.com/bethropolis/tidemark/internal/core/find"
	"github.com/bethropolis/tidemark/internal/input"
	"github.com/bethropolis/tidemark/internal/logger"
)

// handleActionFind handles actions when in ModeFind.
func (mh *ModeHandler) handleActionFind(actionEvent input.ActionEvent) bool {
	switch actionEvent.Action {
	case input.ActionInsertRune, input.ActionLeader:
		mh.findBuffer = append(mh.findBuffer, actionEvent.Rune)

	case input.ActionDeleteCharBackward:
		if len(mh.findBuffer) == 0 {
			mh.cancelFindMode()
			return true
		}
		mh.findBuffer = mh.findBuffer[:len(mh.findBuffer)-1]

	case input.ActionInsertNewLine:
		term := string(mh.findBuffer)
		mh.SetMode(ModeNormal)
		mh.Find(term)
		return true

	case input.ActionQuit:
		mh.cancelFindMode()
		return true

	case input.ActionForceQuit:
		mh.Quit()
		return false

	default:
		return false
	}

	mh.statusBar.SetTemporaryMessage("/%s", string(mh.findBuffer))
	return true
}

// cancelFindMode leaves find mode without searching.
func (mh *ModeHandler) cancelFindMode() {
	mh.statusBar.ResetTemporaryMessage()
	mh.SetMode(ModeNormal)
	logger.Debugf("ModeHandler: Canceled Find Mode")
}

// Find makes term the active search and selects the first match at or after
// the caret. An empty term clears the search.
func (mh *ModeHandler) Find(term string) bool {
	if term == "" {
		_ = mh.finder.SetTerm("")
		mh.statusBar.ResetTemporaryMessage()
		return false
	}
	if err := mh.finder.SetTerm(term); err != nil {
		mh.statusBar.SetTemporaryMessage("Invalid pattern: %v", err)
		return false
	}
	return mh.FindNext(true)
}

// FindNext selects the next (or previous) match of the active search.
func (mh *ModeHandler) FindNext(forward bool) bool {
	res, err := mh.finder.FindNext(forward)
	switch {
	case errors.Is(err, find.ErrNoTerm):
		mh.statusBar.SetTemporaryMessage("No search term")
		return false
	case err != nil:
		mh.statusBar.SetTemporaryMessage("Pattern not found: %s", mh.finder.Term())
		return false
	}
	if res.Wrapped {
		mh.statusBar.SetTemporaryMessage("Match %d/%d: %s (wrapped)", res.Index, res.Count, mh.finder.Term())
	} else {
		mh.statusBar.SetTemporaryMessage("Match %d/%d: %s", res.Index, res.Count, mh.finder.Term())
	}
	return true
}

// Substitute runs ":s/pattern/replacement/[g]".
func (mh *ModeHandler) Substitute(arg string) error {
	pattern, replacement, global, err := find.ParseSubstituteCommand(arg)
	if err != nil {
		return err
	}
	n, err := mh.finder.Replace(pattern, replacement, global)
	if err != nil {
		return err
	}
	if n == 0 {
		mh.statusBar.SetTemporaryMessage("Pattern not found: %s", pattern)
		return nil
	}
	mh.statusBar.SetTemporaryMessage("Replaced %d occurrence(s)", n)
	return nil
}
