package modehandler

import (
	"github.com/bethropolis/tidemark/internal/input"
	"github.com/bethropolis/tidemark/internal/logger"
)

// handleLeaderFollowup resolves the key typed after the leader key. A rune
// bound in the leader map runs its format command, ':' opens the command
// line, and anything else (or a late key) types the leader literally before
// being handled as usual.
func (mh *ModeHandler) handleLeaderFollowup(actionEvent input.ActionEvent, shift bool) bool {
	leader := mh.inputProcessor.Leader()
	expired := mh.leaderTimeout > 0 && mh.now().Sub(mh.leaderAt) > mh.leaderTimeout
	mh.resetLeaderState()
	mh.statusBar.ResetTemporaryMessage()

	isRune := actionEvent.Action == input.ActionInsertRune || actionEvent.Action == input.ActionLeader
	if !expired && isRune {
		switch r := actionEvent.Rune; {
		case r == leader:
			mh.editor.InsertText(string(leader))
			return true
		case r == ':':
			mh.SetMode(ModeCommand)
			mh.statusBar.SetTemporaryMessage(":")
			return true
		default:
			if cmd, ok := mh.inputProcessor.LeaderCommand(r); ok {
				logger.Debugf("ModeHandler: leader %c -> %s", r, cmd)
				return mh.ApplyFormat(cmd)
			}
		}
	}

	mh.editor.InsertText(string(leader))
	mh.executeAction(actionEvent, shift)
	return true
}

// LeaderPending reports whether a leader key is waiting for its follow-up.
func (mh *ModeHandler) LeaderPending() bool {
	return mh.leaderWaiting
}

// FlushLeader types a pending leader key once its timeout has passed. The
// application calls it from a timer so a lone leader key shows up without
// waiting for the next key press.
func (mh *ModeHandler) FlushLeader() bool {
	if !mh.leaderWaiting || mh.now().Sub(mh.leaderAt) < mh.leaderTimeout {
		return false
	}
	mh.resetLeaderState()
	mh.statusBar.ResetTemporaryMessage()
	mh.editor.InsertText(string(mh.inputProcessor.Leader()))
	return true
}

// resetLeaderState clears the waiting state.
func (mh *ModeHandler) resetLeaderState() {
	if mh.leaderWaiting {
		logger.Debugf("Resetting leader state")
		mh.leaderWaiting = false
	}
}
