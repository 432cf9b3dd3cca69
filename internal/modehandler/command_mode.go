package modehandler

import (
	"strings"
	"unicode/utf8"

	"github.com/bethropolis/tidecanvas/internal/input"
	"github.com/bethropolis/tidecanvas/internal/logger"
)

// handleActionCommand handles actions when in ModeCommand.
func (mh *ModeHandler) handleActionCommand(ae input.ActionEvent) bool {
	switch ae.Action {
	case input.ActionInsertRune:
		mh.cmdBuffer += string(ae.Rune)

	case input.ActionDeleteCommandChar:
		if mh.cmdBuffer == "" {
			mh.leaveCommandMode()
			logger.DebugTagf("mode", "Exiting Command Mode via Backspace")
			return true
		}
		_, size := utf8.DecodeLastRuneInString(mh.cmdBuffer)
		mh.cmdBuffer = mh.cmdBuffer[:len(mh.cmdBuffer)-size]

	case input.ActionExecuteCommand:
		line := mh.cmdBuffer
		mh.leaveCommandMode()
		mh.ExecuteCommandLine(line)
		return true

	case input.ActionCancel:
		mh.leaveCommandMode()
		logger.DebugTagf("mode", "Canceled Command Mode via Escape")
		return true

	default:
		return false
	}

	mh.statusBar.SetPrompt(":" + mh.cmdBuffer)
	return true
}

func (mh *ModeHandler) leaveCommandMode() {
	mh.currentMode = ModeNormal
	mh.cmdBuffer = ""
	mh.statusBar.SetPrompt("")
}

// ExecuteCommandLine parses and runs one command line such as "jump 3".
func (mh *ModeHandler) ExecuteCommandLine(line string) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return
	}
	cmdName, args := parts[0], parts[1:]

	cmdFunc, exists := mh.commands[cmdName]
	if !exists {
		mh.statusBar.SetTemporaryMessage("Unknown command: %s", cmdName)
		return
	}
	logger.DebugTagf("command", "Executing command ':%s' with args %v", cmdName, args)
	if err := cmdFunc(args); err != nil {
		mh.statusBar.SetTemporaryMessage("Error executing command '%s': %v", cmdName, err)
	}
}
