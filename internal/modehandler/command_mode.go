package modehandler

import (
	"fmt"
	"strings"

	"github.com/bethropolis/footsteps/internal/input"
	"github.com/bethropolis/footsteps/internal/logger"
)

// handleActionCommand edits and runs the command line.
func (mh *ModeHandler) handleActionCommand(actionEvent input.ActionEvent) bool {
	switch actionEvent.Action {
	case input.ActionInsertRune, input.ActionEnterCommandMode:
		mh.cmdBuffer = append(mh.cmdBuffer, actionEvent.Rune)

	case input.ActionDeleteCharBackward:
		if len(mh.cmdBuffer) == 0 {
			mh.leaveCommandMode()
			return true
		}
		mh.cmdBuffer = mh.cmdBuffer[:len(mh.cmdBuffer)-1]

	case input.ActionInsertNewLine:
		line := string(mh.cmdBuffer)
		mh.leaveCommandMode()
		if strings.TrimSpace(line) != "" {
			if err := mh.ExecuteCommand(line); err != nil {
				mh.statusBar.SetTemporaryMessage("Error: %v", err)
			}
		}
		return true

	case input.ActionQuit:
		mh.leaveCommandMode()
		logger.DebugTagf("mode", "Command mode cancelled")
		return true

	default:
		return false
	}

	mh.statusBar.SetTemporaryMessage(":%s", string(mh.cmdBuffer))
	return true
}

func (mh *ModeHandler) leaveCommandMode() {
	mh.currentMode = ModeNormal
	mh.cmdBuffer = mh.cmdBuffer[:0]
	mh.statusBar.ResetTemporaryMessage()
}

// ExecuteCommand runs a command line such as "e main.go".
func (mh *ModeHandler) ExecuteCommand(line string) error {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil
	}
	name, args := parts[0], parts[1:]
	fn, ok := mh.commands[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	logger.DebugTagf("mode", "Executing ':%s' with args %v", name, args)
	if err := fn(args); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// runCommand executes a registered command on behalf of a key binding.
func (mh *ModeHandler) runCommand(name string, args []string) {
	fn, ok := mh.commands[name]
	if !ok {
		logger.DebugTagf("mode", "no command '%s' for key binding", name)
		return
	}
	if err := fn(args); err != nil {
		mh.statusBar.SetTemporaryMessage("Error: %s: %v", name, err)
	}
}
