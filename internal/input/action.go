package input

// Action is an operation requested by a key press.
type Action int

const (
	ActionUnknown Action = iota
	ActionQuit
	ActionForceQuit
	ActionSave

	// Cursor movement
	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionMovePageUp
	ActionMovePageDown
	ActionMoveHome
	ActionMoveEnd

	// Text manipulation
	ActionInsertRune
	ActionInsertNewLine
	ActionInsertTab
	ActionDeleteCharForward
	ActionDeleteCharBackward
	ActionDeleteLine

	// Buffers
	ActionNextBuffer
	ActionPrevBuffer

	// Command line
	ActionEnterCommandMode

	// Footsteps
	ActionStepBack
	ActionStepForward
	ActionStepBackInFile
	ActionStepForwardInFile
	ActionStepBackOtherFile
	ActionStepForwardOtherFile
)

// ActionEvent is a decoded key press.
type ActionEvent struct {
	Action Action
	Rune   rune // For ActionInsertRune
}
