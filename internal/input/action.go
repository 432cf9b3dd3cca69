// internal/input/action.go
package input

// Action represents a command or operation to be performed by the editor.
type Action int

const (
	// --- Meta Actions ---
	ActionUnknown Action = iota
	ActionQuit
	ActionForceQuit // Quit without checking modified status
	ActionSave

	// --- History ---
	ActionUndo
	ActionRedo

	// --- Selection ---
	ActionSelectAll
	ActionSelectNext     // Tab cycles through the current scope
	ActionSelectPrevious // Shift+Tab
	ActionEnterGroup     // Enter
	ActionExitGroup
	ActionCancel // Esc: drop marquee, exit group, clear selection, then quit

	// --- Editing ---
	ActionNudgeUp
	ActionNudgeDown
	ActionNudgeLeft
	ActionNudgeRight
	ActionDelete
	ActionCopy
	ActionCut
	ActionPaste
	ActionDuplicate
	ActionGroup
	ActionUngroup
	ActionBringForward
	ActionSendBackward

	// --- View ---
	ActionZoomIn
	ActionZoomOut
	ActionZoomReset
	ActionPanUp
	ActionPanDown
	ActionPanLeft
	ActionPanRight

	// --- Tools ---
	ActionToolSelect
	ActionToolHand
	ActionToolFrame
	ActionToolRectangle
	ActionToolEllipse
	ActionToolText

	// --- Command line ---
	ActionEnterCommandMode // ':'
	ActionInsertRune       // Rune payload, command line only
	ActionDeleteCommandChar
	ActionExecuteCommand
)

// ActionEvent represents a decoded input event resulting in an action.
type ActionEvent struct {
	Action Action
	Rune   rune // Used for ActionInsertRune
	Large  bool // Shift held: nudge or pan by the large step
}
