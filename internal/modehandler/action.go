package modehandler

import (
	"errors"
	"slices"

	"github.com/bethropolis/tidecanvas/internal/core"
	"github.com/bethropolis/tidecanvas/internal/event"
	"github.com/bethropolis/tidecanvas/internal/input"
	"github.com/bethropolis/tidecanvas/internal/logger"
	"github.com/bethropolis/tidecanvas/internal/types"
)

const zoomStep = 1.25

// executeAction handles actions when in ModeNormal.
func (mh *ModeHandler) executeAction(ae input.ActionEvent) bool {
	doc := mh.doc
	sel := doc.Selection()
	actionProcessed := true

	step := mh.nudge
	if ae.Large {
		step = mh.largeNudge
	}

	switch ae.Action {
	// --- Mode switching ---
	case input.ActionEnterCommandMode:
		mh.currentMode = ModeCommand
		mh.cmdBuffer = ""
		mh.statusBar.SetPrompt(":")
		logger.DebugTagf("mode", "Entering Command Mode")

	// --- Quit/Save ---
	case input.ActionQuit:
		mh.quitOrWarn()
	case input.ActionForceQuit:
		mh.quit()
	case input.ActionCancel:
		switch {
		case mh.drag.active():
			mh.cancelDrag()
		case sel.EnteredGroup() != "":
			sel.ExitGroup()
		case sel.Len() > 0:
			sel.Clear()
		default:
			mh.quitOrWarn()
		}
	case input.ActionSave:
		mh.saveDocument("")

	// --- History ---
	case input.ActionUndo:
		desc, _ := doc.HistoryDescription(doc.HistoryIndex())
		if doc.Undo() {
			mh.statusBar.SetTemporaryMessage("Undo: %s", desc)
		} else {
			mh.statusBar.SetTemporaryMessage("Nothing to undo")
		}
	case input.ActionRedo:
		desc, _ := doc.HistoryDescription(doc.HistoryIndex() + 1)
		if doc.Redo() {
			mh.statusBar.SetTemporaryMessage("Redo: %s", desc)
		} else {
			mh.statusBar.SetTemporaryMessage("Nothing to redo")
		}

	// --- Selection ---
	case input.ActionSelectAll:
		sel.SelectMultiple(doc.ScopeIDs(), false)
	case input.ActionSelectNext:
		mh.cycleSelection(1)
	case input.ActionSelectPrevious:
		mh.cycleSelection(-1)
	case input.ActionEnterGroup:
		primary := sel.Primary()
		if primary == "" || len(doc.Children(primary)) == 0 {
			mh.statusBar.SetTemporaryMessage("Select a group or frame to enter")
			break
		}
		sel.EnterGroup(primary)
	case input.ActionExitGroup:
		sel.ExitGroup()

	// --- Editing ---
	case input.ActionNudgeUp:
		mh.nudgeSelection(types.Point{Y: -step})
	case input.ActionNudgeDown:
		mh.nudgeSelection(types.Point{Y: step})
	case input.ActionNudgeLeft:
		mh.nudgeSelection(types.Point{X: -step})
	case input.ActionNudgeRight:
		mh.nudgeSelection(types.Point{X: step})
	case input.ActionDelete:
		if mh.requireSelection() {
			mh.report(doc.ExecuteCommand(doc.NewDeleteCommand(sel.Selected())), "")
		}
	case input.ActionCopy:
		mh.report(doc.CopySelection(), "Copied %d node(s)", sel.Len())
	case input.ActionCut:
		n := sel.Len()
		mh.report(doc.CutSelection(), "Cut %d node(s)", n)
	case input.ActionPaste:
		mh.report(doc.Paste(), "")
	case input.ActionDuplicate:
		mh.report(doc.DuplicateSelection(), "")
	case input.ActionGroup:
		if mh.requireSelection() {
			mh.report(doc.ExecuteCommand(doc.NewGroupCommand(sel.Selected())), "")
		}
	case input.ActionUngroup:
		if mh.requireSelection() {
			cmd, err := doc.NewUngroupCommand(sel.Primary())
			if err == nil {
				err = doc.ExecuteCommand(cmd)
			}
			mh.report(err, "")
		}
	case input.ActionBringForward:
		mh.reorder(1)
	case input.ActionSendBackward:
		mh.reorder(-1)

	// --- View ---
	case input.ActionZoomIn:
		doc.View().ZoomAt(zoomStep, mh.canvasCenter())
	case input.ActionZoomOut:
		doc.View().ZoomAt(1/zoomStep, mh.canvasCenter())
	case input.ActionZoomReset:
		doc.View().Reset()
	case input.ActionPanUp:
		doc.View().PanBy(types.Point{Y: step})
	case input.ActionPanDown:
		doc.View().PanBy(types.Point{Y: -step})
	case input.ActionPanLeft:
		doc.View().PanBy(types.Point{X: step})
	case input.ActionPanRight:
		doc.View().PanBy(types.Point{X: -step})

	// --- Tools ---
	case input.ActionToolSelect:
		mh.setTool(core.ToolSelect)
	case input.ActionToolHand:
		mh.setTool(core.ToolHand)
	case input.ActionToolFrame:
		mh.setTool(core.ToolFrame)
	case input.ActionToolRectangle:
		mh.setTool(core.ToolRectangle)
	case input.ActionToolEllipse:
		mh.setTool(core.ToolEllipse)
	case input.ActionToolText:
		mh.setTool(core.ToolText)

	default:
		actionProcessed = false
	}

	if ae.Action != input.ActionQuit && ae.Action != input.ActionCancel && actionProcessed {
		mh.forceQuitPending = false
	}
	return actionProcessed
}

// quitOrWarn quits, asking once for confirmation when there are unsaved changes.
func (mh *ModeHandler) quitOrWarn() {
	if mh.doc.IsDirty() && !mh.forceQuitPending {
		mh.statusBar.SetTemporaryMessage("Unsaved changes! Press again or Ctrl+Q to force quit.")
		mh.forceQuitPending = true
		return
	}
	mh.quit()
}

func (mh *ModeHandler) saveDocument(path string) {
	if err := mh.save(path); err != nil {
		mh.statusBar.SetTemporaryMessage("Save FAILED: %v", err)
		return
	}
	mh.statusBar.SetTemporaryMessage("Saved")
}

func (mh *ModeHandler) requireSelection() bool {
	if mh.doc.Selection().Len() == 0 {
		mh.statusBar.SetTemporaryMessage("Nothing selected")
		return false
	}
	return true
}

// report shows err, or the success message when one is given.
func (mh *ModeHandler) report(err error, format string, args ...interface{}) {
	switch {
	case errors.Is(err, core.ErrNothingSelected):
		mh.statusBar.SetTemporaryMessage("Nothing selected")
	case errors.Is(err, core.ErrEmptyClipboard):
		mh.statusBar.SetTemporaryMessage("Clipboard empty")
	case err != nil:
		mh.statusBar.SetTemporaryMessage("Error: %v", err)
		logger.DebugTagf("mode", "action failed: %v", err)
	case format != "":
		mh.statusBar.SetTemporaryMessage(format, args...)
	}
}

func (mh *ModeHandler) nudgeSelection(delta types.Point) {
	if !mh.requireSelection() {
		return
	}
	mh.report(mh.doc.ExecuteCommand(mh.doc.NewMoveCommand(mh.doc.Selection().Selected(), delta)), "")
}

func (mh *ModeHandler) reorder(step int) {
	if !mh.requireSelection() {
		return
	}
	id := mh.doc.Selection().Primary()
	cmd, err := mh.doc.NewReorderCommand(id, mh.doc.IndexInParent(id)+step)
	if err == nil {
		if cmd.Original == cmd.Target {
			return
		}
		err = mh.doc.ExecuteCommand(cmd)
	}
	mh.report(err, "")
}

// cycleSelection selects the next (dir=1) or previous scope node after the
// primary, wrapping around.
func (mh *ModeHandler) cycleSelection(dir int) {
	ids := mh.doc.ScopeIDs()
	if len(ids) == 0 {
		return
	}
	i := slices.Index(ids, mh.doc.Selection().Primary())
	switch {
	case i < 0 && dir > 0:
		i = 0
	case i < 0:
		i = len(ids) - 1
	default:
		i = (i + dir + len(ids)) % len(ids)
	}
	mh.doc.Selection().Select(ids[i], false)
}

func (mh *ModeHandler) setTool(t core.Tool) {
	if mh.doc.ActiveTool() == t {
		return
	}
	mh.doc.SetActiveTool(t)
	mh.eventManager.Dispatch(event.TypeToolChanged, event.ToolChangedData{Tool: t.String()})
}

func (mh *ModeHandler) canvasCenter() types.Point {
	w, h := mh.canvasSize()
	return types.Point{X: float64(w) / 2, Y: float64(h) / 2}
}
