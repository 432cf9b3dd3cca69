// internal/input/keymap.go
package input

import (
	"github.com/gdamore/tcell/v2"
)

// Keymap maps special keys to actions.
type Keymap map[tcell.Key]Action
type RuneKeymap map[rune]Action
type ModKeymap map[tcell.ModMask]Keymap

// InputProcessor translates tcell events into ActionEvents. Mode-specific
// interpretation is left to the caller.
type InputProcessor struct {
	keymap     Keymap
	runeKeymap RuneKeymap
	modKeymap  ModKeymap
}

// NewInputProcessor creates a processor with default keybindings.
func NewInputProcessor() *InputProcessor {
	p := &InputProcessor{
		keymap:     make(Keymap),
		runeKeymap: make(RuneKeymap),
		modKeymap:  make(ModKeymap),
	}
	p.loadDefaultBindings()
	return p
}

func (p *InputProcessor) loadDefaultBindings() {
	// --- Simple Keys ---
	p.keymap[tcell.KeyUp] = ActionNudgeUp
	p.keymap[tcell.KeyDown] = ActionNudgeDown
	p.keymap[tcell.KeyLeft] = ActionNudgeLeft
	p.keymap[tcell.KeyRight] = ActionNudgeRight
	p.keymap[tcell.KeyDelete] = ActionDelete
	p.keymap[tcell.KeyBackspace] = ActionDelete
	p.keymap[tcell.KeyBackspace2] = ActionDelete
	p.keymap[tcell.KeyTab] = ActionSelectNext
	p.keymap[tcell.KeyBacktab] = ActionSelectPrevious
	p.keymap[tcell.KeyEnter] = ActionEnterGroup
	p.keymap[tcell.KeyEscape] = ActionCancel

	// --- Ctrl Keys ---
	// tcell reports Ctrl+letter as its own key with ModCtrl set.
	ctrlMap := make(Keymap)
	ctrlMap[tcell.KeyCtrlS] = ActionSave
	ctrlMap[tcell.KeyCtrlQ] = ActionForceQuit
	ctrlMap[tcell.KeyCtrlC] = ActionQuit
	ctrlMap[tcell.KeyCtrlZ] = ActionUndo
	ctrlMap[tcell.KeyCtrlY] = ActionRedo
	ctrlMap[tcell.KeyCtrlR] = ActionRedo
	ctrlMap[tcell.KeyCtrlA] = ActionSelectAll
	ctrlMap[tcell.KeyCtrlD] = ActionDuplicate
	ctrlMap[tcell.KeyCtrlG] = ActionGroup
	ctrlMap[tcell.KeyCtrlX] = ActionCut
	ctrlMap[tcell.KeyCtrlV] = ActionPaste
	p.modKeymap[tcell.ModCtrl] = ctrlMap

	// Alt+arrows pan the view.
	altMap := make(Keymap)
	altMap[tcell.KeyUp] = ActionPanUp
	altMap[tcell.KeyDown] = ActionPanDown
	altMap[tcell.KeyLeft] = ActionPanLeft
	altMap[tcell.KeyRight] = ActionPanRight
	p.modKeymap[tcell.ModAlt] = altMap

	// --- Runes ---
	p.runeKeymap[':'] = ActionEnterCommandMode
	p.runeKeymap['u'] = ActionUndo
	p.runeKeymap['U'] = ActionRedo
	p.runeKeymap['y'] = ActionCopy
	p.runeKeymap['x'] = ActionCut
	p.runeKeymap['p'] = ActionPaste
	p.runeKeymap['d'] = ActionDuplicate
	p.runeKeymap['g'] = ActionGroup
	p.runeKeymap['G'] = ActionUngroup
	p.runeKeymap[']'] = ActionBringForward
	p.runeKeymap['['] = ActionSendBackward
	p.runeKeymap['+'] = ActionZoomIn
	p.runeKeymap['='] = ActionZoomIn
	p.runeKeymap['-'] = ActionZoomOut
	p.runeKeymap['0'] = ActionZoomReset
	p.runeKeymap['h'] = ActionNudgeLeft
	p.runeKeymap['j'] = ActionNudgeDown
	p.runeKeymap['k'] = ActionNudgeUp
	p.runeKeymap['l'] = ActionNudgeRight
	p.runeKeymap['v'] = ActionToolSelect
	p.runeKeymap[' '] = ActionToolHand
	p.runeKeymap['f'] = ActionToolFrame
	p.runeKeymap['r'] = ActionToolRectangle
	p.runeKeymap['o'] = ActionToolEllipse
	p.runeKeymap['t'] = ActionToolText
	p.runeKeymap['q'] = ActionQuit
}

// ProcessEvent takes a tcell key event and returns the normal-mode action.
func (p *InputProcessor) ProcessEvent(ev *tcell.EventKey) ActionEvent {
	key := ev.Key()
	mod := ev.Modifiers()
	large := mod&tcell.ModShift != 0

	// 1. Modifier + Key combinations
	for _, m := range []tcell.ModMask{tcell.ModCtrl, tcell.ModAlt} {
		if mod&m == 0 {
			continue
		}
		if action, ok := p.modKeymap[m][key]; ok {
			return ActionEvent{Action: action, Large: large}
		}
	}
	// Ctrl+letter keys carry ModCtrl on some terminals and not on others.
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		if action, ok := p.modKeymap[tcell.ModCtrl][key]; ok {
			return ActionEvent{Action: action}
		}
	}

	// 2. Special keys; Shift only changes the step size.
	if mod&^tcell.ModShift == 0 {
		if action, ok := p.keymap[key]; ok {
			return ActionEvent{Action: action, Large: large}
		}
	}

	// 3. Runes; uppercase letters already encode Shift.
	if key == tcell.KeyRune && mod&(tcell.ModCtrl|tcell.ModAlt) == 0 {
		r := ev.Rune()
		if action, ok := p.runeKeymap[r]; ok {
			return ActionEvent{Action: action, Rune: r}
		}
		return ActionEvent{Action: ActionUnknown, Rune: r}
	}

	return ActionEvent{Action: ActionUnknown}
}

// ProcessCommandEvent decodes keys typed on the command line.
func (p *InputProcessor) ProcessCommandEvent(ev *tcell.EventKey) ActionEvent {
	switch ev.Key() {
	case tcell.KeyRune:
		return ActionEvent{Action: ActionInsertRune, Rune: ev.Rune()}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return ActionEvent{Action: ActionDeleteCommandChar}
	case tcell.KeyEnter:
		return ActionEvent{Action: ActionExecuteCommand}
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionEvent{Action: ActionCancel}
	}
	return ActionEvent{Action: ActionUnknown}
}
