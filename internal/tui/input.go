package tui

import (
	"wordsheet/internal/grid"

	"github.com/gdamore/tcell/v2"
)

// translateKey maps a terminal key event onto the engine's key model. It
// reports false for keys the engine has no use for.
func translateKey(ev *tcell.EventKey) (grid.Key, bool) {
	mod := ev.Modifiers()
	k := grid.Key{
		Shift: mod&tcell.ModShift != 0,
		Ctrl:  mod&tcell.ModCtrl != 0,
		Alt:   mod&tcell.ModAlt != 0,
		Meta:  mod&tcell.ModMeta != 0,
	}

	switch ev.Key() {
	case tcell.KeyRune:
		k.Code = grid.KeyRune
		k.Rune = ev.Rune()
	case tcell.KeyEnter:
		k.Code = grid.KeyEnter
	case tcell.KeyTab:
		k.Code = grid.KeyTab
	case tcell.KeyBacktab:
		k.Code = grid.KeyTab
		k.Shift = true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		k.Code = grid.KeyBackspace
	case tcell.KeyDelete:
		k.Code = grid.KeyDelete
	case tcell.KeyEscape:
		k.Code = grid.KeyEscape
	case tcell.KeyUp:
		k.Code = grid.KeyUp
	case tcell.KeyDown:
		k.Code = grid.KeyDown
	case tcell.KeyLeft:
		k.Code = grid.KeyLeft
	case tcell.KeyRight:
		k.Code = grid.KeyRight
	default:
		return grid.Key{}, false
	}

	// Terminals report Enter, Tab and Backspace as control codes
	if k.Code != grid.KeyRune {
		k.Ctrl = false
	}
	return k, true
}
