package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/story-knights/battle"
)

// Binding is what one key does
type Binding struct {
	Intent IntentType
	Key    battle.Key // meaningful for IntentControl
}

// KeyTable maps terminal keys to bindings
type KeyTable struct {
	// Special keys (Ctrl+*, arrows, function keys)
	SpecialKeys map[tcell.Key]Binding
	// Printable runes, matched case-insensitively
	Runes map[rune]Binding
}

func control(k battle.Key) Binding { return Binding{Intent: IntentControl, Key: k} }

// DefaultKeyTable returns WASD and arrow movement, space or j to attack, k or f to block
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]Binding{
			tcell.KeyEscape: {Intent: IntentQuit},
			tcell.KeyCtrlC:  {Intent: IntentQuit},
			tcell.KeyF2:     {Intent: IntentSnapshot},
			tcell.KeyUp:     control(battle.KeyUp),
			tcell.KeyDown:   control(battle.KeyDown),
			tcell.KeyLeft:   control(battle.KeyLeft),
			tcell.KeyRight:  control(battle.KeyRight),
			tcell.KeyEnter:  control(battle.KeyAttack),
		},
		Runes: map[rune]Binding{
			'q': {Intent: IntentQuit},
			'p': {Intent: IntentPause},
			'm': {Intent: IntentMute},
			'w': control(battle.KeyUp),
			's': control(battle.KeyDown),
			'a': control(battle.KeyLeft),
			'd': control(battle.KeyRight),
			' ': control(battle.KeyAttack),
			'j': control(battle.KeyAttack),
			'k': control(battle.KeyBlock),
			'f': control(battle.KeyBlock),
		},
	}
}

// Lookup resolves a key event
func (kt *KeyTable) Lookup(ev *tcell.EventKey) (Binding, bool) {
	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		b, ok := kt.Runes[r]
		return b, ok
	}
	b, ok := kt.SpecialKeys[ev.Key()]
	return b, ok
}
