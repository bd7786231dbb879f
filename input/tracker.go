// Package input turns terminal events into per-tick battle input
package input

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/story-knights/battle"
	"github.com/lixenwraith/story-knights/parameter"
	"github.com/lixenwraith/story-knights/vmath"
)

// PointerMapper converts a terminal cell to arena coordinates, false outside the arena
type PointerMapper func(col, row int) (vmath.Vec2, bool)

// Tracker collects terminal events on the polling goroutine and serves a
// snapshot to the battle loop each tick. Terminals report presses and repeats
// but no releases, so a key stays held for a short window after its last event.
// Mouse buttons report releases and are exact.
type Tracker struct {
	mu sync.Mutex

	table  *KeyTable
	hold   time.Duration
	now    func() time.Time
	mapper PointerMapper

	lastPress [battle.KeyBlock + 1]time.Time
	mouseKeys battle.KeySet
	pointer   vmath.Vec2
	hasPtr    bool
}

// NewTracker creates a tracker with the default bindings
func NewTracker() *Tracker {
	return &Tracker{
		table: DefaultKeyTable(),
		hold:  parameter.InputHoldWindow,
		now:   time.Now,
	}
}

// SetMapper enables pointer facing, nil disables it
func (t *Tracker) SetMapper(m PointerMapper) {
	t.mu.Lock()
	t.mapper = m
	if m == nil {
		t.hasPtr = false
	}
	t.mu.Unlock()
}

// HandleEvent records a terminal event and returns any non-control intent for the caller
func (t *Tracker) HandleEvent(ev tcell.Event) IntentType {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		b, ok := t.table.Lookup(ev)
		if !ok {
			return IntentNone
		}
		if b.Intent != IntentControl {
			return b.Intent
		}
		t.mu.Lock()
		t.lastPress[b.Key] = t.now()
		t.mu.Unlock()
		return IntentNone

	case *tcell.EventMouse:
		t.handleMouse(ev)
	}
	return IntentNone
}

func (t *Tracker) handleMouse(ev *tcell.EventMouse) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.mapper != nil {
		col, row := ev.Position()
		if p, ok := t.mapper(col, row); ok {
			t.pointer, t.hasPtr = p, true
		}
	}

	var keys battle.KeySet
	buttons := ev.Buttons()
	if buttons&tcell.Button1 != 0 {
		keys = keys.With(battle.KeyAttack)
	}
	if buttons&tcell.Button2 != 0 || buttons&tcell.Button3 != 0 {
		keys = keys.With(battle.KeyBlock)
	}
	t.mouseKeys = keys
}

// Input implements battle.InputSource
func (t *Tracker) Input() battle.Input {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	keys := t.mouseKeys
	for k, at := range t.lastPress {
		if !at.IsZero() && now.Sub(at) <= t.hold {
			keys = keys.With(battle.Key(k))
		}
	}
	return battle.Input{Keys: keys, Pointer: t.pointer, HasPointer: t.hasPtr}
}

// Release drops every held key, used on pause and focus loss
func (t *Tracker) Release() {
	t.mu.Lock()
	t.lastPress = [battle.KeyBlock + 1]time.Time{}
	t.mouseKeys = 0
	t.mu.Unlock()
}
