package audio

import (
	"github.com/lixenwraith/story-knights/event"
)

// Cue is a named battle sound
type Cue uint8

const (
	CueNone Cue = iota
	CueSwing
	CueHit
	CueBlock
	CueKill
	CueVictory
	CueDefeat
)

func (c Cue) String() string {
	switch c {
	case CueSwing:
		return "swing"
	case CueHit:
		return "hit"
	case CueBlock:
		return "block"
	case CueKill:
		return "kill"
	case CueVictory:
		return "victory"
	case CueDefeat:
		return "defeat"
	default:
		return "none"
	}
}

// CueFor picks the sound for a battle event. localTeam is "left" or "right",
// empty when spectating, and decides between victory and defeat.
func CueFor(ev event.GameEvent, localTeam string) Cue {
	switch p := ev.Payload.(type) {
	case *event.KnightAttackedPayload:
		return CueSwing
	case *event.KnightDamagedPayload:
		switch {
		case p.Killed:
			return CueKill
		case p.Blocked() && p.Absorbed >= p.Damage:
			return CueBlock
		default:
			return CueHit
		}
	case *event.BattleEndedPayload:
		if p.Winner == "draw" || (localTeam != "" && p.Winner != localTeam) {
			return CueDefeat
		}
		return CueVictory
	}
	return CueNone
}
