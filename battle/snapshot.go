package battle

import (
	"time"

	"github.com/lixenwraith/story-knights/roster"
)

// Team colors as hex RGB
const (
	ColorLeft  = "#FF6B6B"
	ColorRight = "#4ECDC4"
)

// TeamColor returns the display color of a side
func TeamColor(t roster.Team) string {
	if t == roster.TeamLeft {
		return ColorLeft
	}
	return ColorRight
}

// KnightView is everything a renderer needs about one knight
type KnightView struct {
	ID            string
	Name          string
	StoryPoints   int
	Team          roster.Team
	Color         string
	Controller    ControllerKind
	X, Y          float64
	Rotation      float64
	ShieldAngle   float64
	HP            float64
	MaxHP         float64
	ShieldHP      float64
	MaxShieldHP   float64
	AttackRange   float64
	Blocking      bool
	Attacking     bool
	SwingProgress float64
	Alive         bool
}

// Snapshot is a copy of session state safe to hand to another goroutine
type Snapshot struct {
	Frame     int64
	Elapsed   time.Duration
	Width     float64
	Height    float64
	TopMargin float64
	Knights   []KnightView
	Log       []LogEntry
	Ended     bool
	Result    Result
}

// Snapshot copies the renderable state
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Frame:     s.frame,
		Elapsed:   s.Elapsed(),
		Width:     s.cfg.Arena.Width,
		Height:    s.cfg.Arena.Height,
		TopMargin: s.cfg.Arena.TopMargin,
		Knights:   make([]KnightView, 0, len(s.knights)),
		Log:       s.log.list(),
		Ended:     s.ended,
		Result:    s.outcome.Result,
	}
	for _, k := range s.knights {
		snap.Knights = append(snap.Knights, KnightView{
			ID:            k.ID(),
			Name:          k.Player.Name,
			StoryPoints:   k.Player.StoryPoints,
			Team:          k.Team,
			Color:         TeamColor(k.Team),
			Controller:    k.Controller.Kind,
			X:             k.Pos.X,
			Y:             k.Pos.Y,
			Rotation:      k.Rotation,
			ShieldAngle:   k.ShieldAngle,
			HP:            k.HP,
			MaxHP:         float64(k.Player.MaxHP),
			ShieldHP:      k.ShieldHP,
			MaxShieldHP:   k.MaxShieldHP,
			AttackRange:   k.Player.AttackRange,
			Blocking:      k.IsBlocking,
			Attacking:     k.IsAttacking,
			SwingProgress: k.SwingProgress,
			Alive:         k.IsAlive(),
		})
	}
	return snap
}
