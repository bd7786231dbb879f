package battle

import (
	"github.com/lixenwraith/story-knights/roster"
	"github.com/lixenwraith/story-knights/vmath"
)

// ControllerKind decides who drives a knight, fixed at spawn
type ControllerKind uint8

const (
	ControlAI ControllerKind = iota
	ControlHuman
	ControlRemote
)

func (k ControllerKind) String() string {
	switch k {
	case ControlHuman:
		return "human"
	case ControlRemote:
		return "remote"
	default:
		return "ai"
	}
}

// Controller binds a knight to the local human, the local AI or a remote peer
type Controller struct {
	Kind ControllerKind
	Peer string // local identity for Human, owning peer for Remote
}

func Human(localID string) Controller { return Controller{Kind: ControlHuman, Peer: localID} }
func AI() Controller                  { return Controller{Kind: ControlAI} }
func Remote(peer string) Controller   { return Controller{Kind: ControlRemote, Peer: peer} }

// Knight is the live battle avatar of one player
type Knight struct {
	Player     *roster.Player
	Team       roster.Team
	Controller Controller

	Pos         vmath.Vec2
	Rotation    float64 // facing, radians
	ShieldAngle float64 // shield facing, radians

	HP          float64
	ShieldHP    float64
	MaxShieldHP float64

	IsAttacking    bool
	IsBlocking     bool
	AttackCooldown int

	SwingActive   bool
	SwingProgress float64
	swingFrame    int
	damageApplied bool // one-shot guard per swing
	justAttacked  bool // swing crossed the damage point this frame
	swingStarted  bool // attack initiated this frame

	// AI state, target is an ID looked up in the session every use
	aiTarget       string
	aiThinkTimer   int
	aiBlockDecided bool
	aiBlocking     bool
}

// NewKnight spawns a knight at full HP and shield
func NewKnight(p *roster.Player, team roster.Team, ctrl Controller, pos vmath.Vec2, rotation, maxShield float64) *Knight {
	return &Knight{
		Player:      p,
		Team:        team,
		Controller:  ctrl,
		Pos:         pos,
		Rotation:    rotation,
		ShieldAngle: rotation,
		HP:          float64(p.MaxHP),
		ShieldHP:    maxShield,
		MaxShieldHP: maxShield,
	}
}

// ID is the owning player's stable identifier
func (k *Knight) ID() string { return k.Player.ID }

// IsAlive gates every behavior
func (k *Knight) IsAlive() bool { return k.HP > 0 }

// IsLocal reports whether this client drives the knight from human input
func (k *Knight) IsLocal() bool { return k.Controller.Kind == ControlHuman }

// IsRemote reports whether inbound network state drives the knight
func (k *Knight) IsRemote() bool { return k.Controller.Kind == ControlRemote }

// TakeDamage subtracts HP, clamped at zero, and reports whether this hit killed
func (k *Knight) TakeDamage(amount float64) (applied float64, killed bool) {
	if !k.IsAlive() || amount <= 0 {
		return 0, false
	}
	applied = min(amount, k.HP)
	k.HP -= applied
	if k.HP <= 0 {
		k.HP = 0
		k.die()
		return applied, true
	}
	return applied, false
}

// SetHP overwrites HP from an authoritative source, clamped into [0, MaxHP]
func (k *Knight) SetHP(hp float64) (killed bool) {
	wasAlive := k.IsAlive()
	k.HP = vmath.Clamp(hp, 0, float64(k.Player.MaxHP))
	if wasAlive && !k.IsAlive() {
		k.die()
		return true
	}
	return false
}

// SetShieldHP overwrites the shield pool, clamped into [0, MaxShieldHP]
func (k *Knight) SetShieldHP(v float64) {
	k.ShieldHP = vmath.Clamp(v, 0, k.MaxShieldHP)
}

// absorb takes up to amount from the shield and returns what was taken
func (k *Knight) absorb(amount float64) float64 {
	taken := min(amount, k.ShieldHP)
	k.ShieldHP -= taken
	if k.ShieldHP < 0 {
		k.ShieldHP = 0
	}
	return taken
}

func (k *Knight) die() {
	k.IsBlocking = false
	k.IsAttacking = false
	k.SwingActive = false
	k.SwingProgress = 0
	k.swingStarted = false
	k.aiBlocking = false
}
