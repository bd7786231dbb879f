package event

// KnightMovedPayload is a pose update, last message wins
type KnightMovedPayload struct {
	PlayerID    string  `json:"playerId"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Rotation    float64 `json:"rotation"`
	Blocking    bool    `json:"blocking"`
	ShieldAngle float64 `json:"shieldAngle"`
	ShieldHP    float64 `json:"shieldHp"`
}

// KnightAttackedPayload triggers a remote swing animation only
type KnightAttackedPayload struct {
	PlayerID string  `json:"playerId"`
	Rotation float64 `json:"rotation"`
}

// ShieldState is the post-hit shield pool of one absorbing knight
type ShieldState struct {
	PlayerID string  `json:"playerId"`
	ShieldHP float64 `json:"shieldHp"`
}

// KnightDamagedPayload is the resolved outcome of one hit
type KnightDamagedPayload struct {
	AttackerID string        `json:"attackerId"`
	Attacker   string        `json:"attacker"`
	TargetID   string        `json:"targetId"`
	Target     string        `json:"target"`
	Damage     float64       `json:"damage"`
	Absorbed   float64       `json:"absorbed"`
	HP         float64       `json:"hp"`
	Killed     bool          `json:"killed"`
	Shields    []ShieldState `json:"shields,omitempty"`
}

// Blocked reports whether any shield took part of the hit
func (p *KnightDamagedPayload) Blocked() bool {
	return p.Absorbed > 0
}

// KnightSpawn describes one participant of a networked battle
type KnightSpawn struct {
	PlayerID    string  `json:"id"`
	Name        string  `json:"name"`
	StoryPoints int     `json:"storyPoints"`
	OwnerID     string  `json:"ownerId"`
	Levels      []int   `json:"levels"`
	Team        string  `json:"team"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Rotation    float64 `json:"rotation"`
}

// BattleStartedPayload is the host's authoritative battle setup
type BattleStartedPayload struct {
	Knights []KnightSpawn `json:"knights"`
}

// BattleEndedPayload carries "left", "right" or "draw"
type BattleEndedPayload struct {
	Winner string `json:"winner"`
}
