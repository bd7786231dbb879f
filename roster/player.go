package roster

import (
	"fmt"
	"math"

	"github.com/lixenwraith/story-knights/parameter"
)

// Roller supplies uniform integers, satisfied by *vmath.FastRand
type Roller interface {
	Intn(n int) int
}

// Stat level slots, each maps to a fixed bonus formula
const (
	StatVitality  = iota // +3 HP per level
	StatStrength         // +2 damage per level
	StatBalance          // +1 HP and +1 damage per level
	StatEndurance        // +2 HP and +4 reach per level
	StatFury             // +1.5 damage per level
)

// Player is a participant's static combat profile plus cumulative stats
type Player struct {
	ID          string
	Name        string
	StoryPoints int
	OwnerID     string // network origin, empty in local mode

	Levels      [parameter.PlayerStatCount]int
	MaxHP       int
	Damage      int
	AttackRange float64

	Kills       int
	DamageDealt float64
	Wins        int
	GamesPlayed int
}

// NewPlayer rolls stat levels once and derives combat stats from them
func NewPlayer(id, name string, storyPoints int, rng Roller) *Player {
	var levels [parameter.PlayerStatCount]int
	for i := range levels {
		levels[i] = rng.Intn(parameter.PlayerStatMaxLevel) + 1
	}
	return NewPlayerWithLevels(id, name, storyPoints, levels)
}

// NewPlayerWithLevels builds a player from known levels, out-of-range levels are clamped to [1, max]
func NewPlayerWithLevels(id, name string, storyPoints int, levels [parameter.PlayerStatCount]int) *Player {
	p := &Player{
		ID:          id,
		Name:        name,
		StoryPoints: storyPoints,
	}
	for i, l := range levels {
		p.Levels[i] = min(max(l, 1), parameter.PlayerStatMaxLevel)
	}
	p.applyStats()
	return p
}

func (p *Player) applyStats() {
	hp := float64(parameter.PlayerBaseHP)
	dmg := float64(parameter.PlayerBaseDamage)
	reach := parameter.PlayerBaseAttackRange

	for slot, level := range p.Levels {
		l := float64(level)
		switch slot {
		case StatVitality:
			hp += l * 3
		case StatStrength:
			dmg += l * 2
		case StatBalance:
			hp += l
			dmg += l
		case StatEndurance:
			hp += l * 2
			reach += l * parameter.PlayerRangePerLevel
		case StatFury:
			dmg += l * 1.5
		}
	}

	p.MaxHP = int(hp)
	p.Damage = min(int(math.Round(dmg)), parameter.PlayerDamageCap)
	p.AttackRange = reach
}

// String implements fmt.Stringer for log lines
func (p *Player) String() string {
	return fmt.Sprintf("%s(%d sp, %d hp, %d dmg)", p.Name, p.StoryPoints, p.MaxHP, p.Damage)
}
