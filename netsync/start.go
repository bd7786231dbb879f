package netsync

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/story-knights/battle"
	"github.com/lixenwraith/story-knights/config"
	"github.com/lixenwraith/story-knights/event"
	"github.com/lixenwraith/story-knights/parameter"
	"github.com/lixenwraith/story-knights/roster"
	"github.com/lixenwraith/story-knights/vmath"
)

// ErrBadStart reports a battle-started payload that cannot be spawned
var ErrBadStart = errors.New("malformed battle start")

// StartPayload is the host's authoritative setup for a networked battle
func StartPayload(placements []battle.Placement) *event.BattleStartedPayload {
	out := &event.BattleStartedPayload{Knights: make([]event.KnightSpawn, 0, len(placements))}
	for _, pl := range placements {
		p := pl.Player
		out.Knights = append(out.Knights, event.KnightSpawn{
			PlayerID:    p.ID,
			Name:        p.Name,
			StoryPoints: p.StoryPoints,
			OwnerID:     p.OwnerID,
			Levels:      append([]int(nil), p.Levels[:]...),
			Team:        pl.Team.String(),
			X:           pl.Pos.X,
			Y:           pl.Pos.Y,
			Rotation:    pl.Rotation,
		})
	}
	return out
}

// Placements rebuilds players from a start payload, stats derive from the sent levels
func Placements(p *event.BattleStartedPayload) ([]battle.Placement, error) {
	out := make([]battle.Placement, 0, len(p.Knights))
	seen := make(map[string]bool, len(p.Knights))
	for _, ks := range p.Knights {
		if ks.PlayerID == "" || seen[ks.PlayerID] {
			return nil, fmt.Errorf("%w: missing or duplicate id %q", ErrBadStart, ks.PlayerID)
		}
		seen[ks.PlayerID] = true
		team, ok := roster.ParseTeam(ks.Team)
		if !ok {
			return nil, fmt.Errorf("%w: team %q", ErrBadStart, ks.Team)
		}
		if len(ks.Levels) != parameter.PlayerStatCount {
			return nil, fmt.Errorf("%w: %s has %d stat levels", ErrBadStart, ks.PlayerID, len(ks.Levels))
		}
		var levels [parameter.PlayerStatCount]int
		copy(levels[:], ks.Levels)

		player := roster.NewPlayerWithLevels(ks.PlayerID, ks.Name, ks.StoryPoints, levels)
		player.OwnerID = ks.OwnerID
		out = append(out, battle.Placement{
			Player:   player,
			Team:     team,
			Pos:      vmath.Vec2{X: ks.X, Y: ks.Y},
			Rotation: ks.Rotation,
		})
	}
	return out, nil
}

// SessionFromStart spawns a networked session exactly as the host laid it out
func SessionFromStart(cfg *config.Config, p *event.BattleStartedPayload, opts battle.Options) (*battle.Session, error) {
	placements, err := Placements(p)
	if err != nil {
		return nil, err
	}
	opts.Networked = true
	return battle.NewSessionFromPlacements(cfg, placements, opts)
}
