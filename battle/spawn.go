package battle

import (
	"math"

	"github.com/lixenwraith/story-knights/config"
	"github.com/lixenwraith/story-knights/roster"
	"github.com/lixenwraith/story-knights/vmath"
)

// Placement is where one player's knight enters the arena
type Placement struct {
	Player   *roster.Player
	Team     roster.Team
	Pos      vmath.Vec2
	Rotation float64
}

// SpawnPositions samples a point per player inside its team's half of the arena.
// Points keep MinSpacing from earlier ones when possible; after SpawnRetries misses
// the last sample is accepted as is. Left faces right, right faces left.
func SpawnPositions(cfg *config.Config, teams roster.Teams, rng *vmath.FastRand) []Placement {
	out := make([]Placement, 0, len(teams.Left)+len(teams.Right))
	taken := make([]vmath.Vec2, 0, cap(out))

	for _, side := range []roster.Team{roster.TeamLeft, roster.TeamRight} {
		region := spawnRegion(cfg, side)
		rotation := 0.0
		if side == roster.TeamRight {
			rotation = math.Pi
		}
		for _, p := range teams.Members(side) {
			pos := samplePoint(region, taken, cfg.Arena.MinSpacing, cfg.Arena.SpawnRetries, rng)
			taken = append(taken, pos)
			out = append(out, Placement{Player: p, Team: side, Pos: pos, Rotation: rotation})
		}
	}
	return out
}

// spawnRegion is the team half of the clamp bounds, inset by the spawn margin where room allows
func spawnRegion(cfg *config.Config, side roster.Team) vmath.Bounds {
	b := cfg.ArenaBounds()
	mid := cfg.Arena.Width / 2
	m := cfg.Arena.SpawnMargin

	r := b
	if side == roster.TeamLeft {
		r.Max.X = mid
	} else {
		r.Min.X = mid
	}
	if r.Width() > 2*m {
		r.Min.X += m
		r.Max.X -= m
	}
	if r.Height() > 2*m {
		r.Min.Y += m
		r.Max.Y -= m
	}
	return r
}

func samplePoint(region vmath.Bounds, taken []vmath.Vec2, minSpacing float64, retries int, rng *vmath.FastRand) vmath.Vec2 {
	var p vmath.Vec2
	for attempt := 0; attempt <= retries; attempt++ {
		p = vmath.Vec2{
			X: rng.Range(region.Min.X, region.Max.X),
			Y: rng.Range(region.Min.Y, region.Max.Y),
		}
		if clearOf(p, taken, minSpacing) {
			return p
		}
	}
	return p
}

func clearOf(p vmath.Vec2, taken []vmath.Vec2, minSpacing float64) bool {
	for _, q := range taken {
		if p.Dist(q) < minSpacing {
			return false
		}
	}
	return true
}
