package battle

import (
	"math"

	"github.com/lixenwraith/story-knights/vmath"
)

// think runs the AI policy for one frame: reacquire, maybe block, else turn, approach and swing
func (k *Knight) think(s *Session) intent {
	cfg := s.cfg
	k.aiThinkTimer++

	target := s.Knight(k.aiTarget)
	if k.aiThinkTimer%cfg.AI.RetargetFrames == 0 || target == nil || !target.IsAlive() {
		target = s.nearestEnemy(k)
		k.aiTarget = ""
		if target != nil {
			k.aiTarget = target.ID()
		}
	}
	if target == nil {
		k.aiBlocking, k.aiBlockDecided = false, false
		return intent{}
	}

	dist := k.Pos.Dist(target.Pos)
	bearing := vmath.Bearing(k.Pos, target.Pos)

	threatened := target.SwingActive &&
		dist <= target.Player.AttackRange &&
		math.Abs(vmath.AngleDiff(k.Rotation, bearing)) < s.blockThreat
	if threatened {
		// one roll per observed swing
		if !k.aiBlockDecided {
			k.aiBlockDecided = true
			k.aiBlocking = s.rng.Float64() < cfg.AI.BlockChance
		}
	} else {
		k.aiBlockDecided = false
		k.aiBlocking = false
	}
	if k.aiBlocking {
		k.ShieldAngle = k.Rotation
		return intent{block: true}
	}

	k.Rotation = vmath.RotateToward(k.Rotation, bearing, s.turnRate)
	k.ShieldAngle = k.Rotation

	var it intent
	if dist > k.Player.AttackRange*cfg.AI.ApproachFactor {
		it.move = vmath.FromAngle(bearing)
	}
	if dist <= k.Player.AttackRange && k.AttackCooldown == 0 {
		it.attack = true
	}
	return it
}

// nearestEnemy returns the closest living knight of the opposing team
func (s *Session) nearestEnemy(k *Knight) *Knight {
	var best *Knight
	bestDist := math.Inf(1)
	for _, other := range s.knights {
		if other.Team == k.Team || !other.IsAlive() {
			continue
		}
		if d := k.Pos.Dist(other.Pos); d < bestDist {
			best, bestDist = other, d
		}
	}
	return best
}
