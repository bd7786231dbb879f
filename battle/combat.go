package battle

import (
	"github.com/lixenwraith/story-knights/config"
	"github.com/lixenwraith/story-knights/parameter"
	"github.com/lixenwraith/story-knights/vmath"
)

const swingDamagePoint = parameter.SwingDamagePoint

// Rules is the geometry used by combat resolution
type Rules struct {
	AttackHalfCone   float64
	BlockHalfCone    float64
	ProtectionRadius float64
	Epsilon          float64
}

// RulesFromConfig converts configured degrees into radians
func RulesFromConfig(cfg *config.Config) Rules {
	return Rules{
		AttackHalfCone:   cfg.AttackHalfCone(),
		BlockHalfCone:    cfg.BlockHalfCone(),
		ProtectionRadius: cfg.Shield.ProtectionRadius,
		Epsilon:          parameter.AngleEpsilon,
	}
}

// ShieldShare is what one blocker absorbed from a hit
type ShieldShare struct {
	Knight   *Knight
	Absorbed float64
}

// Hit is the resolved outcome of one attacker striking one target
type Hit struct {
	Attacker *Knight
	Target   *Knight
	Damage   float64 // full attack damage
	Absorbed float64 // taken by shields
	Overflow float64 // damage - absorbed, directed at HP
	Applied  float64 // HP actually lost, overflow clamped by remaining HP
	Shields  []ShieldShare
	Killed   bool
}

// Blocked reports whether any shield took part
func (h Hit) Blocked() bool { return len(h.Shields) > 0 }

// InAttackCone reports whether target is within attacker's range and cone, boundaries inclusive
func (r Rules) InAttackCone(attacker, target *Knight) bool {
	dist := attacker.Pos.Dist(target.Pos)
	if dist > attacker.Player.AttackRange+r.Epsilon {
		return false
	}
	if dist == 0 {
		return true
	}
	return vmath.WithinCone(attacker.Rotation, vmath.Bearing(attacker.Pos, target.Pos), r.AttackHalfCone, r.Epsilon)
}

// QualifyingShields returns living teammates of target (target included) that are
// blocking with shield left, within the protection radius of the attacker and
// whose shield cone brackets the bearing toward the attacker
func (r Rules) QualifyingShields(attacker, target *Knight, knights []*Knight) []*Knight {
	var out []*Knight
	for _, d := range knights {
		if d.Team != target.Team || !d.IsAlive() || !d.IsBlocking || d.ShieldHP <= 0 {
			continue
		}
		dist := d.Pos.Dist(attacker.Pos)
		if dist > r.ProtectionRadius+r.Epsilon {
			continue
		}
		if dist > 0 && !vmath.WithinCone(d.ShieldAngle, vmath.Bearing(d.Pos, attacker.Pos), r.BlockHalfCone, r.Epsilon) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// DistributeShieldDamage splits damage evenly across shields, each absorbing at most
// its remaining pool. Returns per-shield absorption and the overflow for HP.
// sum(absorbed) + overflow == damage for any number of shields.
func DistributeShieldDamage(damage float64, shields []*Knight) (shares []ShieldShare, overflow float64) {
	if len(shields) == 0 || damage <= 0 {
		return nil, damage
	}
	share := damage / float64(len(shields))
	var absorbed float64
	shares = make([]ShieldShare, 0, len(shields))
	for _, s := range shields {
		taken := s.absorb(share)
		absorbed += taken
		shares = append(shares, ShieldShare{Knight: s, Absorbed: taken})
	}
	return shares, damage - absorbed
}

// ResolveAttack applies one swing of attacker to every opposing knight in its cone
func ResolveAttack(attacker *Knight, knights []*Knight, r Rules) []Hit {
	var hits []Hit
	damage := float64(attacker.Player.Damage)

	for _, target := range knights {
		if target == attacker || target.Team == attacker.Team || !target.IsAlive() {
			continue
		}
		if !r.InAttackCone(attacker, target) {
			continue
		}

		shares, overflow := DistributeShieldDamage(damage, r.QualifyingShields(attacker, target, knights))
		applied, killed := target.TakeDamage(overflow)

		hits = append(hits, Hit{
			Attacker: attacker,
			Target:   target,
			Damage:   damage,
			Absorbed: damage - overflow,
			Overflow: overflow,
			Applied:  applied,
			Shields:  shares,
			Killed:   killed,
		})
	}
	return hits
}
