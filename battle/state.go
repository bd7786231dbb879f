package battle

import (
	"github.com/lixenwraith/story-knights/vmath"
)

// intent is what control resolution produced for one frame
type intent struct {
	move   vmath.Vec2
	block  bool
	attack bool
}

// update runs one frame of the knight state machine
func (k *Knight) update(s *Session, in Input) {
	if !k.IsAlive() {
		return
	}

	switch k.Controller.Kind {
	case ControlHuman:
		k.step(s, k.humanIntent(in))
	case ControlAI:
		k.step(s, k.think(s))
	case ControlRemote:
		// pose and shield arrive from the owner, only local animation timers advance
		k.tickTimers(s)
	}
}

func (k *Knight) humanIntent(in Input) intent {
	if in.HasPointer {
		if d := in.Pointer.Sub(k.Pos); !d.IsZero() {
			k.Rotation = vmath.Bearing(k.Pos, in.Pointer)
			k.ShieldAngle = k.Rotation
		}
	}
	return intent{
		move:   in.Movement(),
		block:  in.Keys.Has(KeyBlock),
		attack: in.Keys.Has(KeyAttack),
	}
}

// step applies movement, blocking, attack initiation and timers in that order
func (k *Knight) step(s *Session, it intent) {
	cfg := s.cfg

	if !it.move.IsZero() {
		k.Pos = k.Pos.Add(it.move.Norm().Scale(cfg.Knight.Speed))
	}
	k.Pos = s.bounds.ClampPoint(k.Pos)

	k.IsBlocking = it.block
	if !k.IsBlocking && k.ShieldHP < k.MaxShieldHP {
		k.ShieldHP = min(k.MaxShieldHP, k.ShieldHP+s.shieldRegen)
	}

	if it.attack {
		k.Attack(cfg.Combat.CooldownFrames)
	}

	k.tickTimers(s)
}

// Attack starts a swing when alive, off cooldown and not blocking
func (k *Knight) Attack(cooldownFrames int) bool {
	if !k.IsAlive() || k.AttackCooldown != 0 || k.IsBlocking {
		return false
	}
	k.IsAttacking = true
	k.AttackCooldown = cooldownFrames
	k.SwingActive = true
	k.SwingProgress = 0
	k.swingFrame = 0
	k.damageApplied = false
	k.swingStarted = true
	return true
}

// StartCosmeticSwing replays a peer's swing without ever applying damage locally
func (k *Knight) StartCosmeticSwing(rotation float64) {
	if !k.IsAlive() {
		return
	}
	k.Rotation = rotation
	k.IsAttacking = true
	k.SwingActive = true
	k.SwingProgress = 0
	k.swingFrame = 0
	k.damageApplied = true
}

// tickTimers advances the swing and the cooldown by one frame
func (k *Knight) tickTimers(s *Session) {
	if k.SwingActive {
		k.swingFrame++
		k.SwingProgress = float64(k.swingFrame) / float64(s.cfg.Combat.SwingFrames)
		if k.SwingProgress >= swingDamagePoint && !k.damageApplied {
			k.damageApplied = true
			k.justAttacked = true
		}
		if k.SwingProgress >= 1 {
			k.SwingActive = false
			k.SwingProgress = 0
			k.swingFrame = 0
			if k.AttackCooldown == 0 {
				k.IsAttacking = false
			}
		}
	}

	if k.AttackCooldown > 0 {
		k.AttackCooldown--
		if k.AttackCooldown == 0 {
			k.IsAttacking = false
		}
	}
}

// consumeAttack returns and clears the one-shot damage flag
func (k *Knight) consumeAttack() bool {
	j := k.justAttacked
	k.justAttacked = false
	return j
}

// consumeSwingStart returns and clears the attack-initiated flag
func (k *Knight) consumeSwingStart() bool {
	j := k.swingStarted
	k.swingStarted = false
	return j
}
