package parameter

import "time"

// Frame timing
const (
	// FramesPerSecond is the fixed simulation rate
	FramesPerSecond = 60

	// FrameDuration is the wall time of one simulation step
	FrameDuration = time.Second / FramesPerSecond
)

// Attack
const (
	// AttackCooldownFrames is the delay between attack initiations
	AttackCooldownFrames = 60

	// SwingFrames is the length of the swing animation, damage lands at its midpoint
	SwingFrames = 20

	// SwingDamagePoint is the swing progress at which damage is applied
	SwingDamagePoint = 0.5

	// AttackConeDegrees is the full attack wedge angle
	AttackConeDegrees = 60.0

	// AngleEpsilon makes cone boundary comparisons inclusive under float error
	AngleEpsilon = 1e-9
)

// Shield
const (
	// ShieldMaxHP is the shield pool of every knight
	ShieldMaxHP = 30.0

	// ShieldRegenPerSecond is the fraction of max shield restored per second while not blocking
	ShieldRegenPerSecond = 0.2

	// ShieldProtectionRadius is the max distance between a blocker and the attacker
	ShieldProtectionRadius = 150.0

	// BlockConeDegrees is the full block wedge angle
	BlockConeDegrees = 90.0
)

// Battle flow
const (
	// BattleEndDisplayDelay is the pause before the outcome reaches the presentation layer
	BattleEndDisplayDelay = 2 * time.Second

	// BattleLogSize is the number of retained log lines
	BattleLogSize = 50
)
