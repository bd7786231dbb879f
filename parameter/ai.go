package parameter

// AI policy
const (
	// AIRetargetFrames is the cadence of nearest-enemy reacquisition
	AIRetargetFrames = 15

	// AIApproachFactor is the fraction of attack range the AI closes to before stopping
	AIApproachFactor = 0.8

	// AITurnRateDegrees is the max facing change per frame
	AITurnRateDegrees = 6.0

	// AIBlockChance is the probability of raising a shield against an observed swing
	AIBlockChance = 0.35

	// AIBlockThreatDegrees is the max angle between facing and threat for a block
	AIBlockThreatDegrees = 90.0
)
