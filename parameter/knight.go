package parameter

// Knight body
const (
	// KnightSize is the collision diameter, half of it is the arena clamp margin
	KnightSize = 35.0

	// KnightSpeed is movement per frame in world units
	KnightSpeed = 4.0
)

// Player stat generation
const (
	// PlayerBaseHP is max HP before stat bonuses
	PlayerBaseHP = 20

	// PlayerBaseDamage is damage before stat bonuses
	PlayerBaseDamage = 5

	// PlayerDamageCap is the upper bound of rounded damage
	PlayerDamageCap = 25

	// PlayerBaseAttackRange is attack reach before stat bonuses
	PlayerBaseAttackRange = 100.0

	// PlayerStatCount is the number of independently rolled stat levels
	PlayerStatCount = 5

	// PlayerStatMaxLevel is the highest roll, rolls are uniform in [1, PlayerStatMaxLevel]
	PlayerStatMaxLevel = 5

	// PlayerRangePerLevel is attack range gained per level of the reach stat
	PlayerRangePerLevel = 4.0

	// RosterMaxPlayers caps roster size
	RosterMaxPlayers = 20
)
