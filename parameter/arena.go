package parameter

// Arena dimensions in world units
const (
	// ArenaWidth is the battle field width
	ArenaWidth = 1400.0

	// ArenaHeight is the battle field height
	ArenaHeight = 800.0

	// ArenaTopMargin keeps knights clear of the HUD strip
	ArenaTopMargin = 50.0

	// ArenaSpawnMargin is the distance kept from the arena edge when sampling spawn points
	ArenaSpawnMargin = 100.0
)

// Spawn placement
const (
	// SpawnMinSeparation is the minimum distance between two spawned knights
	SpawnMinSeparation = 80.0

	// SpawnMaxAttempts bounds resampling before an overlapping position is accepted
	SpawnMaxAttempts = 50
)

// Terminal and image rendering
const (
	// HUDRows are reserved above the arena for the status line
	HUDRows = 1
	// LogRows are reserved below the arena for the battle log
	LogRows = 4
	// CellAspect is the height of a terminal cell over its width
	CellAspect = 2.0
	// SnapshotScale is pixels per arena unit in saved images
	SnapshotScale = 1.0
)
