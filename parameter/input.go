package parameter

import "time"

// Terminal input
const (
	// InputHoldWindow is how long a key counts as held after its last press or repeat
	InputHoldWindow = 250 * time.Millisecond
)
