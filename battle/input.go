package battle

import "github.com/lixenwraith/story-knights/vmath"

// Key is a named battle control
type Key uint8

const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyAttack
	KeyBlock
)

// KeySet is the pressed-key set pulled once per tick
type KeySet uint8

// With returns the set with k pressed
func (s KeySet) With(k Key) KeySet { return s | 1<<k }

// Has reports whether k is pressed
func (s KeySet) Has(k Key) bool { return s&(1<<k) != 0 }

// Input is the local human's control state for one tick
type Input struct {
	Keys KeySet

	// Pointer is the cursor in arena coordinates, used for facing and shield direction when HasPointer
	Pointer    vmath.Vec2
	HasPointer bool
}

// Movement returns the unnormalized direction from the movement keys
func (in Input) Movement() vmath.Vec2 {
	var v vmath.Vec2
	if in.Keys.Has(KeyUp) {
		v.Y--
	}
	if in.Keys.Has(KeyDown) {
		v.Y++
	}
	if in.Keys.Has(KeyLeft) {
		v.X--
	}
	if in.Keys.Has(KeyRight) {
		v.X++
	}
	return v
}

// InputSource supplies the pulled input each tick
type InputSource interface {
	Input() Input
}
