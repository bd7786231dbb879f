package input

// IntentType discriminates what a terminal event asks for
type IntentType uint8

const (
	IntentNone IntentType = iota

	// System-level intents
	IntentQuit     // Esc, Ctrl+C, q
	IntentPause    // p
	IntentSnapshot // F2, writes a PNG of the arena
	IntentMute     // m

	// IntentControl presses or releases a battle key
	IntentControl
)

func (t IntentType) String() string {
	switch t {
	case IntentQuit:
		return "quit"
	case IntentPause:
		return "pause"
	case IntentSnapshot:
		return "snapshot"
	case IntentMute:
		return "mute"
	case IntentControl:
		return "control"
	default:
		return "none"
	}
}
