package parameter

import "time"

// Combat sound cues
const (
	// AudioSampleRate is the speaker sample rate
	AudioSampleRate = 44100

	// AudioBufferDuration is the speaker buffer length
	AudioBufferDuration = 100 * time.Millisecond

	// AudioHitFreq is the tone of a direct hit
	AudioHitFreq = 880.0

	// AudioBlockFreq is the tone of a shield absorb
	AudioBlockFreq = 330.0

	// AudioKillFreq is the tone of a knight going down
	AudioKillFreq = 165.0

	// AudioCueDuration is the length of hit and block cues
	AudioCueDuration = 60 * time.Millisecond

	// AudioKillDuration is the length of the kill cue
	AudioKillDuration = 250 * time.Millisecond

	// AudioVolume is the linear gain applied to cues
	AudioVolume = 0.3
)
