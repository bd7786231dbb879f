// Package audio plays synthesized battle cues through the speaker
package audio

import (
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/story-knights/config"
	"github.com/lixenwraith/story-knights/event"
	"github.com/lixenwraith/story-knights/logging"
	"github.com/lixenwraith/story-knights/parameter"
)

const sampleRate = beep.SampleRate(parameter.AudioSampleRate)

// SoundManager mixes cues into one speaker stream
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	enabled     bool
	muted       bool
	initialized bool
	localTeam   string

	// played records cues when no speaker is attached
	played []Cue
}

// NewSoundManager creates a manager from the audio config section
func NewSoundManager(cfg config.Audio) *SoundManager {
	return &SoundManager{
		mixer:   &beep.Mixer{},
		volume:  cfg.Volume,
		enabled: cfg.Enabled,
	}
}

// Initialize opens the speaker, failure leaves the manager silent
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized || !sm.enabled {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(parameter.AudioBufferDuration)); err != nil {
		sm.enabled = false
		return err
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup silences every pending cue
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	sm.initialized = false
}

// SetLocalTeam selects whose win plays the victory cue
func (sm *SoundManager) SetLocalTeam(team string) {
	sm.mu.Lock()
	sm.localTeam = team
	sm.mu.Unlock()
}

// ToggleMute flips muting and returns the new state
func (sm *SoundManager) ToggleMute() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.muted = !sm.muted
	if sm.muted && sm.initialized {
		speaker.Lock()
		sm.mixer.Clear()
		speaker.Unlock()
	}
	return sm.muted
}

// Play queues a cue on the mixer
func (sm *SoundManager) Play(c Cue) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.enabled || sm.muted || c == CueNone {
		return
	}
	if !sm.initialized {
		sm.played = append(sm.played, c)
		return
	}
	s := c.Streamer(sampleRate, sm.volume)
	if s == nil {
		return
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// EventTypes implements event.Handler
func (sm *SoundManager) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventKnightAttacked,
		event.EventKnightDamaged,
		event.EventBattleEnded,
	}
}

// HandleEvent implements event.Handler, both local and peer events make sound
func (sm *SoundManager) HandleEvent(ev event.GameEvent) {
	sm.mu.Lock()
	team := sm.localTeam
	sm.mu.Unlock()

	c := CueFor(ev, team)
	if c == CueNone {
		logging.Warn("no cue for event", logging.Fields{"event": ev.Type.String()})
		return
	}
	sm.Play(c)
}
