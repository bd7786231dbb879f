package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/story-knights/config"
	"github.com/lixenwraith/story-knights/event"
)

func TestCueFor(t *testing.T) {
	tests := []struct {
		name string
		ev   event.GameEvent
		team string
		want Cue
	}{
		{"swing", event.GameEvent{Payload: &event.KnightAttackedPayload{}}, "", CueSwing},
		{"hit", event.GameEvent{Payload: &event.KnightDamagedPayload{Damage: 10}}, "", CueHit},
		{"partial block", event.GameEvent{Payload: &event.KnightDamagedPayload{Damage: 10, Absorbed: 4}}, "", CueHit},
		{"full block", event.GameEvent{Payload: &event.KnightDamagedPayload{Damage: 10, Absorbed: 10}}, "", CueBlock},
		{"kill", event.GameEvent{Payload: &event.KnightDamagedPayload{Damage: 10, Killed: true}}, "", CueKill},
		{"our win", event.GameEvent{Payload: &event.BattleEndedPayload{Winner: "left"}}, "left", CueVictory},
		{"their win", event.GameEvent{Payload: &event.BattleEndedPayload{Winner: "right"}}, "left", CueDefeat},
		{"draw", event.GameEvent{Payload: &event.BattleEndedPayload{Winner: "draw"}}, "left", CueDefeat},
		{"spectator", event.GameEvent{Payload: &event.BattleEndedPayload{Winner: "right"}}, "", CueVictory},
		{"pose", event.GameEvent{Payload: &event.KnightMovedPayload{}}, "", CueNone},
	}
	for _, tt := range tests {
		if got := CueFor(tt.ev, tt.team); got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func drain(s beep.Streamer) int {
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			return total
		}
	}
}

func TestCueStreamsTerminate(t *testing.T) {
	rate := beep.SampleRate(8000)
	for c := CueSwing; c <= CueDefeat; c++ {
		s := c.Streamer(rate, 0.5)
		if s == nil {
			t.Fatalf("%v has no streamer", c)
		}
		if n := drain(s); n == 0 || n > rate.N(2*time.Second) {
			t.Errorf("%v produced %d samples", c, n)
		}
	}
	if CueNone.Streamer(rate, 1) != nil {
		t.Error("none cue has sound")
	}
}

func TestOscillatorLength(t *testing.T) {
	rate := beep.SampleRate(1000)
	if n := drain(NewOscillator(100, 250*time.Millisecond, WaveSine, rate)); n != 250 {
		t.Errorf("got %d samples, want 250", n)
	}
}

func TestHandleEventWithoutSpeaker(t *testing.T) {
	sm := NewSoundManager(config.Audio{Enabled: true, Volume: 0.3})
	sm.SetLocalTeam("right")
	sm.HandleEvent(event.GameEvent{Type: event.EventKnightDamaged, Payload: &event.KnightDamagedPayload{Killed: true}})
	sm.HandleEvent(event.GameEvent{Type: event.EventBattleEnded, Payload: &event.BattleEndedPayload{Winner: "right"}})
	if len(sm.played) != 2 || sm.played[0] != CueKill || sm.played[1] != CueVictory {
		t.Errorf("played %v", sm.played)
	}

	muted := NewSoundManager(config.Audio{Enabled: false})
	muted.Play(CueHit)
	if len(muted.played) != 0 {
		t.Error("disabled manager recorded a cue")
	}
}

func TestToggleMute(t *testing.T) {
	sm := NewSoundManager(config.Audio{Enabled: true, Volume: 0.3})
	if !sm.ToggleMute() {
		t.Fatal("first toggle should mute")
	}
	sm.Play(CueHit)
	if sm.ToggleMute() {
		t.Fatal("second toggle should unmute")
	}
	sm.Play(CueBlock)
	if len(sm.played) != 1 || sm.played[0] != CueBlock {
		t.Errorf("played %v", sm.played)
	}
}
