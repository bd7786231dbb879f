package engine

import (
	"testing"
	"time"

	"github.com/lixenwraith/story-knights/battle"
	"github.com/lixenwraith/story-knights/config"
	"github.com/lixenwraith/story-knights/event"
	"github.com/lixenwraith/story-knights/roster"
	"github.com/lixenwraith/story-knights/vmath"
)

type holdAttack struct{}

func (holdAttack) Input() battle.Input {
	return battle.Input{Keys: battle.KeySet(0).With(battle.KeyAttack)}
}

func newDuel(t *testing.T, q *event.EventQueue) *battle.Session {
	t.Helper()
	a := roster.NewPlayerWithLevels("a", "A", 1, [5]int{1, 1, 1, 1, 1})
	a.OwnerID = "me"
	b := roster.NewPlayerWithLevels("b", "B", 2, [5]int{1, 1, 1, 1, 1})
	b.OwnerID = "peer"
	s, err := battle.NewSessionFromPlacements(config.Default(), []battle.Placement{
		{Player: a, Team: roster.TeamLeft, Pos: vmath.Vec2{X: 400, Y: 400}},
		{Player: b, Team: roster.TeamRight, Pos: vmath.Vec2{X: 460, Y: 400}},
	}, battle.Options{LocalID: "me", Networked: true, Events: q})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

type countingFlusher struct{ n int }

func (f *countingFlusher) Flush() { f.n++ }

func TestStepReportsOutcomeAfterDelay(t *testing.T) {
	src := NewManualTimeProvider(time.Unix(0, 0))
	clock := NewPausableClock(src)
	outQ := event.NewEventQueue()
	s := newDuel(t, outQ)

	var ended []event.GameEvent
	outbound := event.NewRouter(outQ)
	outbound.Register(event.HandlerFunc{
		Types: []event.EventType{event.EventBattleEnded},
		Fn:    func(ev event.GameEvent) { ended = append(ended, ev) },
	})

	var outcomes []battle.Outcome
	frames := 0
	flusher := &countingFlusher{}
	cs := NewClockScheduler(SchedulerConfig{
		Session:   s,
		Input:     holdAttack{},
		Outbound:  outbound,
		Flusher:   flusher,
		Clock:     clock,
		EndDelay:  2 * time.Second,
		OnFrame:   func(battle.Snapshot) { frames++ },
		OnOutcome: func(o battle.Outcome) { outcomes = append(outcomes, o) },
	})

	for i := 0; i < 1000 && !s.Ended(); i++ {
		if cs.Step() {
			t.Fatal("finished before the battle ended")
		}
	}
	if !s.Ended() {
		t.Fatal("battle did not end")
	}
	if len(ended) != 1 {
		t.Errorf("battle-ended dispatched %d times", len(ended))
	}

	ticks := cs.TickCount()
	src.Advance(time.Second)
	if cs.Step() || len(outcomes) != 0 {
		t.Fatal("outcome reported before the delay")
	}
	if cs.TickCount() != ticks {
		t.Error("ended session kept ticking")
	}

	src.Advance(time.Second)
	if !cs.Step() {
		t.Fatal("loop not finished after the delay")
	}
	if len(outcomes) != 1 || outcomes[0].Result != battle.ResultLeft {
		t.Fatalf("outcomes %+v", outcomes)
	}
	if !cs.Step() || len(outcomes) != 1 {
		t.Error("outcome reported twice")
	}
	if frames == 0 || flusher.n != frames {
		t.Errorf("frames %d flushes %d", frames, flusher.n)
	}
}

func TestInboundDispatchedBeforeTick(t *testing.T) {
	src := NewManualTimeProvider(time.Unix(0, 0))
	s := newDuel(t, nil)

	inQ := event.NewEventQueue()
	inbound := event.NewRouter(inQ)
	inbound.Register(event.HandlerFunc{
		Types: []event.EventType{event.EventBattleEnded},
		Fn: func(ev event.GameEvent) {
			p := ev.Payload.(*event.BattleEndedPayload)
			r, _ := battle.ParseResult(p.Winner)
			s.End(r, false)
		},
	})

	cs := NewClockScheduler(SchedulerConfig{Session: s, Inbound: inbound, Clock: NewPausableClock(src)})
	inQ.Push(event.GameEvent{Type: event.EventBattleEnded, Remote: true, Payload: &event.BattleEndedPayload{Winner: "right"}})

	if !cs.Step() {
		t.Fatal("zero delay outcome should finish on the same step")
	}
	if cs.TickCount() != 0 {
		t.Errorf("ticked %d times after a remote end", cs.TickCount())
	}
	if s.Outcome().Result != battle.ResultRight {
		t.Errorf("result %v", s.Outcome().Result)
	}
}

func TestSchedulerLoopRunsAndStops(t *testing.T) {
	s := newDuel(t, nil)
	cs := NewClockScheduler(SchedulerConfig{Session: s, TickInterval: time.Millisecond})
	cs.Start()

	deadline := time.Now().Add(2 * time.Second)
	for cs.TickCount() < 5 && time.Now().Before(deadline) {
		time.Sleep(2 * time.Millisecond)
	}
	if cs.TickCount() < 5 {
		t.Fatalf("only %d ticks", cs.TickCount())
	}
	cs.Stop()
	select {
	case <-cs.Done():
	default:
		t.Fatal("done not closed after stop")
	}
	cs.Stop()
}

func TestPausableClock(t *testing.T) {
	src := NewManualTimeProvider(time.Unix(100, 0))
	pc := NewPausableClock(src)

	start := pc.Now()
	src.Advance(time.Second)
	if got := pc.Now().Sub(start); got != time.Second {
		t.Fatalf("elapsed %v", got)
	}

	if !pc.Toggle() {
		t.Fatal("toggle did not pause")
	}
	src.Advance(5 * time.Second)
	if got := pc.Now().Sub(start); got != time.Second {
		t.Errorf("paused clock moved to %v", got)
	}
	if got := pc.TotalPauseDuration(); got != 5*time.Second {
		t.Errorf("pause duration %v", got)
	}

	pc.Toggle()
	src.Advance(time.Second)
	if got := pc.Now().Sub(start); got != 2*time.Second {
		t.Errorf("resumed elapsed %v", got)
	}
}
