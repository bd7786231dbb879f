package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/story-knights/battle"
	"github.com/lixenwraith/story-knights/core"
	"github.com/lixenwraith/story-knights/event"
	"github.com/lixenwraith/story-knights/logging"
)

// Flusher publishes whatever a tick changed, satisfied by *netsync.Adapter
type Flusher interface {
	Flush()
}

// SchedulerConfig wires a battle session into the loop
type SchedulerConfig struct {
	Session *battle.Session
	Input   battle.InputSource

	// Inbound carries decoded peer events, dispatched before each tick
	Inbound *event.Router
	// Outbound carries events the session emitted, dispatched after each tick
	Outbound *event.Router
	Flusher  Flusher

	Clock        *PausableClock
	TickInterval time.Duration
	EndDelay     time.Duration

	// OnFrame receives a copy of the state after every step, on the loop goroutine
	OnFrame func(battle.Snapshot)
	// OnOutcome is called once, EndDelay after the battle ended
	OnOutcome func(battle.Outcome)
}

// ClockScheduler runs one battle on a fixed tick.
// The session is confined to the scheduler goroutine; peers reach it only through the inbound queue.
type ClockScheduler struct {
	cfg SchedulerConfig

	nextTickDeadline time.Time
	endedAt          time.Time
	reported         bool

	tickCount atomic.Uint64

	stopChan chan struct{}
	stopOnce sync.Once
	doneChan chan struct{}
	doneOnce sync.Once
	running  atomic.Bool
}

// NewClockScheduler creates a scheduler, defaults fill a missing clock or interval
func NewClockScheduler(cfg SchedulerConfig) *ClockScheduler {
	if cfg.Clock == nil {
		cfg.Clock = NewPausableClock(nil)
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = cfg.Session.Config().FrameDuration()
	}
	return &ClockScheduler{
		cfg:      cfg,
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
	}
}

// Start begins the scheduler loop
func (cs *ClockScheduler) Start() {
	if cs.running.CompareAndSwap(false, true) {
		core.Go(cs.schedulerLoop)
	}
}

// Stop halts the loop without reporting an outcome, safe to call repeatedly
func (cs *ClockScheduler) Stop() {
	cs.stopOnce.Do(func() {
		close(cs.stopChan)
	})
	if cs.running.Load() {
		<-cs.doneChan
	}
}

// Done is closed when the loop exits
func (cs *ClockScheduler) Done() <-chan struct{} {
	return cs.doneChan
}

// Clock exposes the battle clock for pause control
func (cs *ClockScheduler) Clock() *PausableClock {
	return cs.cfg.Clock
}

// TickCount returns the number of simulated frames
func (cs *ClockScheduler) TickCount() uint64 {
	return cs.tickCount.Load()
}

func (cs *ClockScheduler) schedulerLoop() {
	defer cs.finish()

	cs.nextTickDeadline = cs.cfg.Clock.Now().Add(cs.cfg.TickInterval)

	timer := time.NewTimer(cs.cfg.TickInterval)
	defer timer.Stop()

	for {
		var sleepDuration time.Duration

		if cs.cfg.Clock.IsPaused() {
			sleepDuration = cs.cfg.TickInterval * 2
		} else {
			now := cs.cfg.Clock.Now()
			if !now.Before(cs.nextTickDeadline) {
				if cs.Step() {
					return
				}

				cs.nextTickDeadline = cs.nextTickDeadline.Add(cs.cfg.TickInterval)
				// drop ticks rather than spiral after a stall
				if now.Sub(cs.nextTickDeadline) > cs.cfg.TickInterval*2 {
					cs.nextTickDeadline = now.Add(cs.cfg.TickInterval)
				}
			}
			sleepDuration = max(cs.nextTickDeadline.Sub(cs.cfg.Clock.Now()), 0)
		}

		timer.Reset(sleepDuration)
		select {
		case <-timer.C:
		case <-cs.stopChan:
			return
		}
	}
}

func (cs *ClockScheduler) finish() {
	cs.doneOnce.Do(func() { close(cs.doneChan) })
}

// Step runs one loop iteration and reports whether the loop is finished.
// Order: peer events, session tick, local events, pose flush, frame callback.
func (cs *ClockScheduler) Step() (finished bool) {
	s := cs.cfg.Session

	if cs.cfg.Inbound != nil {
		cs.cfg.Inbound.DispatchAll()
	}

	if !s.Ended() {
		var in battle.Input
		if cs.cfg.Input != nil {
			in = cs.cfg.Input.Input()
		}
		s.Tick(in)
		cs.tickCount.Add(1)
	}

	if cs.cfg.Outbound != nil {
		cs.cfg.Outbound.DispatchAll()
	}
	if cs.cfg.Flusher != nil {
		cs.cfg.Flusher.Flush()
	}
	if cs.cfg.OnFrame != nil {
		cs.cfg.OnFrame(s.Snapshot())
	}

	if !s.Ended() {
		return false
	}

	now := cs.cfg.Clock.Now()
	if cs.endedAt.IsZero() {
		cs.endedAt = now
		out := s.Outcome()
		logging.Info("battle ended", logging.Fields{
			"result":  out.Result.String(),
			"frames":  out.Frames,
			"elapsed": out.Elapsed.String(),
		})
	}
	if cs.reported || now.Sub(cs.endedAt) < cs.cfg.EndDelay {
		return cs.reported
	}

	cs.reported = true
	if cs.cfg.OnOutcome != nil {
		cs.cfg.OnOutcome(s.Outcome())
	}
	return true
}
