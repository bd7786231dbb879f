package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/story-knights/battle"
	"github.com/lixenwraith/story-knights/core"
	"github.com/lixenwraith/story-knights/engine"
	"github.com/lixenwraith/story-knights/input"
	"github.com/lixenwraith/story-knights/logging"
	"github.com/lixenwraith/story-knights/render"
)

// frontend owns the screen and everything the two goroutines share
type frontend struct {
	app      *app
	screen   tcell.Screen
	renderer *render.TerminalRenderer
	tracker  *input.Tracker

	drawMu  sync.Mutex
	last    atomic.Pointer[battle.Snapshot]
	muted   atomic.Bool
	message atomic.Pointer[string]
}

func (a *app) runTerminal(cfg engine.SchedulerConfig) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	core.SetCrashTerminal(screen)
	defer func() {
		core.SetCrashTerminal(nil)
		screen.Fini()
	}()
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()

	if err := a.sound.Initialize(); err != nil {
		logging.Warn("audio unavailable", logging.Fields{"error": err.Error()})
	}
	defer a.sound.Cleanup()

	f := &frontend{
		app:      a,
		screen:   screen,
		renderer: render.NewTerminalRenderer(screen, a.cfg.Arena.Width, a.cfg.Arena.Height),
		tracker:  input.NewTracker(),
	}
	f.tracker.SetMapper(f.renderer.ToArena)

	cfg.Input = f.tracker
	cfg.OnFrame = f.onFrame
	a.sched = engine.NewClockScheduler(cfg)
	a.sched.Start()
	defer a.sched.Stop()

	events := make(chan tcell.Event, 64)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	})

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !f.handleEvent(ev) {
				return nil
			}

		case out := <-a.outcome:
			f.setMessage(outcomeMessage(out))
			f.redraw()
		}
	}
}

// handleEvent returns false when the user quits
func (f *frontend) handleEvent(ev tcell.Event) bool {
	if _, ok := ev.(*tcell.EventResize); ok {
		f.screen.Sync()
		f.renderer.Resize()
		f.redraw()
		return true
	}

	switch f.tracker.HandleEvent(ev) {
	case input.IntentQuit:
		return false

	case input.IntentPause:
		// Peers keep simulating, so pausing is offline only
		if f.app.session.Networked() {
			f.setMessage("pause is unavailable in networked battles")
		} else if f.app.sched.Clock().Toggle() {
			f.tracker.Release()
			f.setMessage("")
		}
		f.redraw()

	case input.IntentMute:
		f.muted.Store(f.app.sound.ToggleMute())
		f.redraw()

	case input.IntentSnapshot:
		f.saveSnapshot()
	}
	return true
}

// onFrame runs on the scheduler goroutine after every step
func (f *frontend) onFrame(snap battle.Snapshot) {
	f.last.Store(&snap)
	f.draw(snap)
}

// redraw repeats the last frame, used while the scheduler is paused or finished
func (f *frontend) redraw() {
	if snap := f.last.Load(); snap != nil {
		f.draw(*snap)
	}
}

func (f *frontend) draw(snap battle.Snapshot) {
	hud := render.HUD{
		Paused:    f.app.sched.Clock().IsPaused(),
		Muted:     f.muted.Load(),
		Networked: f.app.session.Networked(),
	}
	if f.app.service != nil {
		hud.Peers = f.app.service.PeerCount()
	}
	if msg := f.message.Load(); msg != nil {
		hud.Message = *msg
	}

	f.drawMu.Lock()
	f.renderer.RenderFrame(snap, hud)
	f.drawMu.Unlock()
}

func (f *frontend) setMessage(msg string) {
	f.message.Store(&msg)
}

func (f *frontend) saveSnapshot() {
	snap := f.last.Load()
	if snap == nil {
		return
	}
	path := filepath.Join(*snapshotDir, fmt.Sprintf("knights-%06d.png", snap.Frame))
	if err := render.SavePNG(*snap, path); err != nil {
		logging.Error("snapshot", err, logging.Fields{"path": path})
		f.setMessage("snapshot failed")
	} else {
		logging.Info("snapshot saved", logging.Fields{"path": path})
		f.setMessage("saved " + path)
	}
	f.redraw()
}

func outcomeMessage(out battle.Outcome) string {
	names := make([]string, 0, len(out.Survivors))
	for _, p := range out.Survivors {
		names = append(names, p.Name)
	}
	msg := render.OutcomeText(out.Result)
	if len(names) > 0 {
		msg += ": " + strings.Join(names, ", ")
	}
	return msg + "  (q to quit)"
}
