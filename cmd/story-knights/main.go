// Command story-knights runs a knight battle in the terminal, alone or through a relay
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/lixenwraith/story-knights/audio"
	"github.com/lixenwraith/story-knights/battle"
	"github.com/lixenwraith/story-knights/config"
	"github.com/lixenwraith/story-knights/core"
	"github.com/lixenwraith/story-knights/engine"
	"github.com/lixenwraith/story-knights/event"
	"github.com/lixenwraith/story-knights/logging"
	"github.com/lixenwraith/story-knights/netsync"
	"github.com/lixenwraith/story-knights/network"
	"github.com/lixenwraith/story-knights/parameter"
	"github.com/lixenwraith/story-knights/roster"
	"github.com/lixenwraith/story-knights/status"
	"github.com/lixenwraith/story-knights/storage"
	"github.com/lixenwraith/story-knights/vmath"
)

var (
	configPath  = flag.String("config", "", "YAML battle config, defaults when empty")
	dbPath      = flag.String("db", "knights.db", "SQLite file for player records, empty disables persistence")
	logPath     = flag.String("log", "logs/story-knights.log", "log file, empty discards")
	playersFlag = flag.String("players", defaultPlayers, "comma separated Name:StoryPoints[@owner]")
	localID     = flag.String("id", "local", "identity of this client, matched against player owners")
	humanName   = flag.String("human", "", "player to control offline, defaults to the first")
	connectAddr = flag.String("connect", "", "relay address, empty plays offline")
	hostFlag    = flag.Bool("host", false, "announce the battle to the relay")
	startWait   = flag.Duration("wait", parameter.NetworkStartWait, "host delay before announcing")
	seedFlag    = flag.Uint64("seed", 0, "spawn and AI seed, 0 picks one from the clock")
	spectate    = flag.Bool("spectate", false, "let the AI control every knight offline")
	headless    = flag.Bool("headless", false, "simulate without a terminal and print the outcome")
	snapshotDir = flag.String("snapshot", ".", "directory for F2 arena images")
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()
	flag.Parse()

	closer, err := setupLogging(*logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	if closer != nil {
		defer closer.Close()
	}

	if err := run(); err != nil {
		logging.Error("story-knights exited", err, nil)
		fmt.Fprintf(os.Stderr, "story-knights: %v\n", err)
		os.Exit(1)
	}
}

// app holds everything wired for one battle
type app struct {
	cfg     *config.Config
	reg     *status.Registry
	repo    storage.Repository
	session *battle.Session
	service *network.Service
	sound   *audio.SoundManager
	sched   *engine.ClockScheduler
	outcome chan battle.Outcome
}

func run() error {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	seed := *seedFlag
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := vmath.NewFastRand(seed)
	reg := status.NewRegistry()

	a := &app{cfg: cfg, reg: reg, outcome: make(chan battle.Outcome, 1)}

	var records []roster.Record
	if *dbPath != "" {
		if a.repo, err = storage.Open(*dbPath); err != nil {
			return err
		}
		defer a.repo.Close()
		if records, err = a.repo.LoadRecords(); err != nil {
			return err
		}
	}

	inbound := event.NewEventQueue()
	outbound := event.NewEventQueue()
	opts := battle.Options{
		LocalID:  *localID,
		Spectate: *spectate,
		Seed:     seed,
		Events:   outbound,
		Status:   reg,
	}

	if *connectAddr != "" {
		a.service = network.NewService(network.FromConfig(cfg, network.RoleClient, *connectAddr), *localID, inbound, reg)
		if err := a.service.Start(); err != nil {
			return fmt.Errorf("connect to relay %s: %w", *connectAddr, err)
		}
		defer a.service.Stop()
	}

	switch {
	case a.service == nil:
		r, err := parsePlayers(*playersFlag, "", rng)
		if err != nil {
			return err
		}
		r.ApplyRecords(records)
		opts.HumanID = playerID(r.Players(), *humanName)
		a.session, err = battle.NewSession(cfg, r.Players(), opts)
		if err != nil {
			return err
		}

	case *hostFlag:
		r, err := parsePlayers(*playersFlag, *localID, rng)
		if err != nil {
			return err
		}
		r.ApplyRecords(records)
		if a.session, err = hostBattle(cfg, r.Players(), opts, a.service, *startWait); err != nil {
			return err
		}

	default:
		if a.session, err = joinBattle(cfg, inbound, opts, parameter.NetworkStartTimeout); err != nil {
			return err
		}
		roster.ApplyRecords(sessionPlayers(a.session), records)
	}

	logging.Info("battle started", logging.Fields{
		"knights":   len(a.session.Knights()),
		"networked": a.session.Networked(),
		"local_id":  *localID,
		"seed":      seed,
	})

	a.sound = audio.NewSoundManager(cfg.Audio)
	if team, ok := localTeam(a.session); ok {
		a.sound.SetLocalTeam(team.String())
	}

	// A nil *Service must not reach the adapter as a non-nil interface
	var pub netsync.Publisher
	if a.service != nil {
		pub = a.service
	}
	adapter := netsync.NewAdapter(a.session, pub, reg)

	inRouter := event.NewRouter(inbound)
	inRouter.Register(adapter)
	inRouter.Register(a.sound)
	outRouter := event.NewRouter(outbound)
	outRouter.Register(adapter)
	outRouter.Register(a.sound)

	schedCfg := engine.SchedulerConfig{
		Session:      a.session,
		Inbound:      inRouter,
		Outbound:     outRouter,
		Flusher:      adapter,
		TickInterval: cfg.FrameDuration(),
		EndDelay:     cfg.EndDelay(),
		OnOutcome:    a.finish,
	}

	if *headless {
		return a.runHeadless(schedCfg)
	}
	return a.runTerminal(schedCfg)
}

// finish persists the outcome and hands it to the presentation side
func (a *app) finish(out battle.Outcome) {
	if a.repo != nil {
		records := make([]roster.Record, 0, len(out.Roster))
		for _, p := range out.Roster {
			records = append(records, p.Record())
		}
		if err := a.repo.SaveRecords(records); err != nil {
			logging.Error("save records", err, nil)
		}
		if err := a.repo.RecordBattle(out); err != nil {
			logging.Error("record battle", err, nil)
		}
	}
	select {
	case a.outcome <- out:
	default:
	}
}

// headlessLimit stops a stalemate from spinning forever
const headlessLimit = 30 * time.Minute

// runHeadless steps the battle on a manual clock as fast as possible
func (a *app) runHeadless(cfg engine.SchedulerConfig) error {
	if a.session.Networked() {
		return fmt.Errorf("headless mode is offline only")
	}
	clock := engine.NewManualTimeProvider(time.Unix(0, 0))
	cfg.Clock = engine.NewPausableClock(clock)
	a.sched = engine.NewClockScheduler(cfg)
	for !a.sched.Step() {
		clock.Advance(cfg.TickInterval)
		if a.session.Elapsed() > headlessLimit {
			return fmt.Errorf("battle still running after %s", headlessLimit)
		}
	}
	printOutcome(<-a.outcome)
	return nil
}

func printOutcome(out battle.Outcome) {
	fmt.Printf("result: %s after %s (%d frames)\n", out.Result, out.Elapsed.Round(time.Millisecond), out.Frames)
	for _, p := range out.Survivors {
		fmt.Printf("  survivor: %s (%d SP, %d kills, %.0f damage)\n", p.Name, p.StoryPoints, p.Kills, p.DamageDealt)
	}
	if len(out.StoryPoints) > 0 {
		fmt.Printf("story points: %v\n", out.StoryPoints)
	}
}
