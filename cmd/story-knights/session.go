package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/lixenwraith/story-knights/battle"
	"github.com/lixenwraith/story-knights/config"
	"github.com/lixenwraith/story-knights/event"
	"github.com/lixenwraith/story-knights/logging"
	"github.com/lixenwraith/story-knights/netsync"
	"github.com/lixenwraith/story-knights/network"
	"github.com/lixenwraith/story-knights/roster"
)

var errStartTimeout = errors.New("timed out waiting for the host to start the battle")

// startPoll is how often a joining client checks for the announcement
const startPoll = 50 * time.Millisecond

// hostBattle spawns the battle locally and announces it to the relay
func hostBattle(cfg *config.Config, players []*roster.Player, opts battle.Options, svc *network.Service, wait time.Duration) (*battle.Session, error) {
	opts.Networked = true
	s, err := battle.NewSession(cfg, players, opts)
	if err != nil {
		return nil, err
	}

	time.Sleep(wait)
	ev := event.GameEvent{Type: event.EventBattleStarted, Payload: netsync.StartPayload(s.Placements())}
	if err := svc.Publish(ev); err != nil {
		return nil, fmt.Errorf("announce battle: %w", err)
	}
	logging.Info("battle announced", logging.Fields{"knights": len(players), "peers": svc.PeerCount()})
	return s, nil
}

// joinBattle waits for the host's announcement and spawns the same layout.
// Peer events received before the announcement are dropped.
func joinBattle(cfg *config.Config, inbound *event.EventQueue, opts battle.Options, timeout time.Duration) (*battle.Session, error) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		for _, ev := range inbound.Consume() {
			if ev.Type != event.EventBattleStarted {
				continue
			}
			p, ok := ev.Payload.(*event.BattleStartedPayload)
			if !ok {
				continue
			}
			s, err := netsync.SessionFromStart(cfg, p, opts)
			if err != nil {
				logging.Warn("rejected battle announcement", logging.Fields{"error": err.Error()})
				continue
			}
			logging.Info("joined battle", logging.Fields{"knights": len(p.Knights)})
			return s, nil
		}
		time.Sleep(startPoll)
	}
	return nil, errStartTimeout
}

// sessionPlayers returns the players of a spawned session
func sessionPlayers(s *battle.Session) []*roster.Player {
	out := make([]*roster.Player, 0, len(s.Placements()))
	for _, pl := range s.Placements() {
		out = append(out, pl.Player)
	}
	return out
}

// localTeam returns the side of the first knight this client controls
func localTeam(s *battle.Session) (roster.Team, bool) {
	if local := s.LocalKnights(); len(local) > 0 {
		return local[0].Team, true
	}
	return 0, false
}
