package battle

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/story-knights/config"
	"github.com/lixenwraith/story-knights/event"
	"github.com/lixenwraith/story-knights/roster"
	"github.com/lixenwraith/story-knights/status"
	"github.com/lixenwraith/story-knights/vmath"
)

var (
	ErrNoPlacements = errors.New("battle needs placements on both teams")
	ErrUnknownHuman = errors.New("human player not in battle")
)

// Options selects control ownership and wiring for a session
type Options struct {
	// LocalID is this client's identity, matched against Player.OwnerID in networked mode
	LocalID string
	// Networked disables local AI and hands unowned knights to their peers
	Networked bool
	// HumanID picks the locally controlled player offline, empty means the first player
	HumanID string
	// Spectate runs every knight on AI offline
	Spectate bool
	Seed     uint64
	// Events receives locally produced battle events, nil drops them
	Events *event.EventQueue
	Status *status.Registry
}

// Session owns the knights of one battle and runs its fixed-step loop body.
// It is confined to one goroutine; inbound network state is marshalled onto
// that goroutine before being applied.
type Session struct {
	cfg         *config.Config
	rules       Rules
	bounds      vmath.Bounds
	shieldRegen float64
	turnRate    float64
	blockThreat float64

	knights    []*Knight
	byID       map[string]*Knight
	placements []Placement
	rng        *vmath.FastRand

	frame   int64
	ended   bool
	outcome Outcome

	// per-battle accumulators keyed by player name
	kills  map[string]int
	damage map[string]float64
	log    battleLog

	networked bool
	localID   string
	events    *event.EventQueue

	statTicks   *atomic.Int64
	statHits    *atomic.Int64
	statKills   *atomic.Int64
	statBlocked *status.AtomicFloat
	statActive  *atomic.Bool
}

// NewSession validates the roster, splits teams and spawns knights at sampled points
func NewSession(cfg *config.Config, players []*roster.Player, opts Options) (*Session, error) {
	if err := roster.ValidateStart(players); err != nil {
		return nil, err
	}
	rng := vmath.NewFastRand(opts.Seed)
	placements := SpawnPositions(cfg, roster.CreateTeams(players), rng)
	return newSession(cfg, placements, opts, rng)
}

// NewSessionFromPlacements spawns knights at given coordinates, as supplied by a host
func NewSessionFromPlacements(cfg *config.Config, placements []Placement, opts Options) (*Session, error) {
	return newSession(cfg, placements, opts, vmath.NewFastRand(opts.Seed))
}

func newSession(cfg *config.Config, placements []Placement, opts Options, rng *vmath.FastRand) (*Session, error) {
	var left, right int
	for _, pl := range placements {
		if pl.Team == roster.TeamLeft {
			left++
		} else {
			right++
		}
	}
	if left == 0 || right == 0 {
		return nil, ErrNoPlacements
	}

	reg := opts.Status
	if reg == nil {
		reg = status.NewRegistry()
	}

	s := &Session{
		cfg:         cfg,
		rules:       RulesFromConfig(cfg),
		bounds:      cfg.ArenaBounds(),
		shieldRegen: cfg.ShieldRegenPerFrame(),
		turnRate:    cfg.TurnRate(),
		blockThreat: cfg.BlockThreatAngle(),
		byID:        make(map[string]*Knight, len(placements)),
		placements:  placements,
		rng:         rng,
		kills:       make(map[string]int),
		damage:      make(map[string]float64),
		log:         battleLog{limit: cfg.Combat.LogSize},
		networked:   opts.Networked,
		localID:     opts.LocalID,
		events:      opts.Events,
		statTicks:   reg.Ints.Get(status.BattleTicks),
		statHits:    reg.Ints.Get(status.BattleHits),
		statKills:   reg.Ints.Get(status.BattleKills),
		statBlocked: reg.Floats.Get(status.BattleBlockedDamage),
		statActive:  reg.Bools.Get(status.BattleActive),
	}

	humanID := opts.HumanID
	if humanID == "" && !opts.Networked && !opts.Spectate {
		humanID = placements[0].Player.ID
	}
	humanFound := false

	for _, pl := range placements {
		ctrl := s.resolveController(pl.Player, humanID, opts)
		if ctrl.Kind == ControlHuman {
			humanFound = true
		}
		k := NewKnight(pl.Player, pl.Team, ctrl, s.bounds.ClampPoint(pl.Pos), pl.Rotation, cfg.Shield.MaxHP)
		s.knights = append(s.knights, k)
		s.byID[k.ID()] = k
	}
	if !opts.Networked && !opts.Spectate && !humanFound {
		return nil, fmt.Errorf("%w: %s", ErrUnknownHuman, humanID)
	}

	s.statActive.Store(true)
	return s, nil
}

// resolveController fixes ownership once at spawn
func (s *Session) resolveController(p *roster.Player, humanID string, opts Options) Controller {
	if opts.Networked {
		if p.OwnerID == opts.LocalID {
			return Human(opts.LocalID)
		}
		return Remote(p.OwnerID)
	}
	if !opts.Spectate && p.ID == humanID {
		return Human(opts.LocalID)
	}
	return AI()
}

// Tick advances the battle one frame: all knights update, then every attacker
// whose swing crossed the damage point resolves, then the end condition is checked
func (s *Session) Tick(in Input) {
	if s.ended {
		return
	}
	s.frame++
	s.statTicks.Add(1)

	for _, k := range s.knights {
		k.update(s, in)
	}

	for _, k := range s.knights {
		if k.consumeSwingStart() && !k.IsRemote() {
			s.emit(event.EventKnightAttacked, &event.KnightAttackedPayload{
				PlayerID: k.ID(),
				Rotation: k.Rotation,
			})
		}
	}

	// collected up front so a knight killed earlier this frame still lands its swing
	var attackers []*Knight
	for _, k := range s.knights {
		if k.consumeAttack() {
			attackers = append(attackers, k)
		}
	}
	for _, a := range attackers {
		for _, h := range ResolveAttack(a, s.knights, s.rules) {
			s.recordHit(h)
		}
	}

	s.checkEnd()
}

func (s *Session) recordHit(h Hit) {
	s.damage[h.Attacker.Player.Name] += h.Applied
	if h.Killed {
		s.kills[h.Attacker.Player.Name]++
		s.statKills.Add(1)
	}
	s.statHits.Add(1)
	if h.Absorbed > 0 {
		s.statBlocked.Add(h.Absorbed)
	}

	s.log.add(LogEntry{
		Frame:    s.frame,
		Attacker: h.Attacker.Player.Name,
		Target:   h.Target.Player.Name,
		Damage:   h.Applied,
		Absorbed: h.Absorbed,
		Killed:   h.Killed,
	})

	payload := &event.KnightDamagedPayload{
		AttackerID: h.Attacker.ID(),
		Attacker:   h.Attacker.Player.Name,
		TargetID:   h.Target.ID(),
		Target:     h.Target.Player.Name,
		Damage:     h.Damage,
		Absorbed:   h.Absorbed,
		HP:         h.Target.HP,
		Killed:     h.Killed,
	}
	for _, sh := range h.Shields {
		payload.Shields = append(payload.Shields, event.ShieldState{
			PlayerID: sh.Knight.ID(),
			ShieldHP: sh.Knight.ShieldHP,
		})
	}
	s.emit(event.EventKnightDamaged, payload)
}

// ApplyRemoteDamage applies a hit resolved by a peer: HP and shield pools are
// overwritten, the log and accumulators updated. Unknown targets are ignored.
func (s *Session) ApplyRemoteDamage(p *event.KnightDamagedPayload) bool {
	target := s.byID[p.TargetID]
	if target == nil {
		return false
	}
	before := target.HP
	killed := target.SetHP(p.HP)
	for _, sh := range p.Shields {
		if k := s.byID[sh.PlayerID]; k != nil {
			k.SetShieldHP(sh.ShieldHP)
		}
	}

	applied := before - target.HP
	attacker := p.Attacker
	if a := s.byID[p.AttackerID]; a != nil {
		attacker = a.Player.Name
	}
	s.damage[attacker] += applied
	if killed {
		s.kills[attacker]++
		s.statKills.Add(1)
	}
	s.statHits.Add(1)
	if p.Absorbed > 0 {
		s.statBlocked.Add(p.Absorbed)
	}
	s.log.add(LogEntry{
		Frame:    s.frame,
		Attacker: attacker,
		Target:   target.Player.Name,
		Damage:   applied,
		Absorbed: p.Absorbed,
		Killed:   killed,
	})
	return true
}

// checkEnd counts living knights per team, one empty side loses, both empty is a draw
func (s *Session) checkEnd() {
	var left, right int
	for _, k := range s.knights {
		if !k.IsAlive() {
			continue
		}
		if k.Team == roster.TeamLeft {
			left++
		} else {
			right++
		}
	}
	switch {
	case left == 0 && right == 0:
		s.End(ResultDraw, true)
	case left == 0:
		s.End(ResultRight, true)
	case right == 0:
		s.End(ResultLeft, true)
	}
}

// End finishes the battle once. Cumulative player stats are applied exactly one
// time; later calls with any result are ignored and return false. Local ends are
// announced on the event queue.
func (s *Session) End(result Result, local bool) bool {
	if s.ended || result == ResultNone {
		return false
	}
	s.ended = true
	s.statActive.Store(false)

	winner, hasWinner := result.Winner()
	players := make([]*roster.Player, 0, len(s.knights))
	var survivors []*roster.Player
	for _, k := range s.knights {
		p := k.Player
		players = append(players, p)
		p.GamesPlayed++
		if hasWinner && k.Team == winner {
			p.Wins++
			if k.IsAlive() {
				survivors = append(survivors, p)
			}
		}
	}
	for _, p := range players {
		p.Kills += s.kills[p.Name]
		p.DamageDealt += s.damage[p.Name]
		// names can repeat across players, merge each accumulator once
		delete(s.kills, p.Name)
		delete(s.damage, p.Name)
	}

	s.outcome = Outcome{
		Result:      result,
		Survivors:   survivors,
		Roster:      players,
		StoryPoints: roster.DistinctStoryPoints(players),
		Elapsed:     s.Elapsed(),
		Frames:      s.frame,
	}

	if local {
		s.emit(event.EventBattleEnded, &event.BattleEndedPayload{Winner: result.String()})
	}
	return true
}

func (s *Session) emit(t event.EventType, payload any) {
	if s.events == nil {
		return
	}
	s.events.Push(event.GameEvent{Type: t, Payload: payload, Frame: s.frame})
}

// Knight looks up a knight by player ID, nil when absent
func (s *Session) Knight(id string) *Knight { return s.byID[id] }

// Knights returns every knight in spawn order
func (s *Session) Knights() []*Knight { return s.knights }

// LocalKnights returns the knights driven by this client's human input
func (s *Session) LocalKnights() []*Knight {
	var out []*Knight
	for _, k := range s.knights {
		if k.IsLocal() {
			out = append(out, k)
		}
	}
	return out
}

// Placements returns the spawn layout the session started from
func (s *Session) Placements() []Placement { return s.placements }

func (s *Session) Config() *config.Config { return s.cfg }
func (s *Session) Frame() int64           { return s.frame }
func (s *Session) Networked() bool        { return s.networked }
func (s *Session) LocalID() string        { return s.localID }
func (s *Session) Ended() bool            { return s.ended }

// Outcome returns the terminal result, valid once Ended
func (s *Session) Outcome() Outcome { return s.outcome }

// Elapsed is simulated battle time
func (s *Session) Elapsed() time.Duration {
	return time.Duration(s.frame) * s.cfg.FrameDuration()
}

// Log returns the battle log newest first
func (s *Session) Log() []LogEntry { return s.log.list() }

// Accumulated returns this battle's kills and damage for a player name, zero after End
func (s *Session) Accumulated(name string) (kills int, damage float64) {
	return s.kills[name], s.damage[name]
}
