package netsync

import (
	"errors"
	"math"
	"testing"

	"github.com/lixenwraith/story-knights/battle"
	"github.com/lixenwraith/story-knights/config"
	"github.com/lixenwraith/story-knights/event"
	"github.com/lixenwraith/story-knights/roster"
	"github.com/lixenwraith/story-knights/status"
	"github.com/lixenwraith/story-knights/vmath"
)

type fakePublisher struct {
	got []event.GameEvent
	err error
}

func (f *fakePublisher) Publish(ev event.GameEvent) error {
	if f.err != nil {
		return f.err
	}
	f.got = append(f.got, ev)
	return nil
}

func (f *fakePublisher) ofType(t event.EventType) []event.GameEvent {
	var out []event.GameEvent
	for _, ev := range f.got {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}

func duel(t *testing.T, q *event.EventQueue) *battle.Session {
	t.Helper()
	mine := roster.NewPlayerWithLevels("me-1", "Mine", 1, [5]int{1, 1, 1, 1, 1})
	mine.OwnerID = "me"
	theirs := roster.NewPlayerWithLevels("peer-1", "Theirs", 5, [5]int{1, 1, 1, 1, 1})
	theirs.OwnerID = "peer"

	start := StartPayload([]battle.Placement{
		{Player: mine, Team: roster.TeamLeft, Pos: vmath.Vec2{X: 400, Y: 400}},
		{Player: theirs, Team: roster.TeamRight, Pos: vmath.Vec2{X: 460, Y: 400}, Rotation: math.Pi},
	})
	s, err := SessionFromStart(config.Default(), start, battle.Options{LocalID: "me", Events: q})
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	return s
}

func TestFlushPublishesOnlyChangedLocalPoses(t *testing.T) {
	s := duel(t, nil)
	pub := &fakePublisher{}
	a := NewAdapter(s, pub, nil)

	a.Flush()
	a.Flush()
	moved := pub.ofType(event.EventKnightMoved)
	if len(moved) != 1 {
		t.Fatalf("got %d pose messages, want 1", len(moved))
	}
	if p := moved[0].Payload.(*event.KnightMovedPayload); p.PlayerID != "me-1" {
		t.Errorf("published pose of %s", p.PlayerID)
	}

	s.Tick(battle.Input{Keys: battle.KeySet(0).With(battle.KeyDown)})
	a.Flush()
	if got := len(pub.ofType(event.EventKnightMoved)); got != 2 {
		t.Errorf("got %d pose messages after moving, want 2", got)
	}
}

func TestOutboundForwardsLocalEvents(t *testing.T) {
	q := event.NewEventQueue()
	s := duel(t, q)
	pub := &fakePublisher{}
	a := NewAdapter(s, pub, nil)
	router := event.NewRouter(q)
	router.Register(a)

	in := battle.Input{Keys: battle.KeySet(0).With(battle.KeyAttack)}
	for i := 0; i < 20; i++ {
		s.Tick(in)
		router.DispatchAll()
	}
	if len(pub.ofType(event.EventKnightAttacked)) != 1 {
		t.Errorf("attacked not forwarded: %v", pub.got)
	}
	dmg := pub.ofType(event.EventKnightDamaged)
	if len(dmg) != 1 {
		t.Fatalf("damaged not forwarded: %v", pub.got)
	}
	if p := dmg[0].Payload.(*event.KnightDamagedPayload); p.TargetID != "peer-1" || p.HP != 16 {
		t.Errorf("payload %+v", p)
	}
}

func TestInboundAppliesOnlyToRemoteKnights(t *testing.T) {
	s := duel(t, nil)
	reg := status.NewRegistry()
	a := NewAdapter(s, &fakePublisher{}, reg)

	a.HandleEvent(event.GameEvent{Type: event.EventKnightMoved, Remote: true, Payload: &event.KnightMovedPayload{
		PlayerID: "peer-1", X: 700, Y: 300, Rotation: 1, Blocking: true, ShieldAngle: 1,
	}})
	k := s.Knight("peer-1")
	if k.Pos != (vmath.Vec2{X: 700, Y: 300}) || !k.IsBlocking || k.Rotation != 1 {
		t.Errorf("remote pose not applied: %+v", k.Pos)
	}

	mine := s.Knight("me-1")
	before := mine.Pos
	a.HandleEvent(event.GameEvent{Type: event.EventKnightMoved, Remote: true, Payload: &event.KnightMovedPayload{
		PlayerID: "me-1", X: 10, Y: 10,
	}})
	if mine.Pos != before {
		t.Error("inbound pose overwrote a local knight")
	}

	a.HandleEvent(event.GameEvent{Type: event.EventKnightAttacked, Remote: true, Payload: &event.KnightAttackedPayload{
		PlayerID: "ghost",
	}})

	if got := reg.Ints.Get(status.NetDroppedOwn).Load(); got != 1 {
		t.Errorf("dropped own %d, want 1", got)
	}
	if got := reg.Ints.Get(status.NetDroppedUnknown).Load(); got != 1 {
		t.Errorf("dropped unknown %d, want 1", got)
	}
	if got := reg.Ints.Get(status.NetReceived).Load(); got != 3 {
		t.Errorf("received %d, want 3", got)
	}
}

func TestInboundDamageAndEnd(t *testing.T) {
	s := duel(t, nil)
	a := NewAdapter(s, &fakePublisher{}, nil)

	a.HandleEvent(event.GameEvent{Type: event.EventKnightAttacked, Remote: true, Payload: &event.KnightAttackedPayload{
		PlayerID: "peer-1", Rotation: math.Pi,
	}})
	if !s.Knight("peer-1").SwingActive {
		t.Error("remote swing not started")
	}

	a.HandleEvent(event.GameEvent{Type: event.EventKnightDamaged, Remote: true, Payload: &event.KnightDamagedPayload{
		AttackerID: "peer-1", Attacker: "Theirs", TargetID: "me-1", Target: "Mine", Damage: 10, HP: 0, Killed: true,
	}})
	if s.Knight("me-1").IsAlive() {
		t.Fatal("authoritative hp not applied")
	}

	a.HandleEvent(event.GameEvent{Type: event.EventBattleEnded, Remote: true, Payload: &event.BattleEndedPayload{Winner: "right"}})
	a.HandleEvent(event.GameEvent{Type: event.EventBattleEnded, Remote: true, Payload: &event.BattleEndedPayload{Winner: "left"}})
	if !s.Ended() || s.Outcome().Result != battle.ResultRight {
		t.Errorf("ended %v result %v", s.Ended(), s.Outcome().Result)
	}
	for _, k := range s.Knights() {
		if k.Player.GamesPlayed != 1 {
			t.Errorf("%s games %d", k.ID(), k.Player.GamesPlayed)
		}
	}
	if theirs := s.Knight("peer-1").Player; theirs.Kills != 1 || theirs.Wins != 1 {
		t.Errorf("winner stats %+v", theirs)
	}
}

func TestOfflineAdapterPublishesNothing(t *testing.T) {
	cfg := config.Default()
	players := []*roster.Player{
		roster.NewPlayerWithLevels("a", "A", 1, [5]int{1, 1, 1, 1, 1}),
		roster.NewPlayerWithLevels("b", "B", 2, [5]int{1, 1, 1, 1, 1}),
	}
	s, err := battle.NewSession(cfg, players, battle.Options{})
	if err != nil {
		t.Fatal(err)
	}
	pub := &fakePublisher{}
	a := NewAdapter(s, pub, nil)
	a.Flush()
	a.HandleEvent(event.GameEvent{Type: event.EventKnightAttacked, Payload: &event.KnightAttackedPayload{PlayerID: "a"}})
	if len(pub.got) != 0 {
		t.Errorf("offline adapter published %v", pub.got)
	}
}

func TestPublishErrorIsNotFatal(t *testing.T) {
	s := duel(t, nil)
	reg := status.NewRegistry()
	a := NewAdapter(s, &fakePublisher{err: errors.New("closed")}, reg)
	a.Flush()
	if got := reg.Ints.Get(status.NetSent).Load(); got != 0 {
		t.Errorf("sent %d on failure", got)
	}
}

func TestPlacementsRejectsMalformedStart(t *testing.T) {
	good := event.KnightSpawn{PlayerID: "x", Team: "left", Levels: []int{1, 2, 3, 4, 5}}
	tests := []struct {
		name    string
		knights []event.KnightSpawn
	}{
		{"bad team", []event.KnightSpawn{{PlayerID: "x", Team: "middle", Levels: good.Levels}}},
		{"short levels", []event.KnightSpawn{{PlayerID: "x", Team: "left", Levels: []int{1}}}},
		{"duplicate id", []event.KnightSpawn{good, good}},
		{"missing id", []event.KnightSpawn{{Team: "left", Levels: good.Levels}}},
	}
	for _, tt := range tests {
		if _, err := Placements(&event.BattleStartedPayload{Knights: tt.knights}); !errors.Is(err, ErrBadStart) {
			t.Errorf("%s: err %v", tt.name, err)
		}
	}

	pl, err := Placements(&event.BattleStartedPayload{Knights: []event.KnightSpawn{good}})
	if err != nil {
		t.Fatal(err)
	}
	if pl[0].Player.Levels != [5]int{1, 2, 3, 4, 5} || pl[0].Team != roster.TeamLeft {
		t.Errorf("placement %+v", pl[0])
	}
}

// pipe holds published events until delivered to the other peer's adapter
type pipe struct{ pending []event.GameEvent }

func (p *pipe) Publish(ev event.GameEvent) error {
	p.pending = append(p.pending, ev)
	return nil
}

func (p *pipe) deliver(to *Adapter) {
	for _, ev := range p.pending {
		ev.Remote = true
		to.HandleEvent(ev)
	}
	p.pending = nil
}

type peer struct {
	session *battle.Session
	queue   *event.EventQueue
	adapter *Adapter
	out     *pipe
}

func newPeer(t *testing.T, start *event.BattleStartedPayload, localID string) *peer {
	t.Helper()
	q := event.NewEventQueue()
	s, err := SessionFromStart(config.Default(), start, battle.Options{LocalID: localID, Events: q})
	if err != nil {
		t.Fatalf("session %s: %v", localID, err)
	}
	out := &pipe{}
	return &peer{session: s, queue: q, adapter: NewAdapter(s, out, nil), out: out}
}

// step runs one frame the way the scheduler does: tick, outbound events, pose flush
func (p *peer) step(in battle.Input) {
	p.session.Tick(in)
	for _, ev := range p.queue.Consume() {
		p.adapter.HandleEvent(ev)
	}
	p.adapter.Flush()
}

func TestShieldPoolConvergesAcrossPeers(t *testing.T) {
	attacker := roster.NewPlayerWithLevels("me-1", "Mine", 1, [5]int{1, 1, 1, 1, 1})
	attacker.OwnerID = "me"
	blocker := roster.NewPlayerWithLevels("peer-1", "Theirs", 5, [5]int{1, 1, 1, 1, 1})
	blocker.OwnerID = "peer"
	start := StartPayload([]battle.Placement{
		{Player: attacker, Team: roster.TeamLeft, Pos: vmath.Vec2{X: 400, Y: 400}},
		{Player: blocker, Team: roster.TeamRight, Pos: vmath.Vec2{X: 460, Y: 400}, Rotation: math.Pi},
	})
	a := newPeer(t, start, "me")
	b := newPeer(t, start, "peer")

	frame := func(inA, inB battle.Input) {
		a.step(inA)
		b.step(inB)
		a.out.deliver(b.adapter)
		b.out.deliver(a.adapter)
	}

	attack := battle.Input{Keys: battle.KeySet(0).With(battle.KeyAttack)}
	block := battle.Input{Keys: battle.KeySet(0).With(battle.KeyBlock)}
	owned := b.session.Knight("peer-1")
	mirrored := a.session.Knight("peer-1")

	for i := 0; i < 120 && owned.ShieldHP == owned.MaxShieldHP; i++ {
		frame(attack, block)
	}
	if owned.ShieldHP == owned.MaxShieldHP {
		t.Fatal("blocked hit never landed")
	}
	if mirrored.ShieldHP != owned.ShieldHP {
		t.Errorf("after blocked hit: mirror %.1f, owner %.1f", mirrored.ShieldHP, owned.ShieldHP)
	}

	for i := 0; i < 600; i++ {
		frame(battle.Input{}, battle.Input{})
	}
	if owned.ShieldHP != owned.MaxShieldHP {
		t.Fatalf("owner shield did not regenerate: %.1f", owned.ShieldHP)
	}
	if mirrored.ShieldHP != owned.ShieldHP {
		t.Errorf("after regen: mirror %.1f, owner %.1f", mirrored.ShieldHP, owned.ShieldHP)
	}
}
