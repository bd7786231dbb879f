// Package netsync mirrors a battle session over the relay: local poses and
// resolved hits go out, peer state comes in and is applied to remote knights.
package netsync

import (
	"sync/atomic"

	"github.com/lixenwraith/story-knights/battle"
	"github.com/lixenwraith/story-knights/event"
	"github.com/lixenwraith/story-knights/logging"
	"github.com/lixenwraith/story-knights/status"
	"github.com/lixenwraith/story-knights/vmath"
)

// Publisher sends one event to every peer
type Publisher interface {
	Publish(ev event.GameEvent) error
}

type pose struct {
	pos         vmath.Vec2
	rotation    float64
	blocking    bool
	shieldAngle float64
	shieldHP    float64
}

// Adapter is registered on both the outbound and the inbound router.
// Events produced by the local session are published, events decoded from
// the relay (Remote set) are applied to the session.
type Adapter struct {
	session *battle.Session
	pub     Publisher
	last    map[string]pose

	sent           *atomic.Int64
	received       *atomic.Int64
	droppedUnknown *atomic.Int64
	droppedOwn     *atomic.Int64
}

// NewAdapter binds a session to a publisher, pub may be nil offline
func NewAdapter(s *battle.Session, pub Publisher, reg *status.Registry) *Adapter {
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &Adapter{
		session:        s,
		pub:            pub,
		last:           make(map[string]pose),
		sent:           reg.Ints.Get(status.NetSent),
		received:       reg.Ints.Get(status.NetReceived),
		droppedUnknown: reg.Ints.Get(status.NetDroppedUnknown),
		droppedOwn:     reg.Ints.Get(status.NetDroppedOwn),
	}
}

func (a *Adapter) active() bool {
	return a.pub != nil && a.session.Networked()
}

// EventTypes implements event.Handler
func (a *Adapter) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventKnightMoved,
		event.EventKnightAttacked,
		event.EventKnightDamaged,
		event.EventBattleEnded,
	}
}

// HandleEvent implements event.Handler
func (a *Adapter) HandleEvent(ev event.GameEvent) {
	if ev.Remote {
		a.received.Add(1)
		a.apply(ev)
		return
	}
	if ev.Type == event.EventKnightMoved {
		// poses are produced by Flush
		return
	}
	a.publish(ev)
}

// Flush publishes a pose for every living local knight whose pose or shield pool changed since the last flush
func (a *Adapter) Flush() {
	if !a.active() {
		return
	}
	for _, k := range a.session.LocalKnights() {
		if !k.IsAlive() {
			continue
		}
		cur := pose{pos: k.Pos, rotation: k.Rotation, blocking: k.IsBlocking, shieldAngle: k.ShieldAngle, shieldHP: k.ShieldHP}
		if prev, ok := a.last[k.ID()]; ok && prev == cur {
			continue
		}
		a.last[k.ID()] = cur
		a.publish(event.GameEvent{
			Type:  event.EventKnightMoved,
			Frame: a.session.Frame(),
			Payload: &event.KnightMovedPayload{
				PlayerID:    k.ID(),
				X:           k.Pos.X,
				Y:           k.Pos.Y,
				Rotation:    k.Rotation,
				Blocking:    k.IsBlocking,
				ShieldAngle: k.ShieldAngle,
				ShieldHP:    k.ShieldHP,
			},
		})
	}
}

func (a *Adapter) publish(ev event.GameEvent) {
	if !a.active() {
		return
	}
	if err := a.pub.Publish(ev); err != nil {
		logging.Warn("publish failed", logging.Fields{"event": ev.Type.String(), "error": err.Error()})
		return
	}
	a.sent.Add(1)
}

// lookup resolves the knight a peer message refers to, counting drops
func (a *Adapter) lookup(id string) *battle.Knight {
	k := a.session.Knight(id)
	if k == nil {
		a.droppedUnknown.Add(1)
		return nil
	}
	if !k.IsRemote() {
		a.droppedOwn.Add(1)
		return nil
	}
	return k
}

func (a *Adapter) apply(ev event.GameEvent) {
	switch p := ev.Payload.(type) {
	case *event.KnightMovedPayload:
		k := a.lookup(p.PlayerID)
		if k == nil || !k.IsAlive() {
			return
		}
		k.Pos = vmath.Vec2{X: p.X, Y: p.Y}
		k.Rotation = p.Rotation
		k.IsBlocking = p.Blocking
		k.ShieldAngle = p.ShieldAngle
		k.SetShieldHP(p.ShieldHP)

	case *event.KnightAttackedPayload:
		if k := a.lookup(p.PlayerID); k != nil {
			k.StartCosmeticSwing(p.Rotation)
		}

	case *event.KnightDamagedPayload:
		// hits by our own knights were already resolved here
		if k := a.session.Knight(p.AttackerID); k != nil && !k.IsRemote() {
			a.droppedOwn.Add(1)
			return
		}
		if !a.session.ApplyRemoteDamage(p) {
			a.droppedUnknown.Add(1)
		}

	case *event.BattleEndedPayload:
		result, ok := battle.ParseResult(p.Winner)
		if !ok {
			logging.Warn("unknown battle result", logging.Fields{"winner": p.Winner})
			return
		}
		a.session.End(result, false)

	default:
		logging.Warn("unexpected inbound payload", logging.Fields{"event": ev.Type.String()})
	}
}
