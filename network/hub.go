package network

import (
	"encoding/json"
	"net"
	"sync/atomic"

	"github.com/lixenwraith/story-knights/event"
	"github.com/lixenwraith/story-knights/logging"
	"github.com/lixenwraith/story-knights/status"
)

// Hub is the relay for one battle room: every event frame from a peer is
// forwarded unchanged to all other peers, never echoed to its sender
type Hub struct {
	transport *Transport

	peers     *atomic.Int64
	forwarded *atomic.Int64
	dropped   *atomic.Int64
}

// NewHub creates a relay listening on cfg.Address
func NewHub(cfg *Config, reg *status.Registry) *Hub {
	if reg == nil {
		reg = status.NewRegistry()
	}
	c := *cfg
	c.Role = RoleServer
	h := &Hub{
		transport: NewTransport(&c),
		peers:     reg.Ints.Get(status.RelayPeers),
		forwarded: reg.Ints.Get(status.RelayForwarded),
		dropped:   reg.Ints.Get(status.NetDecodeErrors),
	}
	h.transport.SetHandlers(h.onConnect, h.onDisconnect, h.onMessage)
	return h
}

// Start binds the listener
func (h *Hub) Start() error { return h.transport.Start() }

// Stop disconnects every peer
func (h *Hub) Stop() error { return h.transport.Stop() }

// Addr returns the bound address
func (h *Hub) Addr() net.Addr { return h.transport.Addr() }

// PeerCount returns connected peer count
func (h *Hub) PeerCount() int { return h.transport.PeerCount() }

func (h *Hub) onConnect(p *Peer) {
	h.peers.Add(1)
	logging.Info("peer joined", logging.Fields{"peer": uint32(p.ID), "addr": p.Addr})
}

func (h *Hub) onDisconnect(p *Peer) {
	h.peers.Add(-1)
	logging.Info("peer left", logging.Fields{"peer": uint32(p.ID), "local_id": p.LocalID()})
}

func (h *Hub) onMessage(p *Peer, msg *Message) {
	switch msg.Type {
	case MsgHello:
		logging.Info("peer identified", logging.Fields{"peer": uint32(p.ID), "local_id": p.LocalID()})
	case MsgEvent:
		var env Envelope
		if err := json.Unmarshal(msg.Payload, &env); err != nil {
			h.dropped.Add(1)
			logging.Warn("dropped malformed frame", logging.Fields{"peer": uint32(p.ID), "error": err.Error()})
			return
		}
		if _, ok := event.GetEventType(env.T); !ok {
			h.dropped.Add(1)
			logging.Warn("dropped unknown message", logging.Fields{"peer": uint32(p.ID), "type": env.T})
			return
		}
		out := NewMessage(MsgEvent, msg.Payload)
		out.Flags = FlagRelayed
		h.forwarded.Add(int64(h.transport.BroadcastExcept(p.ID, out)))
	}
}
