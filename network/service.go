package network

import (
	"errors"
	"sync/atomic"

	"github.com/lixenwraith/story-knights/event"
	"github.com/lixenwraith/story-knights/logging"
	"github.com/lixenwraith/story-knights/status"
)

var (
	ErrNotConnected  = errors.New("not connected to relay")
	ErrSendQueueFull = errors.New("send queue full")
)

// Service is the client side of the relay: battle events are encoded and sent,
// decoded inbound events are pushed onto the battle loop's inbound queue
type Service struct {
	config    *Config
	localID   string
	transport *Transport

	eventQueue *event.EventQueue

	decodeErrors *atomic.Int64
	connected    atomic.Bool
}

// NewService creates a client for the relay at cfg.Address
func NewService(cfg *Config, localID string, queue *event.EventQueue, reg *status.Registry) *Service {
	if reg == nil {
		reg = status.NewRegistry()
	}
	s := &Service{
		config:       cfg,
		localID:      localID,
		eventQueue:   queue,
		decodeErrors: reg.Ints.Get(status.NetDecodeErrors),
	}
	if cfg.Role != RoleNone {
		s.transport = NewTransport(cfg)
		s.transport.SetHandlers(s.onConnect, s.onDisconnect, s.onMessage)
	}
	return s
}

// Start dials the relay, a disabled service is a no-op
func (s *Service) Start() error {
	if s.transport == nil {
		return nil
	}
	return s.transport.Start()
}

// Stop closes the relay connection
func (s *Service) Stop() error {
	if s.transport == nil {
		return nil
	}
	return s.transport.Stop()
}

func (s *Service) onConnect(p *Peer) {
	s.connected.Store(true)
	p.Send(NewMessage(MsgHello, []byte(s.localID)))
	logging.Info("connected to relay", logging.Fields{"addr": p.Addr, "local_id": s.localID})
}

func (s *Service) onDisconnect(p *Peer) {
	s.connected.Store(false)
	logging.Warn("relay connection closed", logging.Fields{"addr": p.Addr})
}

func (s *Service) onMessage(p *Peer, msg *Message) {
	if msg.Type != MsgEvent || s.eventQueue == nil {
		return
	}
	ev, err := DecodeEvent(msg.Payload)
	if err != nil {
		s.decodeErrors.Add(1)
		logging.Warn("dropped inbound message", logging.Fields{"addr": p.Addr, "error": err.Error()})
		return
	}
	s.eventQueue.Push(ev)
}

// Publish implements netsync.Publisher
func (s *Service) Publish(ev event.GameEvent) error {
	if s.transport == nil || !s.connected.Load() {
		return ErrNotConnected
	}
	b, err := EncodeEvent(ev)
	if err != nil {
		return err
	}
	if s.transport.Broadcast(NewMessage(MsgEvent, b)) == 0 {
		return ErrSendQueueFull
	}
	return nil
}

// PeerCount returns connected peer count, 1 when attached to a relay
func (s *Service) PeerCount() int {
	if s.transport == nil {
		return 0
	}
	return s.transport.PeerCount()
}

// IsConnected reports whether the relay link is up
func (s *Service) IsConnected() bool {
	return s.connected.Load()
}
