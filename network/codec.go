package network

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lixenwraith/story-knights/event"
)

// ErrUnknownMessage is returned for envelopes naming no registered event
var ErrUnknownMessage = errors.New("unknown message type")

// Envelope is the JSON body of an event frame: t names the event, p holds its payload
type Envelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p"`
}

// EncodeEvent wraps a battle event in an envelope
func EncodeEvent(ev event.GameEvent) ([]byte, error) {
	name := event.GetEventName(ev.Type)
	if name == "" {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMessage, ev.Type)
	}
	if ev.Payload == nil {
		return nil, fmt.Errorf("nil payload for %s", name)
	}
	pb, err := json.Marshal(ev.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s payload: %w", name, err)
	}
	return json.Marshal(Envelope{T: name, P: pb})
}

// DecodeEvent parses an envelope into a remote event with a typed payload pointer
func DecodeEvent(b []byte) (event.GameEvent, error) {
	if len(b) == 0 {
		return event.GameEvent{}, errors.New("empty envelope")
	}
	var env Envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return event.GameEvent{}, fmt.Errorf("failed to decode envelope: %w", err)
	}
	et, ok := event.GetEventType(env.T)
	if !ok {
		return event.GameEvent{}, fmt.Errorf("%w: %q", ErrUnknownMessage, env.T)
	}
	payload := event.NewPayloadStruct(et)
	if len(env.P) == 0 || payload == nil {
		return event.GameEvent{}, fmt.Errorf("empty payload for %q", env.T)
	}
	if err := json.Unmarshal(env.P, payload); err != nil {
		return event.GameEvent{}, fmt.Errorf("failed to decode %s payload: %w", env.T, err)
	}
	return event.GameEvent{Type: et, Payload: payload, Remote: true}, nil
}
