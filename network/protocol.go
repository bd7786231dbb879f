package network

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/lixenwraith/story-knights/parameter"
)

// MessageType identifies the semantic meaning of a frame
type MessageType uint8

const (
	// Control messages
	MsgHeartbeat  MessageType = 0x01
	MsgHello      MessageType = 0x02 // payload: sender's local id
	MsgDisconnect MessageType = 0x03

	// Battle messages, payload is a JSON envelope
	MsgEvent MessageType = 0x12
)

// HeaderSize is the fixed frame header
// [Type:1][Flags:1][Seq:4][Ack:4][Len:2]
const HeaderSize = 12

// Header flags
const (
	FlagNone     uint8 = 0x00
	FlagRelayed  uint8 = 0x01 // forwarded by the hub rather than sent by the origin
	FlagReserved uint8 = 0x02
)

// ErrPayloadTooLarge is returned for frames that do not fit the length field
var ErrPayloadTooLarge = errors.New("payload exceeds maximum size")

// Message is one framed network message
type Message struct {
	Type    MessageType
	Flags   uint8
	Seq     uint32 // sender's sequence number
	Ack     uint32 // last received sequence from peer
	Payload []byte
}

// Encode writes the header and payload
func (m *Message) Encode(w io.Writer) error {
	payloadLen := len(m.Payload)
	if payloadLen > parameter.NetworkMaxPayload {
		return ErrPayloadTooLarge
	}

	header := make([]byte, HeaderSize, HeaderSize+payloadLen)
	header[0] = byte(m.Type)
	header[1] = m.Flags
	binary.BigEndian.PutUint32(header[2:6], m.Seq)
	binary.BigEndian.PutUint32(header[6:10], m.Ack)
	binary.BigEndian.PutUint16(header[10:12], uint16(payloadLen))

	_, err := w.Write(append(header, m.Payload...))
	return err
}

// Decode reads one frame
func Decode(r io.Reader) (*Message, error) {
	header := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, err
	}

	payloadLen := binary.BigEndian.Uint16(header[10:12])

	m := &Message{
		Type:  MessageType(header[0]),
		Flags: header[1],
		Seq:   binary.BigEndian.Uint32(header[2:6]),
		Ack:   binary.BigEndian.Uint32(header[6:10]),
	}

	if payloadLen > 0 {
		m.Payload = make([]byte, payloadLen)
		if _, err := io.ReadFull(r, m.Payload); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// NewMessage creates a message with the given type and payload
func NewMessage(t MessageType, payload []byte) *Message {
	return &Message{
		Type:    t,
		Flags:   FlagNone,
		Payload: payload,
	}
}
