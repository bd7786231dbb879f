package parameter

import "time"

// Relay transport
const (
	// NetworkDefaultAddress is the relay listen/dial address
	NetworkDefaultAddress = ":7777"

	// NetworkMaxPeers caps relay connections
	NetworkMaxPeers = 16

	// NetworkConnectTimeout bounds the client dial
	NetworkConnectTimeout = 5 * time.Second

	// NetworkQueueSize is the per-peer send queue depth
	NetworkQueueSize = 256

	// NetworkMaxPayload is the largest frame payload
	NetworkMaxPayload = 65535

	// NetworkStartWait is how long the host waits for peers before announcing the battle
	NetworkStartWait = 2 * time.Second

	// NetworkStartTimeout bounds how long a joining client waits for the announcement
	NetworkStartTimeout = 60 * time.Second

	// RelayStatusAddress is the gin health/stats listen address
	RelayStatusAddress = ":7778"
)

// Event queue
const (
	// EventQueueSize must be a power of two
	EventQueueSize = 512

	// EventBufferMask indexes the ring buffer
	EventBufferMask = EventQueueSize - 1
)
