package network

import (
	"crypto/tls"
	"time"

	"github.com/lixenwraith/story-knights/config"
	"github.com/lixenwraith/story-knights/parameter"
)

// Role defines the network topology role
type Role uint8

const (
	RoleNone   Role = iota // network disabled
	RoleClient             // connects to a relay
	RoleServer             // relay, accepts connections
)

// Config holds transport configuration
type Config struct {
	Role    Role
	Address string

	// TLS configuration (nil = plaintext)
	TLS *tls.Config

	MaxPeers       int
	ConnectTimeout time.Duration
	SendQueueSize  int
}

// DefaultConfig returns defaults for a disabled transport
func DefaultConfig() *Config {
	return &Config{
		Role:           RoleNone,
		Address:        parameter.NetworkDefaultAddress,
		MaxPeers:       parameter.NetworkMaxPeers,
		ConnectTimeout: parameter.NetworkConnectTimeout,
		SendQueueSize:  parameter.NetworkQueueSize,
	}
}

// FromConfig derives transport settings from the battle config
func FromConfig(cfg *config.Config, role Role, addr string) *Config {
	c := DefaultConfig()
	c.Role = role
	c.Address = cfg.Network.Address
	if addr != "" {
		c.Address = addr
	}
	if cfg.Network.MaxPeers > 0 {
		c.MaxPeers = cfg.Network.MaxPeers
	}
	return c
}
