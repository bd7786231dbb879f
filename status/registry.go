package status

import "sync/atomic"

// Metric keys shared between producers and the relay stats endpoint
const (
	BattleTicks         = "battle.ticks"
	BattleHits          = "battle.hits"
	BattleBlockedDamage = "battle.blocked_damage"
	BattleKills         = "battle.kills"
	BattleActive        = "battle.active"
	NetSent             = "net.sent"
	NetReceived         = "net.received"
	NetDroppedUnknown   = "net.dropped_unknown"
	NetDroppedOwn       = "net.dropped_own"
	NetDecodeErrors     = "net.decode_errors"
	RelayPeers          = "relay.peers"
	RelayForwarded      = "relay.forwarded"
)

// Registry is the central metrics facade
// Producers cache pointers during init; hot paths write directly to atomics
type Registry struct {
	Bools  *MetricMap[atomic.Bool]
	Ints   *MetricMap[atomic.Int64]
	Floats *MetricMap[AtomicFloat]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:  NewMetricMap[atomic.Bool](),
		Ints:   NewMetricMap[atomic.Int64](),
		Floats: NewMetricMap[AtomicFloat](),
	}
}

// Snapshot copies every metric into a plain map for export
func (r *Registry) Snapshot() map[string]any {
	out := make(map[string]any, r.TotalCount())
	r.Bools.Range(func(k string, v *atomic.Bool) { out[k] = v.Load() })
	r.Ints.Range(func(k string, v *atomic.Int64) { out[k] = v.Load() })
	r.Floats.Range(func(k string, v *AtomicFloat) { out[k] = v.Get() })
	return out
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count()
}
