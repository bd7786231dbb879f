package battle

import "fmt"

// LogEntry is one resolved hit as shown in the battle log
type LogEntry struct {
	Frame    int64
	Attacker string
	Target   string
	Damage   float64 // HP removed
	Absorbed float64
	Killed   bool
}

func (e LogEntry) String() string {
	switch {
	case e.Killed:
		return fmt.Sprintf("%s defeated %s", e.Attacker, e.Target)
	case e.Absorbed > 0:
		return fmt.Sprintf("%s hit %s for %.0f (%.0f blocked)", e.Attacker, e.Target, e.Damage, e.Absorbed)
	default:
		return fmt.Sprintf("%s hit %s for %.0f", e.Attacker, e.Target, e.Damage)
	}
}

// battleLog keeps the newest entries first, bounded
type battleLog struct {
	entries []LogEntry
	limit   int
}

func (l *battleLog) add(e LogEntry) {
	if l.limit <= 0 {
		return
	}
	if len(l.entries) < l.limit {
		l.entries = append(l.entries, LogEntry{})
	}
	copy(l.entries[1:], l.entries)
	l.entries[0] = e
}

func (l *battleLog) list() []LogEntry {
	out := make([]LogEntry, len(l.entries))
	copy(out, l.entries)
	return out
}
