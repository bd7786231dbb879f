package storage

import (
	"github.com/lixenwraith/story-knights/battle"
	"github.com/lixenwraith/story-knights/roster"
)

// Repository stores cumulative player stats between runs
type Repository interface {
	// LoadRecords returns every stored record in first-seen order
	LoadRecords() ([]roster.Record, error)
	// SaveRecords upserts records by name
	SaveRecords(records []roster.Record) error
	// RecordBattle appends a finished battle to the history
	RecordBattle(out battle.Outcome) error
	// TopPlayers returns records ordered by wins then kills
	TopPlayers(limit int) ([]roster.Record, error)
	Close() error
}
