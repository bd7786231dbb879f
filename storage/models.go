package storage

import (
	"time"

	"github.com/lixenwraith/story-knights/roster"
)

// PlayerRecord is the persisted cumulative profile of one player name
type PlayerRecord struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"uniqueIndex;not null"`
	StoryPoints int
	Kills       int
	DamageDealt float64
	Wins        int
	GamesPlayed int
	UpdatedAt   time.Time
}

func (PlayerRecord) TableName() string { return "player_records" }

func (p PlayerRecord) toRecord() roster.Record {
	return roster.Record{
		Name:        p.Name,
		StoryPoints: p.StoryPoints,
		Kills:       p.Kills,
		DamageDealt: p.DamageDealt,
		Wins:        p.Wins,
		GamesPlayed: p.GamesPlayed,
	}
}

func fromRecord(r roster.Record) PlayerRecord {
	return PlayerRecord{
		Name:        r.Name,
		StoryPoints: r.StoryPoints,
		Kills:       r.Kills,
		DamageDealt: r.DamageDealt,
		Wins:        r.Wins,
		GamesPlayed: r.GamesPlayed,
	}
}

// BattleRecord is one finished battle in the history table
type BattleRecord struct {
	ID           uint `gorm:"primaryKey"`
	Result       string
	Frames       int64
	ElapsedMs    int64
	Participants int
	Survivors    string // comma separated names
	CreatedAt    time.Time
}

func (BattleRecord) TableName() string { return "battle_history" }
