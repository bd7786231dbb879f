package storage

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lixenwraith/story-knights/battle"
	"github.com/lixenwraith/story-knights/roster"
)

type sqliteRepository struct {
	db *gorm.DB
}

// NewSQLiteRepository wraps an opened database
func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

// Open is OpenAndMigrate plus NewSQLiteRepository
func Open(dataSourceName string) (Repository, error) {
	db, err := OpenAndMigrate(dataSourceName)
	if err != nil {
		return nil, err
	}
	return NewSQLiteRepository(db), nil
}

func (r *sqliteRepository) LoadRecords() ([]roster.Record, error) {
	var rows []PlayerRecord
	if err := r.db.Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}
	out := make([]roster.Record, len(rows))
	for i, row := range rows {
		out[i] = row.toRecord()
	}
	return out, nil
}

func (r *sqliteRepository) SaveRecords(records []roster.Record) error {
	if len(records) == 0 {
		return nil
	}
	rows := make([]PlayerRecord, len(records))
	for i, rec := range records {
		rows[i] = fromRecord(rec)
	}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"story_points", "kills", "damage_dealt", "wins", "games_played", "updated_at"}),
	}).Create(&rows).Error
	if err != nil {
		return fmt.Errorf("failed to save records: %w", err)
	}
	return nil
}

func (r *sqliteRepository) RecordBattle(out battle.Outcome) error {
	names := make([]string, len(out.Survivors))
	for i, p := range out.Survivors {
		names[i] = p.Name
	}
	row := BattleRecord{
		Result:       out.Result.String(),
		Frames:       out.Frames,
		ElapsedMs:    out.Elapsed.Milliseconds(),
		Participants: len(out.Roster),
		Survivors:    strings.Join(names, ","),
	}
	if err := r.db.Create(&row).Error; err != nil {
		return fmt.Errorf("failed to record battle: %w", err)
	}
	return nil
}

func (r *sqliteRepository) TopPlayers(limit int) ([]roster.Record, error) {
	var rows []PlayerRecord
	if err := r.db.Order("wins desc").Order("kills desc").Order("name").Limit(limit).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}
	out := make([]roster.Record, len(rows))
	for i, row := range rows {
		out[i] = row.toRecord()
	}
	return out, nil
}

// BattleCount returns the number of stored battles
func (r *sqliteRepository) BattleCount() (int64, error) {
	var n int64
	err := r.db.Model(&BattleRecord{}).Count(&n).Error
	return n, err
}

func (r *sqliteRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
