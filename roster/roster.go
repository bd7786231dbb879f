package roster

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lixenwraith/story-knights/parameter"
)

var (
	ErrTooFewPlayers         = errors.New("at least two players are required")
	ErrSingleStoryPointValue = errors.New("all players have the same story points, add players with different values to create teams")
	ErrRosterFull            = fmt.Errorf("maximum %d players allowed", parameter.RosterMaxPlayers)
	ErrInvalidPlayer         = errors.New("player needs a name and positive story points")
)

// Roster is the ordered list of players entered before a battle
type Roster struct {
	players []*Player
	rng     Roller
	nextID  int
	owner   string
}

// New creates a roster, owner prefixes generated player IDs and is stamped as OwnerID
func New(owner string, rng Roller) *Roster {
	return &Roster{rng: rng, owner: owner}
}

// Add creates a player with freshly rolled stats
func (r *Roster) Add(name string, storyPoints int) (*Player, error) {
	name = strings.TrimSpace(name)
	if name == "" || storyPoints <= 0 {
		return nil, ErrInvalidPlayer
	}
	if len(r.players) >= parameter.RosterMaxPlayers {
		return nil, ErrRosterFull
	}
	r.nextID++
	prefix := r.owner
	if prefix == "" {
		prefix = "local"
	}
	p := NewPlayer(fmt.Sprintf("%s-%d", prefix, r.nextID), name, storyPoints, r.rng)
	p.OwnerID = r.owner
	r.players = append(r.players, p)
	return p, nil
}

// Remove drops a player by ID, reports whether it was present
func (r *Roster) Remove(id string) bool {
	for i, p := range r.players {
		if p.ID == id {
			r.players = append(r.players[:i], r.players[i+1:]...)
			return true
		}
	}
	return false
}

// Players returns the players in join order
func (r *Roster) Players() []*Player {
	return r.players
}

// ApplyRecords restores cumulative stats for roster players matched by name
func (r *Roster) ApplyRecords(records []Record) {
	ApplyRecords(r.players, records)
}

// ApplyRecords restores cumulative stats for players matched by name.
// Players without a record are left untouched.
func ApplyRecords(players []*Player, records []Record) {
	byName := make(map[string]Record, len(records))
	for _, rec := range records {
		byName[rec.Name] = rec
	}
	for _, p := range players {
		if rec, ok := byName[p.Name]; ok {
			p.ApplyRecord(rec)
		}
	}
}

// Records returns the persisted view of every player
func (r *Roster) Records() []Record {
	out := make([]Record, 0, len(r.players))
	for _, p := range r.players {
		out = append(out, p.Record())
	}
	return out
}

// ValidateStart checks battle preconditions for a player list
func ValidateStart(players []*Player) error {
	if len(players) < 2 {
		return ErrTooFewPlayers
	}
	if len(DistinctStoryPoints(players)) < 2 {
		return ErrSingleStoryPointValue
	}
	return nil
}

// Validate checks battle preconditions for the roster
func (r *Roster) Validate() error {
	return ValidateStart(r.players)
}
