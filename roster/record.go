package roster

// Record is the flat persisted form of a player's cumulative stats
type Record struct {
	Name        string  `json:"name"`
	StoryPoints int     `json:"storyPoints"`
	Kills       int     `json:"kills"`
	DamageDealt float64 `json:"damageDealt"`
	Wins        int     `json:"wins"`
	GamesPlayed int     `json:"gamesPlayed"`
}

// Record returns the persisted view of the player
func (p *Player) Record() Record {
	return Record{
		Name:        p.Name,
		StoryPoints: p.StoryPoints,
		Kills:       p.Kills,
		DamageDealt: p.DamageDealt,
		Wins:        p.Wins,
		GamesPlayed: p.GamesPlayed,
	}
}

// ApplyRecord restores cumulative stats, combat stats are never persisted
func (p *Player) ApplyRecord(r Record) {
	p.Kills = r.Kills
	p.DamageDealt = r.DamageDealt
	p.Wins = r.Wins
	p.GamesPlayed = r.GamesPlayed
}

// MergeRecords overlays new records onto existing ones by name, preserving order of first appearance
func MergeRecords(existing, updates []Record) []Record {
	index := make(map[string]int, len(existing))
	out := make([]Record, 0, len(existing)+len(updates))
	for _, r := range existing {
		index[r.Name] = len(out)
		out = append(out, r)
	}
	for _, r := range updates {
		if i, ok := index[r.Name]; ok {
			out[i] = r
			continue
		}
		index[r.Name] = len(out)
		out = append(out, r)
	}
	return out
}
