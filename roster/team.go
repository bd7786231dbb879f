package roster

import "sort"

// Team is one of the two battle sides
type Team uint8

const (
	TeamLeft Team = iota
	TeamRight
)

func (t Team) String() string {
	if t == TeamLeft {
		return "left"
	}
	return "right"
}

// Opponent returns the other side
func (t Team) Opponent() Team {
	if t == TeamLeft {
		return TeamRight
	}
	return TeamLeft
}

// ParseTeam accepts "left" or "right"
func ParseTeam(s string) (Team, bool) {
	switch s {
	case "left":
		return TeamLeft, true
	case "right":
		return TeamRight, true
	}
	return TeamLeft, false
}

// Teams is an immutable per-battle partition
type Teams struct {
	Left  []*Player
	Right []*Player
}

// TeamOf returns the side a player was assigned to
func (t Teams) TeamOf(p *Player) (Team, bool) {
	for _, q := range t.Left {
		if q == p {
			return TeamLeft, true
		}
	}
	for _, q := range t.Right {
		if q == p {
			return TeamRight, true
		}
	}
	return TeamLeft, false
}

// Members returns the players on a side
func (t Teams) Members(team Team) []*Player {
	if team == TeamLeft {
		return t.Left
	}
	return t.Right
}

// CreateTeams splits players by story points: sorted distinct values, the lower
// ceil(n/2) values go left, the rest go right. A one-sided split falls back to
// alternating by join order.
func CreateTeams(players []*Player) Teams {
	groups := make(map[int][]*Player)
	values := make([]int, 0)
	for _, p := range players {
		if _, ok := groups[p.StoryPoints]; !ok {
			values = append(values, p.StoryPoints)
		}
		groups[p.StoryPoints] = append(groups[p.StoryPoints], p)
	}
	sort.Ints(values)

	mid := (len(values) + 1) / 2
	var teams Teams
	for _, v := range values[:mid] {
		teams.Left = append(teams.Left, groups[v]...)
	}
	for _, v := range values[mid:] {
		teams.Right = append(teams.Right, groups[v]...)
	}

	if len(teams.Left) == 0 || len(teams.Right) == 0 {
		teams = Teams{}
		for i, p := range players {
			if i%2 == 0 {
				teams.Left = append(teams.Left, p)
			} else {
				teams.Right = append(teams.Right, p)
			}
		}
	}
	return teams
}

// DistinctStoryPoints returns the sorted distinct values among players
func DistinctStoryPoints(players []*Player) []int {
	seen := make(map[int]bool)
	out := make([]int, 0)
	for _, p := range players {
		if !seen[p.StoryPoints] {
			seen[p.StoryPoints] = true
			out = append(out, p.StoryPoints)
		}
	}
	sort.Ints(out)
	return out
}
