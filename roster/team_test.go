package roster

import (
	"errors"
	"testing"

	"github.com/lixenwraith/story-knights/vmath"
)

func playersWithPoints(points ...int) []*Player {
	out := make([]*Player, len(points))
	for i, sp := range points {
		out[i] = NewPlayerWithLevels(string(rune('a'+i)), string(rune('A'+i)), sp, [5]int{1, 1, 1, 1, 1})
	}
	return out
}

func TestCreateTeamsSplitsByDistinctValues(t *testing.T) {
	players := playersWithPoints(8, 1, 3, 5, 1, 13)
	teams := CreateTeams(players)

	for _, p := range teams.Left {
		if p.StoryPoints > 5 {
			t.Errorf("left has %d sp", p.StoryPoints)
		}
	}
	for _, p := range teams.Right {
		if p.StoryPoints <= 5 {
			t.Errorf("right has %d sp", p.StoryPoints)
		}
	}
	// distinct values 1,3,5,8,13: lower three go left
	if len(teams.Left) != 4 || len(teams.Right) != 2 {
		t.Fatalf("sizes = %d/%d, want 4/2", len(teams.Left), len(teams.Right))
	}
}

func TestCreateTeamsOddDistinctCountFavoursLeft(t *testing.T) {
	teams := CreateTeams(playersWithPoints(1, 2, 3))
	if len(teams.Left) != 2 || len(teams.Right) != 1 {
		t.Fatalf("sizes = %d/%d, want 2/1", len(teams.Left), len(teams.Right))
	}
}

func TestCreateTeamsFallbackAlternates(t *testing.T) {
	players := playersWithPoints(5, 5, 5, 5)
	teams := CreateTeams(players)
	if len(teams.Left) != 2 || len(teams.Right) != 2 {
		t.Fatalf("sizes = %d/%d", len(teams.Left), len(teams.Right))
	}
	if teams.Left[0] != players[0] || teams.Right[0] != players[1] || teams.Left[1] != players[2] {
		t.Fatalf("fallback is not alternating by join order")
	}
}

// Any roster with at least two distinct values yields two non-empty sides covering every player once
func TestCreateTeamsPartitionLaw(t *testing.T) {
	rng := vmath.NewFastRand(99)
	fib := []int{1, 2, 3, 5, 8, 13, 21}
	for round := 0; round < 200; round++ {
		n := 2 + rng.Intn(18)
		points := make([]int, n)
		for i := range points {
			points[i] = fib[rng.Intn(len(fib))]
		}
		players := playersWithPoints(points...)
		if len(DistinctStoryPoints(players)) < 2 {
			continue
		}

		teams := CreateTeams(players)
		if len(teams.Left) == 0 || len(teams.Right) == 0 {
			t.Fatalf("round %d: empty side for %v", round, points)
		}
		seen := make(map[*Player]int)
		for _, p := range teams.Left {
			seen[p]++
		}
		for _, p := range teams.Right {
			seen[p]++
		}
		if len(seen) != len(players) {
			t.Fatalf("round %d: union has %d players, want %d", round, len(seen), len(players))
		}
		for p, c := range seen {
			if c != 1 {
				t.Fatalf("round %d: %s assigned %d times", round, p.Name, c)
			}
		}
	}
}

func TestValidateStartPreconditions(t *testing.T) {
	if err := ValidateStart(playersWithPoints(3)); !errors.Is(err, ErrTooFewPlayers) {
		t.Errorf("single player: %v", err)
	}
	if err := ValidateStart(playersWithPoints(3, 3, 3)); !errors.Is(err, ErrSingleStoryPointValue) {
		t.Errorf("same points: %v", err)
	}
	if err := ValidateStart(playersWithPoints(3, 5)); err != nil {
		t.Errorf("valid roster rejected: %v", err)
	}
}

func TestRosterAddRemove(t *testing.T) {
	r := New("peer1", vmath.NewFastRand(1))
	if _, err := r.Add("  ", 3); !errors.Is(err, ErrInvalidPlayer) {
		t.Fatalf("blank name accepted: %v", err)
	}
	a, err := r.Add("ana", 3)
	if err != nil {
		t.Fatal(err)
	}
	if a.OwnerID != "peer1" || a.ID != "peer1-1" {
		t.Fatalf("unexpected identity %q/%q", a.ID, a.OwnerID)
	}
	for i := 0; i < 19; i++ {
		if _, err := r.Add("x", 5); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := r.Add("overflow", 5); !errors.Is(err, ErrRosterFull) {
		t.Fatalf("expected ErrRosterFull, got %v", err)
	}
	if !r.Remove(a.ID) || r.Remove(a.ID) {
		t.Fatalf("Remove should succeed once")
	}
	if len(r.Players()) != 19 {
		t.Fatalf("len = %d", len(r.Players()))
	}
}
