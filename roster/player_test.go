package roster

import (
	"testing"

	"github.com/lixenwraith/story-knights/parameter"
	"github.com/lixenwraith/story-knights/vmath"
)

func TestNewPlayerWithLevelsFormulas(t *testing.T) {
	tests := []struct {
		name   string
		levels [parameter.PlayerStatCount]int
		hp     int
		dmg    int
		reach  float64
	}{
		{"all ones", [5]int{1, 1, 1, 1, 1}, 26, 10, 104},  // 9.5 rounds up
		{"all fives", [5]int{5, 5, 5, 5, 5}, 50, 25, 120}, // 27.5 capped
		{"mixed", [5]int{2, 3, 4, 1, 2}, 32, 18, 104},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPlayerWithLevels("id", "n", 1, tt.levels)
			if p.MaxHP != tt.hp {
				t.Errorf("MaxHP = %d, want %d", p.MaxHP, tt.hp)
			}
			if p.Damage != tt.dmg {
				t.Errorf("Damage = %d, want %d", p.Damage, tt.dmg)
			}
			if p.AttackRange != tt.reach {
				t.Errorf("AttackRange = %v, want %v", p.AttackRange, tt.reach)
			}
		})
	}
}

func TestNewPlayerInvariants(t *testing.T) {
	rng := vmath.NewFastRand(7)
	for i := 0; i < 500; i++ {
		p := NewPlayer("id", "n", 3, rng)
		if p.Damage < parameter.PlayerBaseDamage || p.Damage > parameter.PlayerDamageCap {
			t.Fatalf("damage %d out of [%d, %d]", p.Damage, parameter.PlayerBaseDamage, parameter.PlayerDamageCap)
		}
		if p.MaxHP <= 0 || p.AttackRange <= 0 {
			t.Fatalf("non-positive stats: %v", p)
		}
		for slot, l := range p.Levels {
			if l < 1 || l > parameter.PlayerStatMaxLevel {
				t.Fatalf("level %d in slot %d out of range", l, slot)
			}
		}
	}
}

func TestLevelsClamped(t *testing.T) {
	p := NewPlayerWithLevels("id", "n", 1, [5]int{0, 9, -3, 1, 1})
	want := [5]int{1, 5, 1, 1, 1}
	if p.Levels != want {
		t.Fatalf("Levels = %v, want %v", p.Levels, want)
	}
}

func TestRecordRoundTripKeepsCombatStats(t *testing.T) {
	p := NewPlayerWithLevels("id", "ana", 5, [5]int{3, 3, 3, 3, 3})
	hp, dmg := p.MaxHP, p.Damage
	p.ApplyRecord(Record{Name: "ana", StoryPoints: 5, Kills: 4, DamageDealt: 120.5, Wins: 2, GamesPlayed: 3})
	if p.Kills != 4 || p.Wins != 2 || p.GamesPlayed != 3 || p.DamageDealt != 120.5 {
		t.Fatalf("cumulative stats not applied: %+v", p.Record())
	}
	if p.MaxHP != hp || p.Damage != dmg {
		t.Fatalf("combat stats changed by record")
	}
}

func TestMergeRecords(t *testing.T) {
	existing := []Record{{Name: "a", Wins: 1}, {Name: "b", Wins: 2}}
	updates := []Record{{Name: "b", Wins: 3}, {Name: "c", Wins: 1}}
	got := MergeRecords(existing, updates)
	if len(got) != 3 || got[0].Name != "a" || got[1].Wins != 3 || got[2].Name != "c" {
		t.Fatalf("unexpected merge: %+v", got)
	}
}

func TestApplyRecordsMatchesByName(t *testing.T) {
	records := []Record{{Name: "ana", Kills: 4, Wins: 2, GamesPlayed: 3}}
	ana := NewPlayerWithLevels("1", "ana", 5, [5]int{1, 1, 1, 1, 1})
	bo := NewPlayerWithLevels("2", "bo", 5, [5]int{1, 1, 1, 1, 1})

	ApplyRecords([]*Player{ana, bo}, records)
	if ana.Kills != 4 || ana.Wins != 2 || ana.GamesPlayed != 3 {
		t.Errorf("record not applied: %+v", ana.Record())
	}
	if bo.Kills != 0 || bo.GamesPlayed != 0 {
		t.Errorf("bo picked up someone else's record: %+v", bo.Record())
	}

	r := New("me", vmath.NewFastRand(1))
	cy := NewPlayerWithLevels("3", "ana", 5, [5]int{1, 1, 1, 1, 1})
	r.players = append(r.players, cy)
	r.ApplyRecords(records)
	if cy.Wins != 2 {
		t.Errorf("roster method did not apply record: %+v", cy.Record())
	}
}
