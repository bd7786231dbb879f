package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lixenwraith/story-knights/roster"
)

const defaultPlayers = "Arthur:3,Lancelot:5,Gawain:3,Percival:5,Tristan:8,Bedivere:8"

var errPlayerFormat = errors.New("expected Name:StoryPoints[@owner]")

// parsePlayers reads "Name:SP[@owner],..." into a roster owned by localID.
// An explicit owner hands that player to another peer in networked mode.
func parsePlayers(list, localID string, rng roster.Roller) (*roster.Roster, error) {
	r := roster.New(localID, rng)
	for _, item := range strings.Split(list, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		owner := ""
		if at := strings.LastIndexByte(item, '@'); at >= 0 {
			owner = strings.TrimSpace(item[at+1:])
			item = item[:at]
		}

		name, sp, ok := strings.Cut(item, ":")
		if !ok {
			return nil, fmt.Errorf("player %q: %w", item, errPlayerFormat)
		}
		points, err := strconv.Atoi(strings.TrimSpace(sp))
		if err != nil {
			return nil, fmt.Errorf("player %q: %w", item, errPlayerFormat)
		}

		p, err := r.Add(name, points)
		if err != nil {
			return nil, fmt.Errorf("player %q: %w", item, err)
		}
		if owner != "" {
			p.OwnerID = owner
		}
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// playerID resolves a player name to its ID, empty when absent
func playerID(players []*roster.Player, name string) string {
	for _, p := range players {
		if strings.EqualFold(p.Name, name) {
			return p.ID
		}
	}
	return ""
}
