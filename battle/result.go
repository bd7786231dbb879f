package battle

import (
	"time"

	"github.com/lixenwraith/story-knights/roster"
)

// Result is the terminal state of a battle
type Result uint8

const (
	ResultNone Result = iota
	ResultLeft
	ResultRight
	ResultDraw
)

func (r Result) String() string {
	switch r {
	case ResultLeft:
		return "left"
	case ResultRight:
		return "right"
	case ResultDraw:
		return "draw"
	default:
		return "none"
	}
}

// ParseResult reads the wire form of a terminal result
func ParseResult(s string) (Result, bool) {
	switch s {
	case "left":
		return ResultLeft, true
	case "right":
		return ResultRight, true
	case "draw":
		return ResultDraw, true
	}
	return ResultNone, false
}

// Winner returns the winning team, false on a draw or an unfinished battle
func (r Result) Winner() (roster.Team, bool) {
	switch r {
	case ResultLeft:
		return roster.TeamLeft, true
	case ResultRight:
		return roster.TeamRight, true
	}
	return 0, false
}

func resultFor(t roster.Team) Result {
	if t == roster.TeamLeft {
		return ResultLeft
	}
	return ResultRight
}

// Outcome is what the presentation layer shows after a battle
type Outcome struct {
	Result      Result
	Survivors   []*roster.Player // living knights' players, winners only
	Roster      []*roster.Player // everyone, cumulative stats already applied
	StoryPoints []int            // distinct story points involved
	Elapsed     time.Duration
	Frames      int64
}
