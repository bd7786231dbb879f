// Package render draws battle snapshots to a terminal and to PNG images
package render

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/story-knights/battle"
	"github.com/lixenwraith/story-knights/parameter"
	"github.com/lixenwraith/story-knights/roster"
	"github.com/lixenwraith/story-knights/vmath"
)

// facingGlyphs are indexed by octant, clockwise from +X with Y pointing down
var facingGlyphs = [8]rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}

const (
	glyphDead   = 'x'
	glyphShield = '#'
	glyphSwing  = '*'
	hpBarWidth  = 5
)

// HUD carries frame-independent status shown on the top line
type HUD struct {
	Paused    bool
	Muted     bool
	Networked bool
	Peers     int
	Message   string
}

// TerminalRenderer handles all terminal rendering
type TerminalRenderer struct {
	screen tcell.Screen
	arenaW float64
	arenaH float64

	mu     sync.RWMutex
	width  int
	height int
	vp     Viewport
}

// NewTerminalRenderer creates a renderer sized to the screen
func NewTerminalRenderer(screen tcell.Screen, arenaW, arenaH float64) *TerminalRenderer {
	r := &TerminalRenderer{screen: screen, arenaW: arenaW, arenaH: arenaH}
	r.Resize()
	return r
}

// Resize refits the viewport after a terminal resize
func (r *TerminalRenderer) Resize() {
	w, h := r.screen.Size()
	r.mu.Lock()
	r.width, r.height = w, h
	r.vp = NewViewport(r.arenaW, r.arenaH, w, h)
	r.mu.Unlock()
}

// ToArena maps a screen cell to the arena, safe to call from the input goroutine
func (r *TerminalRenderer) ToArena(col, row int) (vmath.Vec2, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.vp.ToArena(col, row)
}

// Viewport returns the current mapping
func (r *TerminalRenderer) Viewport() Viewport {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.vp
}

// RenderFrame renders the entire battle frame
func (r *TerminalRenderer) RenderFrame(snap battle.Snapshot, hud HUD) {
	r.mu.RLock()
	vp, width, height := r.vp, r.width, r.height
	r.mu.RUnlock()

	r.screen.Clear()
	style := tcell.StyleDefault.Background(RgbBackground).Foreground(RgbText)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r.screen.SetContent(x, y, ' ', nil, style)
		}
	}

	r.drawHUD(snap, hud, width, style)
	r.drawBorder(vp, style.Foreground(RgbBorder))

	// Dead first so the living draw over them
	for _, k := range snap.Knights {
		if !k.Alive {
			r.drawKnight(vp, k, style)
		}
	}
	for _, k := range snap.Knights {
		if k.Alive {
			r.drawKnight(vp, k, style)
		}
	}

	r.drawLog(vp, snap.Log, width, height, style)
	if snap.Ended {
		r.drawOutcome(vp, snap.Result, style)
	}

	r.screen.Show()
}

func (r *TerminalRenderer) drawHUD(snap battle.Snapshot, hud HUD, width int, style tcell.Style) {
	var left, right int
	for _, k := range snap.Knights {
		if !k.Alive {
			continue
		}
		if k.Team == roster.TeamLeft {
			left++
		} else {
			right++
		}
	}

	x := r.drawText(0, 0, fmt.Sprintf(" %s ", formatElapsed(snap.Elapsed)), style.Bold(true))
	x = r.drawText(x, 0, fmt.Sprintf("%d", left), style.Foreground(tcell.GetColor(battle.ColorLeft)).Bold(true))
	x = r.drawText(x, 0, " vs ", style)
	x = r.drawText(x, 0, fmt.Sprintf("%d", right), style.Foreground(tcell.GetColor(battle.ColorRight)).Bold(true))

	var flags string
	if hud.Networked {
		flags += fmt.Sprintf("  net:%d", hud.Peers)
	}
	if hud.Muted {
		flags += "  muted"
	}
	if hud.Paused {
		flags += "  PAUSED"
	}
	x = r.drawText(x, 0, flags, style.Foreground(RgbDim))
	if hud.Message != "" {
		r.drawText(x+2, 0, hud.Message, style)
	}

	help := "wasd move  space attack  k block  p pause  q quit "
	if hx := width - len(help); hx > x+len(hud.Message)+4 {
		r.drawText(hx, 0, help, style.Foreground(RgbDim))
	}
}

func (r *TerminalRenderer) drawBorder(vp Viewport, style tcell.Style) {
	x0, y0 := vp.OriginX-1, vp.OriginY-1
	x1, y1 := vp.OriginX+vp.Cols, vp.OriginY+vp.Rows
	for x := x0 + 1; x < x1; x++ {
		r.screen.SetContent(x, y0, '─', nil, style)
		r.screen.SetContent(x, y1, '─', nil, style)
	}
	for y := y0 + 1; y < y1; y++ {
		r.screen.SetContent(x0, y, '│', nil, style)
		r.screen.SetContent(x1, y, '│', nil, style)
	}
	r.screen.SetContent(x0, y0, '┌', nil, style)
	r.screen.SetContent(x1, y0, '┐', nil, style)
	r.screen.SetContent(x0, y1, '└', nil, style)
	r.screen.SetContent(x1, y1, '┘', nil, style)
}

func (r *TerminalRenderer) drawKnight(vp Viewport, k battle.KnightView, style tcell.Style) {
	pos := vmath.Vec2{X: k.X, Y: k.Y}
	col, row := vp.ToCell(pos)
	ks := style.Foreground(knightColor(k))
	if k.Controller == battle.ControlHuman {
		ks = ks.Bold(true).Underline(true)
	}

	if !k.Alive {
		r.screen.SetContent(col, row, glyphDead, nil, ks)
		return
	}
	r.screen.SetContent(col, row, facingGlyph(k.Rotation), nil, ks)

	if k.Blocking {
		sc, sr := vp.ToCell(pos.Add(vmath.FromAngle(k.ShieldAngle).Scale(vp.Scale * 1.5)))
		if sc != col || sr != row {
			r.screen.SetContent(sc, sr, glyphShield, nil, style.Foreground(RgbShield).Bold(true))
		}
	}
	if k.Attacking {
		reach := math.Max(k.AttackRange*k.SwingProgress, vp.Scale)
		sc, sr := vp.ToCell(pos.Add(vmath.FromAngle(k.Rotation).Scale(reach)))
		if sc != col || sr != row {
			r.screen.SetContent(sc, sr, glyphSwing, nil, style.Foreground(RgbSwing))
		}
	}

	// HP bar above, name below
	if row-1 >= vp.OriginY {
		r.drawBar(col-hpBarWidth/2, row-1, k.HP/k.MaxHP, style)
	}
	if row+1 < vp.OriginY+vp.Rows {
		name := k.Name
		if len(name) > 8 {
			name = name[:8]
		}
		r.drawText(col-len(name)/2, row+1, name, style.Foreground(knightColor(k)))
	}
}

func (r *TerminalRenderer) drawBar(x, y int, ratio float64, style tcell.Style) {
	ratio = vmath.Clamp(ratio, 0, 1)
	filled := int(math.Ceil(ratio * hpBarWidth))
	bs := style.Foreground(lerpColor(RgbHPLow, RgbHPHigh, ratio))
	for i := 0; i < hpBarWidth; i++ {
		ch := '█'
		if i >= filled {
			ch = '░'
		}
		r.screen.SetContent(x+i, y, ch, nil, bs)
	}
}

func (r *TerminalRenderer) drawLog(vp Viewport, log []battle.LogEntry, width, height int, style tcell.Style) {
	y := vp.Bottom()
	for i := 0; i < len(log) && i < parameter.LogRows && y+i < height; i++ {
		ls := style
		if i > 0 {
			ls = style.Foreground(RgbDim)
		}
		line := log[i].String()
		if len(line) > width-2 {
			line = line[:width-2]
		}
		r.drawText(1, y+i, line, ls)
	}
}

func (r *TerminalRenderer) drawOutcome(vp Viewport, result battle.Result, style tcell.Style) {
	text := OutcomeText(result)
	banner := style.Bold(true)
	if team, ok := result.Winner(); ok {
		banner = banner.Foreground(tcell.GetColor(battle.TeamColor(team)))
	}
	line := fmt.Sprintf("  %s  ", text)
	x := vp.OriginX + (vp.Cols-len(line))/2
	y := vp.OriginY + vp.Rows/2
	r.drawText(x, y-1, fmt.Sprintf("%*s", len(line), ""), banner)
	r.drawText(x, y, line, banner.Reverse(true))
	r.drawText(x, y+1, fmt.Sprintf("%*s", len(line), ""), banner)
}

// drawText writes s at x,y and returns the column after it
func (r *TerminalRenderer) drawText(x, y int, s string, style tcell.Style) int {
	for _, ch := range s {
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
	return x
}

// OutcomeText is the banner for a finished battle
func OutcomeText(result battle.Result) string {
	switch result {
	case battle.ResultLeft:
		return "LEFT TEAM WINS"
	case battle.ResultRight:
		return "RIGHT TEAM WINS"
	case battle.ResultDraw:
		return "DRAW"
	}
	return ""
}

func facingGlyph(rot float64) rune {
	octant := int(math.Round(vmath.NormalizeAngle(rot)/(math.Pi/4))) % 8
	if octant < 0 {
		octant += 8
	}
	return facingGlyphs[octant]
}

func formatElapsed(d time.Duration) string {
	d = d.Truncate(100 * time.Millisecond)
	return fmt.Sprintf("%02d:%02d.%d", int(d.Minutes()), int(d.Seconds())%60, int(d.Milliseconds()/100)%10)
}
