package render

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/story-knights/battle"
	"github.com/lixenwraith/story-knights/roster"
	"github.com/lixenwraith/story-knights/vmath"
)

func testSnapshot() battle.Snapshot {
	return battle.Snapshot{
		Frame:     120,
		Width:     1200,
		Height:    800,
		TopMargin: 60,
		Knights: []battle.KnightView{
			{ID: "a", Name: "Alice", Team: roster.TeamLeft, Color: battle.ColorLeft, Controller: battle.ControlHuman,
				X: 200, Y: 400, HP: 20, MaxHP: 26, AttackRange: 104, Blocking: true, Alive: true},
			{ID: "b", Name: "Bob", Team: roster.TeamRight, Color: battle.ColorRight,
				X: 1000, Y: 400, Rotation: math.Pi, HP: 26, MaxHP: 26, AttackRange: 104,
				Attacking: true, SwingProgress: 0.5, Alive: true},
			{ID: "c", Name: "Carol", Team: roster.TeamRight, Color: battle.ColorRight, X: 600, Y: 700, Alive: false},
		},
		Log: []battle.LogEntry{{Frame: 100, Attacker: "Bob", Target: "Carol", Damage: 10, Killed: true}},
	}
}

func TestViewportRoundTrip(t *testing.T) {
	vp := NewViewport(1200, 800, 122, 40)
	if vp.Cols > 120 || vp.Rows > 40-7 {
		t.Fatalf("viewport overflows screen: %+v", vp)
	}

	for _, p := range []vmath.Vec2{{X: 0, Y: 0}, {X: 600, Y: 400}, {X: 1199, Y: 799}} {
		col, row := vp.ToCell(p)
		back, ok := vp.ToArena(col, row)
		if !ok {
			t.Fatalf("cell %d,%d of %v outside arena", col, row, p)
		}
		if math.Abs(back.X-p.X) > vp.Scale || math.Abs(back.Y-p.Y) > vp.Scale*2 {
			t.Errorf("round trip %v -> %v", p, back)
		}
	}

	if _, ok := vp.ToArena(0, 0); ok {
		t.Error("border cell mapped into arena")
	}
}

func TestFacingGlyph(t *testing.T) {
	tests := []struct {
		rot  float64
		want rune
	}{
		{0, '→'},
		{math.Pi / 2, '↓'},
		{math.Pi, '←'},
		{-math.Pi / 2, '↑'},
		{-math.Pi / 4, '↗'},
	}
	for _, tt := range tests {
		if got := facingGlyph(tt.rot); got != tt.want {
			t.Errorf("facingGlyph(%v) = %c, want %c", tt.rot, got, tt.want)
		}
	}
}

func screenText(s tcell.SimulationScreen) string {
	cells, w, h := s.GetContents()
	var b strings.Builder
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if r := cells[y*w+x].Runes; len(r) > 0 {
				b.WriteRune(r[0])
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func TestRenderFrame(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	defer screen.Fini()
	screen.SetSize(100, 40)

	r := NewTerminalRenderer(screen, 1200, 800)
	snap := testSnapshot()
	r.RenderFrame(snap, HUD{Paused: true})

	text := screenText(screen)
	for _, want := range []string{"Alice", "Bob", "PAUSED", "Bob defeated Carol", "←", "#"} {
		if !strings.Contains(text, want) {
			t.Errorf("frame missing %q", want)
		}
	}

	snap.Ended = true
	snap.Result = battle.ResultLeft
	r.RenderFrame(snap, HUD{})
	if !strings.Contains(screenText(screen), "LEFT TEAM WINS") {
		t.Error("outcome banner missing")
	}
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arena.png")
	snap := testSnapshot()
	snap.Ended, snap.Result = true, battle.ResultDraw
	if err := SavePNG(snap, path); err != nil {
		t.Fatal(err)
	}
	fi, err := os.Stat(path)
	if err != nil || fi.Size() == 0 {
		t.Fatalf("png not written: %v", err)
	}

	img := DrawImage(snap)
	if b := img.Bounds(); b.Dx() != 1200 || b.Dy() != 800 {
		t.Errorf("image bounds %v", b)
	}
}
