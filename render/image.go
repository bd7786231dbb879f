package render

import (
	"fmt"
	"image"
	"math"

	"github.com/fogleman/gg"

	"github.com/lixenwraith/story-knights/battle"
	"github.com/lixenwraith/story-knights/parameter"
)

const (
	imageBackground = "#16161c"
	imageMarginFill = "#20202a"
	imageShield     = "#fad25a"
	imageDead       = "#6e6e78"
	imageHPBack     = "#3a3a44"
	imageHPFill     = "#50dc64"
	knightRadius    = 18.0
)

// DrawImage renders a snapshot at SnapshotScale pixels per arena unit
func DrawImage(snap battle.Snapshot) image.Image {
	return drawContext(snap).Image()
}

// SavePNG writes a snapshot image to path
func SavePNG(snap battle.Snapshot, path string) error {
	if err := drawContext(snap).SavePNG(path); err != nil {
		return fmt.Errorf("save snapshot %s: %w", path, err)
	}
	return nil
}

func drawContext(snap battle.Snapshot) *gg.Context {
	s := parameter.SnapshotScale
	w, h := int(math.Ceil(snap.Width*s)), int(math.Ceil(snap.Height*s))
	dc := gg.NewContext(max(w, 1), max(h, 1))
	dc.Scale(s, s)

	dc.SetHexColor(imageBackground)
	dc.Clear()
	if snap.TopMargin > 0 {
		dc.SetHexColor(imageMarginFill)
		dc.DrawRectangle(0, 0, snap.Width, snap.TopMargin)
		dc.Fill()
	}

	for _, k := range snap.Knights {
		if !k.Alive {
			drawKnightImage(dc, k)
		}
	}
	for _, k := range snap.Knights {
		if k.Alive {
			drawKnightImage(dc, k)
		}
	}

	if snap.Ended {
		dc.SetRGBA(0, 0, 0, 0.5)
		dc.DrawRectangle(0, snap.Height/2-30, snap.Width, 60)
		dc.Fill()
		dc.SetRGB(1, 1, 1)
		if team, ok := snap.Result.Winner(); ok {
			dc.SetHexColor(battle.TeamColor(team))
		}
		dc.DrawStringAnchored(OutcomeText(snap.Result), snap.Width/2, snap.Height/2, 0.5, 0.5)
	}
	return dc
}

func drawKnightImage(dc *gg.Context, k battle.KnightView) {
	if !k.Alive {
		dc.SetHexColor(imageDead)
		dc.DrawCircle(k.X, k.Y, knightRadius)
		dc.Fill()
		return
	}

	// Attack reach ring while swinging
	if k.Attacking {
		dc.SetRGBA(1, 1, 1, 0.35)
		dc.SetLineWidth(2)
		dc.DrawArc(k.X, k.Y, k.AttackRange*k.SwingProgress, k.Rotation-math.Pi/4, k.Rotation+math.Pi/4)
		dc.Stroke()
	}

	dc.SetHexColor(k.Color)
	dc.DrawCircle(k.X, k.Y, knightRadius)
	dc.Fill()

	// Facing tick
	dc.SetRGB(1, 1, 1)
	dc.SetLineWidth(3)
	dc.DrawLine(k.X, k.Y, k.X+math.Cos(k.Rotation)*knightRadius*1.4, k.Y+math.Sin(k.Rotation)*knightRadius*1.4)
	dc.Stroke()

	if k.Blocking {
		dc.SetHexColor(imageShield)
		dc.SetLineWidth(5)
		dc.DrawArc(k.X, k.Y, knightRadius+6, k.ShieldAngle-math.Pi/3, k.ShieldAngle+math.Pi/3)
		dc.Stroke()
	}

	// HP bar and name
	barW := knightRadius * 2
	ratio := 0.0
	if k.MaxHP > 0 {
		ratio = math.Max(0, k.HP/k.MaxHP)
	}
	dc.SetHexColor(imageHPBack)
	dc.DrawRectangle(k.X-barW/2, k.Y-knightRadius-12, barW, 5)
	dc.Fill()
	dc.SetHexColor(imageHPFill)
	dc.DrawRectangle(k.X-barW/2, k.Y-knightRadius-12, barW*ratio, 5)
	dc.Fill()

	dc.SetRGB(1, 1, 1)
	dc.DrawStringAnchored(k.Name, k.X, k.Y+knightRadius+12, 0.5, 0.5)
}
