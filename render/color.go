package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/story-knights/battle"
)

// Fixed palette
var (
	RgbBackground = tcell.NewRGBColor(18, 18, 24)
	RgbBorder     = tcell.NewRGBColor(90, 90, 110)
	RgbText       = tcell.NewRGBColor(220, 220, 220)
	RgbDim        = tcell.NewRGBColor(110, 110, 120)
	RgbShield     = tcell.NewRGBColor(250, 210, 90)
	RgbSwing      = tcell.NewRGBColor(255, 255, 255)
	RgbHPLow      = tcell.NewRGBColor(230, 60, 60)
	RgbHPHigh     = tcell.NewRGBColor(80, 220, 100)
)

// knightColor returns the team color of a knight, grayed when dead
func knightColor(k battle.KnightView) tcell.Color {
	if !k.Alive {
		return RgbDim
	}
	return tcell.GetColor(k.Color)
}

// lerpColor blends two colors, t in [0,1]
func lerpColor(a, b tcell.Color, t float64) tcell.Color {
	ar, ag, ab := a.RGB()
	br, bg, bb := b.RGB()
	mix := func(x, y int32) int32 { return x + int32(float64(y-x)*t) }
	return tcell.NewRGBColor(mix(ar, br), mix(ag, bg), mix(ab, bb))
}
