package wires

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	platformcore "github.com/vovakirdan/wires/internal/core"
	"github.com/vovakirdan/wires/internal/games/wires/core"
)

// Glyphs for the cross-section view.
const (
	PlayerChar      = '@'
	JumpTrailChar   = '·'
	WireAheadChar   = '∙'
	WireChar        = 'o'
	SparkChar       = '◆'
	SparkOffChar    = '◇'
	PacketChar      = '*'
	PacketSeekChar  = '+'
	TargetLeftChar  = '['
	TargetRightChar = ']'
	BarFullChar     = '█'
	BarEmptyChar    = '░'
)

// Smallest screen the field can be drawn on.
const (
	minScreenW = 20
	minScreenH = 8
)

// Render draws a cross-section of the wire field as seen from behind the
// player, plus a HUD and progress bars.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()
	if g.sim == nil {
		return
	}
	w, h := dst.Width(), dst.Height()
	if w < minScreenW || h < minScreenH {
		dst.DrawText(0, 0, "Window too small")
		return
	}

	snap := g.sim.Snapshot()
	g.renderHUD(dst, snap)

	area := platformcore.NewRect(0, 1, w, h-3)
	dst.DrawBox(area, platformcore.ColorGray)
	view := platformcore.Viewport{Area: area.Inset(1), Aspect: 2}.Fit(g.viewRadius())
	g.renderField(dst, view, snap)

	g.renderBars(dst, snap, h-2)

	if g.flashLeft > 0 && g.flash != "" {
		dst.DrawTextCentered(2, " "+g.flash+" ", platformcore.ColorBrightYellow)
	}
	if snap.Paused {
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
	if snap.GameOver {
		drawCenteredMessage(dst, "RUN OVER", fmt.Sprintf("Score: %d  |  Press R to restart", int(snap.Score)))
	}
}

// viewRadius is the lateral distance the viewport must show: the outer
// spawn radius of the current stage plus margin.
func (g *Game) viewRadius() float64 {
	p := g.sim.Wires().GetStageWireProperties()
	r := p.OuterRadius
	if r <= 0 {
		r = 8
	}
	return r + 1
}

func (g *Game) renderHUD(dst *platformcore.Screen, snap core.Snapshot) {
	left := fmt.Sprintf(" Score: %d  x%d  Lives: %d ", int(snap.Score), snap.Multiplier, snap.Lives)
	dst.DrawTextColor(0, 0, left, platformcore.ColorBrightWhite)

	var flags string
	if snap.Boosting {
		flags += " BOOST"
	}
	if snap.Drifting {
		flags += " DRIFT"
	}
	if g.autopilot {
		flags += " AUTO"
	}
	if !g.sim.Wires().DriftingEnabled() {
		flags += " NODRIFT"
	}
	flags += fmt.Sprintf("  Seg %d ", snap.PlayerSegment)
	dst.DrawTextColor(dst.Width()-len(flags), 0, flags, platformcore.ColorCyan)
}

// project maps a world position to a cell relative to the player.
func (g *Game) project(view platformcore.Viewport, x0, y0 float64, pos r3.Vec) (int, int, bool) {
	x, y := g.sim.Plane().LateralCoords(pos)
	return view.Project(x-x0, y-y0)
}

func (g *Game) renderField(dst *platformcore.Screen, view platformcore.Viewport, snap core.Snapshot) {
	plane := g.sim.Plane()
	j := g.sim.Jumper()
	x0, y0 := plane.LateralCoords(j.Position())
	wires := g.sim.Wires()
	selected := g.SelectedTarget()

	for _, w := range wires.ActiveWires() {
		theme := w.Factory()
		wireColor := platformcore.ColorCyan
		sparkColor := platformcore.ColorBrightYellow
		if theme != nil {
			wireColor = platformcore.ParseColor(theme.WireColor(), wireColor)
			sparkColor = platformcore.ParseColor(theme.SparkColor(), sparkColor)
		}

		cx, cy, ok := g.project(view, x0, y0, w.Start())
		if !ok {
			continue
		}
		glyph, color := WireChar, wireColor
		if wires.StartSegment(w) > snap.PlayerSegment {
			glyph, color = WireAheadChar, platformcore.ColorGray
		}
		if s := w.Spark(); s != nil {
			switch {
			case s.Jumper() != nil:
				glyph = PlayerChar
				color = platformcore.ColorBrightWhite
			case s.CanJumpTo():
				glyph, color = SparkChar, sparkColor
			default:
				glyph, color = SparkOffChar, platformcore.ColorGray
			}
		}
		dst.SetColor(cx, cy, glyph, color)

		if w == selected {
			dst.SetColor(cx-1, cy, TargetLeftChar, platformcore.ColorBrightYellow)
			dst.SetColor(cx+1, cy, TargetRightChar, platformcore.ColorBrightYellow)
		}
	}

	for _, p := range g.sim.Score().ActivePackets() {
		color := platformcore.ColorBrightMagenta
		if theme := g.packetTheme(); theme != nil {
			color = platformcore.ParseColor(theme.PacketColor(), color)
		}
		glyph := PacketChar
		if p.State() == core.PacketSeeking {
			glyph = PacketSeekChar
		}
		if cx, cy, ok := g.project(view, x0, y0, p.Position()); ok {
			dst.SetColor(cx, cy, glyph, color)
		}
	}

	if j.IsJumping() && j.Spark() != nil {
		g.renderJumpTrail(dst, view, x0, y0, j)
	}
	if cx, cy, ok := view.Project(0, 0); ok {
		color := platformcore.ColorBrightWhite
		if snap.Drifting {
			color = platformcore.ColorBrightRed
		}
		dst.SetColor(cx, cy, PlayerChar, color)
	}
}

// renderJumpTrail dots the remaining path from the player to the target spark.
func (g *Game) renderJumpTrail(dst *platformcore.Screen, view platformcore.Viewport, x0, y0 float64, j *core.Jumper) {
	tx, ty := g.sim.Plane().LateralCoords(j.Spark().Position())
	dx, dy := tx-x0, ty-y0
	steps := int(math.Ceil(math.Hypot(dx, dy) * view.Scale))
	for i := 1; i < steps; i++ {
		t := float64(i) / float64(steps)
		if cx, cy, ok := view.Project(dx*t, dy*t); ok && dst.Get(cx, cy) == ' ' {
			dst.SetColor(cx, cy, JumpTrailChar, platformcore.ColorGray)
		}
	}
}

// packetTheme returns the theme of the ridden wire; packets take its colors.
func (g *Game) packetTheme() *core.Theme {
	if w := g.sim.Jumper().Wire(); w != nil {
		return w.Factory()
	}
	return nil
}

func (g *Game) renderBars(dst *platformcore.Screen, snap core.Snapshot, y int) {
	half := dst.Width() / 2
	drawBar(dst, 0, y, half-1, "Wire", snap.WireProgress, platformcore.ColorGreen)
	drawBar(dst, half, y, dst.Width()-half, fmt.Sprintf("x%d", snap.Multiplier), snap.MultiplierProgress, platformcore.ColorMagenta)

	help := "SPACE jump  ←/→ target  B boost  D drift  A auto  P pause"
	dst.DrawTextColor(0, y+1, help, platformcore.ColorGray)
}

// drawBar draws "label [████░░░░]" filling width cells.
func drawBar(dst *platformcore.Screen, x, y, width int, label string, frac float64, color platformcore.Color) {
	prefix := " " + label + " "
	dst.DrawText(x, y, prefix)
	inner := width - len(prefix) - 2
	if inner <= 0 {
		return
	}
	filled := int(math.Round(platformcore.ClampF(frac, 0, 1) * float64(inner)))
	bx := x + len(prefix)
	dst.Set(bx, y, '[')
	for i := 0; i < inner; i++ {
		if i < filled {
			dst.SetColor(bx+1+i, y, BarFullChar, color)
		} else {
			dst.SetColor(bx+1+i, y, BarEmptyChar, platformcore.ColorGray)
		}
	}
	dst.Set(bx+1+inner, y, ']')
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *platformcore.Screen, title, subtitle string) {
	boxW := platformcore.Clamp(platformcore.Max(len(title), len(subtitle))+4, 0, dst.Width())
	boxH := 5
	box := platformcore.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ', platformcore.ColorDefault)
	dst.DrawBox(box, platformcore.ColorBrightWhite)
	dst.DrawText(box.X+(boxW-len(title))/2, box.Y+1, title)
	dst.DrawText(box.X+(boxW-len(subtitle))/2, box.Y+3, subtitle)
}
