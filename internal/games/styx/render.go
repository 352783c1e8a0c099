package styx

import (
	"fmt"

	"github.com/vovakirdan/tui-styx/internal/core"
	"github.com/vovakirdan/tui-styx/internal/games/styx/arena"
)

// Visual characters for rendering
const (
	FillRune    = '░'
	OutlineRune = '▒'
	PathRune    = '#'
	TrailRune   = '*'
	PlayerRune  = '@'
)

const hudHeight = 2

// Minimum field size that still reads as a playing area.
const (
	minFieldW = 20
	minFieldH = 8
)

// TrailColors maps adversary palette indices to terminal colours.
var TrailColors = [arena.PaletteSize]core.Color{
	core.ColorRed,
	core.ColorYellow,
	core.ColorGreen,
	core.ColorCyan,
	core.ColorBlue,
	core.ColorMagenta,
}

// Hit indicator glyphs, from the moment of impact to the reset.
var hitStages = []rune{'X', 'x', '+', '.'}

// Render draws the current frame.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.arena == nil {
		return
	}

	frame := g.arena.Frame()
	g.renderHUD(dst, g.hud.values(), frame.Status)

	v, ok := newViewport(dst, frame.Width, frame.Height)
	if !ok {
		renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}
	v.draw(frame)

	switch st := frame.Status; {
	case st.Won:
		renderOverlay(dst, "You Win!", fmt.Sprintf("Final Score: %d", st.Score))
	case st.Over:
		renderOverlay(dst, "Game Over", "Press R to restart")
	case st.Paused:
		renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderHUD draws the top status bar and its separator.
func (g *Game) renderHUD(dst *core.Screen, h hudValues, st arena.Status) {
	level := fmt.Sprintf("%d", h.Level)
	if g.mode == ModeCampaign {
		level = fmt.Sprintf("%d/%d", h.Level, g.cfg.Arena.Levels)
	}
	line := fmt.Sprintf(" %s  Score: %d  Level: %s  Lives: %d  Captured: %d%%/%.0f%%",
		g.Title(), h.Score, level, h.Lives, h.Percent, g.cfg.Arena.LevelThreshold)
	dst.DrawTextColor(0, 0, line, core.ColorBrightWhite)

	var mode string
	switch {
	case st.Dying:
		mode = "HIT"
	case h.Drawing:
		mode = "DRAWING"
	case g.input != nil && g.input.Drawing():
		mode = "DRAW"
	}
	if mode != "" {
		dst.DrawTextColor(dst.Width()-len(mode)-1, 0, mode, core.ColorBrightYellow)
	}

	for x := range dst.Width() {
		dst.SetCell(x, 1, '─', core.ColorGray)
	}
}

// viewport scales arena coordinates onto the screen area below the HUD.
// Arena walls land on the outermost rows and columns of the field.
type viewport struct {
	dst   *core.Screen
	field core.Rect
	w, h  int
}

func newViewport(dst *core.Screen, w, h int) (viewport, bool) {
	field := core.NewRect(0, hudHeight, dst.Width(), dst.Height()-hudHeight)
	if field.W < minFieldW || field.H < minFieldH || w < 2 || h < 2 {
		return viewport{}, false
	}
	return viewport{dst: dst, field: field, w: w, h: h}, true
}

// toScreen maps an arena point to its screen cell.
func (v viewport) toScreen(p arena.Point) arena.Point {
	return arena.Pt(
		v.field.X+p.X*(v.field.W-1)/(v.w-1),
		v.field.Y+p.Y*(v.field.H-1)/(v.h-1),
	)
}

// toArena maps the centre of a screen cell back into arena coordinates.
func (v viewport) toArena(sx, sy int) (float64, float64) {
	x := float64(sx-v.field.X) * float64(v.w-1) / float64(v.field.W-1)
	y := float64(sy-v.field.Y) * float64(v.h-1) / float64(v.field.H-1)
	return x, y
}

func (v viewport) draw(f arena.Frame) {
	v.territories(f.Territories)
	v.dst.DrawBox(v.field, core.ColorWhite)

	if len(f.Path) > 1 {
		v.polyline(f.Path, false, PathRune, core.ColorBrightYellow)
	}
	for _, s := range f.Trail {
		c := TrailColors[((s.Color%arena.PaletteSize)+arena.PaletteSize)%arena.PaletteSize]
		v.line(s.A, s.B, TrailRune, c)
	}

	p := v.toScreen(f.Player)
	v.dst.SetCell(p.X, p.Y, PlayerRune, core.ColorBrightWhite)

	if f.Hit != nil {
		stage := min(int(f.Hit.Progress*float64(len(hitStages))), len(hitStages)-1)
		h := v.toScreen(f.Hit.At)
		v.dst.SetCell(h.X, h.Y, hitStages[stage], core.ColorBrightRed)
	}
}

// territories shades every field cell whose centre lies in a capture,
// then outlines the captures.
func (v viewport) territories(ts []arena.TerritoryView) {
	if len(ts) == 0 {
		return
	}
	inner := v.field.Inset(1)
	for sy := inner.Y; sy < inner.Bottom(); sy++ {
		for sx := inner.X; sx < inner.Right(); sx++ {
			x, y := v.toArena(sx, sy)
			for _, t := range ts {
				if !t.Polygon.Contains(x, y) {
					continue
				}
				c := core.ColorBlue
				if t.Slow {
					c = core.ColorMagenta
				}
				v.dst.SetCell(sx, sy, FillRune, c)
				break
			}
		}
	}
	for _, t := range ts {
		v.polyline(t.Polygon, true, OutlineRune, core.ColorCyan)
	}
}

func (v viewport) polyline(pts []arena.Point, closed bool, r rune, c core.Color) {
	for i := 1; i < len(pts); i++ {
		v.line(pts[i-1], pts[i], r, c)
	}
	if closed && len(pts) > 2 {
		v.line(pts[len(pts)-1], pts[0], r, c)
	}
}

func (v viewport) line(a, b arena.Point, r rune, c core.Color) {
	arena.WalkLine(v.toScreen(a), v.toScreen(b), func(p arena.Point) bool {
		v.dst.SetCell(p.X, p.Y, r, c)
		return true
	})
}

// renderOverlay draws a centered two-line message box.
func renderOverlay(dst *core.Screen, line1, line2 string) {
	boxW := max(len([]rune(line1)), len([]rune(line2))) + 4
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorBrightWhite)
	dst.DrawTextCentered(box.Y+1, line1, core.ColorBrightWhite)
	dst.DrawTextCentered(box.Y+3, line2, core.ColorDefault)
}
