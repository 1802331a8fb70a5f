package breakout

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/breaker/internal/core"
	"github.com/vovakirdan/breaker/internal/world"
)

// Visual characters for rendering
const (
	PaddleChar = '='
	BallChar   = '●'
	WallVert   = '│'
	WallHoriz  = '─'
)

// BrickGlyphs are indexed by strength-1.
var BrickGlyphs = []rune{'▒', '▓', '█'}

// Minimum screen size the arena is drawn at.
const (
	MinScreenW = 30
	MinScreenH = 15
)

// viewport maps world coordinates onto screen cells below the HUD row.
type viewport struct {
	left, top float32 // World coordinates of the top-left corner
	sx, sy    float32 // Cells per world unit
	offY      int
}

func (g *Game) viewport(dst *core.Screen) viewport {
	center := mgl32.Vec2{}
	size := mgl32.Vec2{ArenaWidth + WallThickness, ArenaHeight + WallThickness}
	if cam, err := g.world.Single(world.KindCamera); err == nil {
		center, size = cam.Center(), cam.Size
	}

	return viewport{
		left: center.X() - size.X()/2,
		top:  center.Y() + size.Y()/2,
		sx:   float32(dst.Width()) / size.X(),
		sy:   float32(dst.Height()-1) / size.Y(),
		offY: 1,
	}
}

// cellRect returns the cells covered by a box. Every box covers at least
// one cell.
func (v viewport) cellRect(center, size mgl32.Vec2) core.Rect {
	x0 := floorInt((center.X() - size.X()/2 - v.left) * v.sx)
	x1 := ceilInt((center.X() + size.X()/2 - v.left) * v.sx)
	y0 := floorInt((v.top-(center.Y()+size.Y()/2))*v.sy) + v.offY
	y1 := ceilInt((v.top-(center.Y()-size.Y()/2))*v.sy) + v.offY
	return core.NewRect(x0, y0, max(x1-x0, 1), max(y1-y0, 1))
}

// cell returns the single cell containing a point.
func (v viewport) cell(p mgl32.Vec2) (int, int) {
	return floorInt((p.X() - v.left) * v.sx), floorInt((v.top-p.Y())*v.sy) + v.offY
}

func floorInt(f float32) int { return int(math.Floor(float64(f))) }
func ceilInt(f float32) int  { return int(math.Ceil(float64(f))) }

// Render draws the current screen: menu, arena or game over.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if dst.Width() < MinScreenW || dst.Height() < MinScreenH {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", MinScreenW, MinScreenH))
		return
	}

	switch g.app {
	case AppMainMenu:
		g.renderMenu(dst)
	case AppGameOver:
		g.renderArena(dst)
		subtitle := fmt.Sprintf("Score: %d  |  Level: %d  |  Enter for menu", g.score, g.level)
		drawCenteredBox(dst, "GAME OVER", subtitle)
	case AppInGame:
		g.renderArena(dst)
		if g.game == GamePaused {
			drawCenteredBox(dst, "PAUSED", "Enter to resume  |  Q to quit")
		}
	}
}

// renderMenu draws the main menu.
func (g *Game) renderMenu(dst *core.Screen) {
	top := dst.Height()/2 - len(menuItems) - 2
	title := g.Title()
	dst.DrawTextColor((dst.Width()-len([]rune(title)))/2, top, title, core.ColorBrightCyan)

	for i, item := range menuItems {
		label := "  " + item + "  "
		color := core.ColorDefault
		if i == g.menuIndex {
			label = "> " + item + " <"
			color = core.ColorBrightYellow
		}
		dst.DrawTextColor((dst.Width()-len([]rune(label)))/2, top+2+i*2, label, color)
	}

	dst.DrawTextCentered(dst.Height()-2, "↑/↓ select  Enter confirm  Q quit")
}

// renderArena draws the world and the HUD.
func (g *Game) renderArena(dst *core.Screen) {
	v := g.viewport(dst)

	for _, wall := range g.world.Query(world.KindWall) {
		glyph := WallHoriz
		if wall.Size.Y() > wall.Size.X() {
			glyph = WallVert
		}
		dst.DrawRect(v.cellRect(wall.Center(), wall.Size), glyph, wall.Tint)
	}

	for _, brick := range g.world.Query(world.KindBrick) {
		r := v.cellRect(brick.Center(), brick.Size)
		r.W = max(r.W-1, 1) // Keep neighbours apart
		glyph := BrickGlyphs[core.Clamp(brick.Strength, 1, len(BrickGlyphs))-1]
		dst.DrawRect(r, glyph, brick.Tint)
	}

	for _, paddle := range g.world.Query(world.KindPaddle) {
		if paddle.Visible {
			r := v.cellRect(paddle.Center(), paddle.Size)
			r.H = 1
			dst.DrawRect(r, PaddleChar, paddle.Tint)
		}
	}

	for _, ball := range g.world.Query(world.KindBall) {
		if ball.Visible {
			x, y := v.cell(ball.Center())
			dst.SetColor(x, y, BallChar, ball.Tint)
		}
	}

	g.renderHUD(dst)
}

// renderHUD draws the text displays on the top row.
func (g *Game) renderHUD(dst *core.Screen) {
	if e, ok := g.world.Named(world.KindText, textScore); ok {
		dst.DrawTextColor(1, 0, e.Text, e.Tint)
	}
	if e, ok := g.world.Named(world.KindText, textHealth); ok {
		dst.DrawTextColor((dst.Width()-len(e.Text))/2, 0, e.Text, e.Tint)
	}
	if e, ok := g.world.Named(world.KindText, textLevel); ok {
		dst.DrawTextColor(dst.Width()-len(e.Text)-1, 0, e.Text, e.Tint)
	}
}

// drawCenteredBox draws a centered message box.
func drawCenteredBox(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := min(core.Max(len(title), len([]rune(subtitle)))+4, w)
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ', core.ColorDefault)
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH), core.ColorWhite)

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len([]rune(subtitle)))/2, boxY+3, subtitle)
}
