package breakout

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/breaker/internal/core"
	"github.com/vovakirdan/breaker/internal/world"
)

// Arena geometry in world units. The arena is centred on the origin, y up.
const (
	WallThickness = 10
	LeftWall      = -450
	RightWall     = 450
	BottomWall    = -300
	TopWall       = 300

	ArenaWidth  = RightWall - LeftWall
	ArenaHeight = TopWall - BottomWall
)

// spawnWalls adds the four arena walls. The bottom one also carries
// KindBottomWall.
func (g *Game) spawnWalls() {
	vertical := mgl32.Vec2{WallThickness, ArenaHeight + WallThickness}
	horizontal := mgl32.Vec2{ArenaWidth + WallThickness, WallThickness}

	walls := []world.Entity{
		{Kind: world.KindWall, Name: "wall-left", Pos: mgl32.Vec3{LeftWall, 0, 0}, Size: vertical},
		{Kind: world.KindWall, Name: "wall-right", Pos: mgl32.Vec3{RightWall, 0, 0}, Size: vertical},
		{Kind: world.KindWall, Name: "wall-top", Pos: mgl32.Vec3{0, TopWall, 0}, Size: horizontal},
		{Kind: world.KindWall | world.KindBottomWall, Name: "wall-bottom", Pos: mgl32.Vec3{0, BottomWall, 0}, Size: horizontal},
	}
	for _, w := range walls {
		w.Tint = core.ColorGray
		g.world.Spawn(w)
	}
}

// layoutFor returns the row strengths for a level. Levels start at 1 and
// wrap around the configured layouts.
func (g *Game) layoutFor(level int) []int {
	layouts := g.cfg.Bricks.Layouts
	idx := (level - 1) % len(layouts)
	if idx < 0 {
		idx += len(layouts)
	}
	return layouts[idx]
}

// brickColumns returns how many bricks fit in one row.
func (g *Game) brickColumns() int {
	b := g.cfg.Bricks
	usable := float64(ArenaWidth) - 2*float64(b.SideGap)
	cols := int(math.Floor(usable / float64(b.Width+b.Margin)))
	return max(cols, 1)
}

// spawnBricks builds the brick grid for a level and returns how many bricks
// it spawned.
func (g *Game) spawnBricks(level int) int {
	b := g.cfg.Bricks
	rows := g.layoutFor(level)
	cols := g.brickColumns()

	// Centre the grid horizontally.
	leftEdge := -float32(cols)/2*b.Width - float32(cols-1)/2*b.Margin
	topY := float32(TopWall) - b.CeilingGap + b.Height/2

	spawned := 0
	for row, strength := range rows {
		y := topY - float32(row)*(b.Height+b.Margin)
		for col := range cols {
			x := leftEdge + b.Width/2 + float32(col)*(b.Width+b.Margin)
			g.world.Spawn(world.Entity{
				Kind:     world.KindBrick,
				Pos:      mgl32.Vec3{x, y, 0},
				Size:     mgl32.Vec2{b.Width, b.Height},
				Strength: strength,
				Tint:     g.tintFor(strength),
			})
			spawned++
		}
	}
	return spawned
}

// tintFor maps a brick strength to its color.
func (g *Game) tintFor(strength int) core.Color {
	tints := g.cfg.Bricks.Tints
	if strength < 1 || strength > len(tints) {
		return core.ColorDefault
	}
	c, _ := core.ParseColor(tints[strength-1])
	return c
}
