package render

import (
	"bufio"
	"io"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-skyroll/pkg/physics"
)

const (
	shipGlyph     = 'A'
	hitShipGlyph  = '!'
	asteroidGlyph = 'o'
)

// TerminalRenderer draws a top-down ASCII view of the ground plane: screen
// columns follow world x and rows follow world z.
type TerminalRenderer struct {
	out       io.Writer
	width     int
	height    int
	buffer    [][]rune
	scale     float64
	centerPos physics.Vector2D
	status    string
}

// NewTerminalRenderer creates a renderer of width x height cells, each cell
// covering scale world units.
func NewTerminalRenderer(out io.Writer, width, height int, scale float64) *TerminalRenderer {
	buffer := make([][]rune, height)
	for i := range buffer {
		buffer[i] = make([]rune, width)
	}

	r := &TerminalRenderer{
		out:    out,
		width:  width,
		height: height,
		buffer: buffer,
		scale:  scale,
	}
	r.Clear()
	return r
}

// SetCenter sets the world position shown at the middle of the view.
func (r *TerminalRenderer) SetCenter(pos physics.Vector2D) {
	r.centerPos = pos
}

// SetStatus sets the line printed under the view.
func (r *TerminalRenderer) SetStatus(status string) {
	r.status = status
}

func (r *TerminalRenderer) worldToScreen(pos physics.Vector2D) (int, int) {
	screenX := int((pos.X-r.centerPos.X)/r.scale + float64(r.width)/2)
	screenY := int((pos.Y-r.centerPos.Y)/r.scale + float64(r.height)/2)
	return screenX, screenY
}

func (r *TerminalRenderer) plot(transform mgl64.Mat4, glyph rune) {
	x, y := r.worldToScreen(physics.PlaneOf(transform.Col(3).Vec3()))
	if x >= 0 && x < r.width && y >= 0 && y < r.height {
		r.buffer[y][x] = glyph
	}
}

// Clear implements Renderer.
func (r *TerminalRenderer) Clear() {
	for y := range r.buffer {
		for x := range r.buffer[y] {
			r.buffer[y][x] = ' '
		}
	}
}

// DrawShip implements Renderer. A tinted ship is inside its hit window.
func (r *TerminalRenderer) DrawShip(transform mgl64.Mat4, tint mgl64.Vec3) {
	glyph := shipGlyph
	if tint != (mgl64.Vec3{1, 1, 1}) {
		glyph = hitShipGlyph
	}
	r.plot(transform, glyph)
}

// DrawAsteroid implements Renderer.
func (r *TerminalRenderer) DrawAsteroid(index int, transform mgl64.Mat4) {
	r.plot(transform, asteroidGlyph)
}

// Present implements Renderer.
func (r *TerminalRenderer) Present() error {
	w := bufio.NewWriter(r.out)
	border := "+" + strings.Repeat("-", r.width) + "+\n"

	w.WriteString(border)
	for y := range r.buffer {
		w.WriteByte('|')
		w.WriteString(string(r.buffer[y]))
		w.WriteString("|\n")
	}
	w.WriteString(border)
	if r.status != "" {
		w.WriteString(r.status + "\n")
	}
	return w.Flush()
}
