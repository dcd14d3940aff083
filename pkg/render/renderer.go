// pkg/render/renderer.go
package render

import (
	"context"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-skyroll/pkg/logging"
)

// Renderer consumes one world transform per drawable per frame. The ship also
// gets a color modifier derived from its hit timer.
type Renderer interface {
	Clear()
	DrawShip(transform mgl64.Mat4, tint mgl64.Vec3)
	DrawAsteroid(index int, transform mgl64.Mat4)
	Present() error
}

// NullRenderer draws nothing and logs every call at debug level.
type NullRenderer struct {
	logger *logging.Logger
}

// NewNullRenderer creates a new NullRenderer logging to logger.
func NewNullRenderer(logger *logging.Logger) *NullRenderer {
	return &NullRenderer{logger: logger}
}

// Clear implements Renderer.
func (d *NullRenderer) Clear() {
	d.logger.Debug(context.Background(), "Clear called")
}

// DrawShip implements Renderer.
func (d *NullRenderer) DrawShip(transform mgl64.Mat4, tint mgl64.Vec3) {
	pos := transform.Col(3)
	d.logger.Debug(context.Background(), "DrawShip called",
		"x", pos.X(), "y", pos.Y(), "z", pos.Z(),
		"tint_g", tint.Y(),
	)
}

// DrawAsteroid implements Renderer.
func (d *NullRenderer) DrawAsteroid(index int, transform mgl64.Mat4) {
	pos := transform.Col(3)
	d.logger.Debug(context.Background(), "DrawAsteroid called",
		"index", index,
		"x", pos.X(), "z", pos.Z(),
	)
}

// Present implements Renderer.
func (d *NullRenderer) Present() error {
	d.logger.Debug(context.Background(), "Present called")
	return nil
}
