package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-skyroll/pkg/physics"
)

var white = mgl64.Vec3{1, 1, 1}

func TestNewTerminalRenderer_CreatesValidRenderer_WithCorrectDimensions(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
		scale  float64
	}{
		{"small renderer", 10, 5, 1.0},
		{"medium renderer", 80, 24, 10.0},
		{"large renderer", 120, 40, 5.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewTerminalRenderer(&bytes.Buffer{}, tt.width, tt.height, tt.scale)

			if len(r.buffer) != tt.height {
				t.Errorf("expected buffer height %d, got %d", tt.height, len(r.buffer))
			}
			for y, row := range r.buffer {
				if len(row) != tt.width {
					t.Errorf("row %d: expected width %d, got %d", y, tt.width, len(row))
				}
				if strings.TrimLeft(string(row), " ") != "" {
					t.Errorf("row %d not cleared: %q", y, string(row))
				}
			}
		})
	}
}

func TestWorldToScreen_ConvertsCoordinates_Correctly(t *testing.T) {
	r := NewTerminalRenderer(&bytes.Buffer{}, 20, 10, 2.0)

	tests := []struct {
		name   string
		center physics.Vector2D
		pos    physics.Vector2D
		wantX  int
		wantY  int
	}{
		{"origin at center", physics.Vector2D{}, physics.Vector2D{}, 10, 5},
		{"positive offset", physics.Vector2D{}, physics.Vector2D{X: 4, Y: 2}, 12, 6},
		{"negative offset", physics.Vector2D{}, physics.Vector2D{X: -6, Y: -4}, 7, 3},
		{"moved center", physics.Vector2D{X: 10, Y: 10}, physics.Vector2D{X: 10, Y: 10}, 10, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r.SetCenter(tt.center)
			x, y := r.worldToScreen(tt.pos)
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("worldToScreen(%v) = (%d, %d), want (%d, %d)", tt.pos, x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestDraw_PlotsGroundPlanePosition(t *testing.T) {
	r := NewTerminalRenderer(&bytes.Buffer{}, 20, 10, 1.0)

	r.DrawShip(mgl64.Translate3D(0, -0.3, 0), white)
	r.DrawAsteroid(0, mgl64.Translate3D(3, 0, -2))
	r.DrawAsteroid(1, mgl64.Translate3D(500, 0, 0))

	if got := r.buffer[5][10]; got != shipGlyph {
		t.Errorf("ship cell = %q, want %q", got, shipGlyph)
	}
	if got := r.buffer[3][13]; got != asteroidGlyph {
		t.Errorf("asteroid cell = %q, want %q", got, asteroidGlyph)
	}
}

func TestDrawShip_TintedShipUsesHitGlyph(t *testing.T) {
	r := NewTerminalRenderer(&bytes.Buffer{}, 5, 5, 1.0)
	r.DrawShip(mgl64.Ident4(), mgl64.Vec3{1, 0.5, 0.5})

	if got := r.buffer[2][2]; got != hitShipGlyph {
		t.Errorf("ship cell = %q, want %q", got, hitShipGlyph)
	}
}

func TestClear_ClearsBuffer_WithSpaces(t *testing.T) {
	r := NewTerminalRenderer(&bytes.Buffer{}, 5, 5, 1.0)
	r.DrawShip(mgl64.Ident4(), white)
	r.Clear()

	for y := range r.buffer {
		for x := range r.buffer[y] {
			if r.buffer[y][x] != ' ' {
				t.Fatalf("cell (%d, %d) = %q after Clear", x, y, r.buffer[y][x])
			}
		}
	}
}

func TestPresent_WritesFrameAndStatus(t *testing.T) {
	var out bytes.Buffer
	r := NewTerminalRenderer(&out, 3, 2, 1.0)
	r.DrawAsteroid(0, mgl64.Translate3D(-1.5, 0, -1))
	r.SetStatus("lives 3")

	if err := r.Present(); err != nil {
		t.Fatalf("Present() error = %v", err)
	}

	want := "+---+\n|o  |\n|   |\n+---+\nlives 3\n"
	if out.String() != want {
		t.Errorf("Present() wrote\n%s\nwant\n%s", out.String(), want)
	}
}
