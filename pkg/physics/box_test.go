package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func unitBox() *BoundingBox {
	return NewBoundingBox(mgl64.Vec3{-1, -1, -1}, mgl64.Vec3{1, 1, 1})
}

func TestNewBoundingBox_OrdersCorners(t *testing.T) {
	bb := NewBoundingBox(mgl64.Vec3{2, -1, 5}, mgl64.Vec3{-2, 3, 4})

	if bb.Min != (mgl64.Vec3{-2, -1, 4}) {
		t.Errorf("Min = %v, want [-2 -1 4]", bb.Min)
	}
	if bb.Max != (mgl64.Vec3{2, 3, 5}) {
		t.Errorf("Max = %v, want [2 3 5]", bb.Max)
	}

	lo, hi := bb.World()
	if lo != bb.Min || hi != bb.Max {
		t.Errorf("World() = %v %v, want local box before first update", lo, hi)
	}
}

func TestBoundingBox_UpdateCoords(t *testing.T) {
	tests := []struct {
		name    string
		world   mgl64.Mat4
		wantMin mgl64.Vec3
		wantMax mgl64.Vec3
	}{
		{
			name:    "identity",
			world:   mgl64.Ident4(),
			wantMin: mgl64.Vec3{-1, -1, -1},
			wantMax: mgl64.Vec3{1, 1, 1},
		},
		{
			name:    "translate",
			world:   mgl64.Translate3D(10, 0, -5),
			wantMin: mgl64.Vec3{9, -1, -6},
			wantMax: mgl64.Vec3{11, 1, -4},
		},
		{
			name:    "scale",
			world:   mgl64.Scale3D(2, 3, 0.5),
			wantMin: mgl64.Vec3{-2, -3, -0.5},
			wantMax: mgl64.Vec3{2, 3, 0.5},
		},
		{
			name:    "rotate_45_about_y",
			world:   mgl64.HomogRotate3DY(math.Pi / 4),
			wantMin: mgl64.Vec3{-math.Sqrt2, -1, -math.Sqrt2},
			wantMax: mgl64.Vec3{math.Sqrt2, 1, math.Sqrt2},
		},
		{
			name:    "mirror_keeps_min_below_max",
			world:   mgl64.Scale3D(-1, 1, 1).Mul4(mgl64.Translate3D(3, 0, 0)),
			wantMin: mgl64.Vec3{-4, -1, -1},
			wantMax: mgl64.Vec3{-2, 1, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bb := unitBox()
			bb.UpdateCoords(tt.world)
			lo, hi := bb.World()
			if !lo.ApproxEqualThreshold(tt.wantMin, 1e-9) {
				t.Errorf("world min = %v, want %v", lo, tt.wantMin)
			}
			if !hi.ApproxEqualThreshold(tt.wantMax, 1e-9) {
				t.Errorf("world max = %v, want %v", hi, tt.wantMax)
			}
		})
	}
}

func TestBoundingBox_UpdateCoordsLeavesLocalBox(t *testing.T) {
	bb := unitBox()
	bb.UpdateCoords(mgl64.Translate3D(5, 5, 5))
	if bb.Min != (mgl64.Vec3{-1, -1, -1}) || bb.Max != (mgl64.Vec3{1, 1, 1}) {
		t.Errorf("local box changed: %v %v", bb.Min, bb.Max)
	}
}

func TestBoundingBox_Collided(t *testing.T) {
	tests := []struct {
		name     string
		a, b     mgl64.Mat4
		expected bool
	}{
		{name: "same_transform", a: mgl64.Ident4(), b: mgl64.Ident4(), expected: true},
		{name: "partial_overlap", a: mgl64.Ident4(), b: mgl64.Translate3D(1.5, 0.5, -1), expected: true},
		{name: "touching_faces", a: mgl64.Ident4(), b: mgl64.Translate3D(2, 0, 0), expected: true},
		{name: "disjoint_on_x", a: mgl64.Ident4(), b: mgl64.Translate3D(2.01, 0, 0), expected: false},
		{name: "disjoint_on_y_only", a: mgl64.Ident4(), b: mgl64.Translate3D(0, -3, 0), expected: false},
		{name: "disjoint_on_z_only", a: mgl64.Ident4(), b: mgl64.Translate3D(0.5, 0.5, 10), expected: false},
		{name: "contained", a: mgl64.Scale3D(10, 10, 10), b: mgl64.Ident4(), expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := unitBox(), unitBox()
			a.UpdateCoords(tt.a)
			b.UpdateCoords(tt.b)

			if got := a.Collided(b); got != tt.expected {
				t.Errorf("a.Collided(b) = %v, expected %v", got, tt.expected)
			}
			if got := b.Collided(a); got != tt.expected {
				t.Errorf("b.Collided(a) = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestBoundingBox_CenterAndExtents(t *testing.T) {
	bb := NewBoundingBox(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{2, 4, 6})
	bb.UpdateCoords(mgl64.Translate3D(1, 1, 1))

	if got := bb.Center(); got != (mgl64.Vec3{2, 3, 4}) {
		t.Errorf("Center() = %v, want [2 3 4]", got)
	}
	if got := bb.HalfExtents(); got != (mgl64.Vec3{1, 2, 3}) {
		t.Errorf("HalfExtents() = %v, want [1 2 3]", got)
	}
	if !bb.Contains(mgl64.Vec3{3, 5, 7}) {
		t.Error("Contains() should include the max corner")
	}
	if bb.Contains(mgl64.Vec3{0.5, 3, 4}) {
		t.Error("Contains() should exclude points left of the box")
	}
}
