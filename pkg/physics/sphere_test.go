package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestBoundingSphere_Collides(t *testing.T) {
	tests := []struct {
		name     string
		a, b     BoundingSphere
		expected bool
	}{
		{
			name:     "spheres_touching",
			a:        BoundingSphere{Center: mgl64.Vec3{0, 0, 0}, Radius: 5},
			b:        BoundingSphere{Center: mgl64.Vec3{10, 0, 0}, Radius: 5},
			expected: false, // Distance equals sum of radii, collision logic uses <
		},
		{
			name:     "spheres_overlapping",
			a:        BoundingSphere{Center: mgl64.Vec3{0, 0, 0}, Radius: 5},
			b:        BoundingSphere{Center: mgl64.Vec3{0, 5, 0}, Radius: 5},
			expected: true,
		},
		{
			name:     "spheres_apart",
			a:        BoundingSphere{Center: mgl64.Vec3{0, 0, 0}, Radius: 1},
			b:        BoundingSphere{Center: mgl64.Vec3{0, 0, 3}, Radius: 1},
			expected: false,
		},
		{
			name:     "diagonal_overlap",
			a:        BoundingSphere{Center: mgl64.Vec3{0, 0, 0}, Radius: 2},
			b:        BoundingSphere{Center: mgl64.Vec3{2, 2, 2}, Radius: 2},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Collides(tt.b); got != tt.expected {
				t.Errorf("Collides() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestBoundingSphere_IntersectsBox(t *testing.T) {
	bb := NewBoundingBox(mgl64.Vec3{-1, -1, -1}, mgl64.Vec3{1, 1, 1})

	tests := []struct {
		name     string
		sphere   BoundingSphere
		expected bool
	}{
		{name: "center_inside", sphere: BoundingSphere{Center: mgl64.Vec3{0.5, 0, 0}, Radius: 0.1}, expected: true},
		{name: "face_reach", sphere: BoundingSphere{Center: mgl64.Vec3{2, 0, 0}, Radius: 1}, expected: true},
		{name: "face_miss", sphere: BoundingSphere{Center: mgl64.Vec3{2.5, 0, 0}, Radius: 1}, expected: false},
		{name: "corner_miss", sphere: BoundingSphere{Center: mgl64.Vec3{2, 2, 2}, Radius: 1.5}, expected: false},
		{name: "corner_reach", sphere: BoundingSphere{Center: mgl64.Vec3{2, 2, 2}, Radius: 1.8}, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sphere.IntersectsBox(bb); got != tt.expected {
				t.Errorf("IntersectsBox() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestCheckCollision(t *testing.T) {
	t.Run("no_collision", func(t *testing.T) {
		result := CheckCollision(
			BoundingSphere{Center: mgl64.Vec3{0, 0, 0}, Radius: 5},
			BoundingSphere{Center: mgl64.Vec3{15, 0, 0}, Radius: 5},
		)
		if result.Collided {
			t.Error("Expected no collision, but got collision")
		}
	})

	t.Run("collision_with_penetration", func(t *testing.T) {
		result := CheckCollision(
			BoundingSphere{Center: mgl64.Vec3{0, 0, 0}, Radius: 5},
			BoundingSphere{Center: mgl64.Vec3{0, 0, 8}, Radius: 5},
		)
		if !result.Collided {
			t.Fatal("Expected collision, but got no collision")
		}
		if result.Penetration != 2 {
			t.Errorf("Expected penetration 2, got %v", result.Penetration)
		}
		if result.Normal != (mgl64.Vec3{0, 0, 1}) {
			t.Errorf("Expected normal [0 0 1], got %v", result.Normal)
		}
		if result.ContactPoint != (mgl64.Vec3{0, 0, 5}) {
			t.Errorf("Expected contact point [0 0 5], got %v", result.ContactPoint)
		}
	})

	t.Run("concentric", func(t *testing.T) {
		result := CheckCollision(
			BoundingSphere{Center: mgl64.Vec3{1, 1, 1}, Radius: 2},
			BoundingSphere{Center: mgl64.Vec3{1, 1, 1}, Radius: 1},
		)
		if !result.Collided || result.Penetration != 3 {
			t.Errorf("unexpected result %+v", result)
		}
		if result.Normal != (mgl64.Vec3{}) {
			t.Errorf("Expected zero normal, got %v", result.Normal)
		}
	})
}
