// pkg/entity/field.go
package entity

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-skyroll/pkg/config"
)

// Field is an ordered set of asteroids. The order is the collision order.
type Field struct {
	cfg       config.AsteroidConfig
	rng       *rand.Rand
	asteroids []*Asteroid
}

// NewField creates cfg.Count asteroids placed from a generator seeded with
// cfg.Seed, so equal configs give equal fields.
func NewField(cfg config.AsteroidConfig) *Field {
	f := &Field{
		cfg: cfg,
		rng: rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
	}
	for i := 0; i < cfg.Count; i++ {
		a := NewAsteroid(cfg.MeshExtent, cfg.HalfExtentX, cfg.HalfExtentZ)
		a.Speed = f.between(cfg.MinSpeed, cfg.MaxSpeed)
		a.Size = f.between(cfg.MinSize, cfg.MaxSize)
		f.scatter(a)
		f.asteroids = append(f.asteroids, a)
	}
	return f
}

// Scatter gives every asteroid a new random position and direction.
func (f *Field) Scatter() {
	for _, a := range f.asteroids {
		f.scatter(a)
	}
}

func (f *Field) scatter(a *Asteroid) {
	a.Position = mgl64.Vec3{
		f.between(-f.cfg.HalfExtentX, f.cfg.HalfExtentX),
		0,
		f.between(-f.cfg.HalfExtentZ, f.cfg.HalfExtentZ),
	}
	heading := f.rng.Float64() * 2 * math.Pi
	a.Direction = mgl64.Vec3{math.Cos(heading), 0, math.Sin(heading)}
}

func (f *Field) between(lo, hi float64) float64 {
	return lo + f.rng.Float64()*(hi-lo)
}

// Move advances every asteroid by one tick.
func (f *Field) Move() {
	for _, a := range f.asteroids {
		a.Move()
	}
}

// Asteroids returns the asteroids in collision order.
func (f *Field) Asteroids() []*Asteroid {
	return f.asteroids
}

// Len returns the number of asteroids.
func (f *Field) Len() int {
	return len(f.asteroids)
}

// Add appends an asteroid to the field.
func (f *Field) Add(a *Asteroid) {
	f.asteroids = append(f.asteroids, a)
}

// Remove deletes the asteroid at index i. Later asteroids shift down by one.
func (f *Field) Remove(i int) {
	if i < 0 || i >= len(f.asteroids) {
		return
	}
	f.asteroids = append(f.asteroids[:i], f.asteroids[i+1:]...)
}
