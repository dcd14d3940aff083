// pkg/config/config.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// SKYROLL_MANEUVER_UNIT.
const EnvPrefix = "SKYROLL"

// GameConfig contains configuration for a flight session
type GameConfig struct {
	TimeStep  float64        `json:"timeStep" mapstructure:"timeStep"`
	World     WorldConfig    `json:"world" mapstructure:"world"`
	Ship      ShipConfig     `json:"ship" mapstructure:"ship"`
	Maneuver  ManeuverConfig `json:"maneuver" mapstructure:"maneuver"`
	Asteroids AsteroidConfig `json:"asteroids" mapstructure:"asteroids"`
	Rules     RulesConfig    `json:"rules" mapstructure:"rules"`
}

// WorldConfig bounds the plane the ship flies over
type WorldConfig struct {
	HalfExtentX float64 `json:"halfExtentX" mapstructure:"halfExtentX"`
	HalfExtentZ float64 `json:"halfExtentZ" mapstructure:"halfExtentZ"`
}

// ShipConfig contains handling and collision settings for the player ship.
// Steering steps are applied once per tick.
type ShipConfig struct {
	MaxForwardSpeed float64    `json:"maxForwardSpeed" mapstructure:"maxForwardSpeed"`
	ThrustStep      float64    `json:"thrustStep" mapstructure:"thrustStep"`
	DragStep        float64    `json:"dragStep" mapstructure:"dragStep"`
	SpeedSnap       float64    `json:"speedSnap" mapstructure:"speedSnap"`
	MaxRoll         float64    `json:"maxRoll" mapstructure:"maxRoll"`
	RollStep        float64    `json:"rollStep" mapstructure:"rollStep"`
	RollReturnStep  float64    `json:"rollReturnStep" mapstructure:"rollReturnStep"`
	RollSnap        float64    `json:"rollSnap" mapstructure:"rollSnap"`
	YawPerRoll      float64    `json:"yawPerRoll" mapstructure:"yawPerRoll"`
	InvincibleTime  float64    `json:"invincibleTime" mapstructure:"invincibleTime"`
	SphereRadius    float64    `json:"sphereRadius" mapstructure:"sphereRadius"`
	BoundsMin       [3]float64 `json:"boundsMin" mapstructure:"boundsMin"`
	BoundsMax       [3]float64 `json:"boundsMax" mapstructure:"boundsMax"`
}

// ManeuverConfig contains the scripted maneuver constants
type ManeuverConfig struct {
	Unit            float64 `json:"unit" mapstructure:"unit"`
	Factor          float64 `json:"factor" mapstructure:"factor"`
	Duration        float64 `json:"duration" mapstructure:"duration"`
	SpeedNormalized bool    `json:"speedNormalized" mapstructure:"speedNormalized"`
}

// AsteroidConfig contains settings for the asteroid field
type AsteroidConfig struct {
	Count       int     `json:"count" mapstructure:"count"`
	MinSpeed    float64 `json:"minSpeed" mapstructure:"minSpeed"`
	MaxSpeed    float64 `json:"maxSpeed" mapstructure:"maxSpeed"`
	MinSize     float64 `json:"minSize" mapstructure:"minSize"`
	MaxSize     float64 `json:"maxSize" mapstructure:"maxSize"`
	MeshExtent  float64 `json:"meshExtent" mapstructure:"meshExtent"`
	HalfExtentX float64 `json:"halfExtentX" mapstructure:"halfExtentX"`
	HalfExtentZ float64 `json:"halfExtentZ" mapstructure:"halfExtentZ"`
	Seed        uint64  `json:"seed" mapstructure:"seed"`
}

// RulesConfig contains game rules configuration
type RulesConfig struct {
	Lives int `json:"lives" mapstructure:"lives"`
}

// DefaultConfig returns a default game configuration
func DefaultConfig() *GameConfig {
	return &GameConfig{
		TimeStep: 1.0 / 60.0,
		World: WorldConfig{
			HalfExtentX: 120,
			HalfExtentZ: 120,
		},
		Ship: ShipConfig{
			MaxForwardSpeed: 0.5,
			ThrustStep:      0.01,
			DragStep:        0.007,
			SpeedSnap:       0.02,
			MaxRoll:         math.Pi / 4,
			RollStep:        0.075,
			RollReturnStep:  0.05,
			RollSnap:        0.1,
			YawPerRoll:      0.05,
			InvincibleTime:  3,
			SphereRadius:    1.5,
			BoundsMin:       [3]float64{-1, -0.4, -1.2},
			BoundsMax:       [3]float64{1, 0.4, 1.2},
		},
		Maneuver: ManeuverConfig{
			Unit:     5,
			Factor:   3,
			Duration: 4,
		},
		Asteroids: AsteroidConfig{
			Count:       25,
			MinSpeed:    0.1,
			MaxSpeed:    0.5,
			MinSize:     0.0018,
			MaxSize:     0.01,
			MeshExtent:  150,
			HalfExtentX: 150,
			HalfExtentZ: 150,
			Seed:        1,
		},
		Rules: RulesConfig{
			Lives: 3,
		},
	}
}

// setDefaults registers every DefaultConfig value with v so that environment
// overrides resolve even when no file sets the key.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("timeStep", d.TimeStep)

	v.SetDefault("world.halfExtentX", d.World.HalfExtentX)
	v.SetDefault("world.halfExtentZ", d.World.HalfExtentZ)

	v.SetDefault("ship.maxForwardSpeed", d.Ship.MaxForwardSpeed)
	v.SetDefault("ship.thrustStep", d.Ship.ThrustStep)
	v.SetDefault("ship.dragStep", d.Ship.DragStep)
	v.SetDefault("ship.speedSnap", d.Ship.SpeedSnap)
	v.SetDefault("ship.maxRoll", d.Ship.MaxRoll)
	v.SetDefault("ship.rollStep", d.Ship.RollStep)
	v.SetDefault("ship.rollReturnStep", d.Ship.RollReturnStep)
	v.SetDefault("ship.rollSnap", d.Ship.RollSnap)
	v.SetDefault("ship.yawPerRoll", d.Ship.YawPerRoll)
	v.SetDefault("ship.invincibleTime", d.Ship.InvincibleTime)
	v.SetDefault("ship.sphereRadius", d.Ship.SphereRadius)
	v.SetDefault("ship.boundsMin", d.Ship.BoundsMin[:])
	v.SetDefault("ship.boundsMax", d.Ship.BoundsMax[:])

	v.SetDefault("maneuver.unit", d.Maneuver.Unit)
	v.SetDefault("maneuver.factor", d.Maneuver.Factor)
	v.SetDefault("maneuver.duration", d.Maneuver.Duration)
	v.SetDefault("maneuver.speedNormalized", d.Maneuver.SpeedNormalized)

	v.SetDefault("asteroids.count", d.Asteroids.Count)
	v.SetDefault("asteroids.minSpeed", d.Asteroids.MinSpeed)
	v.SetDefault("asteroids.maxSpeed", d.Asteroids.MaxSpeed)
	v.SetDefault("asteroids.minSize", d.Asteroids.MinSize)
	v.SetDefault("asteroids.maxSize", d.Asteroids.MaxSize)
	v.SetDefault("asteroids.meshExtent", d.Asteroids.MeshExtent)
	v.SetDefault("asteroids.halfExtentX", d.Asteroids.HalfExtentX)
	v.SetDefault("asteroids.halfExtentZ", d.Asteroids.HalfExtentZ)
	v.SetDefault("asteroids.seed", d.Asteroids.Seed)

	v.SetDefault("rules.lives", d.Rules.Lives)
}

// LoadConfig loads a configuration. path may be empty, in which case only
// defaults and environment overrides apply. The result is validated.
func LoadConfig(path string) (*GameConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config GameConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// SaveConfig saves a configuration to a file
func SaveConfig(config *GameConfig, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate reports every setting that would break the simulation.
func (c *GameConfig) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if !(v > 0) {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}

	positive("timeStep", c.TimeStep)
	positive("world.halfExtentX", c.World.HalfExtentX)
	positive("world.halfExtentZ", c.World.HalfExtentZ)
	positive("ship.maxForwardSpeed", c.Ship.MaxForwardSpeed)
	positive("ship.maxRoll", c.Ship.MaxRoll)
	positive("ship.invincibleTime", c.Ship.InvincibleTime)
	positive("ship.sphereRadius", c.Ship.SphereRadius)
	positive("maneuver.unit", c.Maneuver.Unit)
	positive("maneuver.duration", c.Maneuver.Duration)
	positive("asteroids.meshExtent", c.Asteroids.MeshExtent)
	positive("asteroids.halfExtentX", c.Asteroids.HalfExtentX)
	positive("asteroids.halfExtentZ", c.Asteroids.HalfExtentZ)

	if c.Maneuver.Factor <= 1 {
		errs = append(errs, fmt.Errorf("maneuver.factor must be greater than 1, got %v", c.Maneuver.Factor))
	}
	for i := 0; i < 3; i++ {
		if c.Ship.BoundsMin[i] >= c.Ship.BoundsMax[i] {
			errs = append(errs, fmt.Errorf("ship.boundsMin[%d] must be below ship.boundsMax[%d]", i, i))
		}
	}
	if c.Asteroids.Count < 0 {
		errs = append(errs, fmt.Errorf("asteroids.count must not be negative, got %d", c.Asteroids.Count))
	}
	if c.Asteroids.MinSpeed < 0 || c.Asteroids.MinSpeed > c.Asteroids.MaxSpeed {
		errs = append(errs, fmt.Errorf("asteroids speed range [%v, %v] is invalid", c.Asteroids.MinSpeed, c.Asteroids.MaxSpeed))
	}
	if c.Asteroids.MinSize <= 0 || c.Asteroids.MinSize > c.Asteroids.MaxSize {
		errs = append(errs, fmt.Errorf("asteroids size range [%v, %v] is invalid", c.Asteroids.MinSize, c.Asteroids.MaxSize))
	}
	if c.Rules.Lives < 1 {
		errs = append(errs, fmt.Errorf("rules.lives must be at least 1, got %d", c.Rules.Lives))
	}

	return errors.Join(errs...)
}
