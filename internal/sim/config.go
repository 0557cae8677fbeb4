package sim

import (
	"errors"
	"fmt"

	"github.com/tomz197/particles/internal/config"
	"github.com/tomz197/particles/internal/geom"
)

// ErrInvalidConfig wraps every Config validation failure.
var ErrInvalidConfig = errors.New("invalid simulation config")

// Config holds the tunable parameters of one simulation.
type Config struct {
	Width, Height float32 // Viewport in world units
	Count         int     // Number of particles, fixed for the run
	Seed          int64   // Seed for the layout jitter

	Mass   float32 // Per-particle mass, must be > 0
	Radius float32 // Per-particle display radius
	Jitter float32 // Max layout offset per axis from the grid cell centre

	G            float32 // Pairwise spring constant, also the ring's gravitational constant
	Cutoff       float32 // Pairs farther apart than this do not interact
	RestDistance float32 // Pair separation with zero spring force
	Reciprocal   bool    // Apply the opposite pair force to the second particle

	CenterPull    float32   // Spring constant towards the viewport centre
	RingRadius    float32   // Equilibrium ring around the centre; 0 disables
	RingMass      float32   // Mass of the ring's central point
	PointStrength float32   // Strength of the attractor/repeller
	Gravity       geom.Vec2 // Uniform field
	Drag          float32   // Linear drag coefficient

	Wrap bool // Wrap particles around the viewport edges
}

// DefaultConfig returns a stable configuration for a viewport of the given size.
func DefaultConfig(width, height float32) Config {
	return Config{
		Width:  width,
		Height: height,
		Count:  120,
		Seed:   1,

		Mass:   1,
		Radius: 4,
		Jitter: 8,

		G:            0.05,
		Cutoff:       80,
		RestDistance: 30,
		Reciprocal:   true,

		CenterPull:    0.01,
		RingMass:      50,
		PointStrength: 2000,
		Drag:          0.05,
	}
}

// ConfigFromEnv starts from DefaultConfig and overrides it with SIM_* variables.
func ConfigFromEnv(width, height float32) Config {
	c := DefaultConfig(width, height)

	c.Count = config.GetEnvInt("SIM_PARTICLES", c.Count)
	c.Seed = int64(config.GetEnvInt("SIM_SEED", int(c.Seed)))

	c.Mass = envFloat("SIM_MASS", c.Mass)
	c.Radius = envFloat("SIM_RADIUS", c.Radius)
	c.Jitter = envFloat("SIM_JITTER", c.Jitter)

	c.G = envFloat("SIM_G", c.G)
	c.Cutoff = envFloat("SIM_CUTOFF", c.Cutoff)
	c.RestDistance = envFloat("SIM_REST", c.RestDistance)
	c.Reciprocal = config.GetEnvBool("SIM_RECIPROCAL", c.Reciprocal)

	c.CenterPull = envFloat("SIM_CENTER_PULL", c.CenterPull)
	c.RingRadius = envFloat("SIM_RING_RADIUS", c.RingRadius)
	c.RingMass = envFloat("SIM_RING_MASS", c.RingMass)
	c.PointStrength = envFloat("SIM_POINT_STRENGTH", c.PointStrength)
	c.Gravity.X = envFloat("SIM_GRAVITY_X", c.Gravity.X)
	c.Gravity.Y = envFloat("SIM_GRAVITY_Y", c.Gravity.Y)
	c.Drag = envFloat("SIM_DRAG", c.Drag)

	c.Wrap = config.GetEnvBool("SIM_WRAP", c.Wrap)
	return c
}

func envFloat(key string, fallback float32) float32 {
	return float32(config.GetEnvFloat(key, float64(fallback)))
}

// Validate checks the preconditions the physics relies on, most importantly
// Mass > 0: force application divides by mass.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: viewport %vx%v must be positive", ErrInvalidConfig, c.Width, c.Height)
	case c.Count < 0:
		return fmt.Errorf("%w: particle count %d is negative", ErrInvalidConfig, c.Count)
	case !(c.Mass > 0):
		return fmt.Errorf("%w: mass %v must be > 0", ErrInvalidConfig, c.Mass)
	case c.Radius < 0:
		return fmt.Errorf("%w: radius %v is negative", ErrInvalidConfig, c.Radius)
	case c.Jitter < 0:
		return fmt.Errorf("%w: jitter %v is negative", ErrInvalidConfig, c.Jitter)
	case c.Cutoff < 0:
		return fmt.Errorf("%w: cutoff %v is negative", ErrInvalidConfig, c.Cutoff)
	case c.RingRadius < 0:
		return fmt.Errorf("%w: ring radius %v is negative", ErrInvalidConfig, c.RingRadius)
	}
	return nil
}
