package pattern

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"
)

// Particle components. The pool lives in an ark world; entities are
// created once and retargeted in place, never destroyed.

// Position is a particle's screen-space location.
type Position struct {
	X, Y float64
}

// Motion holds velocity, the current nodal target and the per-particle
// jitter phase.
type Motion struct {
	VX, VY    float64
	TX, TY    float64
	HasTarget bool
	Phase     float64
}

// Glow holds the particle's draw attributes.
type Glow struct {
	Size       float64
	Brightness float64
}

// ParticleParams tunes the field dynamics.
type ParticleParams struct {
	Count              int
	SamplesPerRetarget int
	TargetTolerance    float64
	SteerForce         float64
	MaxSpeed           float64
	Damping            float64 // per 60Hz-normalized step
	Jitter             float64
	WrapMargin         float64
}

// DefaultParticleParams returns the tuned defaults.
func DefaultParticleParams() ParticleParams {
	return ParticleParams{
		Count:              3000,
		SamplesPerRetarget: 20,
		TargetTolerance:    0.2,
		SteerForce:         40.0,
		MaxSpeed:           120.0,
		Damping:            0.95,
		Jitter:             6.0,
		WrapMargin:         20.0,
	}
}

// ParticleField maintains a fixed pool of point agents that seek the
// zero-crossings of the current Chladni field. The field has no
// closed-form inverse, so targets come from stochastic sampling.
type ParticleField struct {
	world  *ecs.World
	mapper *ecs.Map3[Position, Motion, Glow]
	filter *ecs.Filter3[Position, Motion, Glow]
	rng    *rand.Rand

	params        ParticleParams
	width, height float64
}

// NewParticleField creates the pool at random positions within w×h.
func NewParticleField(params ParticleParams, w, h float64, seed int64) *ParticleField {
	world := ecs.NewWorld()
	f := &ParticleField{
		world:  world,
		mapper: ecs.NewMap3[Position, Motion, Glow](world),
		filter: ecs.NewFilter3[Position, Motion, Glow](world),
		rng:    rand.New(rand.NewSource(seed)),
		params: params,
		width:  w,
		height: h,
	}

	for i := 0; i < params.Count; i++ {
		pos := Position{X: f.rng.Float64() * w, Y: f.rng.Float64() * h}
		mot := Motion{Phase: f.rng.Float64() * 2 * math.Pi}
		glow := Glow{
			Size:       0.8 + f.rng.Float64()*1.6,
			Brightness: 0.5,
		}
		f.mapper.NewEntity(&pos, &mot, &glow)
	}

	return f
}

// Count returns the pool size.
func (f *ParticleField) Count() int {
	return f.params.Count
}

// Resize reinitializes the entire pool at random positions. Particles
// do not keep identity across resolution changes.
func (f *ParticleField) Resize(w, h float64) {
	f.width = w
	f.height = h

	query := f.filter.Query()
	for query.Next() {
		pos, mot, _ := query.Get()
		pos.X = f.rng.Float64() * w
		pos.Y = f.rng.Float64() * h
		mot.VX = 0
		mot.VY = 0
		mot.HasTarget = false
	}
}

// Retarget resamples a nodal target for every particle. Each particle
// tries SamplesPerRetarget random points inside the circular domain and
// keeps the one with the smallest field magnitude; the target is only
// assigned when that magnitude is within tolerance, otherwise the
// previous target stands rather than snapping to a poor match.
func (f *ParticleField) Retarget(n, m float64) {
	half := math.Min(f.width, f.height) / 2
	cx := f.width / 2
	cy := f.height / 2

	query := f.filter.Query()
	for query.Next() {
		_, mot, _ := query.Get()

		best := math.MaxFloat64
		var bestX, bestY float64
		for s := 0; s < f.params.SamplesPerRetarget; s++ {
			angle := f.rng.Float64() * 2 * math.Pi
			radius := math.Sqrt(f.rng.Float64()) * 0.85
			x := math.Cos(angle) * radius
			y := math.Sin(angle) * radius

			av := math.Abs(ChladniValue(x, y, n, m))
			if av < best {
				best = av
				bestX = x
				bestY = y
			}
		}

		if best < f.params.TargetTolerance {
			mot.TX = cx + bestX*half
			mot.TY = cy + bestY*half
			mot.HasTarget = true
		}
	}
}

// Advance integrates one step of the damped particle dynamics: a capped
// steering force toward the target, smooth per-particle jitter, velocity
// damping and a wrapping position update. Brightness tracks amplitude.
func (f *ParticleField) Advance(dt, amplitude, time float64) {
	p := f.params
	// Damping is tuned per 60Hz frame; renormalize for the measured dt.
	damp := math.Pow(p.Damping, dt*60)
	brightness := 0.5 + clamp01(amplitude)*0.5

	query := f.filter.Query()
	for query.Next() {
		pos, mot, glow := query.Get()

		if mot.HasTarget {
			dx := mot.TX - pos.X
			dy := mot.TY - pos.Y
			d := math.Sqrt(dx*dx + dy*dy)
			if d > 1e-6 {
				force := p.SteerForce
				if d < 10 {
					force *= d / 10 // ease in near the target
				}
				mot.VX += dx / d * force * dt * 60
				mot.VY += dy / d * force * dt * 60
			}
		}

		// Organic micro-motion: a distinct sine/cosine phase per particle.
		mot.VX += math.Sin(time*1.7+mot.Phase) * p.Jitter * dt * 60
		mot.VY += math.Cos(time*1.3+mot.Phase*1.618) * p.Jitter * dt * 60

		mot.VX *= damp
		mot.VY *= damp

		speed := math.Sqrt(mot.VX*mot.VX + mot.VY*mot.VY)
		if speed > p.MaxSpeed {
			scale := p.MaxSpeed / speed
			mot.VX *= scale
			mot.VY *= scale
		}

		pos.X = wrapCoord(pos.X+mot.VX*dt, f.width, p.WrapMargin)
		pos.Y = wrapCoord(pos.Y+mot.VY*dt, f.height, p.WrapMargin)

		glow.Brightness = brightness
	}
}

// ForEach exposes draw data without leaking ECS types to the renderer.
func (f *ParticleField) ForEach(fn func(x, y, size, brightness float64)) {
	query := f.filter.Query()
	for query.Next() {
		pos, _, glow := query.Get()
		fn(pos.X, pos.Y, glow.Size, glow.Brightness)
	}
}
