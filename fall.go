package snowfield

import (
	"math"
	"math/rand/v2"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"gonum.org/v1/gonum/spatial/r3"
)

// Seeding jitter ranges. Drawn once per body from the engine's rng.
var (
	fallLateralJitter = Range{Min: -0.3, Max: 0.3}  // initial x/z velocity
	fallDownward      = Range{Min: -2.0, Max: -0.8} // initial y velocity
	fallSpinJitter    = Range{Min: -1.5, Max: 1.5}  // per-axis Euler rates
)

// FallingBody is one retired patch in free fall. Mutated every frame by
// kinematic integration; removed once it drops below the kill height.
type FallingBody struct {
	SourcePatch     int
	Position        r3.Vec
	Velocity        r3.Vec
	Rotation        r3.Vec // Euler angles, radians
	AngularVelocity r3.Vec // Euler rates, radians per second
	Scale           r3.Vec

	fade *gween.Tween
	tint Color
}

// fallParams are the simulator's tuning constants, resolved from Config.
type fallParams struct {
	gravity   float64 // units per second squared
	killY     float64 // bodies below this height are retired
	driftAmp  float64 // sinusoidal horizontal drift amplitude
	driftFreq float64 // drift frequency in radians per second
	fadeDur   float64 // seconds to fade from base toward faded tint
	baseColor Color
	fadeColor Color
}

// FallSimulator owns the growable collection of falling bodies and their
// per-frame render buffers. Unlike the instance pool it is not capacity
// bounded; bodies are appended on seeding and swap-removed on termination.
type FallSimulator struct {
	bodies     []FallingBody
	transforms []Mat4
	colors     []Color
	rng        *rand.Rand
	params     fallParams
}

func newFallSimulator(rng *rand.Rand, params fallParams) *FallSimulator {
	return &FallSimulator{rng: rng, params: params}
}

// Len returns the number of currently falling bodies.
func (f *FallSimulator) Len() int {
	return len(f.bodies)
}

// seed creates a falling body from a retired patch's fixed pre-clear
// transform: same position and scale, the orientation decomposed to Euler
// angles, with a small randomized horizontal push, a downward component, and
// a triaxial spin. Called by the engine as the second half of the atomic
// retire-and-seed operation.
func (f *FallSimulator) seed(patchID int, pl Placement) {
	f.bodies = append(f.bodies, FallingBody{
		SourcePatch: patchID,
		Position:    pl.Position,
		Rotation:    eulerFromQuat(pl.Orientation),
		Scale:       pl.Scale,
		Velocity: r3.Vec{
			X: fallLateralJitter.Random(f.rng),
			Y: fallDownward.Random(f.rng),
			Z: fallLateralJitter.Random(f.rng),
		},
		AngularVelocity: r3.Vec{
			X: fallSpinJitter.Random(f.rng),
			Y: fallSpinJitter.Random(f.rng),
			Z: fallSpinJitter.Random(f.rng),
		},
		fade: gween.New(0, 1, float32(f.params.fadeDur), ease.OutQuad),
		tint: f.params.baseColor,
	})
}

// update advances every body by dt seconds and swap-removes bodies whose
// vertical position crossed the kill height. elapsed is the engine's
// accumulated time, which phases the per-body sinusoidal drift so bodies
// drift out of step with each other.
func (f *FallSimulator) update(dt, elapsed float64) {
	p := f.params
	i := 0
	for i < len(f.bodies) {
		b := &f.bodies[i]

		b.Velocity.Y -= p.gravity * dt
		b.Position = r3.Add(b.Position, r3.Scale(dt, b.Velocity))
		b.Rotation = r3.Add(b.Rotation, r3.Scale(dt, b.AngularVelocity))

		// Horizontal drift, phase-offset by the source patch id.
		phase := elapsed*p.driftFreq + float64(b.SourcePatch)*0.7
		b.Position.X += math.Sin(phase) * p.driftAmp * dt
		b.Position.Z += math.Cos(phase*0.8) * p.driftAmp * dt

		if b.Position.Y < p.killY {
			// Swap with the last body. Terminated bodies never reappear.
			last := len(f.bodies) - 1
			f.bodies[i] = f.bodies[last]
			f.bodies = f.bodies[:last]
			continue
		}

		t, _ := b.fade.Update(float32(dt))
		b.tint = p.baseColor.Lerp(p.fadeColor, float64(t))
		i++
	}
}

// publish rebuilds the transform and color buffers from the current body
// set. Buffer length tracks the live body count each frame.
func (f *FallSimulator) publish() {
	f.transforms = f.transforms[:0]
	f.colors = f.colors[:0]
	for i := range f.bodies {
		b := &f.bodies[i]
		f.transforms = append(f.transforms, ComposeTRS(b.Position, quatFromEuler(b.Rotation), b.Scale))
		f.colors = append(f.colors, b.tint)
	}
}

// Transforms returns the falling-body transform buffer. Valid for one
// frame; length varies with the live body count.
func (f *FallSimulator) Transforms() []Mat4 {
	return f.transforms
}

// Colors returns the falling-body color buffer. Same lifetime as Transforms.
func (f *FallSimulator) Colors() []Color {
	return f.colors
}
