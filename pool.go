package snowfield

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// SnowPatch is one static snow placement. Original is fixed at creation and
// never mutated; it is the reset target for any transient perturbation.
// Active == false means the patch has been permanently retired into the
// falling-body system and is never reactivated.
type SnowPatch struct {
	ID       int
	Original Placement
	Active   bool
	Cluster  ClusterID
}

// InstancePool owns the fixed-capacity collection of snow patches and the
// derived per-frame render buffers: one transform and one color per slot.
// Nothing is ever removed from the backing storage; retirement is a flag
// flip plus a zero-scale (invisible) transform, preserving index stability
// for the lifetime of the process.
type InstancePool struct {
	patches    []SnowPatch
	transforms []Mat4
	colors     []Color
	base       Color
	highlight  Color
	retired    int
}

// newInstancePool creates a pool with one slot per placement, every slot
// staged at its original transform and base color.
func newInstancePool(placements []Placement, base, highlight Color) *InstancePool {
	p := &InstancePool{
		patches:    make([]SnowPatch, len(placements)),
		transforms: make([]Mat4, len(placements)),
		colors:     make([]Color, len(placements)),
		base:       base,
		highlight:  highlight,
	}
	for i, pl := range placements {
		p.patches[i] = SnowPatch{
			ID:       i,
			Original: pl,
			Active:   true,
			Cluster:  -1,
		}
		p.transforms[i] = ComposeTRS(pl.Position, pl.Orientation, pl.Scale)
		p.colors[i] = base
	}
	return p
}

// Len returns the number of slots in the pool.
func (p *InstancePool) Len() int {
	return len(p.patches)
}

// ActiveCount returns the number of patches not yet retired.
func (p *InstancePool) ActiveCount() int {
	return len(p.patches) - p.retired
}

// Patch returns a copy of the patch record for id.
func (p *InstancePool) Patch(id int) (SnowPatch, error) {
	if id < 0 || id >= len(p.patches) {
		return SnowPatch{}, fmt.Errorf("%w: patch %d (pool has %d)", ErrInvalidID, id, len(p.patches))
	}
	return p.patches[id], nil
}

// Reset restores the slot's staged transform and color to the identity
// derived from the patch's original placement and the base color. Retired
// slots keep their invisible transform.
func (p *InstancePool) Reset(id int) error {
	if id < 0 || id >= len(p.patches) {
		return fmt.Errorf("%w: patch %d (pool has %d)", ErrInvalidID, id, len(p.patches))
	}
	pa := &p.patches[id]
	if !pa.Active {
		return nil
	}
	p.transforms[id] = ComposeTRS(pa.Original.Position, pa.Original.Orientation, pa.Original.Scale)
	p.colors[id] = p.base
	return nil
}

// ApplyTransient stages a perturbed position and a color lerped from base
// toward highlight by t, without touching the patch's original placement.
// Orientation and scale stay at their original values. Retired slots are
// left invisible.
func (p *InstancePool) ApplyTransient(id int, position r3.Vec, colorLerpT float64) error {
	if id < 0 || id >= len(p.patches) {
		return fmt.Errorf("%w: patch %d (pool has %d)", ErrInvalidID, id, len(p.patches))
	}
	pa := &p.patches[id]
	if !pa.Active {
		return nil
	}
	p.transforms[id] = ComposeTRS(position, pa.Original.Orientation, pa.Original.Scale)
	p.colors[id] = p.base.Lerp(p.highlight, colorLerpT)
	return nil
}

// retire marks the patch inactive and stages a zero-scale transform so the
// slot renders as nothing. Unexported: retirement must be paired with
// falling-body seeding, and the engine performs both as one operation.
// Retiring an already-retired patch is a no-op.
func (p *InstancePool) retire(id int) error {
	if id < 0 || id >= len(p.patches) {
		return fmt.Errorf("%w: patch %d (pool has %d)", ErrInvalidID, id, len(p.patches))
	}
	pa := &p.patches[id]
	if !pa.Active {
		return nil
	}
	pa.Active = false
	p.retired++
	p.transforms[id] = ComposeTRS(pa.Original.Position, pa.Original.Orientation, r3.Vec{})
	return nil
}

// Transforms returns the pool's transform buffer. Valid for one frame;
// re-derived each frame. The slice is owned by the pool.
func (p *InstancePool) Transforms() []Mat4 {
	return p.transforms
}

// Colors returns the pool's color buffer. Same lifetime as Transforms.
func (p *InstancePool) Colors() []Color {
	return p.colors
}
