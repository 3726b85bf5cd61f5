package snowfield

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Placement is one snow patch's resting transform, derived deterministically
// from a segment's geometry plus bounded seeded randomness.
type Placement struct {
	Position    r3.Vec
	Orientation quat.Number
	Scale       r3.Vec
}

// minPlacementLength rejects sub-threshold segments: they would produce a
// patch too small to be visible.
const minPlacementLength = 0.08

// rollJitter is the small random roll added around the segment axis for
// visual variety. Bounded so patches never visibly flip.
var rollJitter = Range{Min: -0.15, Max: 0.15}

// canonicalForward is the local axis aligned to the segment direction.
var canonicalForward = r3.Vec{Z: 1}

// PlaceSegment converts a branch segment into a placement, or reports
// ok=false for segments below the visibility threshold.
//
// Placement law: orientation aligns the canonical forward axis to the
// segment direction, plus a random roll drawn from rng. Position is the
// midpoint lifted vertically by radius*0.8 + snowHeight*0.4 where
// snowHeight = radius*2.5 + 0.12. Scale tracks branch thickness in width
// and height and branch length in depth.
func PlaceSegment(seg BranchSegment, rng *rand.Rand) (Placement, bool) {
	length := seg.Length()
	if length < minPlacementLength {
		return Placement{}, false
	}

	dir := r3.Unit(r3.Sub(seg.End, seg.Start))
	align := rotationBetween(canonicalForward, dir)
	roll := rotateAbout(rollJitter.Random(rng), dir)
	orientation := quat.Mul(roll, align)

	snowHeight := seg.Radius*2.5 + 0.12
	lift := seg.Radius*0.8 + snowHeight*0.4
	position := seg.Midpoint()
	position.Y += lift

	return Placement{
		Position:    position,
		Orientation: orientation,
		Scale: r3.Vec{
			X: seg.Radius*3 + 0.2,
			Y: snowHeight,
			Z: length + 0.05,
		},
	}, true
}

// PlaceSegments runs PlaceSegment over every segment, keeping accepted
// placements in order. The resulting slice index is the patch's stable id
// for the lifetime of the process; every later component addresses patches
// by it.
func PlaceSegments(segs []BranchSegment, rng *rand.Rand) []Placement {
	placements := make([]Placement, 0, len(segs))
	for _, seg := range segs {
		if p, ok := PlaceSegment(seg, rng); ok {
			placements = append(placements, p)
		}
	}
	return placements
}
