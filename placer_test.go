package snowfield

import (
	"math/rand/v2"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestPlaceSegmentRejectsSubThreshold(t *testing.T) {
	seg := BranchSegment{
		Start:  r3.Vec{X: 0, Y: 1, Z: 0},
		End:    r3.Vec{X: 0.05, Y: 1, Z: 0},
		Radius: 0.2,
	}
	if _, ok := PlaceSegment(seg, newTestRNG()); ok {
		t.Error("segment below minimum length should be rejected")
	}
}

func TestPlaceSegmentPositionAndScaleLaw(t *testing.T) {
	seg := BranchSegment{
		Start:  r3.Vec{X: 0, Y: 1, Z: 0},
		End:    r3.Vec{X: 0, Y: 1, Z: 1},
		Radius: 0.2,
	}
	p, ok := PlaceSegment(seg, newTestRNG())
	if !ok {
		t.Fatal("segment should be accepted")
	}

	// snowHeight = 0.2*2.5 + 0.12 = 0.62; lift = 0.2*0.8 + 0.62*0.4 = 0.408
	assertVecNear(t, "Position", p.Position, r3.Vec{X: 0, Y: 1.408, Z: 0.5})
	assertVecNear(t, "Scale", p.Scale, r3.Vec{X: 0.8, Y: 0.62, Z: 1.05})
}

func TestPlaceSegmentOrientationAlignsForward(t *testing.T) {
	tests := []struct {
		name string
		end  r3.Vec
	}{
		{"along z", r3.Vec{X: 0, Y: 1, Z: 1}},
		{"along x", r3.Vec{X: 1, Y: 1, Z: 0}},
		{"diagonal", r3.Vec{X: 0.5, Y: 1.7, Z: 0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seg := BranchSegment{Start: r3.Vec{X: 0, Y: 1, Z: 0}, End: tt.end, Radius: 0.1}
			p, ok := PlaceSegment(seg, newTestRNG())
			if !ok {
				t.Fatal("segment should be accepted")
			}
			// The roll is about the segment axis, so the forward axis must
			// land exactly on the segment direction regardless of the draw.
			dir := r3.Unit(r3.Sub(seg.End, seg.Start))
			got := r3.Rotation(p.Orientation).Rotate(canonicalForward)
			assertVecNear(t, "forward axis", got, dir)
		})
	}
}

func TestPlaceSegmentDeterministicWithSeed(t *testing.T) {
	seg := BranchSegment{
		Start:  r3.Vec{X: 0.2, Y: 1.1, Z: -0.3},
		End:    r3.Vec{X: 0.9, Y: 1.4, Z: 0.4},
		Radius: 0.15,
	}
	a, okA := PlaceSegment(seg, rand.New(rand.NewPCG(9, 9)))
	b, okB := PlaceSegment(seg, rand.New(rand.NewPCG(9, 9)))
	if !okA || !okB {
		t.Fatal("segment should be accepted")
	}
	if a != b {
		t.Errorf("same seed produced different placements:\n%v\n%v", a, b)
	}
}

func TestPlaceSegmentsScaleAlwaysPositive(t *testing.T) {
	rng := newTestRNG()
	var segs []BranchSegment
	for i := 0; i < 500; i++ {
		start := r3.Vec{
			X: rng.Float64()*10 - 5,
			Y: rng.Float64()*5 + 0.6,
			Z: rng.Float64()*10 - 5,
		}
		dir := r3.Vec{
			X: rng.Float64() - 0.5,
			Y: rng.Float64() - 0.5,
			Z: rng.Float64() - 0.5,
		}
		length := rng.Float64()*1.8 + 0.11
		if r3.Norm(dir) == 0 {
			continue
		}
		segs = append(segs, BranchSegment{
			Start:  start,
			End:    r3.Add(start, r3.Scale(length, r3.Unit(dir))),
			Radius: rng.Float64()*0.2 + 0.03,
		})
	}

	for _, p := range PlaceSegments(segs, rng) {
		if p.Scale.X <= 0 || p.Scale.Y <= 0 || p.Scale.Z <= 0 {
			t.Fatalf("non-positive scale component: %v", p.Scale)
		}
	}
}

func TestPlaceSegmentsAssignsOrderedIDs(t *testing.T) {
	segs, err := ExtractSegments(testTreeMesh())
	if err != nil {
		t.Fatalf("ExtractSegments: %v", err)
	}
	placements := PlaceSegments(segs, newTestRNG())
	if len(placements) != 6 {
		t.Fatalf("len(placements) = %d, want 6", len(placements))
	}
	// Ids are slice indices: the pool must mirror them one to one.
	pool := newInstancePool(placements, Color{}, Color{})
	for i := 0; i < pool.Len(); i++ {
		pa, err := pool.Patch(i)
		if err != nil {
			t.Fatalf("Patch(%d): %v", i, err)
		}
		if pa.ID != i {
			t.Errorf("Patch(%d).ID = %d", i, pa.ID)
		}
	}
}
