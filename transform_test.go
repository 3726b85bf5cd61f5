package snowfield

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestComposeTRSIdentity(t *testing.T) {
	m := ComposeTRS(r3.Vec{}, identityQuat, r3.Vec{X: 1, Y: 1, Z: 1})
	if m != identityMat4 {
		t.Errorf("ComposeTRS(identity) = %v, want identity", m)
	}
}

func TestComposeTRSTranslation(t *testing.T) {
	m := ComposeTRS(r3.Vec{X: 3, Y: -2, Z: 7}, identityQuat, r3.Vec{X: 1, Y: 1, Z: 1})
	assertVecNear(t, "Translation", m.Translation(), r3.Vec{X: 3, Y: -2, Z: 7})

	p := m.TransformPoint(r3.Vec{X: 1, Y: 1, Z: 1})
	assertVecNear(t, "TransformPoint", p, r3.Vec{X: 4, Y: -1, Z: 8})
}

func TestComposeTRSScale(t *testing.T) {
	m := ComposeTRS(r3.Vec{}, identityQuat, r3.Vec{X: 2, Y: 3, Z: 4})
	p := m.TransformPoint(r3.Vec{X: 1, Y: 1, Z: 1})
	assertVecNear(t, "scaled point", p, r3.Vec{X: 2, Y: 3, Z: 4})
}

func TestComposeTRSRotation(t *testing.T) {
	// Quarter turn about Y maps +Z to +X.
	q := rotateAbout(math.Pi/2, r3.Vec{Y: 1})
	m := ComposeTRS(r3.Vec{}, q, r3.Vec{X: 1, Y: 1, Z: 1})
	p := m.TransformPoint(r3.Vec{Z: 1})
	assertVecNear(t, "rotated point", p, r3.Vec{X: 1})
}

func TestComposeTRSZeroScaleCollapses(t *testing.T) {
	m := ComposeTRS(r3.Vec{X: 1, Y: 2, Z: 3}, identityQuat, r3.Vec{})
	p := m.TransformPoint(r3.Vec{X: 5, Y: 5, Z: 5})
	assertVecNear(t, "collapsed point", p, r3.Vec{X: 1, Y: 2, Z: 3})
}

func TestRotationBetween(t *testing.T) {
	tests := []struct {
		name     string
		from, to r3.Vec
	}{
		{"z to x", r3.Vec{Z: 1}, r3.Vec{X: 1}},
		{"z to y", r3.Vec{Z: 1}, r3.Vec{Y: 1}},
		{"z to diagonal", r3.Vec{Z: 1}, r3.Unit(r3.Vec{X: 1, Y: 1, Z: 1})},
		{"arbitrary", r3.Unit(r3.Vec{X: 0.3, Y: -0.8, Z: 0.2}), r3.Unit(r3.Vec{X: -0.5, Y: 0.1, Z: 1})},
		{"antiparallel", r3.Vec{Z: 1}, r3.Vec{Z: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := rotationBetween(tt.from, tt.to)
			got := r3.Rotation(q).Rotate(tt.from)
			if math.Abs(got.X-tt.to.X) > 1e-9 ||
				math.Abs(got.Y-tt.to.Y) > 1e-9 ||
				math.Abs(got.Z-tt.to.Z) > 1e-9 {
				t.Errorf("rotated = %v, want %v", got, tt.to)
			}
		})
	}
}

func TestRotationBetweenParallelIsIdentity(t *testing.T) {
	q := rotationBetween(r3.Vec{Z: 1}, r3.Vec{Z: 1})
	if q != identityQuat {
		t.Errorf("rotationBetween(parallel) = %v, want identity", q)
	}
}

func TestRotationBetweenDegenerateInput(t *testing.T) {
	if q := rotationBetween(r3.Vec{}, r3.Vec{X: 1}); q != identityQuat {
		t.Errorf("zero from = %v, want identity", q)
	}
	if q := rotationBetween(r3.Vec{X: 1}, r3.Vec{}); q != identityQuat {
		t.Errorf("zero to = %v, want identity", q)
	}
}

// Euler round trips compare the rotation's action on basis vectors rather
// than quaternion components: q and -q encode the same rotation.
func TestEulerRoundTrip(t *testing.T) {
	rng := newTestRNG()
	basis := [3]r3.Vec{{X: 1}, {Y: 1}, {Z: 1}}

	for i := 0; i < 50; i++ {
		angle := (rng.Float64() - 0.5) * 2 * math.Pi
		axis := r3.Unit(r3.Vec{
			X: rng.Float64() - 0.5,
			Y: rng.Float64() - 0.5,
			Z: rng.Float64() - 0.5,
		})
		q := quat.Number(r3.NewRotation(angle, axis))
		back := quatFromEuler(eulerFromQuat(q))

		for _, v := range basis {
			want := r3.Rotation(q).Rotate(v)
			got := r3.Rotation(back).Rotate(v)
			if math.Abs(got.X-want.X) > 1e-6 ||
				math.Abs(got.Y-want.Y) > 1e-6 ||
				math.Abs(got.Z-want.Z) > 1e-6 {
				t.Fatalf("round trip %d: rotate(%v) = %v, want %v", i, v, got, want)
			}
		}
	}
}

func TestRotateAboutZeroAxis(t *testing.T) {
	if q := rotateAbout(1.5, r3.Vec{}); q != identityQuat {
		t.Errorf("rotateAbout(zero axis) = %v, want identity", q)
	}
}
