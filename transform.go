package snowfield

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Mat4 is a 4x4 world transform in row-major order.
//
//	Matrix layout: [m0  m1  m2  m3 ]
//	               [m4  m5  m6  m7 ]
//	               [m8  m9  m10 m11]
//	               [m12 m13 m14 m15]
//
// Translation lives in m3, m7, m11. The bottom row is always [0 0 0 1].
type Mat4 [16]float64

// identityMat4 is the identity transform.
var identityMat4 = Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, 1,
}

// ComposeTRS builds a world transform from translation, rotation, and scale,
// applied in the usual Scale -> Rotate -> Translate order.
func ComposeTRS(t r3.Vec, q quat.Number, s r3.Vec) Mat4 {
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag

	// Rotation matrix from the unit quaternion, columns pre-scaled.
	r00 := 1 - 2*(y*y+z*z)
	r01 := 2 * (x*y - w*z)
	r02 := 2 * (x*z + w*y)
	r10 := 2 * (x*y + w*z)
	r11 := 1 - 2*(x*x+z*z)
	r12 := 2 * (y*z - w*x)
	r20 := 2 * (x*z - w*y)
	r21 := 2 * (y*z + w*x)
	r22 := 1 - 2*(x*x+y*y)

	return Mat4{
		r00 * s.X, r01 * s.Y, r02 * s.Z, t.X,
		r10 * s.X, r11 * s.Y, r12 * s.Z, t.Y,
		r20 * s.X, r21 * s.Y, r22 * s.Z, t.Z,
		0, 0, 0, 1,
	}
}

// Translation returns the translation component of the transform.
func (m Mat4) Translation() r3.Vec {
	return r3.Vec{X: m[3], Y: m[7], Z: m[11]}
}

// TransformPoint applies the transform to a point.
func (m Mat4) TransformPoint(p r3.Vec) r3.Vec {
	return r3.Vec{
		X: m[0]*p.X + m[1]*p.Y + m[2]*p.Z + m[3],
		Y: m[4]*p.X + m[5]*p.Y + m[6]*p.Z + m[7],
		Z: m[8]*p.X + m[9]*p.Y + m[10]*p.Z + m[11],
	}
}

// identityQuat is the no-rotation quaternion.
var identityQuat = quat.Number{Real: 1}

// rotationBetween returns the quaternion rotating unit direction from onto
// unit direction to. Degenerate inputs (zero vectors, parallel directions)
// return the identity; antiparallel directions return a half-turn about an
// arbitrary perpendicular axis.
func rotationBetween(from, to r3.Vec) quat.Number {
	if r3.Norm(from) == 0 || r3.Norm(to) == 0 {
		return identityQuat
	}
	f := r3.Unit(from)
	t := r3.Unit(to)
	d := r3.Dot(f, t)

	if d > 1-1e-12 {
		return identityQuat
	}
	if d < -1+1e-12 {
		// Any axis perpendicular to f works for a half-turn.
		axis := r3.Cross(f, r3.Vec{X: 1})
		if r3.Norm(axis) < 1e-12 {
			axis = r3.Cross(f, r3.Vec{Y: 1})
		}
		return quat.Number(r3.NewRotation(math.Pi, r3.Unit(axis)))
	}

	axis := r3.Unit(r3.Cross(f, t))
	angle := math.Acos(clamp(d, -1, 1))
	return quat.Number(r3.NewRotation(angle, axis))
}

// rotateAbout returns the quaternion for a rotation of angle radians about
// the given axis (need not be unit length).
func rotateAbout(angle float64, axis r3.Vec) quat.Number {
	if r3.Norm(axis) == 0 {
		return identityQuat
	}
	return quat.Number(r3.NewRotation(angle, r3.Unit(axis)))
}

// eulerFromQuat decomposes a unit quaternion into intrinsic X-Y-Z Euler
// angles (radians), returned as a vector of per-axis angles. Used when a
// patch retires: falling bodies integrate Euler rates, not quaternions.
func eulerFromQuat(q quat.Number) r3.Vec {
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag

	sinX := 2 * (w*x + y*z)
	cosX := 1 - 2*(x*x+y*y)
	ax := math.Atan2(sinX, cosX)

	sinY := 2 * (w*y - z*x)
	var ay float64
	if math.Abs(sinY) >= 1 {
		ay = math.Copysign(math.Pi/2, sinY) // gimbal-lock pole
	} else {
		ay = math.Asin(sinY)
	}

	sinZ := 2 * (w*z + x*y)
	cosZ := 1 - 2*(y*y+z*z)
	az := math.Atan2(sinZ, cosZ)

	return r3.Vec{X: ax, Y: ay, Z: az}
}

// quatFromEuler rebuilds a quaternion from intrinsic X-Y-Z Euler angles.
// Inverse of eulerFromQuat away from the gimbal-lock poles.
func quatFromEuler(e r3.Vec) quat.Number {
	qx := quat.Number(r3.NewRotation(e.X, r3.Vec{X: 1}))
	qy := quat.Number(r3.NewRotation(e.Y, r3.Vec{Y: 1}))
	qz := quat.Number(r3.NewRotation(e.Z, r3.Vec{Z: 1}))
	return quat.Mul(qz, quat.Mul(qy, qx))
}
