// Package spatialmath defines the spatial mathematical operations needed to
// place a virtual camera in a rendered scene.
package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// NewZeroRotation returns a quaternion signifying no rotation.
func NewZeroRotation() quat.Number {
	return quat.Number{Real: 1}
}

// Normalize returns the unit quaternion pointing in the same direction as q.
func Normalize(q quat.Number) quat.Number {
	n := quat.Abs(q)
	if n == 0 {
		return NewZeroRotation()
	}
	return quat.Scale(1/n, q)
}

// QuatFromAxisAngle converts an axis and an angle in radians to a rotation
// quaternion. The axis need not be normalized.
func QuatFromAxisAngle(axis r3.Vector, theta float64) quat.Number {
	if axis.Norm() == 0 {
		return NewZeroRotation()
	}
	axis = axis.Normalize()
	s := math.Sin(theta / 2)
	return quat.Number{
		Real: math.Cos(theta / 2),
		Imag: axis.X * s,
		Jmag: axis.Y * s,
		Kmag: axis.Z * s,
	}
}

// RotationAboutXPi returns the fixed 180 degree rotation about the local X
// axis that converts a vision-convention camera (Z forward into the scene)
// into a render-engine camera (Z out of the screen).
func RotationAboutXPi() quat.Number {
	return QuatFromAxisAngle(r3.Vector{X: 1}, math.Pi)
}

// RotateVector rotates vector v by quaternion q via conjugation.
func RotateVector(q quat.Number, v r3.Vector) r3.Vector {
	p := quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}
	r := quat.Mul(quat.Mul(q, p), quat.Conj(q))
	return r3.Vector{X: r.Imag, Y: r.Jmag, Z: r.Kmag}
}

// QuaternionAlmostEqual determines if two quaternions represent approximately
// the same orientation, accounting for the double cover.
func QuaternionAlmostEqual(a, b quat.Number, tol float64) bool {
	diff := quat.Sub(a, b)
	sum := quat.Add(a, b)
	return quat.Abs(diff) < tol || quat.Abs(sum) < tol
}

// VectorFinite reports whether every component of v is finite.
func VectorFinite(v r3.Vector) bool {
	for _, c := range []float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// QuatFinite reports whether every component of q is finite.
func QuatFinite(q quat.Number) bool {
	for _, c := range []float64{q.Real, q.Imag, q.Jmag, q.Kmag} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
