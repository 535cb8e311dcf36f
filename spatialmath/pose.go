package spatialmath

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// Pose is the position and orientation of a frame in world coordinates,
// resolved at some timestamp. The orientation is a unit quaternion.
type Pose struct {
	Point       r3.Vector
	Orientation quat.Number
}

// NewPose returns a Pose at the given point with the given orientation.
func NewPose(point r3.Vector, orientation quat.Number) Pose {
	return Pose{Point: point, Orientation: orientation}
}

// NewZeroPose returns a Pose at the origin with no rotation.
func NewZeroPose() Pose {
	return Pose{Orientation: NewZeroRotation()}
}

// IsFinite reports whether every component of the pose is finite.
func (p Pose) IsFinite() bool {
	return VectorFinite(p.Point) && QuatFinite(p.Orientation)
}

// PoseAlmostEqual determines if two poses are approximately the same.
func PoseAlmostEqual(a, b Pose, tol float64) bool {
	return a.Point.Sub(b.Point).Norm() < tol &&
		QuaternionAlmostEqual(a.Orientation, b.Orientation, tol)
}
