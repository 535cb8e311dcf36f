package display

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/camview/calib"
	"go.viam.com/camview/spatialmath"
)

// ResolveCameraPose derives the virtual camera's world pose from a raw frame
// transform and the camera calibration. The raw orientation is corrected from
// the vision convention (Z forward) to the render-engine convention (Z out),
// then the position is offset along the camera's local right and down axes by
// the calibration's baseline translation.
func ResolveCameraPose(raw spatialmath.Pose, info *calib.CameraInfo, img ImageFrame) (spatialmath.Pose, error) {
	orientation := quat.Mul(raw.Orientation, spatialmath.RotationAboutXPi())

	if _, _, err := info.ResolveDimensions(img.Width, img.Height); err != nil {
		return spatialmath.Pose{}, err
	}

	tx, ty, err := info.BaselineOffsets()
	if err != nil {
		return spatialmath.Pose{}, err
	}

	position := raw.Point
	right := spatialmath.RotateVector(orientation, r3.Vector{X: 1})
	position = position.Add(right.Mul(tx))

	down := spatialmath.RotateVector(orientation, r3.Vector{Y: 1})
	position = position.Add(down.Mul(ty))

	if !spatialmath.VectorFinite(position) {
		return spatialmath.Pose{}, errors.Wrap(calib.ErrInvalidFloatData,
			"calibration P resulted in an invalid position calculation")
	}
	return spatialmath.NewPose(position, orientation), nil
}
