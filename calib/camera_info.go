// Package calib holds the camera calibration message consumed by the camera
// view display, along with helpers for validating and interpreting it.
package calib

import (
	"math"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrMalformedCalibration is when a calibration's dimensions or focal
	// lengths cannot be resolved into something usable.
	ErrMalformedCalibration = errors.New("malformed camera calibration")

	// ErrInvalidFloatData is when a calibration array or a value derived from
	// one contains NaNs or Infs.
	ErrInvalidFloatData = errors.New("invalid floating point values (nans or infs)")
)

// CameraInfo mirrors a camera calibration message. The projection matrix P is
// 3x4 row-major with row0=[fx,0,cx,tx'] and row1=[0,fy,cy,ty'].
type CameraInfo struct {
	Width           int         `json:"width"`
	Height          int         `json:"height"`
	FrameID         string      `json:"frame_id"`
	Timestamp       time.Time   `json:"timestamp,omitempty"`
	DistortionModel string      `json:"distortion_model,omitempty"`
	D               []float64   `json:"d"`
	K               [9]float64  `json:"k"`
	R               [9]float64  `json:"r"`
	P               [12]float64 `json:"p"`
}

// Fx returns the horizontal focal length, in pixels.
func (ci *CameraInfo) Fx() float64 { return ci.P[0] }

// Fy returns the vertical focal length, in pixels.
func (ci *CameraInfo) Fy() float64 { return ci.P[5] }

// Cx returns the horizontal principal point coordinate, in pixels.
func (ci *CameraInfo) Cx() float64 { return ci.P[2] }

// Cy returns the vertical principal point coordinate, in pixels.
func (ci *CameraInfo) Cy() float64 { return ci.P[6] }

// BaselineOffsets returns the translation of this camera relative to the
// calibration's reference camera (e.g. a stereo baseline), derived from the
// fourth column of P. Fails if either focal length is zero, since the offsets
// would otherwise silently become NaN or Inf.
func (ci *CameraInfo) BaselineOffsets() (tx, ty float64, err error) {
	if ci.Fx() == 0 || ci.Fy() == 0 {
		return 0, 0, errors.Wrapf(ErrMalformedCalibration, "zero focal length (fx=%v, fy=%v)", ci.Fx(), ci.Fy())
	}
	tx = -1 * (ci.P[3] / ci.Fx())
	ty = -1 * (ci.P[7] / ci.Fy())
	return tx, ty, nil
}

// ResolveDimensions returns the image dimensions to use for projection math.
// A malformed calibration may carry zero width or height; in that case the
// decoded image's own dimensions are substituted. If a dimension still cannot
// be resolved, ErrMalformedCalibration is returned.
func (ci *CameraInfo) ResolveDimensions(imgWidth, imgHeight int) (int, int, error) {
	width, height := ci.Width, ci.Height
	if width == 0 {
		width = imgWidth
	}
	if height == 0 {
		height = imgHeight
	}
	if width == 0 || height == 0 {
		return 0, 0, errors.Wrap(ErrMalformedCalibration,
			"could not determine width/height of image (either width or height is 0)")
	}
	return width, height, nil
}

// ValidateFloats reports whether every numeric element of the calibration is
// finite. Pure predicate; the caller reports status.
func ValidateFloats(ci *CameraInfo) bool {
	return validateFloatSlice(ci.D) &&
		validateFloatSlice(ci.K[:]) &&
		validateFloatSlice(ci.R[:]) &&
		validateFloatSlice(ci.P[:])
}

func validateFloatSlice(values []float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// CheckValid is like ValidateFloats but names the offending arrays, for logs.
func (ci *CameraInfo) CheckValid() error {
	if ci == nil {
		return errors.Wrap(ErrMalformedCalibration, "no calibration")
	}
	var err error
	for _, arr := range []struct {
		name   string
		values []float64
	}{
		{"D", ci.D},
		{"K", ci.K[:]},
		{"R", ci.R[:]},
		{"P", ci.P[:]},
	} {
		if !validateFloatSlice(arr.values) {
			err = multierr.Append(err, errors.Wrapf(ErrInvalidFloatData, "calibration array %s", arr.name))
		}
	}
	return err
}

// CameraMatrix returns the 3x3 intrinsic matrix derived from P:
// [[fx 0 cx],
//
//	[0 fy cy],
//	[0 0  1]]
func (ci *CameraInfo) CameraMatrix() *mat.Dense {
	if ci == nil {
		return nil
	}
	cameraMatrix := mat.NewDense(3, 3, nil)
	cameraMatrix.Set(0, 0, ci.Fx())
	cameraMatrix.Set(1, 1, ci.Fy())
	cameraMatrix.Set(0, 2, ci.Cx())
	cameraMatrix.Set(1, 2, ci.Cy())
	cameraMatrix.Set(2, 2, 1)
	return cameraMatrix
}
