package display

import (
	"time"

	"github.com/pkg/errors"

	"go.viam.com/camview/calib"
)

// gateFrame decides whether the inputs available this tick are renderable.
// Any failure aborts the rest of the pipeline for the tick; the previous
// camera pose stays in place so the last good frame remains displayed.
func gateFrame(info *calib.CameraInfo, hasImage bool, mode SyncMode, vizTime, imageStamp time.Time) error {
	if info == nil || !hasImage {
		return ErrMissingInput
	}
	if !calib.ValidateFloats(info) {
		return errors.Wrap(calib.ErrInvalidFloatData, "calibration")
	}
	// Exact equality, not tolerance-based.
	if mode == SyncExact && !vizTime.Equal(imageStamp) {
		return errors.Wrapf(ErrTimeSyncMismatch, "at timestamp %.3f",
			float64(vizTime.UnixNano())/float64(time.Second))
	}
	return nil
}
