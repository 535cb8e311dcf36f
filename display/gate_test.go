package display

import (
	"math"
	"testing"
	"time"

	"github.com/pkg/errors"
	"go.viam.com/test"

	"go.viam.com/camview/calib"
)

func TestGateFrameMissingInput(t *testing.T) {
	now := time.Unix(5, 0)

	err := gateFrame(nil, true, SyncApprox, now, now)
	test.That(t, errors.Is(err, ErrMissingInput), test.ShouldBeTrue)

	err = gateFrame(testCameraInfo(), false, SyncApprox, now, now)
	test.That(t, errors.Is(err, ErrMissingInput), test.ShouldBeTrue)

	err = gateFrame(nil, false, SyncExact, now, now)
	test.That(t, errors.Is(err, ErrMissingInput), test.ShouldBeTrue)
}

func TestGateFrameInvalidFloats(t *testing.T) {
	info := testCameraInfo()
	info.K[0] = math.NaN()
	now := time.Unix(5, 0)

	err := gateFrame(info, true, SyncApprox, now, now)
	test.That(t, errors.Is(err, calib.ErrInvalidFloatData), test.ShouldBeTrue)
}

func TestGateFrameExactSync(t *testing.T) {
	info := testCameraInfo()
	vizTime := time.Unix(5, 0)
	imageStamp := vizTime.Add(100 * time.Millisecond)

	err := gateFrame(info, true, SyncExact, vizTime, imageStamp)
	test.That(t, errors.Is(err, ErrTimeSyncMismatch), test.ShouldBeTrue)
	test.That(t, err.Error(), test.ShouldContainSubstring, "5.000")

	// exact equality passes; there is no tolerance
	test.That(t, gateFrame(info, true, SyncExact, vizTime, vizTime), test.ShouldBeNil)

	// even a nanosecond off fails
	err = gateFrame(info, true, SyncExact, vizTime, vizTime.Add(time.Nanosecond))
	test.That(t, errors.Is(err, ErrTimeSyncMismatch), test.ShouldBeTrue)

	// approximate mode does not care
	test.That(t, gateFrame(info, true, SyncApprox, vizTime, imageStamp), test.ShouldBeNil)
}

func TestCameraInfoTopic(t *testing.T) {
	test.That(t, cameraInfoTopic("/front/image_raw"), test.ShouldEqual, "/front/camera_info")
	test.That(t, cameraInfoTopic("image_raw"), test.ShouldEqual, "camera_info")
	test.That(t, cameraInfoTopic("/image"), test.ShouldEqual, "/camera_info")
}
