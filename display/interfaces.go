package display

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"go.viam.com/camview/calib"
	"go.viam.com/camview/spatialmath"
)

// SyncMode is the visualization clock's time synchronization policy.
type SyncMode int

// The supported time synchronization policies.
const (
	// SyncApprox renders the latest image regardless of its timestamp.
	SyncApprox SyncMode = iota
	// SyncExact renders only when the image timestamp equals the
	// visualization clock exactly.
	SyncExact
)

// StatusLevel grades a status channel.
type StatusLevel int

// The levels a status channel can carry.
const (
	StatusOk StatusLevel = iota
	StatusWarn
	StatusError
)

func (l StatusLevel) String() string {
	switch l {
	case StatusOk:
		return "ok"
	case StatusWarn:
		return "warn"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// StatusName identifies a named status channel on the host panel.
type StatusName string

// The status channels the display reports on.
const (
	StatusCameraInfo StatusName = "Camera Info"
	StatusImage      StatusName = "Image"
	StatusTime       StatusName = "Time"
)

// StatusSink receives per-channel status reports from the display.
type StatusSink interface {
	SetStatus(name StatusName, level StatusLevel, message string)
}

// ClockSource provides the current visualization time and the active time
// synchronization policy.
type ClockSource interface {
	Now() time.Time
	SyncMode() SyncMode
}

// TransformResolver looks up the pose of a frame in fixed-frame coordinates
// at a given timestamp. It may fail if the frame graph has no path; the
// display treats that as "no pose available, skip tick."
type TransformResolver interface {
	Transform(frameID string, at time.Time) (spatialmath.Pose, error)
}

// ImageFrame describes the latest decoded image available to the display.
type ImageFrame struct {
	Width     int
	Height    int
	FrameID   string
	Timestamp time.Time
	// Seq increments once per decoded image.
	Seq       uint64
}

// ImageSource exposes the most recently decoded image, if any.
type ImageSource interface {
	Latest() (ImageFrame, bool)
}

// CalibrationSource delivers asynchronous calibration updates to a handler.
// The display's HandleCameraInfo satisfies the handler side.
type CalibrationSource interface {
	Subscribe(handler func(*calib.CameraInfo))
}

// Layer names one of the two full-screen video quads.
type Layer int

// The video quads the display manages.
const (
	LayerBackground Layer = iota
	LayerOverlay
)

// RenderTarget abstracts the render camera and window the display drives.
type RenderTarget interface {
	SetCameraPose(pose spatialmath.Pose)
	SetProjection(m mgl64.Mat4)
	// WindowSize returns the current window dimensions in pixels.
	WindowSize() (width, height int)
	SetScreenRect(layer Layer, corners RectCorners)
	SetLayerVisible(layer Layer, visible bool)
}
