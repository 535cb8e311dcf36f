// Package display implements the camera view display: it keeps a virtual
// render camera synchronized with a physical camera's calibration and
// republishes what that camera sees overlaid on live scene geometry.
package display

import (
	"fmt"
	"strings"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/atomic"

	"go.viam.com/camview/calib"
	"go.viam.com/camview/spatialmath"
	"go.viam.com/camview/video"
)

// The camera is parked far away from the scene whenever there is nothing to
// show.
const parkedCoordinate = 999999

// Dependencies are the host collaborators a Display drives.
type Dependencies struct {
	Clock      ClockSource
	Transforms TransformResolver
	Images     ImageSource
	Status     StatusSink
	Target     RenderTarget
	// Publisher is optional; when set, rendered frames are republished on the
	// configured topic.
	Publisher  *video.Publisher
}

func (deps Dependencies) check() error {
	if deps.Clock == nil {
		return errors.New("need a clock source")
	}
	if deps.Transforms == nil {
		return errors.New("need a transform resolver")
	}
	if deps.Images == nil {
		return errors.New("need an image source")
	}
	if deps.Status == nil {
		return errors.New("need a status sink")
	}
	if deps.Target == nil {
		return errors.New("need a render target")
	}
	return nil
}

// Display is a camera view synchronized with live calibration. The host
// drives it with one Update per render tick; a calibration subscription
// feeds HandleCameraInfo from its own goroutine.
type Display struct {
	conf   Config
	logger golog.Logger

	clock      ClockSource
	transforms TransformResolver
	images     ImageSource
	status     StatusSink
	target     RenderTarget
	publisher  *video.Publisher

	caminfo     Mailbox[calib.CameraInfo]
	forceRender atomic.Bool

	// calibOK mirrors whether the last update produced a usable camera; it
	// gates quad visibility during the next render pass.
	calibOK bool
	lastSeq uint64
}

// New returns a Display for the given config and host collaborators.
func New(conf Config, deps Dependencies, logger golog.Logger) (*Display, error) {
	if err := conf.Validate("display"); err != nil {
		return nil, err
	}
	if err := deps.check(); err != nil {
		return nil, err
	}

	d := &Display{
		conf:       conf,
		logger:     logger,
		clock:      deps.Clock,
		transforms: deps.Transforms,
		images:     deps.Images,
		status:     deps.Status,
		target:     deps.Target,
		publisher:  deps.Publisher,
	}

	d.Clear()

	if conf.CalibrationFile != "" {
		info, err := calib.ReadCameraInfoFromFile(conf.CalibrationFile)
		if err != nil {
			return nil, err
		}
		d.caminfo.Store(info)
	}
	if d.publisher != nil && conf.PublishTopic != "" {
		d.publisher.Advertise(conf.PublishTopic)
	}
	return d, nil
}

// HandleCameraInfo latches the most recent calibration. Safe to call from the
// subscription goroutine while the render loop is reading.
func (d *Display) HandleCameraInfo(info *calib.CameraInfo) {
	d.caminfo.Store(info)
}

// ForceRender requests a camera update on the next tick even if no new image
// has arrived, e.g. after a property change.
func (d *Display) ForceRender() {
	d.forceRender.Store(true)
}

// Update is the per-tick entry point. It re-derives the camera pose,
// projection, and screen rectangles when a new image is available; a failed
// gate skips the tick and leaves the previous camera in place.
func (d *Display) Update() {
	img, hasImage := d.images.Latest()
	newFrame := hasImage && img.Seq != d.lastSeq
	if !newFrame && !d.forceRender.Load() {
		return
	}
	d.forceRender.Store(false)

	d.calibOK = d.updateCamera(img, hasImage)
	if hasImage {
		d.lastSeq = img.Seq
	}
}

func (d *Display) updateCamera(img ImageFrame, hasImage bool) bool {
	info := d.caminfo.Load()

	if err := gateFrame(info, hasImage, d.clock.SyncMode(), d.clock.Now(), img.Timestamp); err != nil {
		switch {
		case errors.Is(err, ErrMissingInput):
			// The status channels already say what is missing.
		case errors.Is(err, calib.ErrInvalidFloatData):
			d.status.SetStatus(StatusCameraInfo, StatusError,
				"Contains invalid floating point values (nans or infs)")
		case errors.Is(err, ErrTimeSyncMismatch):
			d.status.SetStatus(StatusTime, StatusWarn, err.Error())
		}
		return false
	}

	raw, err := d.transforms.Transform(img.FrameID, img.Timestamp)
	if err != nil {
		d.logger.Debugw("no transform for camera frame; skipping tick",
			"frame", img.FrameID, "error", err)
		return false
	}

	width, height, err := info.ResolveDimensions(img.Width, img.Height)
	if err != nil {
		d.status.SetStatus(StatusCameraInfo, StatusError, err.Error())
		return false
	}
	if info.Width == 0 || info.Height == 0 {
		d.logger.Debugw("malformed calibration; substituting image dimensions",
			"camera", d.conf.CameraTopic)
	}

	pose, err := ResolveCameraPose(raw, info, img)
	if err != nil {
		d.status.SetStatus(StatusCameraInfo, StatusError, err.Error())
		return false
	}

	winWidth, winHeight := d.target.WindowSize()
	zoomX, zoomY := FitAspect(
		float64(width), float64(height),
		info.Fx(), info.Fy(),
		float64(winWidth), float64(winHeight),
	)

	d.target.SetCameraPose(pose)
	d.target.SetProjection(BuildProjection(
		info.Fx(), info.Fy(), info.Cx(), info.Cy(),
		float64(width), float64(height), zoomX, zoomY,
	))

	corners := FitCorners(zoomX, zoomY)
	d.target.SetScreenRect(LayerBackground, corners)
	d.target.SetScreenRect(LayerOverlay, corners)

	d.status.SetStatus(StatusCameraInfo, StatusOk, "ok")
	d.status.SetStatus(StatusTime, StatusOk, "ok")
	return true
}

// PreRender sets the video quads' visibility for the coming render pass.
func (d *Display) PreRender() {
	pos := d.conf.ImagePosition
	d.target.SetLayerVisible(LayerBackground,
		d.calibOK && (pos == ImagePositionBackground || pos == ImagePositionBoth))
	d.target.SetLayerVisible(LayerOverlay,
		d.calibOK && (pos == ImagePositionOverlay || pos == ImagePositionBoth))
}

// RenderComplete receives the rendered pixel buffer and republishes it. The
// buffer must be sized exactly to the rendered window; mismatched captures
// (e.g. mid-resize) are dropped rather than padded.
func (d *Display) RenderComplete(width, height int, rgba []byte) {
	d.target.SetLayerVisible(LayerBackground, false)
	d.target.SetLayerVisible(LayerOverlay, false)
	if d.publisher == nil {
		return
	}
	if err := d.publisher.Publish(width, height, rgba); err != nil {
		d.logger.Debugw("dropping rendered frame", "error", err)
	}
}

// Clear blanks the cached calibration and parks the camera until new data
// arrives.
func (d *Display) Clear() {
	d.caminfo.Clear()
	d.calibOK = false
	d.forceRender.Store(true)

	d.status.SetStatus(StatusCameraInfo, StatusWarn,
		fmt.Sprintf("No CameraInfo received on [%s]. Topic may not exist.",
			cameraInfoTopic(d.conf.CameraTopic)))
	d.status.SetStatus(StatusImage, StatusWarn, "No Image received")

	d.target.SetCameraPose(spatialmath.NewPose(
		r3.Vector{X: parkedCoordinate, Y: parkedCoordinate, Z: parkedCoordinate},
		spatialmath.NewZeroRotation(),
	))
}

// Close shuts down outbound publishing.
func (d *Display) Close() error {
	if d.publisher != nil {
		d.publisher.Shutdown()
	}
	return nil
}

// cameraInfoTopic derives the calibration topic from an image topic the way
// image pipelines name them: the last topic element becomes "camera_info".
func cameraInfoTopic(imageTopic string) string {
	idx := strings.LastIndex(imageTopic, "/")
	if idx < 0 {
		return "camera_info"
	}
	return imageTopic[:idx+1] + "camera_info"
}
