package display

import "github.com/go-gl/mathgl/mgl64"

// Near and far clip distances for the virtual camera, in world units. These
// are fixed; they are not derived from the calibration.
const (
	nearPlane = 0.01
	farPlane  = 100.0
)

// FitAspect computes independent x/y zoom factors so an image with the given
// calibrated dimensions fits the window without distortion. The image aspect
// is corrected by the focal length ratio to account for non-square pixels.
// Exactly one factor is ever shrunk below 1; if either window dimension is
// zero the factors stay at 1.
func FitAspect(imgWidth, imgHeight, fx, fy, winWidth, winHeight float64) (float64, float64) {
	zoomX := 1.0
	zoomY := zoomX
	if winWidth == 0 || winHeight == 0 {
		return zoomX, zoomY
	}

	imgAspect := (imgWidth / fx) / (imgHeight / fy)
	winAspect := winWidth / winHeight

	if imgAspect > winAspect {
		zoomY = zoomY / imgAspect * winAspect
	} else {
		zoomX = zoomX / winAspect * imgAspect
	}
	return zoomX, zoomY
}

// BuildProjection derives the off-axis perspective projection matrix matching
// the camera intrinsics, scaled by the aspect-fit zoom factors. The shear
// terms shift the frustum so it matches the calibration's principal point
// offset; a centered principal point yields zero shear.
func BuildProjection(fx, fy, cx, cy, imgWidth, imgHeight, zoomX, zoomY float64) mgl64.Mat4 {
	var m mgl64.Mat4

	m.Set(0, 0, 2.0*fx/imgWidth*zoomX)
	m.Set(1, 1, 2.0*fy/imgHeight*zoomY)

	m.Set(0, 2, 2.0*(0.5-cx/imgWidth)*zoomX)
	m.Set(1, 2, 2.0*(cy/imgHeight-0.5)*zoomY)

	m.Set(2, 2, -(farPlane+nearPlane)/(farPlane-nearPlane))
	m.Set(2, 3, -2.0*farPlane*nearPlane/(farPlane-nearPlane))

	m.Set(3, 2, -1)

	return m
}
