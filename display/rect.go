package display

// RectCorners are the normalized device coordinates of a full-screen video
// quad's corners.
type RectCorners struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// FitCorners rescales a full-screen quad symmetrically to
// [-zoomX, zoomX] x [-zoomY, zoomY], keeping the displayed video aspect
// consistent with the aspect-fit projection.
func FitCorners(zoomX, zoomY float64) RectCorners {
	return RectCorners{
		Left:   -1.0 * zoomX,
		Top:    1.0 * zoomY,
		Right:  1.0 * zoomX,
		Bottom: -1.0 * zoomY,
	}
}
