package display

import "github.com/pkg/errors"

var (
	// ErrMissingInput is when no calibration or no image has arrived yet.
	ErrMissingInput = errors.New("no calibration or image received")

	// ErrTimeSyncMismatch is when exact time-syncing is active and the
	// available image's timestamp does not equal the visualization clock.
	ErrTimeSyncMismatch = errors.New("time-syncing active and no image at current timestamp")
)
