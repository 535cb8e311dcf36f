package calib

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/yosuke-furukawa/json5/encoding/json5"
	"go.viam.com/utils"
)

// ReadCameraInfoFromFile loads a pinned calibration from a JSON5 file. Hosts
// use this to supply a fixed calibration for cameras that never publish one.
func ReadCameraInfoFromFile(path string) (*CameraInfo, error) {
	//nolint:gosec
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "error opening calibration file")
	}
	defer utils.UncheckedErrorFunc(f.Close)

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.Wrap(err, "error reading calibration file")
	}
	info := &CameraInfo{}
	if err := json5.Unmarshal(data, info); err != nil {
		return nil, errors.Wrap(err, "error parsing calibration file")
	}
	return info, nil
}
