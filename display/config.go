package display

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/yosuke-furukawa/json5/encoding/json5"
	"go.viam.com/utils"
)

// ImagePosition controls where the live video quad is rendered relative to
// the 3D scene geometry.
type ImagePosition string

// The supported image rendering positions.
const (
	ImagePositionBackground ImagePosition = "background"
	ImagePositionOverlay    ImagePosition = "overlay"
	ImagePositionBoth       ImagePosition = "background and overlay"
)

// Config configures a camera view display.
type Config struct {
	// CameraTopic is the image topic the host subscribes to; the calibration
	// topic is derived from it by the host.
	CameraTopic     string        `json:"camera_topic"`
	// FixedFrame is the world frame transforms are resolved against.
	FixedFrame      string        `json:"fixed_frame"`
	// ImagePosition defaults to rendering the video both behind and over the
	// scene geometry.
	ImagePosition   ImagePosition `json:"image_position,omitempty"`
	// PublishTopic, if set, is where rendered frames are republished.
	PublishTopic    string        `json:"publish_topic,omitempty"`
	// CalibrationFile optionally pins a calibration for cameras that never
	// publish one.
	CalibrationFile string        `json:"calibration_file,omitempty"`
}

// Validate ensures all parts of the config are valid, filling in defaults.
func (conf *Config) Validate(path string) error {
	if conf.CameraTopic == "" {
		return errors.Errorf(`%s: "camera_topic" is required`, path)
	}
	if conf.FixedFrame == "" {
		return errors.Errorf(`%s: "fixed_frame" is required`, path)
	}
	switch conf.ImagePosition {
	case "":
		conf.ImagePosition = ImagePositionBoth
	case ImagePositionBackground, ImagePositionOverlay, ImagePositionBoth:
	default:
		return errors.Errorf(`%s: unknown "image_position" %q`, path, conf.ImagePosition)
	}
	return nil
}

// ReadConfig loads a display config from a user-authored JSON5 file.
func ReadConfig(path string) (*Config, error) {
	//nolint:gosec
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "error opening display config")
	}
	defer utils.UncheckedErrorFunc(f.Close)

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.Wrap(err, "error reading display config")
	}
	conf := &Config{}
	if err := json5.Unmarshal(data, conf); err != nil {
		return nil, errors.Wrap(err, "error parsing display config")
	}
	if err := conf.Validate(path); err != nil {
		return nil, err
	}
	return conf, nil
}
