package src

import "errors"

// Fatal validation errors. All of them abort the run before or during
// plan execution; only a missing metric column (handled inside Aggregate)
// is recoverable.
var (
	ErrMissingTool     = errors.New("required tool not found")
	ErrFileNotFound    = errors.New("file does not exist")
	ErrRange           = errors.New("position/duration exceed reference video length")
	ErrInvalidGeometry = errors.New("invalid crop")
	ErrCropMismatch    = errors.New("crop mismatch between reference video and distorted video")
	ErrModelNotFound   = errors.New("model file does not exist")
	ErrOutputExists    = errors.New("output file already exists")
)
