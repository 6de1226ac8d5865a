package renderer

import "errors"

var (
	ErrInvalidFrameDims  = errors.New("renderer: frame width and height must be positive")
	ErrInvalidBlockSize  = errors.New("renderer: block size must be positive")
	ErrInvalidSampleRate = errors.New("renderer: sample rate must be at least 1")
	ErrInvalidWorkers    = errors.New("renderer: worker count must not be negative")
	ErrSceneNotDefined   = errors.New("renderer: no world defined")
	ErrCameraNotDefined  = errors.New("renderer: no camera defined")
	ErrMissingTexture    = errors.New("renderer: material references a texture that has not been loaded")
	ErrBlockOutOfFrame   = errors.New("renderer: block lies outside the frame")
)
