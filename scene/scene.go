package scene

import (
	"github.com/achilleasa/lumen/types"
)

// The scene format version produced by this package.
const FormatVersion = "1.0.0"

// Render settings stored alongside a scene. Command-line flags may override
// them.
type Settings struct {
	Width  int
	Height int

	Sampler    string
	SampleRate int
	Filter     string

	Threads   int
	BlockSize int

	Background types.Color
	Seed       int64

	// Index of the camera to render from.
	Camera int
}

// The default render settings.
func DefaultSettings() Settings {
	return Settings{
		Width:      960,
		Height:     540,
		Sampler:    "stratified",
		SampleRate: 1,
		Filter:     "box",
		BlockSize:  32,
		Background: types.Black,
	}
}

// A scene combines a world with the settings used to render it.
type Scene struct {
	Version  string
	World    *World
	Settings Settings
}

// Create an empty scene with default settings.
func New() *Scene {
	return &Scene{
		Version:  FormatVersion,
		World:    NewWorld(),
		Settings: DefaultSettings(),
	}
}
