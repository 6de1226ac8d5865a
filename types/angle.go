package types

import "github.com/chewxy/math32"

// Convert degrees to radians.
func Deg2Rad(deg float32) float32 {
	return deg * math32.Pi / 180.0
}

// Convert radians to degrees.
func Rad2Deg(rad float32) float32 {
	return rad * 180.0 / math32.Pi
}
