// Package transform builds the model, view and projection matrices the
// exercises feed to their shaders.
package transform

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	FOV  = 45.0
	Near = 0.1
	Far  = 100.0
)

// Perspective returns a 45° projection for a framebuffer of the given size.
// A zero height (minimised window) is treated as 1.
func Perspective(width, height int) mgl32.Mat4 {
	if height <= 0 {
		height = 1
	}
	aspect := float32(width) / float32(height)
	return mgl32.Perspective(mgl32.DegToRad(FOV), aspect, Near, Far)
}

// View moves the scene away from the camera along -z.
func View(distance float32) mgl32.Mat4 {
	return mgl32.Translate3D(0, 0, -distance)
}

// Tilt lays a quad back onto the floor: a -55° rotation about the x axis.
func Tilt() mgl32.Mat4 {
	return mgl32.HomogRotate3DX(mgl32.DegToRad(-55))
}

// Spin rotates about axis by degPerSec degrees for every second of t.
func Spin(t float32, degPerSec float32, axis mgl32.Vec3) mgl32.Mat4 {
	return mgl32.HomogRotate3D(mgl32.DegToRad(t*degPerSec), axis.Normalize())
}

// Orbit is the transformations exercise: move to the bottom right corner
// and keep rotating about z.
func Orbit(t float32) mgl32.Mat4 {
	return mgl32.Translate3D(0.5, -0.5, 0).Mul4(mgl32.HomogRotate3DZ(t))
}

// Pulse maps t onto [0, 1] with a sine wave.
func Pulse(t float32) float32 {
	return math32.Sin(t)/2 + 0.5
}

// CubePositions are the world positions of the cubes in the
// multiple-cubes exercise.
var CubePositions = []mgl32.Vec3{
	{0.0, 0.0, 0.0},
	{2.0, 5.0, -15.0},
	{-1.5, -2.2, -2.5},
	{-3.8, -2.0, -12.3},
	{2.4, -0.4, -3.5},
	{-1.7, 3.0, -7.5},
	{1.3, -2.0, -2.5},
	{1.5, 2.0, -2.5},
	{1.5, 0.2, -1.5},
	{-1.3, 1.0, -1.5},
}

// CubeModel places cube i at pos, rotated 20° per index about (1, 0.3, 0.5).
func CubeModel(i int, pos mgl32.Vec3) mgl32.Mat4 {
	angle := mgl32.DegToRad(20 * float32(i))
	return mgl32.Translate3D(pos.X(), pos.Y(), pos.Z()).
		Mul4(mgl32.HomogRotate3D(angle, mgl32.Vec3{1, 0.3, 0.5}.Normalize()))
}
