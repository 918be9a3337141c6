package tiltcard

import "math"

// DefaultCameraDistance is the distance, in pixels, between the viewer and
// the z=0 plane: an 8 inch camera location at 72 dpi.
const DefaultCameraDistance = 576.0

// rot3 is a 3x3 rotation matrix, row-major.
type rot3 [9]float64

var identityRot = rot3{1, 0, 0, 0, 1, 0, 0, 0, 1}

func (r rot3) mul(o rot3) rot3 {
	var out rot3
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			out[row*3+col] = r[row*3]*o[col] + r[row*3+1]*o[3+col] + r[row*3+2]*o[6+col]
		}
	}
	return out
}

// Camera projects 3D rotations of the z=0 plane into a 2D Matrix.
//
// Screen coordinates are used throughout: X grows right, Y grows down, and Z
// grows away from the viewer. The viewer sits at z = -Distance looking at the
// origin, so points pushed to positive Z shrink toward the origin.
//
// Rotations accumulate like a matrix stack. Save and Restore bracket a set of
// rotations so a single Camera can be reused every frame.
type Camera struct {
	// Distance is the viewer's distance from the z=0 plane in pixels.
	// Values <= 0 fall back to DefaultCameraDistance.
	Distance float64

	current rot3
	stack   []rot3
}

// NewCamera creates a camera at DefaultCameraDistance with no rotation.
func NewCamera() *Camera {
	return &Camera{Distance: DefaultCameraDistance, current: identityRot}
}

// ensure makes the zero-value Camera usable.
func (c *Camera) ensure() {
	if c.current == (rot3{}) {
		c.current = identityRot
	}
}

// Save pushes the current rotation onto the stack.
func (c *Camera) Save() {
	c.ensure()
	c.stack = append(c.stack, c.current)
}

// Restore pops the most recently saved rotation. No-op when nothing is saved.
func (c *Camera) Restore() {
	if len(c.stack) == 0 {
		return
	}
	c.current = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

// Reset clears the rotation and the save stack.
func (c *Camera) Reset() {
	c.current = identityRot
	c.stack = c.stack[:0]
}

// RotateX rotates about the horizontal axis by deg degrees. Positive values
// move the top half (negative Y) away from the viewer.
func (c *Camera) RotateX(deg float64) {
	if deg == 0 {
		return
	}
	c.ensure()
	sin, cos := math.Sincos(deg * math.Pi / 180)
	c.current = c.current.mul(rot3{
		1, 0, 0,
		0, cos, sin,
		0, -sin, cos,
	})
}

// RotateY rotates about the vertical axis by deg degrees. Positive values
// move the right half (positive X) away from the viewer.
func (c *Camera) RotateY(deg float64) {
	if deg == 0 {
		return
	}
	c.ensure()
	sin, cos := math.Sincos(deg * math.Pi / 180)
	c.current = c.current.mul(rot3{
		cos, 0, -sin,
		0, 1, 0,
		sin, 0, cos,
	})
}

// Matrix projects the current rotation of the z=0 plane into a 2D
// homogeneous matrix centred on the origin.
func (c *Camera) Matrix() Matrix {
	c.ensure()
	d := c.Distance
	if d <= 0 {
		d = DefaultCameraDistance
	}
	r := c.current
	// A plane point (x, y, 0) rotates to (X, Y, Z) = (r0 x + r1 y, r3 x + r4 y,
	// r6 x + r7 y) and projects with scale d / (d + Z), i.e. w = 1 + Z/d.
	return Matrix{
		r[0], r[1], 0,
		r[3], r[4], 0,
		r[6] / d, r[7] / d, 1,
	}
}

// TiltMatrix is the full draw-time transform for a tilt of (rotX, rotY)
// degrees around pivot: camera projection, perspective damping, then pivot
// re-centring.
func TiltMatrix(cam *Camera, rotX, rotY, damping float64, pivot Vec2) Matrix {
	cam.Save()
	cam.RotateX(rotX)
	cam.RotateY(rotY)
	m := cam.Matrix()
	cam.Restore()
	return m.DampPerspective(damping).AboutPivot(pivot.X, pivot.Y)
}
