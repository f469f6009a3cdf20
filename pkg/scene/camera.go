// Package scene provides a perspective camera and a sticker picker for
// resolving pointer drags against a rendered cube.
package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// PerspectiveCamera looks at the origin from Position with world +y up.
// It implements twisty.Camera.
type PerspectiveCamera struct {
	pos    mgl64.Vec3
	fovY   float64 // radians
	width  int
	height int
	near   float64
	far    float64

	view mgl64.Mat4
	proj mgl64.Mat4
}

// NewPerspectiveCamera creates a camera with a vertical field of view in
// degrees and a viewport in pixels.
func NewPerspectiveCamera(pos mgl64.Vec3, fovDeg float64, width, height int) *PerspectiveCamera {
	c := &PerspectiveCamera{
		fovY:   mgl64.DegToRad(fovDeg),
		width:  width,
		height: height,
		near:   0.1,
		far:    100,
	}
	c.SetPosition(pos)
	return c
}

func (c *PerspectiveCamera) Position() mgl64.Vec3 { return c.pos }

// SetPosition moves the camera. Positions straight above or below the
// origin are nudged toward +z so the view stays defined.
func (c *PerspectiveCamera) SetPosition(pos mgl64.Vec3) {
	if pos[0] == 0 && pos[2] == 0 {
		pos[2] = 1e-6
	}
	c.pos = pos
	c.update()
}

// Resize sets the viewport size in pixels.
func (c *PerspectiveCamera) Resize(width, height int) {
	c.width, c.height = width, height
	c.update()
}

// Orbit rotates the camera about the origin by yaw around world y, then by
// pitch toward the poles, keeping its distance. Pitch stops short of the
// poles.
func (c *PerspectiveCamera) Orbit(yaw, pitch float64) {
	r := c.pos.Len()
	elev := math.Asin(c.pos[1]/r) + pitch
	limit := math.Pi/2 - 0.01
	elev = mgl64.Clamp(elev, -limit, limit)
	azim := math.Atan2(c.pos[0], c.pos[2]) + yaw
	c.SetPosition(mgl64.Vec3{
		r * math.Cos(elev) * math.Sin(azim),
		r * math.Sin(elev),
		r * math.Cos(elev) * math.Cos(azim),
	})
}

func (c *PerspectiveCamera) update() {
	c.view = mgl64.LookAtV(c.pos, mgl64.Vec3{}, mgl64.Vec3{0, 1, 0})
	aspect := 1.0
	if c.height > 0 {
		aspect = float64(c.width) / float64(c.height)
	}
	c.proj = mgl64.Perspective(c.fovY, aspect, c.near, c.far)
}

// Project maps a world point to normalized device coordinates, y up.
func (c *PerspectiveCamera) Project(world mgl64.Vec3) mgl64.Vec2 {
	win := mgl64.Project(world, c.view, c.proj, 0, 0, c.width, c.height)
	return c.windowToNDC(win.Vec2())
}

// Ray returns the world-space ray through an NDC point, starting on the
// near plane.
func (c *PerspectiveCamera) Ray(ndc mgl64.Vec2) (origin, dir mgl64.Vec3, err error) {
	win := c.ndcToWindow(ndc)
	near, err := mgl64.UnProject(win.Vec3(0), c.view, c.proj, 0, 0, c.width, c.height)
	if err != nil {
		return origin, dir, err
	}
	far, err := mgl64.UnProject(win.Vec3(1), c.view, c.proj, 0, 0, c.width, c.height)
	if err != nil {
		return origin, dir, err
	}
	return near, far.Sub(near).Normalize(), nil
}

// PixelToNDC converts a pixel position, origin top-left, to normalized
// device coordinates.
func (c *PerspectiveCamera) PixelToNDC(x, y float64) mgl64.Vec2 {
	return mgl64.Vec2{
		2*x/float64(c.width) - 1,
		1 - 2*y/float64(c.height),
	}
}

func (c *PerspectiveCamera) windowToNDC(win mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{
		2*win[0]/float64(c.width) - 1,
		2*win[1]/float64(c.height) - 1,
	}
}

func (c *PerspectiveCamera) ndcToWindow(ndc mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{
		float64(c.width) * (ndc[0] + 1) / 2,
		float64(c.height) * (ndc[1] + 1) / 2,
	}
}
