// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package camera provides a perspective camera that maps between
// pixels and world rays, and orbit controls that move it.
package camera

import (
	"image"

	"cogentcore.org/core/math32"
)

// Camera is a perspective camera looking at Target.
type Camera struct {

	// FOV is the vertical field of view in degrees.
	FOV float32

	// Aspect is the viewport width over height.
	Aspect float32

	Near float32
	Far  float32

	Pos    math32.Vector3
	Target math32.Vector3
	Up     math32.Vector3
}

// New returns a camera at the origin looking down -Z.
func New(fov, aspect, near, far float32) *Camera {
	return &Camera{
		FOV:    fov,
		Aspect: aspect,
		Near:   near,
		Far:    far,
		Target: math32.Vec3(0, 0, -1),
		Up:     math32.Vec3(0, 1, 0),
	}
}

// Resize sets the aspect ratio for a viewport of the given size.
// Degenerate sizes are ignored.
func (c *Camera) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
}

// Distance returns the distance from the camera to its target.
func (c *Camera) Distance() float32 {
	return c.Target.Sub(c.Pos).Length()
}

// Basis returns the unit forward, right and up vectors of the view.
func (c *Camera) Basis() (fwd, right, up math32.Vector3) {
	fwd = c.Target.Sub(c.Pos).Normal()
	right = fwd.Cross(c.Up).Normal()
	up = right.Cross(fwd)
	return
}

// halfHeight is the tangent of half the vertical field of view.
func (c *Camera) halfHeight() float32 {
	return math32.Tan(math32.DegToRad(c.FOV) / 2)
}

// NDC returns the normalized device coordinates of a pixel
// position in a viewport of the given size: x right, y up, both in [-1, 1].
func NDC(pos, size image.Point) math32.Vector2 {
	if size.X <= 0 || size.Y <= 0 {
		return math32.Vector2{}
	}
	return math32.Vec2(2*float32(pos.X)/float32(size.X)-1, 1-2*float32(pos.Y)/float32(size.Y))
}

// RayFromNDC returns the world ray from the camera through the
// given normalized device coordinates.
func (c *Camera) RayFromNDC(ndc math32.Vector2) math32.Ray {
	fwd, right, up := c.Basis()
	hh := c.halfHeight()
	dir := fwd.Add(right.MulScalar(ndc.X * hh * c.Aspect)).Add(up.MulScalar(ndc.Y * hh)).Normal()
	return math32.Ray{Origin: c.Pos, Dir: dir}
}

// RayFromPixel returns the world ray through a pixel position
// in a viewport of the given size.
func (c *Camera) RayFromPixel(pos, size image.Point) math32.Ray {
	return c.RayFromNDC(NDC(pos, size))
}

// Project maps a world point to pixel coordinates in a viewport of the
// given size. It returns false for points behind the camera.
func (c *Camera) Project(p math32.Vector3, size image.Point) (math32.Vector2, bool) {
	fwd, right, up := c.Basis()
	rel := p.Sub(c.Pos)
	z := rel.Dot(fwd)
	if z <= 0 {
		return math32.Vector2{}, false
	}
	hh := c.halfHeight()
	nx := rel.Dot(right) / (z * hh * c.Aspect)
	ny := rel.Dot(up) / (z * hh)
	return math32.Vec2((nx+1)/2*float32(size.X), (1-ny)/2*float32(size.Y)), true
}

// WorldPerPixel returns the world distance spanned by one pixel at
// the given depth along the view direction, for a viewport height.
func (c *Camera) WorldPerPixel(depth float32, height int) float32 {
	if height <= 0 {
		return 0
	}
	return 2 * depth * c.halfHeight() / float32(height)
}

// LinearDepth returns the depth of a world point normalized between
// the near (0) and far (1) planes.
func (c *Camera) LinearDepth(p math32.Vector3) float32 {
	fwd, _, _ := c.Basis()
	z := p.Sub(c.Pos).Dot(fwd)
	return math32.Clamp((z-c.Near)/(c.Far-c.Near), 0, 1)
}

// LinearizeDepth converts a depth buffer value written through a
// [math32.Matrix4.SetPerspective] projection with the given planes
// into the normalized linear depth of [Camera.LinearDepth].
// The buffer holds clip z over w as is, so 1 is the far plane.
func LinearizeDepth(d, near, far float32) float32 {
	den := (far + near) - d*(far-near)
	if den <= 0 {
		return 1
	}
	z := 2 * far * near / den
	return math32.Clamp((z-near)/(far-near), 0, 1)
}
