// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package camera

import (
	"context"
	"image"

	"cogentcore.org/core/math32"
	"github.com/maniartech/signals"
)

// Orbit rotates the camera around its target on pointer drags
// and dollies it on scroll.
type Orbit struct {
	Camera *Camera

	// Enabled gates all pointer handling. A translate gizmo
	// disables it while dragging.
	Enabled bool

	// RotateSpeed scales the rotation: a drag across the full
	// viewport height turns by 2*Pi*RotateSpeed.
	RotateSpeed float32

	// ZoomSpeed scales the dolly per scroll unit.
	ZoomSpeed float32

	MinDistance float32
	MaxDistance float32

	// Change is emitted after every camera move.
	Change signals.Signal[*Camera]

	dragging bool
	last     image.Point
}

// polarEps keeps the polar angle away from the poles,
// where the up vector is degenerate.
const polarEps = 1e-4

// NewOrbit returns enabled orbit controls for the camera.
func NewOrbit(c *Camera) *Orbit {
	return &Orbit{
		Camera:      c,
		Enabled:     true,
		RotateSpeed: 1,
		ZoomSpeed:   1,
		MaxDistance: math32.Inf(1),
		Change:      signals.NewSync[*Camera](),
	}
}

// spherical returns the camera offset from the target
// as radius, azimuth theta (around +Y from +Z) and polar phi (from +Y).
func (o *Orbit) spherical() (r, theta, phi float32) {
	off := o.Camera.Pos.Sub(o.Camera.Target)
	r = off.Length()
	if r == 0 {
		return 0, 0, 0
	}
	theta = math32.Atan2(off.X, off.Z)
	phi = math32.Acos(math32.Clamp(off.Y/r, -1, 1))
	return
}

func (o *Orbit) setSpherical(r, theta, phi float32) {
	phi = math32.Clamp(phi, polarEps, math32.Pi-polarEps)
	r = math32.Clamp(r, o.MinDistance, o.MaxDistance)
	sp := math32.Sin(phi)
	off := math32.Vec3(r*sp*math32.Sin(theta), r*math32.Cos(phi), r*sp*math32.Cos(theta))
	o.Camera.Pos = o.Camera.Target.Add(off)
	o.Change.Emit(context.Background(), o.Camera)
}

// Rotate turns the camera by the given azimuth and polar deltas, in radians.
func (o *Orbit) Rotate(dTheta, dPhi float32) {
	r, theta, phi := o.spherical()
	o.setSpherical(r, theta+dTheta, phi+dPhi)
}

// Dolly multiplies the target distance by scale.
func (o *Orbit) Dolly(scale float32) {
	if scale <= 0 {
		return
	}
	r, theta, phi := o.spherical()
	o.setSpherical(r*scale, theta, phi)
}

// Update re-applies the distance and polar limits and emits a change.
func (o *Orbit) Update() {
	r, theta, phi := o.spherical()
	o.setSpherical(r, theta, phi)
}

// PointerDown starts a rotation drag.
func (o *Orbit) PointerDown(pos image.Point) {
	if !o.Enabled {
		return
	}
	o.dragging = true
	o.last = pos
}

// PointerMove rotates during a drag, for a viewport of the given height.
func (o *Orbit) PointerMove(pos image.Point, height int) {
	if !o.Enabled || !o.dragging || height <= 0 {
		return
	}
	d := pos.Sub(o.last)
	o.last = pos
	if d == (image.Point{}) {
		return
	}
	k := 2 * math32.Pi * o.RotateSpeed / float32(height)
	o.Rotate(-k*float32(d.X), -k*float32(d.Y))
}

// PointerUp ends a drag.
func (o *Orbit) PointerUp() {
	o.dragging = false
}

// Dragging returns whether a rotation drag is in progress.
func (o *Orbit) Dragging() bool {
	return o.dragging
}

// Scroll dollies in for negative delta and out for positive delta.
func (o *Orbit) Scroll(delta float32) {
	if !o.Enabled || delta == 0 {
		return
	}
	scale := math32.Pow(0.95, o.ZoomSpeed)
	if delta > 0 {
		scale = 1 / scale
	}
	o.Dolly(scale)
}
