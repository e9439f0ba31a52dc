// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gizmo

import (
	"image"

	"cogentcore.org/core/math32"
)

// Part is the world placement of one visible handle, for drawing it.
type Part struct {
	Handle *Handle

	// Center is the middle of the handle.
	Center math32.Vector3

	// End is the far end of an axis handle, and Center otherwise.
	End math32.Vector3

	// Radius is the world size of half the pick tolerance at the target.
	Radius float32
}

// pixelRay returns the camera ray through a sub-pixel position.
func (g *Translate) pixelRay(p math32.Vector2, size image.Point) math32.Ray {
	ndc := math32.Vec2(2*p.X/float32(size.X)-1, 1-2*p.Y/float32(size.Y))
	return g.Camera.RayFromNDC(ndc)
}

// closestOnLine returns the parameter s of the point from + s*dir
// closest to the ray. It fails for a line parallel to the ray.
func closestOnLine(from, dir math32.Vector3, ray math32.Ray) (float32, bool) {
	w := from.Sub(ray.Origin)
	a := dir.Dot(dir)
	b := dir.Dot(ray.Dir)
	c := ray.Dir.Dot(ray.Dir)
	d := dir.Dot(w)
	e := ray.Dir.Dot(w)
	den := a*c - b*b
	if math32.Abs(den) < 1e-8 {
		return 0, false
	}
	return (b*e - c*d) / den, true
}

// Parts returns the world placement of the visible handles for a
// viewport of the given size. Axis handles end where the screen
// segments of [Translate.HitTest] end, and plane handles sit on the
// hit corners. Handles seen edge on are left out.
func (g *Translate) Parts(size image.Point) []Part {
	if g.target == nil || size.X <= 0 || size.Y <= 0 {
		return nil
	}
	t := *g.target
	origin, ok := g.Camera.Project(t, size)
	if !ok {
		return nil
	}
	fwd, _, _ := g.Camera.Basis()
	radius := g.Tolerance / 2 * g.Camera.WorldPerPixel(t.Sub(g.Camera.Pos).Dot(fwd), size.Y)

	var parts []Part
	for i := range Handles {
		h := &Handles[i]
		if !g.HandleVisible(h) {
			continue
		}
		pt := Part{Handle: h, Center: t, End: t, Radius: radius}
		switch len(h.Axes) {
		case 1:
			dir, _ := g.axisScreen(origin, h.Axes[0], size)
			if dir == (math32.Vector2{}) {
				continue
			}
			s, ok := closestOnLine(t, h.Axes[0], g.pixelRay(origin.Add(dir.MulScalar(g.Size)), size))
			if !ok || s <= 0 {
				continue
			}
			pt.End = t.Add(h.Axes[0].MulScalar(s))
			pt.Center = t.Add(h.Axes[0].MulScalar(s / 2))
		case 2:
			d0, _ := g.axisScreen(origin, h.Axes[0], size)
			d1, _ := g.axisScreen(origin, h.Axes[1], size)
			ray := g.pixelRay(origin.Add(d0.Add(d1).MulScalar(g.Size/4)), size)
			n := h.Axes[0].Cross(h.Axes[1])
			den := ray.Dir.Dot(n)
			if math32.Abs(den) < 1e-6 {
				continue
			}
			k := t.Sub(ray.Origin).Dot(n) / den
			if k <= 0 {
				continue
			}
			pt.Center = ray.Origin.Add(ray.Dir.MulScalar(k))
			pt.End = pt.Center
		}
		parts = append(parts, pt)
	}
	return parts
}
