// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"cogentcore.org/core/math32"
)

// Quat returns the container rotation, composed as
// Rx * Ry * Rz from the [Container.Rotation] angles.
// [math32.NewQuatEuler] composes the other way around.
func (c *Container) Quat() math32.Quat {
	q := math32.NewQuatAxisAngle(math32.Vec3(1, 0, 0), c.Rotation.X)
	q = q.Mul(math32.NewQuatAxisAngle(math32.Vec3(0, 1, 0), c.Rotation.Y))
	return q.Mul(math32.NewQuatAxisAngle(math32.Vec3(0, 0, 1), c.Rotation.Z))
}

// ToWorld maps a point in mesh-local space to world space.
func (ms *Mesh) ToWorld(p math32.Vector3) math32.Vector3 {
	c := ms.Container
	return p.Add(ms.Offset).Mul(c.Scale).MulQuat(c.Quat()).Add(c.Group.Pos)
}

// toLocal maps a world ray into mesh-local space. The direction is
// not renormalized, so ray parameters are preserved.
func (ms *Mesh) toLocal(ray math32.Ray) math32.Ray {
	c := ms.Container
	inv := c.Quat()
	inv.SetInverse()
	o := ray.Origin.Sub(c.Group.Pos).MulQuat(inv).Div(c.Scale).Sub(ms.Offset)
	d := ray.Dir.MulQuat(inv).Div(c.Scale)
	return math32.Ray{Origin: o, Dir: d}
}

// LocalBounds returns the bounding box of the geometry in mesh space.
func (ms *Mesh) LocalBounds() math32.Box3 {
	return ms.Geometry.Bounds()
}

// WorldBox returns the world axis aligned bounding box of the mesh.
func (ms *Mesh) WorldBox() math32.Box3 {
	c := ms.Container
	b := ms.LocalBounds().Translate(ms.Offset)
	b = math32.Box3{Min: b.Min.Mul(c.Scale), Max: b.Max.Mul(c.Scale)}
	return b.MulQuat(c.Quat()).Translate(c.Group.Pos)
}

// IntersectRay tests the ray against the oriented bounding box of the
// mesh and returns the world distance from the ray origin to the hit.
func (ms *Mesh) IntersectRay(ray math32.Ray) (float32, bool) {
	lr := ms.toLocal(ray)
	pt, ok := lr.IntersectBox(ms.LocalBounds())
	if !ok {
		return 0, false
	}
	return ms.ToWorld(pt).Sub(ray.Origin).Length(), true
}
