// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyzview

import (
	"image/color"

	"cogentcore.org/core/colors"
	"cogentcore.org/core/math32"
	"cogentcore.org/core/xyz"

	"github.com/aoscenes/aoscenes/gizmo"
)

// GizmoName is the reserved top-level group name for the gizmo handles.
const GizmoName = "gizmo"

// Unit meshes, scaled per handle.
const (
	gizmoAxisMesh   = GizmoName + "-axis"
	gizmoCenterMesh = GizmoName + "-center"
	gizmoPlaneMesh  = GizmoName + "-plane"
)

// ActiveHandleColor is the color of the handle being dragged.
var ActiveHandleColor = colors.Yellow

// handleColor returns the color of a handle. Planes take the color
// of the axis they are normal to.
func handleColor(name string) color.RGBA {
	switch name {
	case "X", "YZ":
		return colors.Red
	case "Y", "XZ":
		return colors.Green
	case "Z", "XY":
		return colors.Blue
	}
	return colors.White
}

// gizmoMeshes are the unit meshes of the handles.
type gizmoMeshes struct {
	axis, center, plane xyz.Mesh
}

func (b *Backend) newGizmoMeshes() {
	sc := b.Scene
	b.handles = gizmoMeshes{
		axis:   xyz.NewCylinder(sc, gizmoAxisMesh, 1, 1, 16, 1, true, true),
		center: xyz.NewSphere(sc, gizmoCenterMesh, 1, 16),
		plane:  xyz.NewBox(sc, gizmoPlaneMesh, 1, 1, 1),
	}
}

func absVec(v math32.Vector3) math32.Vector3 {
	return math32.Vec3(math32.Abs(v.X), math32.Abs(v.Y), math32.Abs(v.Z))
}

// SyncGizmo replaces the drawn handles with parts, coloring the
// active handle. Handles are drawn where [gizmo.Translate.HitTest]
// picks them, but they are depth tested like the rest of the scene.
func (b *Backend) SyncGizmo(parts []gizmo.Part, active string) {
	sc := b.Scene
	sc.DeleteChildByName(GizmoName)
	sc.SetNeedsUpdate()
	b.pending = true
	if len(parts) == 0 || b.group == nil {
		return
	}
	gg := xyz.NewGroup(sc)
	gg.SetName(GizmoName)
	for i := range parts {
		pt := &parts[i]
		h := pt.Handle
		sld := xyz.NewSolid(gg)
		sld.SetName(GizmoName + "-" + h.Name)
		clr := handleColor(h.Name)
		if h.Name == active {
			clr = ActiveHandleColor
		}
		sld.SetColor(clr).SetEmissive(clr)
		sld.Pose.Pos = pt.Center
		r := pt.Radius
		switch len(h.Axes) {
		case 0:
			sld.SetMesh(b.handles.center)
			sld.Pose.Scale.SetScalar(1.5 * r)
		case 1:
			sld.SetMesh(b.handles.axis)
			sld.Pose.Scale = math32.Vec3(r/2, pt.End.Sub(pt.Center).Length()*2, r/2)
			sld.Pose.Quat.SetFromUnitVectors(math32.Vec3(0, 1, 0), h.Axes[0])
		case 2:
			sld.SetMesh(b.handles.plane)
			side := 2 * r
			n := absVec(h.Axes[0].Cross(h.Axes[1]))
			sld.Pose.Scale = h.Axes[0].Add(h.Axes[1]).MulScalar(side).Add(n.MulScalar(side / 10))
		}
	}
}
