// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package xyzview renders a demo model with an [xyz.Scene], either in
// a window through an [xyzcore.Scene] widget or offscreen.
package xyzview

import (
	"fmt"
	"image"
	"log/slog"

	"cogentcore.org/core/colors"
	"cogentcore.org/core/math32"
	"cogentcore.org/core/xyz"

	"github.com/aoscenes/aoscenes/camera"
	"github.com/aoscenes/aoscenes/model"
	"github.com/aoscenes/aoscenes/variant"
)

// GroupName is the name of the xyz group holding all containers.
const GroupName = "group"

// Backend mirrors a [model.Model] into an xyz scene.
type Backend struct {
	Scene *xyz.Scene

	group   *xyz.Group
	solids  map[model.MeshID]*xyz.Solid
	handles gizmoMeshes

	// pending is set when the scene changed since the last live frame.
	pending bool
}

// NewBackend returns a backend rendering into sc.
// The scene navigation is turned off: the demo drives the camera.
func NewBackend(sc *xyz.Scene) *Backend {
	sc.NoNav = true
	return &Backend{Scene: sc}
}

// lumens maps a light intensity to the normalized xyz range.
func lumens(intensity float32) float32 {
	return math32.Clamp(intensity, 0, 1)
}

// newLight returns the xyz light for lt, with its own color
// instead of one of the standard light colors.
func newLight(lt *model.Light) xyz.Light {
	base := xyz.LightBase{Name: lt.Name, On: true, Lumens: lumens(lt.Intensity), Color: lt.Color}
	if lt.Kind == model.Ambient {
		return &xyz.Ambient{LightBase: base}
	}
	return &xyz.Directional{LightBase: base, Pos: lt.Pos}
}

// newMesh makes the shared mesh of one container part.
func newMesh(sc *xyz.Scene, name string, g *variant.Geometry) (xyz.Mesh, error) {
	switch g.Shape {
	case variant.Cylinder:
		cy := xyz.NewCylinder(sc, name, g.Height, g.RadiusBottom, g.Segments, 1, true, true)
		cy.TopRad = g.RadiusTop
		cy.BotRad = g.RadiusBottom
		return cy, nil
	case variant.Sphere:
		return xyz.NewSphere(sc, name, g.Radius, g.Segments), nil
	case variant.Box:
		return xyz.NewBox(sc, name, g.Width, g.Height, g.Depth), nil
	}
	return nil, fmt.Errorf("xyzview: unknown shape %q", g.Shape)
}

func setMaterial(sld *xyz.Solid, mt *model.Material) {
	sld.SetColor(mt.Color).SetEmissive(mt.Emissive).SetShiny(mt.Shininess)
	sld.SetReflective(float32(mt.Specular.R) / 255)
}

// Build replaces the scene contents with the model.
func (b *Backend) Build(m *model.Model, p *variant.Params) error {
	sc := b.Scene
	sc.DeleteChildren()
	sc.Background = colors.Uniform(m.Background)
	sc.Lights.Reset()
	for i := range m.Lights {
		sc.AddLight(newLight(&m.Lights[i]))
	}
	b.newGizmoMeshes()

	meshes := make([]xyz.Mesh, len(p.Parts))
	for i := range p.Parts {
		ms, err := newMesh(sc, fmt.Sprintf("%s-part-%d", p.Name, i), &p.Parts[i].Geometry)
		if err != nil {
			return err
		}
		meshes[i] = ms
	}

	b.group = xyz.NewGroup(sc)
	b.group.SetName(GroupName)
	b.group.Pose.Pos = m.Group.Pos
	b.solids = make(map[model.MeshID]*xyz.Solid, len(m.Meshes()))
	for _, c := range m.Containers {
		cg := xyz.NewGroup(b.group)
		cg.SetName(c.Name)
		cg.Pose.Quat = c.Quat()
		cg.Pose.Scale = c.Scale
		for j, ms := range c.Meshes {
			if j >= len(meshes) {
				return fmt.Errorf("xyzview: container %q has more meshes than parts", c.Name)
			}
			sld := xyz.NewSolid(cg)
			sld.SetName(ms.Name)
			sld.SetMesh(meshes[j])
			sld.Pose.Pos = ms.Offset
			setMaterial(sld, &ms.Material)
			b.solids[ms.ID] = sld
		}
	}
	slog.Debug("xyz scene built", "variant", p.Name, "containers", len(m.Containers), "solids", len(b.solids))
	sc.Rebuild()
	sc.SetNeedsUpdate()
	b.pending = true
	return nil
}

// Solid returns the solid rendering the mesh of the given id, or nil.
func (b *Backend) Solid(id model.MeshID) *xyz.Solid {
	return b.solids[id]
}

// Group returns the xyz group holding all containers.
func (b *Backend) Group() *xyz.Group {
	return b.group
}

func (b *Backend) SetSize(size image.Point) {
	b.Scene.SetSize(size)
	b.pending = true
}

func (b *Backend) SyncCamera(c *camera.Camera) {
	cam := &b.Scene.Camera
	cam.FOV = c.FOV
	cam.Aspect = c.Aspect
	cam.Near = c.Near
	cam.Far = c.Far
	cam.Pose.Pos = c.Pos
	cam.LookAt(c.Target, c.Up)
	b.Scene.SetNeedsRender()
	b.pending = true
}

func (b *Backend) SyncGroup(pos math32.Vector3) {
	if b.group == nil {
		return
	}
	b.group.Pose.Pos = pos
	b.Scene.SetNeedsUpdate()
	b.pending = true
}

func (b *Backend) SyncMaterial(ms *model.Mesh) {
	sld := b.solids[ms.ID]
	if sld == nil {
		return
	}
	setMaterial(sld, &ms.Material)
	b.Scene.SetNeedsRender()
	b.pending = true
}

// Pending reports and clears whether the scene changed since the last call.
func (b *Backend) Pending() bool {
	p := b.pending
	b.pending = false
	return p
}
