// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package model is the in-memory description of a demo scene:
// a group of randomly oriented containers, each wrapping one or
// two meshes, plus the lights and background.
// It is independent of the renderer, which mirrors it.
package model

import (
	"fmt"
	"image/color"
	"math/rand/v2"

	"cogentcore.org/core/math32"
	"github.com/ErikKalkoken/go-set"

	"github.com/aoscenes/aoscenes/variant"
)

// MeshID identifies a mesh. IDs are dense, starting at 0,
// in generation order.
type MeshID int

// Material is the mutable phong material of one mesh.
type Material struct {
	Color     color.RGBA
	Emissive  color.RGBA
	Specular  color.RGBA
	Shininess float32
}

// Mesh is one rendered shape inside a [Container].
type Mesh struct {
	ID   MeshID
	Name string

	Geometry variant.Geometry

	// Offset is the mesh position inside its container.
	Offset math32.Vector3

	Material Material

	Container *Container
}

// Container is a transform node wrapping one or two meshes.
// It sits at the group origin.
type Container struct {
	Index int
	Name  string

	// Rotation holds intrinsic X, Y then Z angles in radians;
	// see [Container.Quat].
	Rotation math32.Vector3
	Scale    math32.Vector3

	Meshes []*Mesh

	Group *Group
}

// Group is the root transform of all containers, moved by the gizmo.
type Group struct {
	Pos math32.Vector3
}

// LightKinds are the kinds of [Light].
type LightKinds int32

const (
	Directional LightKinds = iota
	Ambient
)

// Light is a fixed scene light.
type Light struct {
	Name      string
	Kind      LightKinds
	Color     color.RGBA
	Intensity float32

	// Pos is the directional light position, which points at the origin.
	Pos math32.Vector3
}

// Model is the scene root.
type Model struct {

	// Background is fixed when the model is generated.
	Background color.RGBA

	Lights []Light

	Group Group

	// Containers has a fixed length once generated.
	Containers []*Container

	// Intersectables are the meshes considered for picking:
	// those of the parts listed in [variant.Params.PickParts],
	// or all meshes when it is empty.
	Intersectables []*Mesh

	meshes []*Mesh
}

// Generate builds the model of the given params, drawing the random
// rotations and scales from rng.
func Generate(p *variant.Params, rng *rand.Rand) *Model {
	m := &Model{
		Background: p.Background.RGBA(),
		Lights: []Light{
			{Name: "directional", Kind: Directional, Color: p.Lights.DirectionalColor.RGBA(), Intensity: p.Lights.DirectionalIntensity, Pos: math32.Vec3(0, 1, 0)},
			{Name: "ambient", Kind: Ambient, Color: p.Lights.AmbientColor.RGBA(), Intensity: p.Lights.AmbientIntensity},
		},
		Containers: make([]*Container, 0, p.Count),
	}
	pickable := set.Of(p.PickParts...)
	mat := Material{
		Color:     p.Material.Color.RGBA(),
		Emissive:  p.Material.Emissive.RGBA(),
		Specular:  p.Material.Specular.RGBA(),
		Shininess: p.Material.Shininess,
	}
	for i := range p.Count {
		c := &Container{
			Index: i,
			Name:  fmt.Sprintf("container-%03d", i),
			Group: &m.Group,
		}
		c.Rotation = math32.Vec3(p.RotationRange*rng.Float32(), p.RotationRange*rng.Float32(), p.RotationRange*rng.Float32())
		c.Scale = math32.Vec3(p.ScaleXZ, p.ScaleY+p.ScaleJitter*rng.Float32(), p.ScaleXZ)
		for j, pt := range p.Parts {
			ms := &Mesh{
				ID:        MeshID(len(m.meshes)),
				Name:      fmt.Sprintf("%s-mesh-%d", c.Name, j),
				Geometry:  pt.Geometry,
				Offset:    pt.Offset,
				Material:  mat,
				Container: c,
			}
			if pt.Color != "" {
				ms.Material.Color = pt.Color.RGBA()
			}
			c.Meshes = append(c.Meshes, ms)
			m.meshes = append(m.meshes, ms)
			if pickable.Size() == 0 || pickable.Contains(j) {
				m.Intersectables = append(m.Intersectables, ms)
			}
		}
		m.Containers = append(m.Containers, c)
	}
	return m
}

// Meshes returns all meshes in ID order.
func (m *Model) Meshes() []*Mesh {
	return m.meshes
}

// Mesh returns the mesh of the given id, or nil.
func (m *Model) Mesh(id MeshID) *Mesh {
	if id < 0 || int(id) >= len(m.meshes) {
		return nil
	}
	return m.meshes[id]
}
