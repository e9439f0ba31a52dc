// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package variant

import (
	"fmt"
	"slices"

	"cogentcore.org/core/math32"

	"github.com/aoscenes/aoscenes/postfx"
)

// presets maps the preset names to constructors, so that every
// lookup returns an independent copy.
var presets = map[string]func() Params{
	"cylinders": Cylinders,
	"lollipops": Lollipops,
	"picking":   Picking,
}

// Names returns the sorted preset names.
func Names() []string {
	nms := make([]string, 0, len(presets))
	for nm := range presets {
		nms = append(nms, nm)
	}
	slices.Sort(nms)
	return nms
}

// Lookup returns the preset of the given name.
func Lookup(name string) (Params, error) {
	f, ok := presets[name]
	if !ok {
		return Params{}, fmt.Errorf("variant: unknown preset %q (have %v)", name, Names())
	}
	return f(), nil
}

// base holds the values common to all presets.
func base() Params {
	return Params{
		Material: Material{
			Color:     "#7f7fff",
			Emissive:  "#040404",
			Specular:  "#aaaaaa",
			Shininess: 5,
		},
		RotationRange: 100,
		ScaleXZ:       20,
		ScaleY:        10,
		ScaleJitter:   0.1,
		Background:    "#f5eed6",
		Lights: Lights{
			DirectionalColor:     "#ffffff",
			DirectionalIntensity: 4,
			AmbientColor:         "#ffffff",
			AmbientIntensity:     1,
		},
		Camera: Camera{FOV: 65, Near: 1, Far: 7000, Distance: 500},
		SSAO: SSAO{
			Enabled:      true,
			KernelRadius: 32,
			MinDistance:  0.01,
			MaxDistance:  0.3,
			Output:       postfx.SSAODefault,
		},
		Highlight: "#ff0000",
		Neutral:   "#000000",
	}
}

// Cylinders is a hundred thin truncated cones pointing outward
// from the origin in random directions.
func Cylinders() Params {
	p := base()
	p.Name = "cylinders"
	p.Doc = "100 truncated cylinders with ambient occlusion"
	p.Count = 100
	p.Parts = []Part{{
		Geometry: Geometry{Shape: Cylinder, RadiusTop: 0.5, RadiusBottom: 0.1, Height: 20, Segments: 32},
		Offset:   math32.Vec3(0, 10, 0),
	}}
	return p
}

// Lollipops is a hundred cylinder stems each capped by a sphere,
// with anti-aliasing and a vertical translate handle.
func Lollipops() Params {
	p := base()
	p.Name = "lollipops"
	p.Doc = "100 stems with sphere heads, ambient occlusion and FXAA"
	p.Count = 100
	p.Parts = []Part{
		{
			Geometry: Geometry{Shape: Cylinder, RadiusTop: 0.2, RadiusBottom: 0.2, Height: 20, Segments: 16},
			Offset:   math32.Vec3(0, 10, 0),
		},
		{
			Geometry: Geometry{Shape: Sphere, Radius: 1.2, Segments: 24},
			Offset:   math32.Vec3(0, 20, 0),
			Color:    "#ff9f7f",
		},
	}
	p.FXAA = true
	p.Gizmo.ShowY = true
	return p
}

// Picking is ten tall boxes; the box under the pointer glows.
func Picking() Params {
	p := base()
	p.Name = "picking"
	p.Doc = "10 boxes highlighted under the pointer"
	p.Count = 10
	p.Parts = []Part{{
		Geometry: Geometry{Shape: Box, Width: 1, Height: 20, Depth: 1},
		Offset:   math32.Vec3(0, 10, 0),
	}}
	p.Material.Emissive = "#000000"
	p.FXAA = true
	p.Picking = true
	return p
}
