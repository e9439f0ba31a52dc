// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package variant defines the tunable parameters of a demo scene
// and the built-in presets.
package variant

import (
	"errors"
	"fmt"
	"image/color"

	cerrors "cogentcore.org/core/base/errors"
	"cogentcore.org/core/colors"
	"cogentcore.org/core/math32"
	"github.com/ErikKalkoken/go-set"

	"github.com/aoscenes/aoscenes/postfx"
)

// Shapes are the mesh geometries a [Part] can use.
type Shapes string

const (
	// Cylinder is a (possibly truncated) cone along the Y axis,
	// centered on the origin.
	Cylinder Shapes = "cylinder"

	// Sphere is a UV sphere centered on the origin.
	Sphere Shapes = "sphere"

	// Box is an axis aligned box centered on the origin.
	Box Shapes = "box"
)

// Hex is a color in "#rrggbb" form.
type Hex string

// RGBA returns the color, logging any parse error.
func (h Hex) RGBA() color.RGBA {
	return cerrors.Log1(colors.FromHex(string(h)))
}

func (h Hex) validate(field string) error {
	if _, err := colors.FromHex(string(h)); err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	return nil
}

// Geometry holds the shape parameters of one mesh.
// Only the fields relevant to the Shape are used.
type Geometry struct {
	Shape Shapes

	// RadiusTop and RadiusBottom are the cylinder end radii.
	RadiusTop    float32
	RadiusBottom float32

	// Height is the cylinder or box extent along Y.
	Height float32

	// Radius is the sphere radius.
	Radius float32

	// Width and Depth are the box extents along X and Z.
	Width float32
	Depth float32

	// Segments is the radial tessellation of cylinders and spheres.
	Segments int `default:"32"`
}

// Bounds returns the local axis aligned bounding box of the geometry.
func (g *Geometry) Bounds() math32.Box3 {
	switch g.Shape {
	case Cylinder:
		r := math32.Max(g.RadiusTop, g.RadiusBottom)
		h := g.Height / 2
		return math32.B3(-r, -h, -r, r, h, r)
	case Sphere:
		r := g.Radius
		return math32.B3(-r, -r, -r, r, r, r)
	case Box:
		return math32.B3(-g.Width/2, -g.Height/2, -g.Depth/2, g.Width/2, g.Height/2, g.Depth/2)
	}
	return math32.B3Empty()
}

func (g *Geometry) validate() error {
	switch g.Shape {
	case Cylinder:
		if g.Height <= 0 || g.RadiusTop < 0 || g.RadiusBottom < 0 || (g.RadiusTop == 0 && g.RadiusBottom == 0) {
			return fmt.Errorf("cylinder needs a positive height and radius, got %+v", *g)
		}
	case Sphere:
		if g.Radius <= 0 {
			return fmt.Errorf("sphere needs a positive radius, got %v", g.Radius)
		}
	case Box:
		if g.Width <= 0 || g.Height <= 0 || g.Depth <= 0 {
			return fmt.Errorf("box needs positive extents, got %vx%vx%v", g.Width, g.Height, g.Depth)
		}
	default:
		return fmt.Errorf("unknown shape %q", g.Shape)
	}
	return nil
}

// Part is one mesh inside a container.
type Part struct {
	Geometry Geometry

	// Offset is the mesh position inside its container.
	Offset math32.Vector3

	// Color overrides [Material.Color] when set.
	Color Hex
}

// Material is the phong material shared by all meshes of a variant.
type Material struct {
	Color     Hex
	Emissive  Hex
	Specular  Hex
	Shininess float32
}

// Lights are the fixed directional and ambient lights.
type Lights struct {
	DirectionalColor     Hex
	DirectionalIntensity float32
	AmbientColor         Hex
	AmbientIntensity     float32
}

// Camera holds the perspective projection and the initial distance
// of the camera from the origin along +Z.
type Camera struct {
	FOV      float32 `default:"65"`
	Near     float32 `default:"1"`
	Far      float32 `default:"7000"`
	Distance float32 `default:"500"`
}

// SSAO are the ambient occlusion pass settings.
type SSAO struct {
	Enabled      bool
	KernelRadius float32
	MinDistance  float32
	MaxDistance  float32
	Output       postfx.SSAOOutputs
}

// Gizmo controls which translate handles are shown.
type Gizmo struct {
	ShowX bool
	ShowY bool
	ShowZ bool
}

// Params are all the tunables of one demo scene.
type Params struct {
	Name string
	Doc  string

	// Count is the number of top-level mesh containers.
	Count int

	// Parts are the meshes wrapped by each container.
	Parts []Part

	Material Material

	// RotationRange scales the uniform random Euler angles (radians)
	// of every container.
	RotationRange float32

	// ScaleXZ is the container scale on X and Z.
	ScaleXZ float32

	// ScaleY is the base container scale on Y, to which
	// ScaleJitter times a uniform random value is added.
	ScaleY      float32
	ScaleJitter float32

	Background Hex
	Lights     Lights
	Camera     Camera
	SSAO       SSAO

	// FXAA appends the anti-aliasing pass after the output pass.
	FXAA bool

	Gizmo Gizmo

	// Picking enables per-frame ray picking with highlight.
	Picking bool

	// PickParts are the indices into Parts of the meshes that can be
	// picked, such as only the heads of lollipops. Empty means all.
	PickParts []int `toml:",omitempty"`

	// Highlight and Neutral are the emissive colors of the
	// picked mesh and of a mesh that loses the highlight.
	Highlight Hex
	Neutral   Hex
}

// Validate checks that the parameters describe a buildable scene.
func (p *Params) Validate() error {
	var errs []error
	if p.Count <= 0 {
		errs = append(errs, fmt.Errorf("count must be positive, got %d", p.Count))
	}
	if len(p.Parts) == 0 || len(p.Parts) > 2 {
		errs = append(errs, fmt.Errorf("a container wraps one or two meshes, got %d", len(p.Parts)))
	}
	for i := range p.Parts {
		pt := &p.Parts[i]
		if err := pt.Geometry.validate(); err != nil {
			errs = append(errs, fmt.Errorf("part %d: %w", i, err))
		}
		if pt.Color != "" {
			errs = append(errs, pt.Color.validate(fmt.Sprintf("part %d color", i)))
		}
	}
	if p.Camera.FOV <= 0 || p.Camera.FOV >= 180 {
		errs = append(errs, fmt.Errorf("camera fov must be in (0, 180), got %v", p.Camera.FOV))
	}
	if p.Camera.Near <= 0 || p.Camera.Far <= p.Camera.Near {
		errs = append(errs, fmt.Errorf("camera needs 0 < near < far, got %v, %v", p.Camera.Near, p.Camera.Far))
	}
	if p.SSAO.MinDistance > p.SSAO.MaxDistance {
		errs = append(errs, fmt.Errorf("ssao min distance %v exceeds max distance %v", p.SSAO.MinDistance, p.SSAO.MaxDistance))
	}
	errs = append(errs,
		p.Material.Color.validate("material color"),
		p.Material.Emissive.validate("material emissive"),
		p.Material.Specular.validate("material specular"),
		p.Background.validate("background"),
		p.Lights.DirectionalColor.validate("directional light"),
		p.Lights.AmbientColor.validate("ambient light"),
	)
	if p.Picking {
		errs = append(errs, p.Highlight.validate("highlight"), p.Neutral.validate("neutral"))
	}
	seen := set.Of[int]()
	for _, i := range p.PickParts {
		switch {
		case i < 0 || i >= len(p.Parts):
			errs = append(errs, fmt.Errorf("pick part %d out of range [0, %d)", i, len(p.Parts)))
		case seen.Contains(i):
			errs = append(errs, fmt.Errorf("pick part %d listed twice", i))
		}
		seen.Add(i)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("variant %q: %w", p.Name, err)
	}
	return nil
}
