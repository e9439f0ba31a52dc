// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package demo wires a scene model, camera, controls, picking and the
// post-processing chain to a rendering backend, and runs them from
// pointer, resize and frame events.
//
// A Demo is not safe for concurrent use: all events and frames must be
// delivered from one goroutine, or under one lock.
package demo

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"math/rand/v2"

	"cogentcore.org/core/base/iox/imagex"
	"cogentcore.org/core/math32"

	"github.com/aoscenes/aoscenes/camera"
	"github.com/aoscenes/aoscenes/gizmo"
	"github.com/aoscenes/aoscenes/model"
	"github.com/aoscenes/aoscenes/pick"
	"github.com/aoscenes/aoscenes/postfx"
	"github.com/aoscenes/aoscenes/variant"
)

// Backend renders a model. It is told about every change the demo
// makes after [Backend.Build].
type Backend interface {
	postfx.Source

	// Build creates the renderer scene for the model.
	Build(m *model.Model, p *variant.Params) error

	// SetSize resizes the render target.
	SetSize(size image.Point)

	SyncCamera(c *camera.Camera)

	// SyncGroup moves the root group of all containers.
	SyncGroup(pos math32.Vector3)

	// SyncMaterial updates the material of one mesh.
	SyncMaterial(ms *model.Mesh)

	// SyncGizmo redraws the gizmo handles, highlighting the active one.
	SyncGizmo(parts []gizmo.Part, active string)
}

type options struct {
	size       image.Point
	seed       uint64
	pixelRatio float32
}

// Option configures [New].
type Option func(*options)

// WithSize sets the initial viewport size.
func WithSize(width, height int) Option {
	return func(o *options) { o.size = image.Pt(width, height) }
}

// WithSeed sets the seed of the random container transforms.
func WithSeed(seed uint64) Option {
	return func(o *options) { o.seed = seed }
}

// WithPixelRatio sets the device pixel ratio used by anti-aliasing.
func WithPixelRatio(ratio float32) Option {
	return func(o *options) { o.pixelRatio = ratio }
}

// Demo is one running demo scene.
type Demo struct {
	Params variant.Params

	Model    *model.Model
	Camera   *camera.Camera
	Orbit    *camera.Orbit
	Gizmo    *gizmo.Translate
	Composer *postfx.Composer

	// Highlighter is nil unless the variant picks.
	Highlighter *pick.Highlighter

	backend Backend
	size    image.Point

	// pointer is the last pointer position in normalized device
	// coordinates, starting at the viewport center.
	pointer math32.Vector2

	homePos     math32.Vector3
	cameraDirty bool
	groupDirty  bool
	gizmoDirty  bool
	frames      int
}

// New builds a demo for the given params on the backend.
func New(p variant.Params, b Backend, opts ...Option) (*Demo, error) {
	o := options{size: image.Pt(1280, 720), seed: 1, pixelRatio: 1}
	for _, opt := range opts {
		opt(&o)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if o.size.X <= 0 || o.size.Y <= 0 {
		return nil, fmt.Errorf("demo: invalid size %v", o.size)
	}
	d := &Demo{Params: p, backend: b, size: o.size}

	d.Camera = camera.New(p.Camera.FOV, float32(o.size.X)/float32(o.size.Y), p.Camera.Near, p.Camera.Far)
	d.Camera.Pos = math32.Vec3(0, 0, p.Camera.Distance)
	d.Camera.Target = math32.Vector3{}
	d.homePos = d.Camera.Pos

	d.Model = model.Generate(&d.Params, rand.New(rand.NewPCG(o.seed, o.seed^0x9e3779b97f4a7c15)))
	if err := b.Build(d.Model, &d.Params); err != nil {
		return nil, fmt.Errorf("demo: build %q: %w", p.Name, err)
	}
	b.SetSize(o.size)

	d.Composer = postfx.NewComposer(o.size.X, o.size.Y)
	d.Composer.AddPass(postfx.NewRenderPass(b))
	ssao := postfx.NewSSAOPass(o.size.X, o.size.Y)
	ssao.Enabled = p.SSAO.Enabled
	ssao.KernelRadius = p.SSAO.KernelRadius
	ssao.MinDistance = p.SSAO.MinDistance
	ssao.MaxDistance = p.SSAO.MaxDistance
	ssao.Output = p.SSAO.Output
	d.Composer.AddPass(ssao)
	d.Composer.AddPass(postfx.NewOutputPass())
	if p.FXAA {
		d.Composer.AddPass(postfx.NewFXAAPass(o.pixelRatio))
	}
	d.Composer.LogPasses()

	d.Orbit = camera.NewOrbit(d.Camera)
	d.Orbit.Change.AddListener(func(ctx context.Context, c *camera.Camera) {
		d.cameraDirty = true
	})
	d.Orbit.Update()
	b.SyncCamera(d.Camera)
	d.cameraDirty = false

	d.Gizmo = gizmo.NewTranslate(d.Camera)
	d.Gizmo.ShowX = p.Gizmo.ShowX
	d.Gizmo.ShowY = p.Gizmo.ShowY
	d.Gizmo.ShowZ = p.Gizmo.ShowZ
	d.Gizmo.Change.AddListener(func(ctx context.Context, pos math32.Vector3) {
		d.groupDirty = true
	})
	d.Gizmo.DraggingChanged.AddListener(func(ctx context.Context, dragging bool) {
		d.Orbit.Enabled = !dragging
		d.gizmoDirty = true
	})
	d.Gizmo.Attach(&d.Model.Group.Pos)
	d.gizmoDirty = true

	if p.Picking {
		d.Highlighter = pick.NewHighlighter(p.Highlight.RGBA(), p.Neutral.RGBA())
	}
	slog.Info("demo initialized", "variant", p.Name, "containers", len(d.Model.Containers),
		"meshes", len(d.Model.Meshes()), "passes", len(d.Composer.Passes()), "size", o.size)
	return d, nil
}

// Size returns the viewport size.
func (d *Demo) Size() image.Point {
	return d.size
}

// Pointer returns the last pointer position in normalized device coordinates.
func (d *Demo) Pointer() math32.Vector2 {
	return d.pointer
}

// Frames returns the number of frames rendered.
func (d *Demo) Frames() int {
	return d.frames
}

// Background returns the scene background color.
func (d *Demo) Background() [4]uint8 {
	bg := d.Model.Background
	return [4]uint8{bg.R, bg.G, bg.B, bg.A}
}

// Resize resizes the camera, the backend and the composer.
func (d *Demo) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	d.size = image.Pt(width, height)
	d.Camera.Resize(width, height)
	d.backend.SetSize(d.size)
	d.Composer.SetSize(width, height)
	d.cameraDirty = true
}

// PointerMove records the pointer and forwards it to the gizmo,
// or to the orbit controls when the gizmo is not dragging.
func (d *Demo) PointerMove(pos image.Point) {
	d.pointer = camera.NDC(pos, d.size)
	if d.Gizmo.PointerMove(pos, d.size) {
		return
	}
	d.Orbit.PointerMove(pos, d.size.Y)
}

// PointerDown starts a gizmo drag if a handle is hit,
// and an orbit drag otherwise.
func (d *Demo) PointerDown(pos image.Point) {
	d.pointer = camera.NDC(pos, d.size)
	if d.Gizmo.PointerDown(pos, d.size) {
		return
	}
	d.Orbit.PointerDown(pos)
}

// PointerUp ends any drag.
func (d *Demo) PointerUp() {
	d.Gizmo.PointerUp()
	d.Orbit.PointerUp()
}

// Scroll zooms the orbit camera.
func (d *Demo) Scroll(delta float32) {
	d.Orbit.Scroll(delta)
}

// ResetCamera moves the camera back to its initial position.
func (d *Demo) ResetCamera() {
	d.Camera.Pos = d.homePos
	d.Camera.Target = math32.Vector3{}
	d.Orbit.Update()
}

// PickAt returns the nearest intersectable mesh under the
// normalized device position.
func (d *Demo) PickAt(ndc math32.Vector2) (*model.Mesh, bool) {
	return pick.Pick(d.Camera.RayFromNDC(ndc), d.Model.Intersectables)
}

// updateHighlight re-evaluates the highlighted mesh from the last
// pointer position.
func (d *Demo) updateHighlight() {
	hit, _ := d.PickAt(d.pointer)
	d.Highlighter.Update(hit)
	for _, ms := range d.Highlighter.Changed() {
		d.backend.SyncMaterial(ms)
	}
}

func (d *Demo) render(f *postfx.Frame) error {
	if d.Highlighter != nil {
		d.updateHighlight()
	}
	if d.cameraDirty || d.groupDirty {
		d.gizmoDirty = true
	}
	if d.cameraDirty {
		d.backend.SyncCamera(d.Camera)
		d.cameraDirty = false
	}
	if d.groupDirty {
		d.backend.SyncGroup(d.Model.Group.Pos)
		d.groupDirty = false
	}
	if d.gizmoDirty {
		d.backend.SyncGizmo(d.Gizmo.Parts(d.size), d.Gizmo.Active())
		d.gizmoDirty = false
	}
	d.frames++
	return d.Composer.Render(f)
}

// Frame renders one frame: picking, syncing and the post-processing chain.
func (d *Demo) Frame() error {
	return d.render(&postfx.Frame{})
}

// Snapshot renders one frame with read back, so every pass runs,
// and returns the final image.
func (d *Demo) Snapshot() (*image.RGBA, error) {
	f := &postfx.Frame{Capture: true}
	if err := d.render(f); err != nil {
		return nil, err
	}
	if f.Color == nil {
		return nil, fmt.Errorf("demo: backend returned no image")
	}
	return f.Color, nil
}

// SaveSnapshot renders a snapshot and saves it to filename,
// in the format given by its extension.
func (d *Demo) SaveSnapshot(filename string) error {
	img, err := d.Snapshot()
	if err != nil {
		return err
	}
	if err := imagex.Save(img, filename); err != nil {
		return fmt.Errorf("demo: save snapshot: %w", err)
	}
	slog.Info("saved snapshot", "file", filename, "size", img.Rect.Size())
	return nil
}
