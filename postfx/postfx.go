// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package postfx provides an ordered chain of full-screen
// image passes applied after the base scene render:
// ambient occlusion, output tone mapping and anti-aliasing.
package postfx

import (
	"fmt"
	"image"
	"log/slog"
)

// Frame is the image data flowing through a [Composer].
type Frame struct {

	// Capture requests that the render pass read back the
	// rendered image. Without it, a GPU source presents
	// directly and leaves Color nil.
	Capture bool

	// Color is the rendered color image, nil if not captured.
	Color *image.RGBA

	// Depth is the row-major linear depth in [0, 1], where 1 is the
	// far plane or background. It is nil when the source has no depth.
	Depth []float32
}

// Size returns the size of the color image.
func (f *Frame) Size() image.Point {
	if f.Color == nil {
		return image.Point{}
	}
	return f.Color.Rect.Size()
}

// HasDepth returns whether the depth buffer matches the color image.
func (f *Frame) HasDepth() bool {
	sz := f.Size()
	return f.Depth != nil && len(f.Depth) == sz.X*sz.Y
}

// DepthAt returns the depth at x, y, clamped to the frame bounds.
func (f *Frame) DepthAt(x, y int) float32 {
	sz := f.Size()
	x = min(max(x, 0), sz.X-1)
	y = min(max(y, 0), sz.Y-1)
	return f.Depth[y*sz.X+x]
}

// Pass is one full-screen operation of a [Composer].
type Pass interface {

	// Name is used in logs and errors.
	Name() string

	// IsEnabled returns whether the composer runs the pass.
	IsEnabled() bool

	// SetSize resizes any size dependent state of the pass.
	SetSize(width, height int)

	// Apply processes the frame in place.
	Apply(f *Frame) error
}

// PassBase provides the enablement and size bookkeeping of a [Pass].
type PassBase struct {
	Enabled bool
	Width   int
	Height  int
}

// IsEnabled returns [PassBase.Enabled].
func (pb *PassBase) IsEnabled() bool {
	return pb.Enabled
}

// SetSize records the frame size.
func (pb *PassBase) SetSize(width, height int) {
	pb.Width, pb.Height = width, height
}

// Composer runs its passes in the order they were added.
type Composer struct {
	passes []Pass
	size   image.Point
}

// NewComposer returns an empty composer of the given size.
func NewComposer(width, height int) *Composer {
	return &Composer{size: image.Pt(width, height)}
}

// AddPass appends a pass, sizing it to the composer.
func (c *Composer) AddPass(p Pass) {
	p.SetSize(c.size.X, c.size.Y)
	c.passes = append(c.passes, p)
}

// Passes returns the passes in run order.
func (c *Composer) Passes() []Pass {
	return c.passes
}

// Size returns the current composer size.
func (c *Composer) Size() image.Point {
	return c.size
}

// SetSize resizes the composer and every pass.
func (c *Composer) SetSize(width, height int) {
	c.size = image.Pt(width, height)
	for _, p := range c.passes {
		p.SetSize(width, height)
	}
}

// Render runs every enabled pass on f. Passes after the render pass
// are skipped when it produced no color image.
func (c *Composer) Render(f *Frame) error {
	for _, p := range c.passes {
		if !p.IsEnabled() {
			continue
		}
		if _, ok := p.(*RenderPass); !ok && f.Color == nil {
			continue
		}
		if err := p.Apply(f); err != nil {
			return fmt.Errorf("postfx: %s pass: %w", p.Name(), err)
		}
	}
	return nil
}

// LogPasses logs the pass chain at debug level.
func (c *Composer) LogPasses() {
	for i, p := range c.passes {
		slog.Debug("postfx pass", "index", i, "name", p.Name(), "enabled", p.IsEnabled(), "size", c.size)
	}
}
