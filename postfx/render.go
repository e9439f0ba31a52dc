// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package postfx

// Source renders the scene into a frame. When f.Capture is set it
// must fill f.Color, and f.Depth if it has one.
type Source interface {
	RenderFrame(f *Frame) error
}

// RenderPass is the first pass of a chain: it renders the scene.
type RenderPass struct {
	PassBase
	Source Source
}

// NewRenderPass returns an enabled render pass drawing from src.
func NewRenderPass(src Source) *RenderPass {
	return &RenderPass{PassBase: PassBase{Enabled: true}, Source: src}
}

// Name returns "render".
func (rp *RenderPass) Name() string { return "render" }

// Apply renders the source into f.
func (rp *RenderPass) Apply(f *Frame) error {
	f.Color = nil
	f.Depth = nil
	return rp.Source.RenderFrame(f)
}
