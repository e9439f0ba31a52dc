// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pick finds the mesh under the pointer and maintains
// a single highlighted mesh.
package pick

import (
	"image/color"

	"cogentcore.org/core/math32"

	"github.com/aoscenes/aoscenes/model"
)

// Pick returns the mesh nearest to the ray origin that the ray hits.
func Pick(ray math32.Ray, meshes []*model.Mesh) (*model.Mesh, bool) {
	var best *model.Mesh
	bestDist := math32.Inf(1)
	for _, ms := range meshes {
		d, ok := ms.IntersectRay(ray)
		if ok && d < bestDist {
			best, bestDist = ms, d
		}
	}
	return best, best != nil
}

// Highlighter keeps at most one mesh highlighted by setting its
// emissive color. Each call to Update fully re-evaluates the
// selection from the latest pick: there is no hit history.
type Highlighter struct {

	// Highlight is the emissive color of the current mesh.
	Highlight color.RGBA

	// Neutral is the emissive color restored on highlight loss.
	Neutral color.RGBA

	current *model.Mesh
	changed []*model.Mesh
}

// NewHighlighter returns a highlighter with nothing highlighted.
func NewHighlighter(highlight, neutral color.RGBA) *Highlighter {
	return &Highlighter{Highlight: highlight, Neutral: neutral}
}

// Current returns the highlighted mesh, or nil.
func (h *Highlighter) Current() *model.Mesh {
	return h.current
}

// Update applies the result of a pick. A nil hit clears the highlight.
func (h *Highlighter) Update(hit *model.Mesh) {
	h.changed = h.changed[:0]
	if h.current != nil && h.current != hit {
		h.current.Material.Emissive = h.Neutral
		h.changed = append(h.changed, h.current)
		h.current = nil
	}
	if hit == nil {
		return
	}
	h.current = hit
	if hit.Material.Emissive != h.Highlight {
		hit.Material.Emissive = h.Highlight
		h.changed = append(h.changed, hit)
	}
}

// Changed returns the meshes whose emissive color changed in the
// last Update. The slice is reused by the next Update.
func (h *Highlighter) Changed() []*model.Mesh {
	return h.changed
}
