// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package postfx

import (
	"image"
	"image/color"

	"cogentcore.org/core/math32"
	"github.com/anthonynsimon/bild/blur"
)

// FXAAPass smooths high contrast luma edges by blending them
// with their box-blurred neighborhood.
type FXAAPass struct {
	PassBase

	// PixelRatio is the device pixel ratio used for Resolution.
	PixelRatio float32

	// Resolution is the size of one texel in normalized
	// coordinates: 1 / (size * PixelRatio).
	Resolution math32.Vector2

	// EdgeThreshold is the minimum local contrast, relative to
	// the local maximum luma, that is treated as an edge.
	EdgeThreshold float32

	// EdgeThresholdMin is the absolute minimum contrast of an edge,
	// which keeps dark regions from being smoothed.
	EdgeThresholdMin float32
}

// NewFXAAPass returns an enabled pass for a display of the given pixel ratio.
func NewFXAAPass(pixelRatio float32) *FXAAPass {
	if pixelRatio <= 0 {
		pixelRatio = 1
	}
	return &FXAAPass{
		PassBase:         PassBase{Enabled: true},
		PixelRatio:       pixelRatio,
		EdgeThreshold:    0.125,
		EdgeThresholdMin: 0.0312,
	}
}

// Name returns "fxaa".
func (fp *FXAAPass) Name() string { return "fxaa" }

// SetSize updates the texel size used to sample neighbors.
func (fp *FXAAPass) SetSize(width, height int) {
	fp.PassBase.SetSize(width, height)
	if width <= 0 || height <= 0 {
		fp.Resolution = math32.Vector2{}
		return
	}
	fp.Resolution = math32.Vec2(1/(float32(width)*fp.PixelRatio), 1/(float32(height)*fp.PixelRatio))
}

func luma(c color.RGBA) float32 {
	return (0.299*float32(c.R) + 0.587*float32(c.G) + 0.114*float32(c.B)) / 255
}

// Apply smooths the edges of the color image in place.
func (fp *FXAAPass) Apply(f *Frame) error {
	src := f.Color
	sz := f.Size()
	at := func(x, y int) color.RGBA {
		return src.RGBAAt(min(max(x, 0), sz.X-1), min(max(y, 0), sz.Y-1))
	}
	smooth := blur.Box(src, 1)
	dst := image.NewRGBA(src.Rect)
	copy(dst.Pix, src.Pix)
	for y := range sz.Y {
		for x := range sz.X {
			m := luma(at(x, y))
			n, s := luma(at(x, y-1)), luma(at(x, y+1))
			e, w := luma(at(x+1, y)), luma(at(x-1, y))
			lo := min(m, n, s, e, w)
			hi := max(m, n, s, e, w)
			if hi-lo < max(fp.EdgeThresholdMin, hi*fp.EdgeThreshold) {
				continue
			}
			dst.SetRGBA(x, y, smooth.RGBAAt(x, y))
		}
	}
	f.Color = dst
	return nil
}
