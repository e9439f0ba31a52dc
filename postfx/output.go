// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package postfx

import (
	"image/color"

	"cogentcore.org/core/math32"
	"github.com/anthonynsimon/bild/adjust"
)

// ToneMappings are the tone mapping operators of the [OutputPass].
type ToneMappings int32

const (
	// NoToneMapping only applies the exposure.
	NoToneMapping ToneMappings = iota

	// Reinhard compresses highlights with x / (1 + x).
	Reinhard
)

// OutputPass is the final color conversion of a chain.
type OutputPass struct {
	PassBase

	// Exposure scales the linear color before tone mapping.
	Exposure float32

	ToneMapping ToneMappings
}

// NewOutputPass returns an enabled pass that leaves colors unchanged.
func NewOutputPass() *OutputPass {
	return &OutputPass{PassBase: PassBase{Enabled: true}, Exposure: 1}
}

// Name returns "output".
func (op *OutputPass) Name() string { return "output" }

// isIdentity is whether the pass would leave every pixel unchanged.
func (op *OutputPass) isIdentity() bool {
	return op.Exposure == 1 && op.ToneMapping == NoToneMapping
}

func (op *OutputPass) mapChannel(c uint8) uint8 {
	v := float32(c) / 255 * op.Exposure
	if op.ToneMapping == Reinhard {
		v = v / (1 + v)
	}
	return uint8(math32.Round(math32.Clamp(v, 0, 1) * 255))
}

// Apply scales the color image by the exposure and tone maps it.
func (op *OutputPass) Apply(f *Frame) error {
	if op.isIdentity() {
		return nil
	}
	f.Color = adjust.Apply(f.Color, func(c color.RGBA) color.RGBA {
		return color.RGBA{op.mapChannel(c.R), op.mapChannel(c.G), op.mapChannel(c.B), c.A}
	})
	return nil
}
