// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package postfx

import (
	"fmt"
	"image"
	"image/color"
	"math/rand/v2"

	"cogentcore.org/core/math32"
	"github.com/anthonynsimon/bild/blur"
)

// SSAOOutputs select what the [SSAOPass] writes to the frame.
type SSAOOutputs int32

const (
	// SSAODefault modulates the scene color by the blurred occlusion.
	SSAODefault SSAOOutputs = iota

	// SSAOOnly writes the raw occlusion term.
	SSAOOnly

	// SSAOBlur writes the blurred occlusion term.
	SSAOBlur

	// SSAODepth writes the depth buffer.
	SSAODepth
)

var ssaoOutputNames = []string{"default", "ssao", "blur", "depth"}

func (o SSAOOutputs) String() string {
	if o < 0 || int(o) >= len(ssaoOutputNames) {
		return fmt.Sprintf("SSAOOutputs(%d)", int32(o))
	}
	return ssaoOutputNames[o]
}

// MarshalText implements [encoding.TextMarshaler].
func (o SSAOOutputs) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (o *SSAOOutputs) UnmarshalText(text []byte) error {
	for i, nm := range ssaoOutputNames {
		if nm == string(text) {
			*o = SSAOOutputs(i)
			return nil
		}
	}
	return fmt.Errorf("postfx: unknown ssao output %q (have %v)", text, ssaoOutputNames)
}

// SSAOPass darkens creases and contact areas using a screen-space
// obscurance estimate computed from the depth buffer.
type SSAOPass struct {
	PassBase

	// KernelRadius is the sampling radius in pixels.
	KernelRadius float32

	// KernelSize is the number of depth samples per pixel.
	KernelSize int

	// MinDistance and MaxDistance bound the depth difference
	// (in linear depth units) at which a sample occludes.
	MinDistance float32
	MaxDistance float32

	// BlurRadius is the box blur applied to the occlusion term.
	BlurRadius float64

	Output SSAOOutputs

	kernel []math32.Vector2
}

// NewSSAOPass returns an enabled pass with the standard settings.
func NewSSAOPass(width, height int) *SSAOPass {
	sp := &SSAOPass{
		PassBase:     PassBase{Enabled: true, Width: width, Height: height},
		KernelRadius: 8,
		KernelSize:   32,
		MinDistance:  0.005,
		MaxDistance:  0.1,
		BlurRadius:   2,
	}
	return sp
}

// Name returns "ssao".
func (sp *SSAOPass) Name() string { return "ssao" }

// generateKernel fills the sample offsets within the unit disk,
// denser toward the center. It is deterministic.
func (sp *SSAOPass) generateKernel() {
	n := max(sp.KernelSize, 1)
	if len(sp.kernel) == n {
		return
	}
	rnd := rand.New(rand.NewPCG(0x55a0, uint64(n)))
	sp.kernel = make([]math32.Vector2, n)
	for i := range sp.kernel {
		ang := rnd.Float32() * 2 * math32.Pi
		r := math32.Sqrt(rnd.Float32())
		s := float32(i) / float32(n)
		s = 0.1 + 0.9*s*s
		sp.kernel[i] = math32.Vec2(math32.Cos(ang)*r*s, math32.Sin(ang)*r*s)
	}
}

// Occlusion returns the unblurred ambient term in [0, 1]
// for every pixel, where 1 is fully unoccluded.
func (sp *SSAOPass) Occlusion(f *Frame) *image.Gray {
	sp.generateKernel()
	sz := f.Size()
	ao := image.NewGray(image.Rect(0, 0, sz.X, sz.Y))
	for y := range sz.Y {
		for x := range sz.X {
			d := f.Depth[y*sz.X+x]
			if d >= 1 {
				ao.Pix[y*ao.Stride+x] = 255
				continue
			}
			occ := 0
			for _, k := range sp.kernel {
				sx := x + int(math32.Round(k.X*sp.KernelRadius))
				sy := y + int(math32.Round(k.Y*sp.KernelRadius))
				diff := d - f.DepthAt(sx, sy)
				if diff >= sp.MinDistance && diff <= sp.MaxDistance {
					occ++
				}
			}
			v := 1 - float32(occ)/float32(len(sp.kernel))
			ao.Pix[y*ao.Stride+x] = uint8(math32.Round(v * 255))
		}
	}
	return ao
}

// Apply darkens occluded pixels, or replaces the image with
// the buffer selected by [SSAOPass.Output].
func (sp *SSAOPass) Apply(f *Frame) error {
	if !f.HasDepth() {
		return nil
	}
	sz := f.Size()
	if sp.Output == SSAODepth {
		for y := range sz.Y {
			for x := range sz.X {
				v := uint8(math32.Round(math32.Clamp(f.Depth[y*sz.X+x], 0, 1) * 255))
				f.Color.SetRGBA(x, y, color.RGBA{v, v, v, 255})
			}
		}
		return nil
	}
	ao := sp.Occlusion(f)
	if sp.Output == SSAOOnly {
		writeGray(f.Color, ao)
		return nil
	}
	blurred := blur.Box(ao, sp.BlurRadius)
	if sp.Output == SSAOBlur {
		for y := range sz.Y {
			for x := range sz.X {
				v := blurred.RGBAAt(x, y).R
				f.Color.SetRGBA(x, y, color.RGBA{v, v, v, 255})
			}
		}
		return nil
	}
	for y := range sz.Y {
		for x := range sz.X {
			if f.DepthAt(x, y) >= 1 {
				continue
			}
			a := uint32(blurred.RGBAAt(x, y).R)
			c := f.Color.RGBAAt(x, y)
			c.R = uint8(uint32(c.R) * a / 255)
			c.G = uint8(uint32(c.G) * a / 255)
			c.B = uint8(uint32(c.B) * a / 255)
			f.Color.SetRGBA(x, y, c)
		}
	}
	return nil
}

func writeGray(dst *image.RGBA, g *image.Gray) {
	sz := g.Rect.Size()
	for y := range sz.Y {
		for x := range sz.X {
			v := g.Pix[y*g.Stride+x]
			dst.SetRGBA(x, y, color.RGBA{v, v, v, 255})
		}
	}
}
