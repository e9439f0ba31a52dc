// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package postfx

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"cogentcore.org/core/base/tolassert"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flatSource renders a uniform color with a uniform depth.
type flatSource struct {
	size  image.Point
	color color.RGBA
	depth float32
	calls int
	err   error
}

func (fs *flatSource) RenderFrame(f *Frame) error {
	fs.calls++
	if fs.err != nil {
		return fs.err
	}
	if !f.Capture {
		return nil
	}
	f.Color = image.NewRGBA(image.Rectangle{Max: fs.size})
	for y := range fs.size.Y {
		for x := range fs.size.X {
			f.Color.SetRGBA(x, y, fs.color)
		}
	}
	f.Depth = make([]float32, fs.size.X*fs.size.Y)
	for i := range f.Depth {
		f.Depth[i] = fs.depth
	}
	return nil
}

// orderPass records its name into a shared log.
type orderPass struct {
	PassBase
	name string
	log  *[]string
}

func (op *orderPass) Name() string { return op.name }

func (op *orderPass) Apply(f *Frame) error {
	*op.log = append(*op.log, op.name)
	return nil
}

func TestComposerOrder(t *testing.T) {
	src := &flatSource{size: image.Pt(4, 4), color: color.RGBA{10, 20, 30, 255}, depth: 0.5}
	var log []string
	c := NewComposer(4, 4)
	c.AddPass(NewRenderPass(src))
	c.AddPass(&orderPass{PassBase: PassBase{Enabled: true}, name: "a", log: &log})
	c.AddPass(&orderPass{PassBase: PassBase{Enabled: false}, name: "b", log: &log})
	c.AddPass(&orderPass{PassBase: PassBase{Enabled: true}, name: "c", log: &log})

	require.NoError(t, c.Render(&Frame{Capture: true}))
	assert.Equal(t, []string{"a", "c"}, log)
	assert.Equal(t, 1, src.calls)
	assert.Len(t, c.Passes(), 4)
}

func TestComposerSkipsWithoutCapture(t *testing.T) {
	src := &flatSource{size: image.Pt(4, 4)}
	var log []string
	c := NewComposer(4, 4)
	c.AddPass(NewRenderPass(src))
	c.AddPass(&orderPass{PassBase: PassBase{Enabled: true}, name: "a", log: &log})

	f := &Frame{}
	require.NoError(t, c.Render(f))
	assert.Nil(t, f.Color)
	assert.Empty(t, log)
	assert.Equal(t, 1, src.calls)
}

func TestComposerError(t *testing.T) {
	boom := errors.New("boom")
	c := NewComposer(2, 2)
	c.AddPass(NewRenderPass(&flatSource{err: boom}))
	err := c.Render(&Frame{Capture: true})
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "render pass")
}

func TestComposerSetSize(t *testing.T) {
	c := NewComposer(10, 10)
	ss := NewSSAOPass(0, 0)
	fx := NewFXAAPass(2)
	c.AddPass(ss)
	c.AddPass(fx)
	assert.Equal(t, 10, ss.Width)

	c.SetSize(800, 400)
	assert.Equal(t, image.Pt(800, 400), c.Size())
	assert.Equal(t, 800, ss.Width)
	assert.Equal(t, 400, ss.Height)
	assert.Equal(t, 800, fx.Width)
	tolassert.EqualTol(t, 1.0/1600, fx.Resolution.X, 1e-9)
	tolassert.EqualTol(t, 1.0/800, fx.Resolution.Y, 1e-9)
}

func TestSSAOFlatDepthIsUnoccluded(t *testing.T) {
	src := &flatSource{size: image.Pt(16, 16), color: color.RGBA{200, 100, 50, 255}, depth: 0.4}
	f := &Frame{Capture: true}
	require.NoError(t, src.RenderFrame(f))

	sp := NewSSAOPass(16, 16)
	ao := sp.Occlusion(f)
	for _, v := range ao.Pix {
		assert.Equal(t, uint8(255), v)
	}
	require.NoError(t, sp.Apply(f))
	c := f.Color.RGBAAt(8, 8)
	assert.InDelta(t, 200, int(c.R), 1)
	assert.InDelta(t, 100, int(c.G), 1)
	assert.InDelta(t, 50, int(c.B), 1)
}

func TestSSAOCreaseIsOccluded(t *testing.T) {
	// a far floor with a near wall on the left half
	sz := image.Pt(32, 32)
	f := &Frame{Color: image.NewRGBA(image.Rectangle{Max: sz}), Depth: make([]float32, sz.X*sz.Y)}
	for y := range sz.Y {
		for x := range sz.X {
			d := float32(0.5)
			if x < 16 {
				d = 0.45
			}
			f.Depth[y*sz.X+x] = d
		}
	}
	sp := NewSSAOPass(sz.X, sz.Y)
	sp.MinDistance = 0.01
	sp.MaxDistance = 0.1
	ao := sp.Occlusion(f)
	// the far side next to the wall is occluded, the wall itself is not
	assert.Less(t, ao.GrayAt(17, 16).Y, uint8(255))
	assert.Equal(t, uint8(255), ao.GrayAt(8, 16).Y)
	assert.Equal(t, uint8(255), ao.GrayAt(30, 16).Y)
}

func TestSSAOBackgroundAndNoDepth(t *testing.T) {
	src := &flatSource{size: image.Pt(8, 8), color: color.RGBA{1, 2, 3, 255}, depth: 1}
	f := &Frame{Capture: true}
	require.NoError(t, src.RenderFrame(f))
	sp := NewSSAOPass(8, 8)
	sp.Output = SSAOOnly
	require.NoError(t, sp.Apply(f))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, f.Color.RGBAAt(3, 3))

	f.Depth = nil
	f.Color.SetRGBA(3, 3, color.RGBA{9, 9, 9, 255})
	require.NoError(t, sp.Apply(f))
	assert.Equal(t, color.RGBA{9, 9, 9, 255}, f.Color.RGBAAt(3, 3))
}

func TestSSAODepthOutput(t *testing.T) {
	src := &flatSource{size: image.Pt(4, 4), depth: 0.5}
	f := &Frame{Capture: true}
	require.NoError(t, src.RenderFrame(f))
	sp := NewSSAOPass(4, 4)
	sp.Output = SSAODepth
	require.NoError(t, sp.Apply(f))
	assert.Equal(t, color.RGBA{128, 128, 128, 255}, f.Color.RGBAAt(1, 1))
}

func TestSSAOOutputsText(t *testing.T) {
	var o SSAOOutputs
	require.NoError(t, o.UnmarshalText([]byte("blur")))
	assert.Equal(t, SSAOBlur, o)
	b, err := SSAODepth.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "depth", string(b))
	assert.Error(t, o.UnmarshalText([]byte("normal")))
}

func TestOutputPass(t *testing.T) {
	src := &flatSource{size: image.Pt(2, 2), color: color.RGBA{255, 128, 0, 255}}
	f := &Frame{Capture: true}
	require.NoError(t, src.RenderFrame(f))

	op := NewOutputPass()
	require.NoError(t, op.Apply(f))
	assert.Equal(t, color.RGBA{255, 128, 0, 255}, f.Color.RGBAAt(0, 0))

	op.ToneMapping = Reinhard
	require.NoError(t, op.Apply(f))
	c := f.Color.RGBAAt(1, 1)
	assert.Equal(t, uint8(128), c.R) // 1 / (1 + 1)
	assert.Equal(t, uint8(0), c.B)
	assert.Equal(t, uint8(255), c.A)
}

func TestFXAAUniformUnchanged(t *testing.T) {
	src := &flatSource{size: image.Pt(8, 8), color: color.RGBA{90, 90, 90, 255}}
	f := &Frame{Capture: true}
	require.NoError(t, src.RenderFrame(f))
	fp := NewFXAAPass(1)
	fp.SetSize(8, 8)
	require.NoError(t, fp.Apply(f))
	for y := range 8 {
		for x := range 8 {
			assert.Equal(t, color.RGBA{90, 90, 90, 255}, f.Color.RGBAAt(x, y))
		}
	}
}

func TestFXAASoftensEdges(t *testing.T) {
	sz := image.Pt(8, 8)
	f := &Frame{Color: image.NewRGBA(image.Rectangle{Max: sz})}
	for y := range sz.Y {
		for x := range sz.X {
			c := color.RGBA{0, 0, 0, 255}
			if x >= 4 {
				c = color.RGBA{255, 255, 255, 255}
			}
			f.Color.SetRGBA(x, y, c)
		}
	}
	fp := NewFXAAPass(1)
	fp.SetSize(8, 8)
	require.NoError(t, fp.Apply(f))
	edge := f.Color.RGBAAt(4, 4)
	assert.Less(t, edge.R, uint8(255))
	assert.Greater(t, edge.R, uint8(0))
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, f.Color.RGBAAt(1, 4))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, f.Color.RGBAAt(6, 4))
}
