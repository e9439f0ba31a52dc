// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyzview

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math"

	"cogentcore.org/core/gpu"

	"github.com/aoscenes/aoscenes/camera"
	"github.com/aoscenes/aoscenes/postfx"
)

// RenderFrame renders the scene. Live frames are left to the widget;
// captured frames are rendered now and read back, with depth when
// the frame is not multisampled.
func (b *Backend) RenderFrame(f *postfx.Frame) error {
	sc := b.Scene
	if !f.Capture {
		return nil
	}
	if sc.Frame == nil {
		return errors.New("xyzview: scene has no render frame")
	}
	rt, ok := sc.Frame.(*gpu.RenderTexture)
	if !ok {
		return fmt.Errorf("xyzview: cannot read back a %T frame", sc.Frame)
	}
	sc.UpdateNodesIfNeeded()
	if !sc.Render() {
		return errors.New("xyzview: could not render scene")
	}
	tex, err := rt.GetCurrentTextureObject()
	if err != nil {
		return fmt.Errorf("xyzview: %w", err)
	}
	rd := rt.Render()
	var depth *gpu.Texture
	if rd.Format.Samples <= 1 && rd.DepthFormat != gpu.UndefinedType {
		depth = &rd.Depth
	} else {
		slog.Warn("no depth for ambient occlusion", "samples", rd.Format.Samples)
	}
	if err := readBack(rt.Device(), tex, depth); err != nil {
		return err
	}

	var pix []byte
	if err := tex.ReadData(&pix, true); err != nil {
		return fmt.Errorf("xyzview: read color: %w", err)
	}
	sz := tex.Format.Size
	if len(pix) != 4*sz.X*sz.Y {
		return fmt.Errorf("xyzview: read %d color bytes for size %v", len(pix), sz)
	}
	f.Color = &image.RGBA{Pix: pix, Stride: 4 * sz.X, Rect: image.Rectangle{Max: sz}}
	if depth == nil {
		return nil
	}
	var raw []byte
	if err := depth.ReadData(&raw, true); err != nil {
		slog.Warn("no depth for ambient occlusion", "err", err)
		return nil
	}
	if len(raw) != 4*sz.X*sz.Y {
		slog.Warn("depth size mismatch", "len", len(raw)/4, "size", sz)
		return nil
	}
	near, far := sc.Camera.Near, sc.Camera.Far
	f.Depth = make([]float32, sz.X*sz.Y)
	for i := range f.Depth {
		d := math.Float32frombits(binary.LittleEndian.Uint32(raw[4*i:]))
		f.Depth[i] = camera.LinearizeDepth(d, near, far)
	}
	return nil
}

// readBack copies the rendered textures to their read buffers.
// [gpu.Texture.ReadData] then waits for the copy.
func readBack(dev *gpu.Device, texs ...*gpu.Texture) error {
	cmd, err := dev.Device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("xyzview: %w", err)
	}
	defer cmd.Release()
	for _, tx := range texs {
		if tx == nil {
			continue
		}
		if err := tx.ConfigReadBuffer(); err != nil {
			return fmt.Errorf("xyzview: %w", err)
		}
		if err := tx.CopyToReadBuffer(cmd); err != nil {
			return fmt.Errorf("xyzview: %w", err)
		}
	}
	cb, err := cmd.Finish(nil)
	if err != nil {
		return fmt.Errorf("xyzview: %w", err)
	}
	dev.Queue.Submit(cb)
	cb.Release()
	return nil
}
