// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyzview

import (
	"image"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/gpu"
	"cogentcore.org/core/xyz"
)

// Offscreen is a backend rendering to a GPU frame without a display.
type Offscreen struct {
	*Backend
}

// NewOffscreen initializes the GPU without connecting to the display
// and returns a backend of the given size. Depth is only read back
// when multiSample is 1, so ambient occlusion needs that.
func NewOffscreen(size image.Point, multiSample int) (*Offscreen, error) {
	// gpu.NoDisplayGPU dereferences a nil GPU when WebGPU is missing.
	gp := gpu.NewGPU(nil)
	if gp == nil {
		return nil, errors.New("xyzview: no GPU available")
	}
	dev, err := gpu.NewDevice(gp)
	if err != nil {
		return nil, errors.Log(err)
	}
	sc := xyz.NewScene()
	sc.MultiSample = multiSample
	sc.Geom.Size = size
	sc.ConfigOffscreen(gp, dev)
	return &Offscreen{Backend: NewBackend(sc)}, nil
}

// Release frees the scene render frame.
func (o *Offscreen) Release() {
	o.Scene.Destroy()
}
