// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyzview

import (
	"context"
	"image"
	"log/slog"
	"time"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/events"
	"cogentcore.org/core/xyz/xyzcore"

	"github.com/aoscenes/aoscenes/demo"
)

// FrameInterval is the time between two frames of a bound view.
var FrameInterval = time.Second / 60

// View connects an [xyzcore.Scene] widget to a running demo.
type View struct {
	Widget  *xyzcore.Scene
	Demo    *demo.Demo
	Backend *Backend

	// Snapshot is the file written on the s key. Empty disables it.
	Snapshot string
}

// local returns the event position relative to the scene content.
func (v *View) local(e events.Event) image.Point {
	return e.Pos().Sub(v.Widget.Geom.ContentBBox.Min)
}

// Bind routes the widget pointer, scroll and key events to the demo.
// All handlers run with the widget locked by the event loop.
func (v *View) Bind() {
	sw := v.Widget
	sw.On(events.MouseDown, func(e events.Event) {
		v.Demo.PointerDown(v.local(e))
	})
	sw.On(events.MouseUp, func(e events.Event) {
		v.Demo.PointerUp()
	})
	move := func(e events.Event) {
		v.Demo.PointerMove(v.local(e))
	}
	sw.On(events.MouseMove, move)
	sw.On(events.MouseDrag, move)
	// The widget navigates the xyz camera on slide moves even with
	// NoNav set; this handler is added last so it runs first.
	sw.On(events.SlideMove, func(e events.Event) {
		move(e)
		e.SetHandled()
	})
	sw.On(events.Scroll, func(e events.Event) {
		se := e.(*events.MouseScroll)
		v.Demo.Scroll(se.Delta.Y)
		e.SetHandled()
	})
	sw.On(events.KeyChord, func(e events.Event) {
		switch e.KeyRune() {
		case 's':
			if v.Snapshot == "" {
				return
			}
			e.SetHandled()
			errors.Log(v.Demo.SaveSnapshot(v.Snapshot))
		case ' ':
			e.SetHandled()
			v.Demo.ResetCamera()
		}
	})
}

// step advances one frame: it follows widget resizes, renders the
// demo and asks the widget to redraw when the scene changed.
func (v *View) step() {
	sz := v.Backend.Scene.Geom.Size
	if sz.X > 0 && sz.Y > 0 && sz != v.Demo.Size() {
		v.Demo.Resize(sz.X, sz.Y)
	}
	if err := v.Demo.Frame(); err != nil {
		slog.Error("frame", "err", err)
		return
	}
	if v.Backend.Pending() {
		v.Widget.NeedsRender()
	}
}

// Run renders frames until ctx is done. Each frame runs under the
// widget async lock, so it never interleaves with event handlers.
func (v *View) Run(ctx context.Context) {
	tick := time.NewTicker(FrameInterval)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			v.Widget.AsyncLock()
			v.step()
			v.Widget.AsyncUnlock()
		}
	}
}
