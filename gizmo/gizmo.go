// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gizmo provides an on-screen translate control that moves
// an attached position by dragging axis and plane handles.
package gizmo

import (
	"context"
	"image"
	"strings"

	"cogentcore.org/core/math32"
	"github.com/maniartech/signals"

	"github.com/aoscenes/aoscenes/camera"
)

// Handle is one draggable part of the gizmo. Its name lists the
// axes it moves along.
type Handle struct {
	Name string
	Axes []math32.Vector3
}

var (
	axisX = math32.Vec3(1, 0, 0)
	axisY = math32.Vec3(0, 1, 0)
	axisZ = math32.Vec3(0, 0, 1)
)

// Handles are all translate handles, in hit test priority order.
var Handles = []Handle{
	{"XYZ", nil},
	{"X", []math32.Vector3{axisX}},
	{"Y", []math32.Vector3{axisY}},
	{"Z", []math32.Vector3{axisZ}},
	{"XY", []math32.Vector3{axisX, axisY}},
	{"YZ", []math32.Vector3{axisY, axisZ}},
	{"XZ", []math32.Vector3{axisX, axisZ}},
}

// Translate is a translate gizmo bound to a camera.
type Translate struct {
	Camera *camera.Camera

	// ShowX, ShowY and ShowZ hide every handle involving the axis
	// when false.
	ShowX bool
	ShowY bool
	ShowZ bool

	// Size is the on-screen length of the axis handles in pixels.
	Size float32

	// Tolerance is the pick distance around handles in pixels.
	Tolerance float32

	// Change is emitted with the new target position on every move.
	Change signals.Signal[math32.Vector3]

	// DraggingChanged is emitted with true when a drag starts
	// and false when it ends.
	DraggingChanged signals.Signal[bool]

	target   *math32.Vector3
	active   *Handle
	start    image.Point
	startPos math32.Vector3
}

// NewTranslate returns a detached gizmo with all handles shown.
func NewTranslate(cam *camera.Camera) *Translate {
	return &Translate{
		Camera:          cam,
		ShowX:           true,
		ShowY:           true,
		ShowZ:           true,
		Size:            80,
		Tolerance:       8,
		Change:          signals.NewSync[math32.Vector3](),
		DraggingChanged: signals.NewSync[bool](),
	}
}

// Attach makes the gizmo move the given position.
func (g *Translate) Attach(target *math32.Vector3) {
	g.target = target
}

// Detach ends any drag and releases the target.
func (g *Translate) Detach() {
	g.PointerUp()
	g.target = nil
}

// Target returns the attached position, or nil.
func (g *Translate) Target() *math32.Vector3 {
	return g.target
}

// HandleVisible returns whether every axis named by the handle is shown.
func (g *Translate) HandleVisible(h *Handle) bool {
	return (g.ShowX || !strings.Contains(h.Name, "X")) &&
		(g.ShowY || !strings.Contains(h.Name, "Y")) &&
		(g.ShowZ || !strings.Contains(h.Name, "Z"))
}

// VisibleHandles returns the names of the visible handles.
func (g *Translate) VisibleHandles() []string {
	var nms []string
	for i := range Handles {
		if g.HandleVisible(&Handles[i]) {
			nms = append(nms, Handles[i].Name)
		}
	}
	return nms
}

// Dragging returns whether a handle is being dragged.
func (g *Translate) Dragging() bool {
	return g.active != nil
}

// Active returns the name of the dragged handle, or "".
func (g *Translate) Active() string {
	if g.active == nil {
		return ""
	}
	return g.active.Name
}

// axisScreen returns the screen direction of a world axis at the
// target and the number of pixels per world unit along it.
func (g *Translate) axisScreen(origin math32.Vector2, axis math32.Vector3, size image.Point) (math32.Vector2, float32) {
	p, ok := g.Camera.Project(g.startOrTarget().Add(axis), size)
	if !ok {
		return math32.Vector2{}, 0
	}
	d := p.Sub(origin)
	l := d.Length()
	if l == 0 {
		return math32.Vector2{}, 0
	}
	return d.DivScalar(l), l
}

func (g *Translate) startOrTarget() math32.Vector3 {
	if g.active != nil {
		return g.startPos
	}
	return *g.target
}

// distToSegment returns the distance from p to the segment a-b.
func distToSegment(p, a, b math32.Vector2) float32 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 == 0 {
		return p.Sub(a).Length()
	}
	t := math32.Clamp(p.Sub(a).Dot(ab)/l2, 0, 1)
	return p.Sub(a.Add(ab.MulScalar(t))).Length()
}

// HitTest returns the visible handle under the pixel position.
func (g *Translate) HitTest(pos, size image.Point) (*Handle, bool) {
	if g.target == nil {
		return nil, false
	}
	origin, ok := g.Camera.Project(*g.target, size)
	if !ok {
		return nil, false
	}
	pt := math32.Vec2(float32(pos.X), float32(pos.Y))
	for i := range Handles {
		h := &Handles[i]
		if !g.HandleVisible(h) {
			continue
		}
		switch len(h.Axes) {
		case 0:
			if pt.Sub(origin).Length() <= g.Tolerance {
				return h, true
			}
		case 1:
			dir, _ := g.axisScreen(origin, h.Axes[0], size)
			if dir == (math32.Vector2{}) {
				continue
			}
			if distToSegment(pt, origin, origin.Add(dir.MulScalar(g.Size))) <= g.Tolerance {
				return h, true
			}
		case 2:
			d0, _ := g.axisScreen(origin, h.Axes[0], size)
			d1, _ := g.axisScreen(origin, h.Axes[1], size)
			corner := origin.Add(d0.Add(d1).MulScalar(g.Size / 4))
			if pt.Sub(corner).Length() <= g.Tolerance*1.5 {
				return h, true
			}
		}
	}
	return nil, false
}

// PointerDown starts a drag when a visible handle is under the
// pointer, and returns whether it did.
func (g *Translate) PointerDown(pos, size image.Point) bool {
	h, ok := g.HitTest(pos, size)
	if !ok {
		return false
	}
	g.active = h
	g.start = pos
	g.startPos = *g.target
	g.DraggingChanged.Emit(context.Background(), true)
	return true
}

// PointerMove moves the target during a drag, and returns whether it did.
func (g *Translate) PointerMove(pos, size image.Point) bool {
	if g.active == nil || g.target == nil {
		return false
	}
	origin, ok := g.Camera.Project(g.startPos, size)
	if !ok {
		return false
	}
	delta := math32.Vec2(float32(pos.X-g.start.X), float32(pos.Y-g.start.Y))
	move := math32.Vector3{}
	if len(g.active.Axes) == 0 {
		fwd, right, up := g.Camera.Basis()
		depth := g.startPos.Sub(g.Camera.Pos).Dot(fwd)
		wpp := g.Camera.WorldPerPixel(depth, size.Y)
		move = right.MulScalar(delta.X * wpp).Sub(up.MulScalar(delta.Y * wpp))
	}
	for _, axis := range g.active.Axes {
		dir, ppu := g.axisScreen(origin, axis, size)
		if ppu == 0 {
			continue
		}
		move = move.Add(axis.MulScalar(delta.Dot(dir) / ppu))
	}
	*g.target = g.startPos.Add(move)
	g.Change.Emit(context.Background(), *g.target)
	return true
}

// PointerUp ends a drag.
func (g *Translate) PointerUp() {
	if g.active == nil {
		return
	}
	g.active = nil
	g.DraggingChanged.Emit(context.Background(), false)
}
