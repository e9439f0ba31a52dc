// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyzview

import (
	"image"
	"image/color"
	"math/rand/v2"
	"testing"

	"cogentcore.org/core/base/tolassert"
	"cogentcore.org/core/colors"
	"cogentcore.org/core/math32"
	"cogentcore.org/core/xyz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aoscenes/aoscenes/camera"
	"github.com/aoscenes/aoscenes/demo"
	"github.com/aoscenes/aoscenes/gizmo"
	"github.com/aoscenes/aoscenes/model"
	"github.com/aoscenes/aoscenes/postfx"
	"github.com/aoscenes/aoscenes/variant"
)

func build(t *testing.T, p variant.Params) (*Backend, *model.Model) {
	t.Helper()
	m := model.Generate(&p, rand.New(rand.NewPCG(3, 3)))
	b := NewBackend(xyz.NewScene())
	require.NoError(t, b.Build(m, &p))
	return b, m
}

func TestBuild(t *testing.T) {
	b, m := build(t, variant.Lollipops())
	assert.True(t, b.Scene.NoNav)
	require.NotNil(t, b.Group())
	assert.Equal(t, GroupName, b.Group().Name)
	assert.Len(t, b.Group().Children, 100)

	for _, ms := range m.Meshes() {
		sld := b.Solid(ms.ID)
		require.NotNil(t, sld, ms.Name)
		assert.Equal(t, ms.Offset, sld.Pose.Pos)
		assert.Equal(t, ms.Material.Color, sld.Material.Color)
	}
	head := m.Containers[0].Meshes[1]
	assert.Equal(t, color.RGBA{0xff, 0x9f, 0x7f, 0xff}, b.Solid(head.ID).Material.Color)

	cg := b.Group().Children[0].(*xyz.Group)
	assert.Equal(t, m.Containers[0].Scale, cg.Pose.Scale)
	assert.True(t, b.Pending())
	assert.False(t, b.Pending())
}

func TestBuildTwiceReplaces(t *testing.T) {
	p := variant.Picking()
	b, m := build(t, p)
	require.NoError(t, b.Build(m, &p))
	assert.Len(t, b.Scene.Children, 1)
	assert.Len(t, b.Group().Children, 10)
}

func TestSync(t *testing.T) {
	b, m := build(t, variant.Picking())
	b.Pending()

	pos := math32.Vec3(1, 2, 3)
	b.SyncGroup(pos)
	assert.Equal(t, pos, b.Group().Pose.Pos)
	assert.True(t, b.Pending())

	ms := m.Containers[4].Meshes[0]
	ms.Material.Emissive = color.RGBA{255, 0, 0, 255}
	b.SyncMaterial(ms)
	assert.Equal(t, ms.Material.Emissive, b.Solid(ms.ID).Material.Emissive)
	assert.True(t, b.Pending())

	cam := camera.New(50, 2, 1, 100)
	cam.Pos = math32.Vec3(0, 0, 10)
	b.SyncCamera(cam)
	assert.Equal(t, float32(50), b.Scene.Camera.FOV)
	assert.Equal(t, cam.Pos, b.Scene.Camera.Pose.Pos)
	assert.True(t, b.Pending())
}

func TestRenderFrameWithoutGPU(t *testing.T) {
	b, _ := build(t, variant.Cylinders())
	assert.NoError(t, b.RenderFrame(&postfx.Frame{}))
	assert.Error(t, b.RenderFrame(&postfx.Frame{Capture: true}))
}

func TestBuildLights(t *testing.T) {
	p := variant.Cylinders()
	b, m := build(t, p)
	require.Equal(t, 2, b.Scene.Lights.Len())
	for _, lt := range m.Lights {
		xl, ok := b.Scene.Lights.ValueByKeyTry(lt.Name)
		require.True(t, ok, lt.Name)
		base := xl.AsLightBase()
		assert.Equal(t, lt.Color, base.Color, lt.Name)
		assert.True(t, base.On)
		assert.Equal(t, lumens(lt.Intensity), base.Lumens)
		if lt.Kind == model.Directional {
			require.IsType(t, &xyz.Directional{}, xl)
			assert.Equal(t, lt.Pos, xl.(*xyz.Directional).Pos)
		} else {
			assert.IsType(t, &xyz.Ambient{}, xl)
		}
	}

	// a second build replaces the lights
	require.NoError(t, b.Build(m, &p))
	assert.Equal(t, 2, b.Scene.Lights.Len())
}

func TestSyncGizmo(t *testing.T) {
	b, _ := build(t, variant.Lollipops())
	b.Pending()
	parts := []gizmo.Part{
		{Handle: &gizmo.Handles[0], Radius: 2},
		{Handle: &gizmo.Handles[1], Center: math32.Vec3(5, 0, 0), End: math32.Vec3(10, 0, 0), Radius: 2},
		{Handle: &gizmo.Handles[4], Center: math32.Vec3(3, 3, 0), End: math32.Vec3(3, 3, 0), Radius: 2},
	}
	b.SyncGizmo(parts, "X")
	assert.True(t, b.Pending())
	assert.Len(t, b.Scene.Children, 2)
	gg, ok := b.Scene.ChildByName(GizmoName).(*xyz.Group)
	require.True(t, ok)
	require.Len(t, gg.Children, 3)

	center := gg.Children[0].(*xyz.Solid)
	assert.Equal(t, colors.White, center.Material.Color)
	assert.Equal(t, math32.Vec3(3, 3, 3), center.Pose.Scale)

	x := gg.Children[1].(*xyz.Solid)
	assert.Equal(t, GizmoName+"-X", x.Name)
	assert.Equal(t, ActiveHandleColor, x.Material.Color)
	assert.Equal(t, ActiveHandleColor, x.Material.Emissive)
	assert.Equal(t, math32.Vec3(5, 0, 0), x.Pose.Pos)
	assert.Equal(t, math32.Vec3(1, 10, 1), x.Pose.Scale)
	up := math32.Vec3(0, 1, 0).MulQuat(x.Pose.Quat)
	tolassert.EqualTol(t, 1, up.X, 1e-5)
	tolassert.EqualTol(t, 0, up.Y, 1e-5)

	xy := gg.Children[2].(*xyz.Solid)
	assert.Equal(t, colors.Blue, xy.Material.Color)
	assert.Equal(t, math32.Vec3(4, 4, 0.4), xy.Pose.Scale)

	b.SyncGizmo(parts[1:2], "")
	gg = b.Scene.ChildByName(GizmoName).(*xyz.Group)
	require.Len(t, gg.Children, 1)
	assert.Equal(t, colors.Red, gg.Children[0].(*xyz.Solid).Material.Color)

	b.SyncGizmo(nil, "")
	assert.Nil(t, b.Scene.ChildByName(GizmoName))
	assert.Len(t, b.Scene.Children, 1)
}

func TestCaptureOffscreen(t *testing.T) {
	off, err := NewOffscreen(image.Pt(64, 48), 1)
	if err != nil {
		t.Skip("no GPU:", err)
	}
	defer off.Release()
	d, err := demo.New(variant.Cylinders(), off.Backend, demo.WithSize(64, 48))
	require.NoError(t, err)

	f := &postfx.Frame{Capture: true}
	require.NoError(t, off.RenderFrame(f))
	require.NotNil(t, f.Color)
	assert.Equal(t, image.Pt(64, 48), f.Size())
	require.True(t, f.HasDepth())
	for _, z := range f.Depth {
		require.GreaterOrEqual(t, z, float32(0))
		require.LessOrEqual(t, z, float32(1))
	}

	img, err := d.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, image.Pt(64, 48), img.Rect.Size())
}
