// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pick

import (
	"image/color"
	"math/rand/v2"
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aoscenes/aoscenes/model"
	"github.com/aoscenes/aoscenes/variant"
)

var (
	red     = color.RGBA{255, 0, 0, 255}
	neutral = color.RGBA{0, 0, 0, 255}
)

// row returns a picking model whose boxes stand upright in a row
// along X, 50 apart, starting at x = 0.
func row(t *testing.T) *model.Model {
	t.Helper()
	p := variant.Picking()
	m := model.Generate(&p, rand.New(rand.NewPCG(1, 1)))
	for i, c := range m.Containers {
		c.Rotation = math32.Vector3{}
		c.Scale = math32.Vec3(20, 10, 20)
		c.Meshes[0].Offset = math32.Vec3(float32(i)*50/20, 10, 0)
		c.Meshes[0].Material.Emissive = neutral
	}
	return m
}

func down(x float32) math32.Ray {
	return math32.Ray{Origin: math32.Vec3(x, 100, 500), Dir: math32.Vec3(0, 0, -1)}
}

func TestPick(t *testing.T) {
	m := row(t)
	hit, ok := Pick(down(100), m.Intersectables)
	require.True(t, ok)
	assert.Same(t, m.Containers[2].Meshes[0], hit)

	hit, ok = Pick(down(25), m.Intersectables)
	assert.False(t, ok)
	assert.Nil(t, hit)

	_, ok = Pick(down(0), nil)
	assert.False(t, ok)
}

func TestPickNearest(t *testing.T) {
	m := row(t)
	// a ray along the row from +X hits every box; the last is nearest
	ray := math32.Ray{Origin: math32.Vec3(1000, 100, 0), Dir: math32.Vec3(-1, 0, 0)}
	hit, ok := Pick(ray, m.Intersectables)
	require.True(t, ok)
	assert.Same(t, m.Containers[len(m.Containers)-1].Meshes[0], hit)
}

func TestHighlighterSingleSelection(t *testing.T) {
	m := row(t)
	h := NewHighlighter(red, neutral)
	a, b := m.Containers[0].Meshes[0], m.Containers[1].Meshes[0]

	h.Update(a)
	assert.Same(t, a, h.Current())
	assert.Equal(t, red, a.Material.Emissive)
	assert.Equal(t, []*model.Mesh{a}, h.Changed())

	// same hit again: nothing changes
	h.Update(a)
	assert.Empty(t, h.Changed())
	assert.Equal(t, red, a.Material.Emissive)

	h.Update(b)
	assert.Same(t, b, h.Current())
	assert.Equal(t, neutral, a.Material.Emissive)
	assert.Equal(t, red, b.Material.Emissive)
	assert.Equal(t, []*model.Mesh{a, b}, h.Changed())

	highlighted := 0
	for _, ms := range m.Meshes() {
		if ms.Material.Emissive == red {
			highlighted++
		}
	}
	assert.Equal(t, 1, highlighted)

	h.Update(nil)
	assert.Nil(t, h.Current())
	assert.Equal(t, neutral, b.Material.Emissive)
	assert.Equal(t, []*model.Mesh{b}, h.Changed())
}

func TestHighlighterFollowsPicks(t *testing.T) {
	m := row(t)
	h := NewHighlighter(red, neutral)
	for _, x := range []float32{0, 50, 25, 450, 460, 10000} {
		hit, _ := Pick(down(x), m.Intersectables)
		h.Update(hit)
		assert.Same(t, hit, h.Current())
		if hit != nil {
			assert.Equal(t, red, hit.Material.Emissive)
		}
	}
	assert.Nil(t, h.Current())
	for _, ms := range m.Meshes() {
		assert.Equal(t, neutral, ms.Material.Emissive)
	}
}
