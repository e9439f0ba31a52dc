// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package variant

import (
	"bytes"
	"image/color"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aoscenes/aoscenes/postfx"
)

func TestPresetsValidate(t *testing.T) {
	assert.Equal(t, []string{"cylinders", "lollipops", "picking"}, Names())
	for _, nm := range Names() {
		p, err := Lookup(nm)
		require.NoError(t, err, nm)
		assert.Equal(t, nm, p.Name)
		assert.NoError(t, p.Validate(), nm)
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("spheres")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "spheres")

	_, err = Resolve("spheres", "")
	assert.Error(t, err)
}

func TestLookupCopies(t *testing.T) {
	a, _ := Lookup("lollipops")
	a.Parts[0].Offset.Y = 99
	b, _ := Lookup("lollipops")
	assert.Equal(t, float32(10), b.Parts[0].Offset.Y)
}

func TestHex(t *testing.T) {
	assert.Equal(t, color.RGBA{0xf5, 0xee, 0xd6, 0xff}, Hex("#f5eed6").RGBA())
	assert.NoError(t, Hex("#7f7fff").validate("c"))
	assert.Error(t, Hex("blue").validate("c"))
}

func TestValidateErrors(t *testing.T) {
	p := Cylinders()
	p.Count = 0
	p.Camera.Near = 0
	p.SSAO.MinDistance = 1
	p.Parts[0].Geometry.Height = -1
	err := p.Validate()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, `"cylinders"`)
	assert.Contains(t, msg, "count")
	assert.Contains(t, msg, "near")
	assert.Contains(t, msg, "ssao")
	assert.Contains(t, msg, "part 0")

	p = Picking()
	p.Highlight = ""
	assert.Error(t, p.Validate())
	p.Picking = false
	assert.NoError(t, p.Validate())

	p = Lollipops()
	p.Parts = append(p.Parts, p.Parts[0])
	assert.Error(t, p.Validate())

	p = Lollipops()
	p.PickParts = []int{1}
	assert.NoError(t, p.Validate())
	p.PickParts = []int{1, 2}
	assert.ErrorContains(t, p.Validate(), "pick part 2 out of range")
	p.PickParts = []int{0, 0}
	assert.ErrorContains(t, p.Validate(), "pick part 0 listed twice")
}

func TestBounds(t *testing.T) {
	g := Geometry{Shape: Box, Width: 1, Height: 20, Depth: 2}
	b := g.Bounds()
	assert.Equal(t, float32(-0.5), b.Min.X)
	assert.Equal(t, float32(10), b.Max.Y)
	assert.Equal(t, float32(1), b.Max.Z)

	g = Geometry{Shape: Cylinder, RadiusTop: 0.5, RadiusBottom: 0.1, Height: 20}
	b = g.Bounds()
	assert.Equal(t, float32(-0.5), b.Min.X)
	assert.Equal(t, float32(-10), b.Min.Y)

	g = Geometry{Shape: Sphere, Radius: 2}
	assert.Equal(t, float32(2), g.Bounds().Max.Z)
}

func TestSaveOpen(t *testing.T) {
	p := Lollipops()
	p.SSAO.Output = postfx.SSAOBlur
	p.PickParts = []int{1}
	fn := filepath.Join(t.TempDir(), "lollipops.toml")
	require.NoError(t, p.Save(fn))

	q, err := Open(fn)
	require.NoError(t, err)
	assert.Equal(t, p, q)

	r, err := Resolve("cylinders", fn)
	require.NoError(t, err)
	assert.Equal(t, "lollipops", r.Name)
}

func TestReadRejects(t *testing.T) {
	var buf bytes.Buffer
	p := Picking()
	require.NoError(t, p.Write(&buf))
	assert.Contains(t, buf.String(), "default")

	_, err := Read(strings.NewReader(buf.String() + "\nBogus = 1\n"))
	assert.Error(t, err)

	bad := strings.Replace(buf.String(), "Count = 10", "Count = 0", 1)
	_, err = Read(strings.NewReader(bad))
	assert.Error(t, err)

	_, err = Open(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
