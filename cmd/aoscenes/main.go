// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command aoscenes shows interactive 3D scenes rendered with
// screen space ambient occlusion.
package main

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/cli"
	"cogentcore.org/core/core"
	"cogentcore.org/core/xyz/xyzcore"
	"github.com/dustin/go-humanize"

	"github.com/aoscenes/aoscenes/demo"
	"github.com/aoscenes/aoscenes/variant"
	"github.com/aoscenes/aoscenes/xyzview"
)

// Config is the configuration of all aoscenes commands.
type Config struct {

	// Variant is the name of the preset scene.
	Variant string `posarg:"0" required:"-" default:"cylinders"`

	// File loads the scene params from a TOML file instead of a preset.
	File string `flag:"f,file"`

	// Seed seeds the random container transforms.
	Seed uint64 `default:"1"`

	// Width and Height are the initial viewport size, and the
	// snapshot size.
	Width  int `default:"1280"`
	Height int `default:"720"`

	// PixelRatio is the device pixel ratio used by anti-aliasing.
	PixelRatio float32 `default:"1"`

	// Snapshot is the image file written by the snapshot command
	// and by the s key.
	Snapshot string `default:"aoscenes.png"`

	// Output is the file written by the export command.
	// The params are written to standard output when it is empty.
	Output string `flag:"o,output"`

	// Debug enables debug logging.
	Debug bool `flag:"d,debug"`
}

func main() {
	opts := cli.DefaultOptions("aoscenes", "Aoscenes shows 3D scenes rendered with screen space ambient occlusion.")
	opts.DefaultFiles = []string{"aoscenes.toml"}
	cli.Run(opts, &Config{},
		&cli.Cmd[*Config]{Func: Run, Name: "run", Doc: "Run opens the scene in a window.", Root: true},
		&cli.Cmd[*Config]{Func: Snapshot, Name: "snapshot", Doc: "Snapshot renders one frame offscreen and saves it."},
		&cli.Cmd[*Config]{Func: List, Name: "list", Doc: "List prints the preset scenes."},
		&cli.Cmd[*Config]{Func: Export, Name: "export", Doc: "Export writes the scene params as TOML."},
	)
}

func (c *Config) setupLog() {
	if c.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}
}

func (c *Config) options() []demo.Option {
	return []demo.Option{
		demo.WithSize(c.Width, c.Height),
		demo.WithSeed(c.Seed),
		demo.WithPixelRatio(c.PixelRatio),
	}
}

// Run opens the scene in a window and renders it until the window closes.
func Run(c *Config) error {
	c.setupLog()
	p, err := variant.Resolve(c.Variant, c.File)
	if err != nil {
		return err
	}
	b := core.NewBody("aoscenes: " + p.Name)
	sw := xyzcore.NewScene(b)
	sw.SelectionMode = xyzcore.NotSelectable
	if p.SSAO.Enabled {
		// snapshots read depth back, which needs a single sample frame
		sw.SceneXYZ().MultiSample = 1
	}
	be := xyzview.NewBackend(sw.SceneXYZ())
	d, err := demo.New(p, be, c.options()...)
	if err != nil {
		return err
	}
	v := &xyzview.View{Widget: sw, Demo: d, Backend: be, Snapshot: c.Snapshot}
	v.Bind()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go v.Run(ctx)
	b.RunMainWindow()
	return nil
}

// Snapshot renders one frame of the scene without a window and
// saves it, with every post-processing pass applied.
func Snapshot(c *Config) error {
	c.setupLog()
	p, err := variant.Resolve(c.Variant, c.File)
	if err != nil {
		return err
	}
	// depth read back needs a single sample frame
	samples := 4
	if p.SSAO.Enabled {
		samples = 1
	}
	off, err := xyzview.NewOffscreen(image.Pt(c.Width, c.Height), samples)
	if err != nil {
		return err
	}
	defer off.Release()
	d, err := demo.New(p, off.Backend, c.options()...)
	if err != nil {
		return err
	}
	if err := d.SaveSnapshot(c.Snapshot); err != nil {
		return err
	}
	if st, err := os.Stat(c.Snapshot); err == nil {
		fmt.Printf("wrote %s (%s)\n", c.Snapshot, humanize.Bytes(uint64(st.Size())))
	}
	return nil
}

// List prints the preset scenes.
func List(c *Config) error {
	for _, nm := range variant.Names() {
		p := errors.Log1(variant.Lookup(nm))
		meshes := p.Count * len(p.Parts)
		fmt.Printf("%-10s %s (%s meshes)\n", nm, p.Doc, humanize.Comma(int64(meshes)))
	}
	return nil
}

// Export writes the params of the scene as TOML, as a starting
// point for a custom scene file.
func Export(c *Config) error {
	p, err := variant.Resolve(c.Variant, c.File)
	if err != nil {
		return err
	}
	if c.Output != "" {
		return p.Save(c.Output)
	}
	return p.Write(os.Stdout)
}
