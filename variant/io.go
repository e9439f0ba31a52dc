// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package variant

import (
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Read decodes TOML params from r and validates them.
func Read(r io.Reader) (Params, error) {
	var p Params
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return Params{}, fmt.Errorf("variant: decode: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// Write encodes the params to w as TOML.
func (p *Params) Write(w io.Writer) error {
	enc := toml.NewEncoder(w)
	enc.SetIndentTables(true)
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("variant: encode %q: %w", p.Name, err)
	}
	return nil
}

// Open reads params from the TOML file at path.
func Open(path string) (Params, error) {
	f, err := os.Open(path)
	if err != nil {
		return Params{}, fmt.Errorf("variant: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Save writes the params to the TOML file at path.
func (p *Params) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("variant: %w", err)
	}
	if err := p.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Resolve returns the params of the preset name, or, when path is set,
// the params stored in that file.
func Resolve(name, path string) (Params, error) {
	if path != "" {
		return Open(path)
	}
	p, err := Lookup(name)
	if err != nil {
		return Params{}, err
	}
	return p, p.Validate()
}
