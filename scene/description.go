// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scene

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gogpu/switchgrid/render"
)

//go:embed default.json
var defaultDescription []byte

// ErrInvalidDescription is returned for descriptions that cannot produce a
// grid of panels.
var ErrInvalidDescription = errors.New("scene: invalid description")

// Description is the JSON scene description.
type Description struct {
	Name string `json:"name"`

	// Extent is the world-space width of the whole grid. The cell pitch is
	// Extent / N, so every grid size fills the same area.
	Extent float32 `json:"extent"`

	// Gap is the fraction of the pitch left empty between panels.
	Gap float32 `json:"gap"`

	// Thickness is the panel height along Y.
	Thickness float32 `json:"thickness"`

	Faces Faces `json:"faces"`
}

// Faces holds the panel colors.
type Faces struct {
	Up   render.Color `json:"up"`
	Down render.Color `json:"down"`
	Edge render.Color `json:"edge"`
}

// Default returns the embedded description.
func Default() *Description {
	d, err := Decode(bytes.NewReader(defaultDescription))
	if err != nil {
		panic(fmt.Sprintf("scene: embedded description: %v", err))
	}
	return d
}

// Load reads a description from path. The empty path returns Default.
func Load(path string) (*Description, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("scene: open %s: %w", path, err)
	}
	defer f.Close()

	d, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Decode parses and validates a description.
func Decode(r io.Reader) (*Description, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var d Description
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("scene: decode: %w", err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Validate checks that every dimension is usable.
func (d *Description) Validate() error {
	switch {
	case d.Extent <= 0:
		return fmt.Errorf("%w: extent %v must be positive", ErrInvalidDescription, d.Extent)
	case d.Gap < 0 || d.Gap >= 1:
		return fmt.Errorf("%w: gap %v must be in [0, 1)", ErrInvalidDescription, d.Gap)
	case d.Thickness <= 0:
		return fmt.Errorf("%w: thickness %v must be positive", ErrInvalidDescription, d.Thickness)
	}
	for name, c := range map[string]render.Color{"up": d.Faces.Up, "down": d.Faces.Down, "edge": d.Faces.Edge} {
		for _, v := range c {
			if v < 0 || v > 1 {
				return fmt.Errorf("%w: %s color %v outside [0, 1]", ErrInvalidDescription, name, c)
			}
		}
	}
	return nil
}
