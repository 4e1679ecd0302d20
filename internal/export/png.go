/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"sketchpad/internal/raster"
	"sketchpad/internal/sketch"
	"sketchpad/internal/vector"
)

// DefaultScale is the linear factor between canvas pixels and exported pixels.
const DefaultScale = 4

// DataURLPrefix starts every PNG data URL.
const DataURLPrefix = "data:image/png;base64,"

// PNGOptions controls PNG export. Zero values use a 256x256 white canvas at 4x.
type PNGOptions struct {
	Width, Height int // canvas size in canvas pixels
	Scale         int
	Background    vector.Color
	Fonts         *raster.FontLibrary
}

func (o PNGOptions) withDefaults() PNGOptions {
	if o.Width <= 0 {
		o.Width = 256
	}
	if o.Height <= 0 {
		o.Height = 256
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Background == (vector.Color{}) {
		o.Background = vector.White
	}
	return o
}

// RenderImage replays h onto an offscreen raster Scale times the canvas size.
func RenderImage(h *sketch.History, opt PNGOptions) *image.RGBA {
	opt = opt.withDefaults()
	c := raster.NewCanvas(opt.Width*opt.Scale, opt.Height*opt.Scale, opt.Background, opt.Fonts)
	c.SetTransform(vector.Scale(float32(opt.Scale), float32(opt.Scale)))
	sketch.Redraw(c, h, nil, vector.Rect{})
	return c.Image()
}

// WritePNG renders h and encodes it as PNG to w.
func WritePNG(w io.Writer, h *sketch.History, opt PNGOptions) error {
	if err := png.Encode(w, RenderImage(h, opt)); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// ExportPNGFile writes the rendered drawing to path, creating parent directories.
func ExportPNGFile(path string, h *sketch.History, opt PNGOptions) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("ensure out dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create png: %w", err)
	}
	if err := WritePNG(f, h, opt); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close png: %w", err)
	}
	return nil
}

// PNGDataURL returns the rendered drawing as a data URL.
func PNGDataURL(h *sketch.History, opt PNGOptions) (string, error) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, h, opt); err != nil {
		return "", err
	}
	return DataURLPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
