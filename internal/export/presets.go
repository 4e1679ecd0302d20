/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"sketchpad/internal/raster"
	"sketchpad/internal/sketch"
	"sketchpad/internal/vector"
)

// Format is an export file format.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
	FormatPDF Format = "pdf"
)

// Options carries the settings shared by every format.
type Options struct {
	Width, Height int
	Scale         int // raster scale; SVG uses it for its pixel size
	Background    vector.Color
	Fonts         *raster.FontLibrary
	Title         string
}

// FormatFor derives the format from the extension of path.
func FormatFor(path string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch Format(ext) {
	case FormatPNG, FormatSVG, FormatPDF:
		return Format(ext), nil
	case "":
		return "", fmt.Errorf("no file extension in %q", path)
	default:
		return "", fmt.Errorf("unknown export format: %s", ext)
	}
}

// ExportFile writes h to path in the format named by its extension.
func ExportFile(path string, h *sketch.History, opt Options) error {
	f, err := FormatFor(path)
	if err != nil {
		return err
	}
	switch f {
	case FormatPNG:
		return ExportPNGFile(path, h, PNGOptions{Width: opt.Width, Height: opt.Height, Scale: opt.Scale, Background: opt.Background, Fonts: opt.Fonts})
	case FormatSVG:
		return ExportSVGFile(path, h, SVGOptions{Width: opt.Width, Height: opt.Height, Scale: opt.Scale, Background: opt.Background})
	default:
		return ExportPDF(path, h, PDFOptions{Width: opt.Width, Height: opt.Height, Background: opt.Background, Fonts: opt.Fonts, Title: opt.Title})
	}
}

// BatchExport writes h once per format into dir as <base>.<format>. It returns the
// written paths.
func BatchExport(dir, base string, formats []Format, h *sketch.History, opt Options) ([]string, error) {
	if base == "" {
		base = "sketch"
	}
	if len(formats) == 0 {
		formats = []Format{FormatPNG}
	}
	var out []string
	for _, f := range formats {
		path := filepath.Join(dir, base+"."+strings.ToLower(string(f)))
		if err := ExportFile(path, h, opt); err != nil {
			return out, fmt.Errorf("%s: %w", f, err)
		}
		out = append(out, path)
	}
	return out, nil
}
