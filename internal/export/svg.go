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
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sketchpad/internal/sketch"
	"sketchpad/internal/vector"
)

// SVGOptions controls SVG export. The viewBox is the canvas; width and height
// attributes are multiplied by Scale.
type SVGOptions struct {
	Width, Height int
	Scale         int
	Background    vector.Color
	FontFamily    string
}

// RenderSVG replays h as an SVG document. Glyphs are written as text and left to the
// viewer's fonts.
func RenderSVG(h *sketch.History, opt SVGOptions) ([]byte, error) {
	if opt.Width <= 0 {
		opt.Width = 256
	}
	if opt.Height <= 0 {
		opt.Height = 256
	}
	if opt.Scale <= 0 {
		opt.Scale = 1
	}
	if opt.Background == (vector.Color{}) {
		opt.Background = vector.White
	}
	if opt.FontFamily == "" {
		opt.FontFamily = "Noto Color Emoji, Apple Color Emoji, Segoe UI Emoji, sans-serif"
	}
	s := &svgSurface{opt: opt}
	s.wf("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	s.wf("<svg xmlns=\"http://www.w3.org/2000/svg\" version=\"1.1\" width=\"%dpx\" height=\"%dpx\" viewBox=\"0 0 %d %d\">\n",
		opt.Width*opt.Scale, opt.Height*opt.Scale, opt.Width, opt.Height)
	sketch.Redraw(s, h, nil, vector.Rect{})
	s.wf("</svg>\n")
	if s.err != nil {
		return nil, fmt.Errorf("build svg: %w", s.err)
	}
	return s.buf.Bytes(), nil
}

// ExportSVGFile writes the SVG rendering of h to path.
func ExportSVGFile(path string, h *sketch.History, opt SVGOptions) error {
	data, err := RenderSVG(h, opt)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

type svgSurface struct {
	opt SVGOptions
	buf bytes.Buffer
	err error
}

func (s *svgSurface) wf(format string, args ...any) {
	if s.err != nil {
		return
	}
	_, s.err = fmt.Fprintf(&s.buf, format, args...)
}

func (s *svgSurface) Clear() {
	s.wf("  <rect x=\"0\" y=\"0\" width=\"%d\" height=\"%d\" fill=\"%s\"/>\n", s.opt.Width, s.opt.Height, svgColor(s.opt.Background))
}

func (s *svgSurface) StrokePolyline(pts []vector.Pt, style vector.StrokeStyle) {
	if len(pts) < 2 {
		return
	}
	var sb strings.Builder
	for i, p := range pts {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%g,%g", p.X, p.Y)
	}
	s.wf("  <polyline points=\"%s\" fill=\"none\" stroke=\"%s\"%s stroke-width=\"%g\" stroke-linecap=\"%s\" stroke-linejoin=\"%s\"/>\n",
		sb.String(), svgColor(style.Color), svgOpacity("stroke-opacity", style.Color), style.Width, capName(style.Cap), joinName(style.Join))
}

func (s *svgSurface) DrawGlyph(g sketch.Glyph) {
	if g.Text == "" {
		return
	}
	anchor := ""
	if g.Align == sketch.AlignCenter {
		anchor = ` text-anchor="middle" dominant-baseline="central"`
	}
	rot := ""
	if g.Rotation != 0 {
		rot = fmt.Sprintf(" transform=\"rotate(%g %g %g)\"", g.Rotation, g.At.X, g.At.Y)
	}
	s.wf("  <text x=\"%g\" y=\"%g\" font-family=\"%s\" font-size=\"%g\" fill=\"%s\"%s%s%s>%s</text>\n",
		g.At.X, g.At.Y, escAttr(s.opt.FontFamily), g.Size, svgColor(g.Color), svgOpacity("fill-opacity", g.Color), anchor, rot, escText(g.Text))
}

func svgColor(c vector.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func svgOpacity(attr string, c vector.Color) string {
	if c.A == 255 {
		return ""
	}
	return fmt.Sprintf(" %s=\"%.3g\"", attr, float64(c.A)/255)
}

func escAttr(s string) string {
	r := strings.NewReplacer(`&`, "&amp;", `"`, "&quot;", `<`, "&lt;", "\n", " ", "\r", "")
	return r.Replace(s)
}

func escText(s string) string {
	r := strings.NewReplacer(`&`, "&amp;", `<`, "&lt;", `>`, "&gt;")
	return r.Replace(s)
}
