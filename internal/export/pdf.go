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
	"image/png"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"sketchpad/internal/raster"
	"sketchpad/internal/sketch"
	"sketchpad/internal/vector"
)

// PDFOptions controls PDF export. One canvas pixel maps to one point.
//
// Strokes are written as vector paths. Glyphs are rasterized at GlyphScale and placed
// as images, since the built-in PDF fonts carry no emoji.
type PDFOptions struct {
	Width, Height int
	Background    vector.Color
	GlyphScale    int
	Title         string
	Fonts         *raster.FontLibrary
}

// ExportPDF writes a single page PDF of h to outPath.
func ExportPDF(outPath string, h *sketch.History, opt PDFOptions) error {
	if opt.Width <= 0 {
		opt.Width = 256
	}
	if opt.Height <= 0 {
		opt.Height = 256
	}
	if opt.GlyphScale <= 0 {
		opt.GlyphScale = DefaultScale
	}
	if opt.Background == (vector.Color{}) {
		opt.Background = vector.White
	}
	if opt.Fonts == nil {
		opt.Fonts = raster.NewFontLibrary()
	}
	w, ht := float64(opt.Width), float64(opt.Height)
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: w, Ht: ht},
	})
	if opt.Title != "" {
		pdf.SetTitle(opt.Title, true)
	}
	pdf.SetCreator("sketchpad", false)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	s := &pdfSurface{pdf: pdf, w: w, h: ht, bg: opt.Background, opt: opt}
	sketch.Redraw(s, h, nil, vector.Rect{})
	if s.err != nil {
		return s.err
	}
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	if dir := filepath.Dir(outPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("ensure out dir: %w", err)
		}
	}
	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// pdfSurface replays commands into a gofpdf document.
type pdfSurface struct {
	pdf    *gofpdf.Fpdf
	w, h   float64
	bg     vector.Color
	opt    PDFOptions
	glyphs int
	err    error
}

func (s *pdfSurface) Clear() {
	setFillColor(s.pdf, s.bg)
	s.pdf.Rect(0, 0, s.w, s.h, "F")
}

func (s *pdfSurface) StrokePolyline(pts []vector.Pt, style vector.StrokeStyle) {
	if len(pts) < 2 {
		return
	}
	setDrawColor(s.pdf, style.Color)
	s.pdf.SetAlpha(float64(style.Color.A)/255, "Normal")
	s.pdf.SetLineWidth(float64(style.Width))
	s.pdf.SetLineCapStyle(capName(style.Cap))
	s.pdf.SetLineJoinStyle(joinName(style.Join))
	s.pdf.MoveTo(float64(pts[0].X), float64(pts[0].Y))
	for _, p := range pts[1:] {
		s.pdf.LineTo(float64(p.X), float64(p.Y))
	}
	s.pdf.DrawPath("D")
	s.pdf.SetAlpha(1, "Normal")
}

// DrawGlyph rasterizes the glyph centered in a square tile twice its size and places
// the tile so that its center lands on the anchor.
func (s *pdfSurface) DrawGlyph(g sketch.Glyph) {
	if s.err != nil || g.Text == "" || g.Size <= 0 {
		return
	}
	side := 2 * g.Size
	scale := float32(s.opt.GlyphScale)
	tile := raster.NewCanvas(int(side*scale), int(side*scale), vector.Transparent, s.opt.Fonts)
	tile.SetTransform(vector.Scale(scale, scale))
	tg := g
	tg.At = vector.P(g.Size, g.Size)
	tile.DrawGlyph(tg)

	var buf bytes.Buffer
	if err := png.Encode(&buf, tile.Image()); err != nil {
		s.err = fmt.Errorf("encode glyph: %w", err)
		return
	}
	s.glyphs++
	name := fmt.Sprintf("glyph-%d", s.glyphs)
	opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	s.pdf.RegisterImageOptionsReader(name, opts, &buf)
	x, y, d := float64(g.At.X-g.Size), float64(g.At.Y-g.Size), float64(side)
	s.pdf.ImageOptions(name, x, y, d, d, false, opts, 0, "")
}

func setDrawColor(pdf *gofpdf.Fpdf, c vector.Color) {
	pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
}

func setFillColor(pdf *gofpdf.Fpdf, c vector.Color) {
	pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
}

func capName(c vector.LineCap) string {
	switch c {
	case vector.CapRound:
		return "round"
	case vector.CapSquare:
		return "square"
	default:
		return "butt"
	}
}

func joinName(j vector.LineJoin) string {
	switch j {
	case vector.JoinRound:
		return "round"
	case vector.JoinBevel:
		return "bevel"
	default:
		return "miter"
	}
}
