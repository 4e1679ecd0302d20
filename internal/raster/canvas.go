/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package raster draws sketch commands onto in-memory RGBA images.
package raster

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"
	xvector "golang.org/x/image/vector"

	"sketchpad/internal/sketch"
	"sketchpad/internal/vector"
)

// Canvas implements sketch.Surface over an *image.RGBA. Input coordinates are in
// canvas space and mapped to pixels through the transform.
type Canvas struct {
	img   *image.RGBA
	bg    vector.Color
	xf    vector.Affine2D
	fonts *FontLibrary
	ras   *xvector.Rasterizer
}

var _ sketch.Surface = (*Canvas)(nil)

// NewCanvas allocates a w x h pixel canvas filled with bg. A nil fonts uses a
// library holding only the built-in font.
func NewCanvas(w, h int, bg vector.Color, fonts *FontLibrary) *Canvas {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if fonts == nil {
		fonts = NewFontLibrary()
	}
	c := &Canvas{
		img:   image.NewRGBA(image.Rect(0, 0, w, h)),
		bg:    bg,
		xf:    vector.Identity,
		fonts: fonts,
		ras:   xvector.NewRasterizer(w, h),
	}
	c.Clear()
	return c
}

// SetTransform sets the canvas-to-pixel transform. Only scale and translation are
// expected; stroke widths scale by the mean factor.
func (c *Canvas) SetTransform(m vector.Affine2D) { c.xf = m }
func (c *Canvas) Transform() vector.Affine2D     { return c.xf }
func (c *Canvas) Image() *image.RGBA             { return c.img }
func (c *Canvas) Fonts() *FontLibrary            { return c.fonts }

func (c *Canvas) Clear() {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(c.bg.RGBA()), image.Point{}, draw.Src)
}

// StrokePolyline fills the outline of the path: one quad per segment plus caps and
// joins. A path with fewer than two points draws nothing.
func (c *Canvas) StrokePolyline(pts []vector.Pt, style vector.StrokeStyle) {
	if len(pts) < 2 || style.Color.A == 0 {
		return
	}
	hw := style.Width * c.xf.ScaleFactor() / 2
	if hw <= 0 {
		hw = 0.5
	}
	dev := make([]vector.Pt, len(pts))
	for i, p := range pts {
		dev[i] = c.xf.Apply(p)
	}
	if !c.touches(vector.Bounds(dev), hw) {
		return
	}
	b := c.img.Bounds()
	c.ras.Reset(b.Dx(), b.Dy())
	for _, poly := range strokeOutline(dev, hw, style.Cap, style.Join) {
		fillPoly(c.ras, poly)
	}
	c.ras.DrawOp = draw.Over
	c.ras.Draw(c.img, b, image.NewUniform(style.Color.RGBA()), image.Point{})
}

// touches reports whether a box grown by pad overlaps the image.
func (c *Canvas) touches(r vector.Rect, pad float32) bool {
	b := c.img.Bounds()
	return r.X-pad < float32(b.Max.X) && r.Y-pad < float32(b.Max.Y) &&
		r.X+r.W+pad > float32(b.Min.X) && r.Y+r.H+pad > float32(b.Min.Y)
}

// DrawGlyph renders g.Text into a scratch image at device resolution and composites
// it rotated about the anchor.
func (c *Canvas) DrawGlyph(g sketch.Glyph) {
	if g.Text == "" || g.Color.A == 0 {
		return
	}
	size := float64(g.Size * c.xf.ScaleFactor())
	if size < 1 {
		return
	}
	face, err := c.fonts.Face(g.Text, size)
	if err != nil {
		return
	}
	scratch, anchor := renderText(face, g.Text, g.Color.RGBA(), g.Align)
	if scratch == nil {
		return
	}
	at := c.xf.Apply(g.At)
	m := vector.Translate(at.X, at.Y).
		Mul(vector.Rotate(vector.Radians(g.Rotation))).
		Mul(vector.Translate(-anchor.X, -anchor.Y))
	if g.Rotation == 0 {
		// Axis aligned: plain copy keeps the glyph crisp.
		off := image.Pt(int(math.Round(float64(m.E))), int(math.Round(float64(m.F))))
		draw.Draw(c.img, scratch.Bounds().Add(off), scratch, image.Point{}, draw.Over)
		return
	}
	draw.BiLinear.Transform(c.img, toAff3(m), scratch, scratch.Bounds(), draw.Over, nil)
}

// renderText draws text on a transparent image just large enough to hold it and
// returns the image with the point that g.At maps to.
func renderText(face font.Face, text string, col color.NRGBA, align sketch.GlyphAlign) (*image.RGBA, vector.Pt) {
	bounds, advance := font.BoundString(face, text)
	const pad = 2
	minX, minY := bounds.Min.X.Floor(), bounds.Min.Y.Floor()
	maxX, maxY := bounds.Max.X.Ceil(), bounds.Max.Y.Ceil()
	if maxX <= minX || maxY <= minY {
		return nil, vector.Pt{}
	}
	w, h := maxX-minX+2*pad, maxY-minY+2*pad
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	dot := fixed.P(pad-minX, pad-minY)
	d := font.Drawer{Dst: img, Src: image.NewUniform(col), Face: face, Dot: dot}
	d.DrawString(text)

	origin := vector.P(float32(pad-minX), float32(pad-minY))
	if align == sketch.AlignBaseline {
		return img, origin
	}
	// Center on the advance box: half the advance across, halfway between ascent and
	// descent down.
	m := face.Metrics()
	cx := origin.X + float32(advance.Round())/2
	cy := origin.Y + float32(m.Descent.Round()-m.Ascent.Round())/2
	return img, vector.P(cx, cy)
}

// toAff3 maps the column-major Affine2D onto x/image's row-major matrix.
func toAff3(m vector.Affine2D) f64.Aff3 {
	return f64.Aff3{
		float64(m.A), float64(m.C), float64(m.E),
		float64(m.B), float64(m.D), float64(m.F),
	}
}
