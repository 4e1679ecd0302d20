/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package sketch is the drawing core of the sketchpad: the stroke/sticker command
// model, the undo/redo history, the tool state, the pointer state machine and the
// replay renderer. It is toolkit independent; anything implementing Surface can be
// drawn on (the raster canvas, the PDF exporter, test recorders).
package sketch

import "sketchpad/internal/vector"

// Surface is a render target. It owns no drawing state; implementations clip
// anything that falls outside their bounds.
type Surface interface {
	// Clear wipes the whole surface.
	Clear()
	// StrokePolyline draws a connected path through pts in order.
	StrokePolyline(pts []vector.Pt, style vector.StrokeStyle)
	// DrawGlyph paints a short text run, typically a single emoji.
	DrawGlyph(g Glyph)
}

// GlyphAlign selects which point of the text box is placed at Glyph.At.
type GlyphAlign uint8

const (
	// AlignBaseline puts the left end of the baseline at At.
	AlignBaseline GlyphAlign = iota
	// AlignCenter centers the text box on At.
	AlignCenter
)

// Glyph is a text run placed at a point and rotated about that point.
type Glyph struct {
	Text     string
	At       vector.Pt
	Size     float32 // font size in canvas pixels
	Rotation float32 // degrees, clockwise on a y-down canvas
	Color    vector.Color
	Align    GlyphAlign
}
