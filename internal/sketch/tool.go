/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package sketch

import (
	"math/rand/v2"
	"strings"

	"sketchpad/internal/vector"
)

// Pen is a marker preset. The tooltip fields size and offset the "*" preview so it
// sits roughly centered on the pointer.
type Pen struct {
	Name          string
	Thickness     float32
	TooltipSize   float32
	TooltipOffset vector.Pt
}

// ThinPen and ThickPen return the two marker presets with the given stroke width.
func ThinPen(width float32) Pen {
	return Pen{Name: "thin", Thickness: positive(width, 1), TooltipSize: 16, TooltipOffset: vector.P(-4, 8)}
}

func ThickPen(width float32) Pen {
	return Pen{Name: "thick", Thickness: positive(width, 5), TooltipSize: 48, TooltipOffset: vector.P(-12, 24)}
}

// TooltipSymbol is drawn under the pointer while a pen is selected.
const TooltipSymbol = "*"

// ToolState is the current pen/sticker configuration. It is read when a command
// starts and is otherwise inert.
type ToolState struct {
	Pen         Pen
	Color       vector.Color
	Rotation    float32
	Symbol      string
	StickerMode bool
	StickerSize float32
	// Randomize hands every new command a palette color and a random rotation.
	Randomize bool

	rng *rand.Rand
}

// NewToolState starts with pen selected in black. rng may be nil when Randomize is
// off; with Randomize on a nil rng gets a randomly seeded source.
func NewToolState(pen Pen, stickerSize float32, randomize bool, rng *rand.Rand) *ToolState {
	if randomize && rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	ts := &ToolState{
		Pen:         pen,
		Color:       vector.Black,
		StickerSize: positive(stickerSize, DefaultStickerSize),
		Randomize:   randomize,
		rng:         rng,
	}
	ts.Advance()
	return ts
}

// SelectPen switches to line drawing with p.
func (t *ToolState) SelectPen(p Pen) {
	t.Pen = p
	t.StickerMode = false
}

// SelectSticker switches to sticker mode with glyph sym. A blank glyph is ignored
// and reported as false, leaving the previous selection active.
func (t *ToolState) SelectSticker(sym string) bool {
	sym = strings.TrimSpace(sym)
	if sym == "" {
		return false
	}
	t.Symbol = sym
	t.StickerMode = true
	return true
}

// Snapshot captures the style for a new command.
func (t *ToolState) Snapshot() Style {
	st := Style{
		Thickness: t.Pen.Thickness,
		Color:     t.Color,
	}
	if t.StickerMode {
		st.Sticker = true
		st.Symbol = t.Symbol
		st.Rotation = t.Rotation
		st.Size = t.StickerSize
	}
	return st
}

// Advance rolls the color and rotation for the next command when Randomize is on.
func (t *ToolState) Advance() {
	if !t.Randomize || t.rng == nil {
		return
	}
	t.Color = vector.Palette[t.rng.IntN(len(vector.Palette))]
	t.Rotation = float32(t.rng.IntN(360))
}

// Preview returns the glyph that follows the pointer at p.
func (t *ToolState) Preview(p vector.Pt) Glyph {
	if t.StickerMode {
		return Glyph{Text: t.Symbol, At: p, Size: t.StickerSize, Rotation: t.Rotation, Color: t.Color, Align: AlignCenter}
	}
	return Glyph{Text: TooltipSymbol, At: p.Add(t.Pen.TooltipOffset), Size: t.Pen.TooltipSize, Color: t.Color, Align: AlignBaseline}
}

func positive(v, def float32) float32 {
	if v > 0 {
		return v
	}
	return def
}
