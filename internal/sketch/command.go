/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package sketch

import (
	"github.com/google/uuid"

	"sketchpad/internal/vector"
)

// DefaultStickerSize is used for sticker commands that carry no explicit size.
const DefaultStickerSize float32 = 32

// Style is the snapshot of tool settings a command is created with. It is copied by
// value so later tool changes never reach commands already drawn.
type Style struct {
	Thickness float32
	Color     vector.Color
	Rotation  float32 // degrees; only stickers use it
	Symbol    string  // only meaningful when Sticker is true
	Sticker   bool
	Size      float32 // sticker glyph size in pixels
}

// Command is one user-drawn object: a freehand line or a placed sticker.
// Points are mutated only while the pointer is held; after that the command is
// moved between history stacks as a whole.
type Command struct {
	ID     string
	points []vector.Pt
	style  Style
}

// NewCommand starts a command at start with the given style.
func NewCommand(start vector.Pt, st Style) *Command {
	if st.Sticker && st.Size <= 0 {
		st.Size = DefaultStickerSize
	}
	return &Command{
		ID:     uuid.NewString(),
		points: []vector.Pt{start},
		style:  st,
	}
}

// RestoreCommand rebuilds a command from persisted fields. An empty id gets a fresh one.
func RestoreCommand(id string, pts []vector.Pt, st Style) *Command {
	c := NewCommand(vector.Pt{}, st)
	if id != "" {
		c.ID = id
	}
	c.points = append(c.points[:0], pts...)
	return c
}

// Extend records the pointer moving to p. A line appends p; a sticker only tracks
// its current position, so its points collapse to [p].
func (c *Command) Extend(p vector.Pt) {
	if c.style.Sticker {
		c.points = append(c.points[:0], p)
		return
	}
	c.points = append(c.points, p)
}

// Render draws the command. Two or more points draw a polyline; a single-point
// sticker draws its rotated glyph; a single-point line draws nothing.
func (c *Command) Render(s Surface) {
	switch {
	case len(c.points) > 1:
		s.StrokePolyline(c.points, vector.StrokeStyle{
			Color: c.style.Color,
			Width: c.style.Thickness,
			Cap:   vector.CapRound,
			Join:  vector.JoinRound,
		})
	case len(c.points) == 1 && c.style.Sticker:
		s.DrawGlyph(Glyph{
			Text:     c.style.Symbol,
			At:       c.points[0],
			Size:     c.style.Size,
			Rotation: c.style.Rotation,
			Color:    c.style.Color,
			Align:    AlignCenter,
		})
	}
}

// Points returns a copy of the recorded points in drawing order.
func (c *Command) Points() []vector.Pt { return append([]vector.Pt(nil), c.points...) }

func (c *Command) Len() int        { return len(c.points) }
func (c *Command) Style() Style    { return c.style }
func (c *Command) IsSticker() bool { return c.style.Sticker }

// Bounds returns the bounding box of the recorded points.
func (c *Command) Bounds() vector.Rect { return vector.Bounds(c.points) }
