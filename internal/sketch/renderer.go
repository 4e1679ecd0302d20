/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package sketch

import "sketchpad/internal/vector"

// Tooltip is the non-committed preview following the pointer. It is drawn after the
// history on every redraw and never becomes part of it.
type Tooltip struct {
	Pos     vector.Pt // pointer position
	Glyph   Glyph
	Visible bool
}

// Draw paints the tooltip if it is visible and the pointer lies within bounds.
// An empty bounds rect disables the check.
func (t *Tooltip) Draw(s Surface, bounds vector.Rect) {
	if t == nil || !t.Visible || t.Glyph.Text == "" {
		return
	}
	if !bounds.Empty() && !bounds.Contains(t.Pos) {
		return
	}
	s.DrawGlyph(t.Glyph)
}

// Redraw clears s, replays the committed history and draws the tooltip on top.
// With unchanged inputs it always produces the same output.
func Redraw(s Surface, h *History, tip *Tooltip, bounds vector.Rect) {
	s.Clear()
	if h != nil {
		h.ReplayAll(s)
	}
	tip.Draw(s, bounds)
}
