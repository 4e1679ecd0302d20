/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package sketch

import "sketchpad/internal/vector"

type drawOp struct {
	kind  string // "clear", "line" or "glyph"
	pts   []vector.Pt
	style vector.StrokeStyle
	glyph Glyph
}

// recorder is a Surface that remembers every call.
type recorder struct {
	ops []drawOp
}

func (r *recorder) Clear() { r.ops = append(r.ops, drawOp{kind: "clear"}) }

func (r *recorder) StrokePolyline(pts []vector.Pt, style vector.StrokeStyle) {
	r.ops = append(r.ops, drawOp{kind: "line", pts: append([]vector.Pt(nil), pts...), style: style})
}

func (r *recorder) DrawGlyph(g Glyph) { r.ops = append(r.ops, drawOp{kind: "glyph", glyph: g}) }

func (r *recorder) count(kind string) int {
	n := 0
	for _, op := range r.ops {
		if op.kind == kind {
			n++
		}
	}
	return n
}

func samePoints(a, b []vector.Pt) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
