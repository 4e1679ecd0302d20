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
	"testing"

	"sketchpad/internal/vector"
)

func TestPenDefaults(t *testing.T) {
	thin, thick := ThinPen(0), ThickPen(-1)
	if thin.Thickness != 1 || thin.TooltipSize != 16 || thin.TooltipOffset != vector.P(-4, 8) {
		t.Fatalf("thin pen: %+v", thin)
	}
	if thick.Thickness != 5 || thick.TooltipSize != 48 || thick.TooltipOffset != vector.P(-12, 24) {
		t.Fatalf("thick pen: %+v", thick)
	}
	if ThickPen(8).Thickness != 8 {
		t.Fatalf("explicit width ignored")
	}
}

func TestToolStateSnapshotIsByValue(t *testing.T) {
	ts := NewToolState(ThickPen(0), 0, false, nil)
	st := ts.Snapshot()
	if st.Thickness != 5 || st.Sticker || st.Color != vector.Black {
		t.Fatalf("snapshot: %+v", st)
	}
	c := NewCommand(vector.P(0, 0), st)
	ts.SelectPen(ThinPen(0))
	ts.Color = vector.White
	if c.Style().Thickness != 5 || c.Style().Color != vector.Black {
		t.Fatalf("tool change leaked into committed command: %+v", c.Style())
	}
}

func TestToolStateStickerSelection(t *testing.T) {
	ts := NewToolState(ThinPen(0), 40, false, nil)
	if ts.SelectSticker("   ") {
		t.Fatalf("blank sticker must be rejected")
	}
	if ts.StickerMode {
		t.Fatalf("blank sticker changed mode")
	}
	if !ts.SelectSticker(" 🌮 ") {
		t.Fatalf("select sticker failed")
	}
	st := ts.Snapshot()
	if !st.Sticker || st.Symbol != "🌮" || st.Size != 40 {
		t.Fatalf("sticker snapshot: %+v", st)
	}
	ts.SelectPen(ThickPen(0))
	if ts.StickerMode || ts.Snapshot().Sticker {
		t.Fatalf("selecting a pen must leave sticker mode")
	}
}

func TestToolStatePreview(t *testing.T) {
	ts := NewToolState(ThickPen(0), 0, false, nil)
	g := ts.Preview(vector.P(100, 100))
	if g.Text != TooltipSymbol || g.At != vector.P(88, 124) || g.Size != 48 || g.Align != AlignBaseline {
		t.Fatalf("pen preview: %+v", g)
	}
	ts.SelectSticker("🐢")
	g = ts.Preview(vector.P(100, 100))
	if g.Text != "🐢" || g.At != vector.P(100, 100) || g.Size != DefaultStickerSize || g.Align != AlignCenter {
		t.Fatalf("sticker preview: %+v", g)
	}
}

func TestToolStateRandomize(t *testing.T) {
	fixed := NewToolState(ThinPen(0), 0, false, rand.New(rand.NewPCG(1, 2)))
	fixed.Advance()
	if fixed.Color != vector.Black || fixed.Rotation != 0 {
		t.Fatalf("advance without randomize changed style: %+v", fixed.Snapshot())
	}

	a := NewToolState(ThinPen(0), 0, true, rand.New(rand.NewPCG(7, 9)))
	b := NewToolState(ThinPen(0), 0, true, rand.New(rand.NewPCG(7, 9)))
	for i := 0; i < 20; i++ {
		if a.Color != b.Color || a.Rotation != b.Rotation {
			t.Fatalf("same seed diverged at step %d", i)
		}
		if a.Rotation < 0 || a.Rotation >= 360 {
			t.Fatalf("rotation out of range: %v", a.Rotation)
		}
		found := false
		for _, c := range vector.Palette {
			if c == a.Color {
				found = true
			}
		}
		if !found {
			t.Fatalf("color %v not from palette", a.Color)
		}
		a.Advance()
		b.Advance()
	}
}
