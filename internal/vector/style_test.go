/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import "testing"

func TestParseColor(t *testing.T) {
	cases := map[string]Color{
		"black":     Black,
		" RED ":     {R: 255, A: 255},
		"#fff":      White,
		"#102030":   {R: 0x10, G: 0x20, B: 0x30, A: 255},
		"#10203080": {R: 0x10, G: 0x20, B: 0x30, A: 0x80},
	}
	for in, want := range cases {
		got, err := ParseColor(in)
		if err != nil {
			t.Fatalf("ParseColor(%q) error: %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseColor(%q) = %+v, want %+v", in, got, want)
		}
	}
	for _, bad := range []string{"", "chartreuse", "#12", "#zzzzzz"} {
		if _, err := ParseColor(bad); err == nil {
			t.Fatalf("ParseColor(%q) should fail", bad)
		}
	}
}

func TestHexRoundTrip(t *testing.T) {
	for _, c := range append(Palette, Color{1, 2, 3, 4}) {
		got, err := ParseColor(c.Hex())
		if err != nil || got != c {
			t.Fatalf("round trip %v -> %q -> %v (%v)", c, c.Hex(), got, err)
		}
	}
	if Black.Hex() != "#000000" {
		t.Fatalf("opaque colors should use #rrggbb, got %q", Black.Hex())
	}
}
