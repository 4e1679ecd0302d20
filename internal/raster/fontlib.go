/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package raster

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// SystemFontPaths are probed by LoadSystemFonts. Monochrome outline fonts only;
// color bitmap emoji fonts cannot be rasterized by sfnt.
var SystemFontPaths = []string{
	"/usr/share/fonts/truetype/noto/NotoEmoji-Regular.ttf",
	"/usr/share/fonts/noto/NotoEmoji-Regular.ttf",
	"/usr/share/fonts/google-noto-emoji/NotoEmoji-Regular.ttf",
	"/usr/share/fonts/truetype/ancient-scripts/Symbola_hint.ttf",
	"/usr/share/fonts/TTF/Symbola.ttf",
	"/Library/Fonts/Symbola.ttf",
	`C:\Windows\Fonts\seguisym.ttf`,
}

// FontLibrary holds the fonts glyphs are drawn with, in lookup order. Go Regular is
// always the last entry so that plain text renders even without any loaded font.
type FontLibrary struct {
	mu    sync.Mutex
	fonts []*opentype.Font
	names []string
	faces map[faceKey]font.Face
	buf   sfnt.Buffer
}

type faceKey struct {
	font int
	size float64
}

func NewFontLibrary() *FontLibrary {
	fl := &FontLibrary{faces: make(map[faceKey]font.Face)}
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		panic(fmt.Sprintf("parse embedded font: %v", err))
	}
	fl.fonts = []*opentype.Font{f}
	fl.names = []string{"Go Regular"}
	return fl
}

// LoadTTF adds the font at path ahead of the fonts already loaded.
func (fl *FontLibrary) LoadTTF(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read font %s: %w", path, err)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("parse font %s: %w", path, err)
	}
	fl.mu.Lock()
	defer fl.mu.Unlock()
	fl.fonts = append([]*opentype.Font{f}, fl.fonts...)
	fl.names = append([]string{path}, fl.names...)
	fl.dropFacesLocked()
	return nil
}

// LoadSystemFonts loads every readable font from SystemFontPaths and returns how many
// were added.
func (fl *FontLibrary) LoadSystemFonts() int {
	n := 0
	for i := len(SystemFontPaths) - 1; i >= 0; i-- {
		if _, err := os.Stat(SystemFontPaths[i]); err != nil {
			continue
		}
		if fl.LoadTTF(SystemFontPaths[i]) == nil {
			n++
		}
	}
	return n
}

// Names lists the loaded fonts in lookup order.
func (fl *FontLibrary) Names() []string {
	fl.mu.Lock()
	defer fl.mu.Unlock()
	return append([]string(nil), fl.names...)
}

// Face returns a face of the given pixel size from the first font that has a glyph
// for every rune of text.
func (fl *FontLibrary) Face(text string, size float64) (font.Face, error) {
	if size <= 0 {
		size = 12
	}
	fl.mu.Lock()
	defer fl.mu.Unlock()
	idx := fl.pickLocked(text)
	key := faceKey{font: idx, size: size}
	if f, ok := fl.faces[key]; ok {
		return f, nil
	}
	face, err := opentype.NewFace(fl.fonts[idx], &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingNone})
	if err != nil {
		return nil, fmt.Errorf("new face %s: %w", fl.names[idx], err)
	}
	fl.faces[key] = face
	return face, nil
}

// Close releases cached faces.
func (fl *FontLibrary) Close() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()
	fl.dropFacesLocked()
	return nil
}

func (fl *FontLibrary) dropFacesLocked() {
	for k, f := range fl.faces {
		_ = f.Close()
		delete(fl.faces, k)
	}
}

func (fl *FontLibrary) pickLocked(text string) int {
	for i, f := range fl.fonts {
		if fl.coversLocked(f, text) {
			return i
		}
	}
	return len(fl.fonts) - 1
}

func (fl *FontLibrary) coversLocked(f *opentype.Font, text string) bool {
	for _, r := range text {
		if isJoiner(r) {
			continue
		}
		gi, err := f.GlyphIndex(&fl.buf, r)
		if err != nil || gi == 0 {
			return false
		}
	}
	return true
}

// isJoiner reports runes that shape emoji sequences but have no glyph of their own.
func isJoiner(r rune) bool {
	return r == 0x200D || (r >= 0xFE00 && r <= 0xFE0F) || (r >= 0x1F3FB && r <= 0x1F3FF)
}
