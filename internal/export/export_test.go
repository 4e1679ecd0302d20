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
	"encoding/base64"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sketchpad/internal/sketch"
	"sketchpad/internal/vector"
)

func sampleHistory() *sketch.History {
	h := sketch.NewHistory()
	line := sketch.NewCommand(vector.P(10, 10), sketch.Style{Thickness: 5, Color: vector.Black})
	line.Extend(vector.P(10, 50))
	line.Extend(vector.P(50, 50))
	h.Commit(line)
	h.Commit(sketch.NewCommand(vector.P(100, 100), sketch.Style{Thickness: 1, Color: vector.Black, Sticker: true, Symbol: "A", Rotation: 30}))
	return h
}

func TestRenderImageScalesCanvas(t *testing.T) {
	img := RenderImage(sampleHistory(), PNGOptions{})
	if b := img.Bounds(); b.Dx() != 1024 || b.Dy() != 1024 {
		t.Fatalf("expected 1024x1024, got %v", b)
	}
	if c := img.RGBAAt(40, 120); c.R > 20 {
		t.Fatalf("stroke not at 4x position: %v", c)
	}
	if c := img.RGBAAt(1000, 1000); c.R != 255 || c.G != 255 || c.B != 255 {
		t.Fatalf("background should be white: %v", c)
	}
	small := RenderImage(sampleHistory(), PNGOptions{Width: 100, Height: 50, Scale: 2})
	if b := small.Bounds(); b.Dx() != 200 || b.Dy() != 100 {
		t.Fatalf("custom size: %v", b)
	}
}

func TestRenderImageEmptyHistory(t *testing.T) {
	img := RenderImage(sketch.NewHistory(), PNGOptions{Width: 16, Height: 16, Scale: 1})
	for i := 0; i < len(img.Pix); i++ {
		if img.Pix[i] != 255 {
			t.Fatalf("empty drawing should be all white")
		}
	}
}

func TestExportPNGFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "exports", "sketch.png")
	if err := ExportPNGFile(out, sampleHistory(), PNGOptions{}); err != nil {
		t.Fatalf("export png: %v", err)
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.Width != 1024 || cfg.Height != 1024 {
		t.Fatalf("png size %dx%d", cfg.Width, cfg.Height)
	}
}

func TestPNGDataURL(t *testing.T) {
	url, err := PNGDataURL(sampleHistory(), PNGOptions{Scale: 1})
	if err != nil {
		t.Fatalf("data url: %v", err)
	}
	if !strings.HasPrefix(url, DataURLPrefix) {
		t.Fatalf("bad prefix: %.40s", url)
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(url, DataURLPrefix))
	if err != nil {
		t.Fatalf("base64: %v", err)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(raw))
	if err != nil || cfg.Width != 256 {
		t.Fatalf("decode data url: %+v %v", cfg, err)
	}
}

func TestExportPDF(t *testing.T) {
	out := filepath.Join(t.TempDir(), "sketch.pdf")
	if err := ExportPDF(out, sampleHistory(), PDFOptions{Title: "Test sketch"}); err != nil {
		t.Fatalf("export pdf: %v", err)
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.HasPrefix(b, []byte("%PDF-")) {
		t.Fatalf("not a pdf")
	}
	if len(b) < 200 {
		t.Fatalf("pdf suspiciously small: %d bytes", len(b))
	}
}
