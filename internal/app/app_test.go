/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sketchpad/internal/config"
	"sketchpad/internal/vector"
)

func testConfig(t *testing.T, backend string) config.AppConfig {
	cfg := config.Defaults()
	cfg.Storage.Backend = backend
	cfg.Storage.Dir = t.TempDir()
	cfg.Export.Dir = t.TempDir()
	return cfg
}

func draw(a *App) {
	c := a.Controller
	c.SelectThick()
	c.PointerDown(vector.P(10, 10))
	c.PointerMove(vector.P(10, 50))
	c.PointerMove(vector.P(50, 50))
	c.PointerUp(vector.P(50, 50))
	c.SelectSticker("🐢")
	c.PointerDown(vector.P(100, 100))
	c.PointerUp(vector.P(100, 100))
}

func TestSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	for _, backend := range []string{"sqlite", "file"} {
		cfg := testConfig(t, backend)
		a, err := New(cfg)
		if err != nil {
			t.Fatalf("%s: new: %v", backend, err)
		}
		if ok, err := a.Load(ctx); ok || err != nil {
			t.Fatalf("%s: load without save should be a no-op: ok=%v err=%v", backend, ok, err)
		}
		draw(a)
		if err := a.Save(ctx); err != nil {
			t.Fatalf("%s: save: %v", backend, err)
		}
		if err := a.Close(); err != nil {
			t.Fatalf("%s: close: %v", backend, err)
		}

		b, err := New(cfg)
		if err != nil {
			t.Fatal(err)
		}
		ok, err := b.Load(ctx)
		if err != nil || !ok {
			t.Fatalf("%s: load: ok=%v err=%v", backend, ok, err)
		}
		got, want := b.Controller.Commands(), a.Controller.Commands()
		if len(got) != len(want) {
			t.Fatalf("%s: loaded %d commands, want %d", backend, len(got), len(want))
		}
		for i := range want {
			if got[i].ID != want[i].ID || got[i].Style() != want[i].Style() {
				t.Fatalf("%s: command %d differs", backend, i)
			}
		}
		_ = b.Close()
	}
}

func TestExport(t *testing.T) {
	a, err := New(testConfig(t, "file"))
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()
	draw(a)
	for _, ext := range []string{"png", "svg", "pdf"} {
		path := filepath.Join(t.TempDir(), "out."+ext)
		if err := a.Export(path); err != nil {
			t.Fatalf("export %s: %v", ext, err)
		}
		if st, err := os.Stat(path); err != nil || st.Size() == 0 {
			t.Fatalf("export %s missing: %v", ext, err)
		}
	}
	if err := a.Export(filepath.Join(t.TempDir(), "out.gif")); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
	p := a.DefaultExportPath("png")
	if filepath.Dir(p) != a.Config.Export.Dir || !strings.HasSuffix(p, ".png") {
		t.Fatalf("default export path %s", p)
	}
	url, err := a.DataURL()
	if err != nil || !strings.HasPrefix(url, "data:image/png;base64,") {
		t.Fatalf("data url: %.30s %v", url, err)
	}
}

func TestNewRejectsBadBackground(t *testing.T) {
	cfg := testConfig(t, "file")
	cfg.Canvas.Background = "not-a-color"
	if _, err := New(cfg); err == nil {
		t.Fatalf("expected error for bad background")
	}
}

func TestCrashSession(t *testing.T) {
	cfg := testConfig(t, "file")
	a, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()
	s := a.CrashSession()
	if s.Dir != cfg.Storage.Dir || s.History != a.Controller.History() {
		t.Fatalf("crash session: %+v", s)
	}
	lo := LogOptions(cfg)
	if lo.Level != cfg.Logging.Level || lo.Format != cfg.Logging.Format {
		t.Fatalf("log options: %+v", lo)
	}
}
