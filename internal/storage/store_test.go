/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"sketchpad/internal/sketch"
)

func openStores(t *testing.T) map[string]Store {
	t.Helper()
	stores := map[string]Store{}
	for _, b := range []string{BackendSQLite, BackendFile} {
		st, err := Open(b, filepath.Join(t.TempDir(), b))
		if err != nil {
			t.Fatalf("open %s: %v", b, err)
		}
		t.Cleanup(func() { _ = st.Close() })
		stores[b] = st
	}
	return stores
}

func TestStoreSaveLoad(t *testing.T) {
	ctx := context.Background()
	for name, st := range openStores(t) {
		if _, ok, err := st.Load(ctx, DefaultKey); ok || err != nil {
			t.Fatalf("%s: empty store returned ok=%v err=%v", name, ok, err)
		}
		if err := st.Save(ctx, DefaultKey, []byte(`[1]`)); err != nil {
			t.Fatalf("%s: save: %v", name, err)
		}
		if err := st.Save(ctx, DefaultKey, []byte(`[2]`)); err != nil {
			t.Fatalf("%s: overwrite: %v", name, err)
		}
		data, ok, err := st.Load(ctx, DefaultKey)
		if err != nil || !ok || string(data) != `[2]` {
			t.Fatalf("%s: load got %q ok=%v err=%v", name, data, ok, err)
		}
		if err := st.Save(ctx, "../escape", []byte(`[]`)); err == nil {
			t.Fatalf("%s: expected invalid key error", name)
		}
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	if _, err := Open("redis", t.TempDir()); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
	if _, err := Open(BackendFile, " "); err == nil {
		t.Fatalf("expected error for empty dir")
	}
}

func TestSaveLoadDrawing(t *testing.T) {
	ctx := context.Background()
	for name, st := range openStores(t) {
		cmds, ok, err := LoadDrawing(ctx, st, DefaultKey)
		if err != nil || ok || cmds != nil {
			t.Fatalf("%s: missing record should be a quiet no-op: %v %v %v", name, cmds, ok, err)
		}
		h := sketch.NewHistory()
		for _, c := range sampleCommands() {
			h.Commit(c)
		}
		if err := SaveDrawing(ctx, st, DefaultKey, h); err != nil {
			t.Fatalf("%s: save drawing: %v", name, err)
		}
		cmds, ok, err = LoadDrawing(ctx, st, DefaultKey)
		if err != nil || !ok || len(cmds) != h.Len() {
			t.Fatalf("%s: load drawing: %d ok=%v err=%v", name, len(cmds), ok, err)
		}
		for i, c := range h.Commands() {
			if cmds[i].ID != c.ID || cmds[i].Style() != c.Style() {
				t.Fatalf("%s: command %d differs", name, i)
			}
		}
		if err := st.Save(ctx, DefaultKey, []byte(`[{"points":[]}]`)); err != nil {
			t.Fatal(err)
		}
		if _, _, err := LoadDrawing(ctx, st, DefaultKey); !errors.Is(err, ErrInvalidRecord) {
			t.Fatalf("%s: expected ErrInvalidRecord, got %v", name, err)
		}
	}
}

func TestFileStoreFallsBackToBackup(t *testing.T) {
	ctx := context.Background()
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := fs.Save(ctx, DefaultKey, []byte(`["first"]`)); err != nil {
		t.Fatal(err)
	}
	if err := fs.Save(ctx, DefaultKey, []byte(`["second"]`)); err != nil {
		t.Fatal(err)
	}
	bak, err := os.ReadFile(fs.Path(DefaultKey) + ".bak")
	if err != nil || string(bak) != `["first"]` {
		t.Fatalf("backup: %q %v", bak, err)
	}
	if err := os.WriteFile(fs.Path(DefaultKey), []byte(`{corrupt`), 0o644); err != nil {
		t.Fatal(err)
	}
	data, ok, err := fs.Load(ctx, DefaultKey)
	if err != nil || !ok || string(data) != `["first"]` {
		t.Fatalf("fallback: %q ok=%v err=%v", data, ok, err)
	}
	if err := os.Remove(fs.Path(DefaultKey) + ".bak"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := fs.Load(ctx, DefaultKey); !errors.Is(err, ErrInvalidRecord) {
		t.Fatalf("expected ErrInvalidRecord without backup, got %v", err)
	}
	entries, _ := os.ReadDir(fs.Dir)
	for _, e := range entries {
		if filepath.Ext(e.Name()) != ".json" && filepath.Ext(e.Name()) != ".bak" {
			t.Fatalf("temp file left behind: %s", e.Name())
		}
	}
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	st, err := OpenSQLite(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := st.Save(ctx, DefaultKey, []byte(`[]`)); err != nil {
		t.Fatal(err)
	}
	if v, err := st.SchemaVersion(ctx); err != nil || v != schemaVersion {
		t.Fatalf("schema version %d err=%v", v, err)
	}
	if err := st.Close(); err != nil {
		t.Fatal(err)
	}
	st, err = OpenSQLite(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()
	data, ok, err := st.Load(ctx, DefaultKey)
	if err != nil || !ok || string(data) != `[]` {
		t.Fatalf("reopen: %q ok=%v err=%v", data, ok, err)
	}
	if _, err := os.Stat(filepath.Join(dir, DBFileName)); err != nil {
		t.Fatalf("database file missing: %v", err)
	}
}
