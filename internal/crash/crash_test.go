/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package crash

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sketchpad/internal/sketch"
	"sketchpad/internal/storage"
	"sketchpad/internal/vector"
)

func sampleSession(t *testing.T) *Session {
	h := sketch.NewHistory()
	c := sketch.NewCommand(vector.P(1, 1), sketch.Style{Thickness: 5, Color: vector.Black})
	c.Extend(vector.P(9, 9))
	h.Commit(c)
	return &Session{Dir: t.TempDir(), History: h}
}

func TestWriteReportCreatesFileInTemp(t *testing.T) {
	path, err := writeReport(nil, "boom", []byte("stacktrace"))
	if err != nil {
		t.Fatalf("writeReport error: %v", err)
	}
	defer os.Remove(path)
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	s := string(b)
	if !strings.Contains(s, "Sketchpad Crash Report") {
		t.Fatalf("report header missing")
	}
	if !strings.Contains(s, "Panic: boom") {
		t.Fatalf("panic content missing: %s", s)
	}
}

func TestWriteReportInSessionDir(t *testing.T) {
	s := sampleSession(t)
	path, err := writeReport(s, "kaboom", []byte("stack"))
	if err != nil {
		t.Fatalf("writeReport error: %v", err)
	}
	if filepath.Dir(path) != s.Dir {
		t.Fatalf("expected crash report under %s, got %s", s.Dir, path)
	}
	b, _ := os.ReadFile(path)
	if !strings.Contains(string(b), "Drawing: 1 commands, 0 redo, 2 points") {
		t.Fatalf("drawing stats missing: %s", b)
	}
}

func TestAutosaveIsLoadable(t *testing.T) {
	s := sampleSession(t)
	path, err := Autosave(s)
	if err != nil {
		t.Fatalf("autosave: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read autosave: %v", err)
	}
	cmds, err := storage.Decode(data)
	if err != nil || len(cmds) != 1 || cmds[0].Len() != 2 {
		t.Fatalf("decode autosave: %v %v", cmds, err)
	}
	if _, err := Autosave(&Session{}); err == nil {
		t.Fatalf("expected error without history")
	}
}

// TestRecoverPanic ensures Recover handles a panic, writes a report, autosaves, and
// does not terminate the test process due to injected exitFn.
func TestRecoverPanic(t *testing.T) {
	oldStderr := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w
	defer func() {
		_ = w.Close()
		os.Stderr = oldStderr
		_, _ = io.Copy(io.Discard, r)
	}()

	called := 0
	oldExit := exitFn
	exitFn = func(code int) { called = code }
	defer func() { exitFn = oldExit }()

	s := sampleSession(t)
	func() {
		defer Recover(s)
		panic("boom")
	}()

	var report, autosave string
	files, _ := os.ReadDir(s.Dir)
	for _, f := range files {
		switch {
		case strings.HasPrefix(f.Name(), "crash-") && strings.HasSuffix(f.Name(), ".log"):
			report = filepath.Join(s.Dir, f.Name())
		case strings.HasPrefix(f.Name(), "autosave-"):
			autosave = f.Name()
		}
	}
	if report == "" || autosave == "" {
		t.Fatalf("expected report and autosave, got %v", files)
	}
	b, err := os.ReadFile(report)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !bytes.Contains(b, []byte("Panic: boom")) {
		t.Fatalf("report does not contain panic: %s", string(b))
	}
	if called != 2 {
		t.Fatalf("expected exit code 2, got %d", called)
	}
}

func TestRecoverWithoutPanicIsNoop(t *testing.T) {
	called := false
	oldExit := exitFn
	exitFn = func(int) { called = true }
	defer func() { exitFn = oldExit }()
	func() {
		defer Recover(nil)
	}()
	if called {
		t.Fatalf("exit called without a panic")
	}
}
