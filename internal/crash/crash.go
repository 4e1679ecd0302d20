/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package crash turns a panic into a crash report plus an autosave of the drawing.
package crash

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"time"

	applog "sketchpad/internal/log"
	"sketchpad/internal/sketch"
	"sketchpad/internal/storage"
	"sketchpad/internal/version"
)

// exitFn is used to allow testing of Recover without terminating the test process.
var exitFn = os.Exit

// Session is what a crash handler knows about the running app.
type Session struct {
	// Dir receives crash reports and autosaves; the temp dir when empty.
	Dir string
	// History is autosaved when set.
	History *sketch.History
}

func (s *Session) dir() string {
	if s == nil || s.Dir == "" {
		return os.TempDir()
	}
	return s.Dir
}

// Recover captures a panic, logs it with the stack, writes a report file, autosaves
// the drawing and exits with status 2.
//
// Usage: defer crash.Recover(session)
func Recover(s *Session) {
	r := recover()
	if r == nil {
		return
	}
	l := applog.WithComponent("crash")
	stack := debug.Stack()
	l.Error("panic recovered", slog.Any("panic", r), slog.String("stack", string(stack)))

	reportPath, err := writeReport(s, r, stack)
	if err != nil {
		l.Error("write crash report failed", slog.Any("err", err))
	}
	if s != nil && s.History != nil {
		if path, err := Autosave(s); err != nil {
			l.Error("autosave failed", slog.Any("err", err))
		} else {
			l.Info("autosave written", slog.String("path", path))
		}
	}

	if _, err := fmt.Fprintf(os.Stderr, "A fatal error occurred. A crash report was saved to: %s\n", reportPath); err != nil {
		l.Error("failed to write crash message to stderr", slog.Any("err", err))
	}
	if _, err := fmt.Fprintf(os.Stderr, "Version: %s\nOS/Arch: %s/%s\n", version.String(), runtime.GOOS, runtime.GOARCH); err != nil {
		l.Error("failed to write version info to stderr", slog.Any("err", err))
	}
	exitFn(2)
}

// Autosave writes the committed drawing to <dir>/autosave-<stamp>.json in the
// persisted record format, so it can be loaded like any saved drawing.
func Autosave(s *Session) (string, error) {
	if s == nil || s.History == nil {
		return "", fmt.Errorf("nothing to autosave")
	}
	data, err := storage.Encode(s.History.Commands())
	if err != nil {
		return "", err
	}
	dir := s.dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create autosave dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("autosave-%s.json", time.Now().Format("20060102-150405")))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write autosave: %w", err)
	}
	return path, nil
}

func writeReport(s *Session, panicVal any, stack []byte) (string, error) {
	dir := s.dir()
	_ = os.MkdirAll(dir, 0o755)
	path := filepath.Join(dir, fmt.Sprintf("crash-%s.log", time.Now().Format("20060102-150405")))

	var buf bytes.Buffer
	_, _ = fmt.Fprintf(&buf, "Sketchpad Crash Report\n")
	_, _ = fmt.Fprintf(&buf, "Timestamp: %s\n", time.Now().Format(time.RFC3339))
	_, _ = fmt.Fprintf(&buf, "Version: %s\n", version.String())
	_, _ = fmt.Fprintf(&buf, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	if s != nil && s.History != nil {
		committed, redo, points := s.History.Stats()
		_, _ = fmt.Fprintf(&buf, "Drawing: %d commands, %d redo, %d points\n", committed, redo, points)
	}
	_, _ = fmt.Fprintf(&buf, "\nPanic: %v\n\n", panicVal)
	_, _ = fmt.Fprintf(&buf, "Stack:\n%s\n", string(stack))

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return path, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			applog.WithComponent("crash").Error("failed to close crash report file", slog.Any("err", err), slog.String("path", path))
		}
	}()
	if _, err := f.Write(buf.Bytes()); err != nil {
		return path, err
	}
	_ = f.Sync()
	return path, nil
}
