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
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	applog "sketchpad/internal/log"
	"sketchpad/internal/sketch"
)

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
)

// DefaultKey is the slot the drawing is stored under.
const DefaultKey = "drawing"

// Store is a key/value slot for serialized drawings. Load reports false when nothing
// was saved under key.
type Store interface {
	Save(ctx context.Context, key string, data []byte) error
	Load(ctx context.Context, key string) ([]byte, bool, error)
	Close() error
}

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9._-]{1,64}$`)

func checkKey(key string) error {
	if !keyPattern.MatchString(key) || strings.Trim(key, ".") == "" {
		return fmt.Errorf("invalid storage key %q", key)
	}
	return nil
}

// Open returns the store for backend rooted at dir.
func Open(backend, dir string) (Store, error) {
	switch backend {
	case BackendSQLite, "":
		return OpenSQLite(dir)
	case BackendFile:
		return NewFileStore(dir)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

// SaveDrawing writes every committed command of h under key, replacing what was there.
func SaveDrawing(ctx context.Context, st Store, key string, h *sketch.History) error {
	l := applog.WithOperation(applog.WithComponent("storage"), "save").With(slog.String("key", key))
	data, err := Encode(h.Commands())
	if err != nil {
		return err
	}
	if err := st.Save(ctx, key, data); err != nil {
		l.Error("save drawing failed", slog.Any("err", err))
		return fmt.Errorf("save drawing: %w", err)
	}
	l.Info("drawing saved", slog.Int("commands", h.Len()), slog.Int("bytes", len(data)))
	return nil
}

// LoadDrawing reads the drawing stored under key. A missing record is not an error:
// it returns nil, false, nil.
func LoadDrawing(ctx context.Context, st Store, key string) ([]*sketch.Command, bool, error) {
	l := applog.WithOperation(applog.WithComponent("storage"), "load").With(slog.String("key", key))
	data, ok, err := st.Load(ctx, key)
	if err != nil {
		l.Error("load drawing failed", slog.Any("err", err))
		return nil, false, fmt.Errorf("load drawing: %w", err)
	}
	if !ok {
		l.Info("no saved drawing")
		return nil, false, nil
	}
	cmds, err := Decode(data)
	if err != nil {
		l.Error("decode drawing failed", slog.Any("err", err))
		return nil, false, err
	}
	l.Info("drawing loaded", slog.Int("commands", len(cmds)))
	return cmds, true, nil
}
