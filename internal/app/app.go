/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package app wires configuration, the sketch controller, fonts, storage and export
// into one object shared by the CLI and the desktop UI.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"sketchpad/internal/config"
	"sketchpad/internal/crash"
	"sketchpad/internal/export"
	applog "sketchpad/internal/log"
	"sketchpad/internal/raster"
	"sketchpad/internal/sketch"
	"sketchpad/internal/storage"
	"sketchpad/internal/vector"
)

// App is one open sketchpad. Like the Controller it owns, it is meant to be used from
// a single goroutine.
type App struct {
	Config     config.AppConfig
	Controller *sketch.Controller
	Fonts      *raster.FontLibrary

	bg    vector.Color
	store storage.Store
	log   *slog.Logger
}

// LogOptions maps the logging section of cfg onto logger options.
func LogOptions(cfg config.AppConfig) applog.Options {
	return applog.Options{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.Source,
		File:      cfg.Logging.File,
	}
}

// New builds an App from cfg. A font file that fails to load is logged and skipped.
func New(cfg config.AppConfig) (*App, error) {
	l := applog.WithComponent("app")
	bg, err := vector.ParseColor(cfg.Canvas.Background)
	if err != nil {
		return nil, fmt.Errorf("canvas background: %w", err)
	}
	fonts := raster.NewFontLibrary()
	if n := fonts.LoadSystemFonts(); n > 0 {
		l.Debug("system fonts loaded", slog.Int("count", n))
	}
	if f := strings.TrimSpace(cfg.Font.File); f != "" {
		if err := fonts.LoadTTF(f); err != nil {
			l.Warn("font not loaded", slog.String("file", f), slog.Any("err", err))
		}
	}
	ctrl := sketch.NewController(sketch.Options{
		Width:       float32(cfg.Canvas.Width),
		Height:      float32(cfg.Canvas.Height),
		Thin:        cfg.Pens.Thin,
		Thick:       cfg.Pens.Thick,
		StickerSize: cfg.Stickers.Size,
		Stickers:    cfg.Stickers.Glyphs,
		Randomize:   cfg.Pens.Randomize,
		Logger:      l,
	})
	return &App{Config: cfg, Controller: ctrl, Fonts: fonts, bg: bg, log: l}, nil
}

func (a *App) Background() vector.Color { return a.bg }

// Store opens the configured storage backend on first use.
func (a *App) Store() (storage.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	dir, err := a.Config.StorageDir()
	if err != nil {
		return nil, err
	}
	st, err := storage.Open(a.Config.Storage.Backend, dir)
	if err != nil {
		return nil, err
	}
	a.store = st
	return st, nil
}

func (a *App) key() string {
	if k := strings.TrimSpace(a.Config.Storage.Key); k != "" {
		return k
	}
	return storage.DefaultKey
}

// Save stores the committed drawing in the single local slot.
func (a *App) Save(ctx context.Context) error {
	st, err := a.Store()
	if err != nil {
		return err
	}
	return storage.SaveDrawing(ctx, st, a.key(), a.Controller.History())
}

// Load replaces the drawing with the saved one. It reports false, and leaves the
// drawing alone, when nothing was saved.
func (a *App) Load(ctx context.Context) (bool, error) {
	st, err := a.Store()
	if err != nil {
		return false, err
	}
	cmds, ok, err := storage.LoadDrawing(ctx, st, a.key())
	if err != nil || !ok {
		return false, err
	}
	a.Controller.Restore(cmds)
	return true, nil
}

// ExportOptions returns the export settings derived from the configuration.
func (a *App) ExportOptions() export.Options {
	return export.Options{
		Width:      a.Config.Canvas.Width,
		Height:     a.Config.Canvas.Height,
		Scale:      a.Config.Export.Scale,
		Background: a.bg,
		Fonts:      a.Fonts,
		Title:      "Sketchpad",
	}
}

// DefaultExportPath is where an export lands when the user gives no path.
func (a *App) DefaultExportPath(format export.Format) string {
	name := fmt.Sprintf("sketchpad-%s.%s", time.Now().Format("20060102-150405"), format)
	if d := strings.TrimSpace(a.Config.Export.Dir); d != "" {
		return filepath.Join(d, name)
	}
	return name
}

// Export writes the drawing to path in the format named by its extension.
func (a *App) Export(path string) error {
	if err := export.ExportFile(path, a.Controller.History(), a.ExportOptions()); err != nil {
		a.log.Error("export failed", slog.String("path", path), slog.Any("err", err))
		return err
	}
	a.log.Info("exported", slog.String("path", path))
	return nil
}

// DataURL returns the PNG export as a data URL.
func (a *App) DataURL() (string, error) {
	o := a.ExportOptions()
	return export.PNGDataURL(a.Controller.History(), export.PNGOptions{
		Width: o.Width, Height: o.Height, Scale: o.Scale, Background: o.Background, Fonts: o.Fonts,
	})
}

// CrashSession describes the app to crash.Recover.
func (a *App) CrashSession() *crash.Session {
	dir, _ := a.Config.StorageDir()
	return &crash.Session{Dir: dir, History: a.Controller.History()}
}

func (a *App) Close() error {
	var errs []error
	if a.store != nil {
		errs = append(errs, a.store.Close())
		a.store = nil
	}
	errs = append(errs, a.Fonts.Close())
	return errors.Join(errs...)
}
