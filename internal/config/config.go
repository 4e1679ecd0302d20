/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// AppConfig is the user-editable configuration persisted as YAML in the user scope.
// Environment variables are read-only overrides applied at load time.
//
// config_version: bump when the structure changes in a backward-incompatible way.
type AppConfig struct {
	ConfigVersion int            `yaml:"config_version"`
	Canvas        CanvasConfig   `yaml:"canvas"`
	Pens          PensConfig     `yaml:"pens"`
	Stickers      StickersConfig `yaml:"stickers"`
	Export        ExportConfig   `yaml:"export"`
	Storage       StorageConfig  `yaml:"storage"`
	Font          FontConfig     `yaml:"font"`
	Logging       LoggingConfig  `yaml:"logging"`
}

type CanvasConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Background string `yaml:"background"`
}

// PensConfig holds the two marker widths in canvas pixels.
type PensConfig struct {
	Thin      float32 `yaml:"thin"`
	Thick     float32 `yaml:"thick"`
	Randomize bool    `yaml:"randomize"` // pick a fresh color/rotation for every new command
}

type StickersConfig struct {
	Glyphs []string `yaml:"glyphs"`
	Size   float32  `yaml:"size"`
}

type ExportConfig struct {
	Scale int    `yaml:"scale"`
	Dir   string `yaml:"dir"`
}

// StorageConfig selects where the single local snapshot lives.
// Backend is "sqlite" or "file".
type StorageConfig struct {
	Backend string `yaml:"backend"`
	Dir     string `yaml:"dir"`
	Key     string `yaml:"key"`
}

// FontConfig optionally points at a TTF/OTF used for glyphs; empty means Go Regular.
type FontConfig struct {
	File string `yaml:"file"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		Canvas:        CanvasConfig{Width: 256, Height: 256, Background: "#ffffff"},
		Pens:          PensConfig{Thin: 1, Thick: 5},
		Stickers:      StickersConfig{Glyphs: []string{"🐢", "🌮", "🎈"}, Size: 32},
		Export:        ExportConfig{Scale: 4},
		Storage:       StorageConfig{Backend: "sqlite", Key: "drawing"},
		Logging:       LoggingConfig{Level: "info", Format: "console"},
	}
}

// Env var names used as overrides.
const (
	EnvCanvasWidth    = "SKP_CANVAS_WIDTH"
	EnvCanvasHeight   = "SKP_CANVAS_HEIGHT"
	EnvExportScale    = "SKP_EXPORT_SCALE"
	EnvStorageBackend = "SKP_STORAGE_BACKEND"
	EnvStorageDir     = "SKP_STORAGE_DIR"
	EnvFontFile       = "SKP_FONT_FILE"
	EnvRandomize      = "SKP_RANDOMIZE"
	EnvLogLevel       = "SKP_LOG_LEVEL"
	EnvLogFormat      = "SKP_LOG_FORMAT"
	EnvLogSource      = "SKP_LOG_SOURCE"
	EnvLogFile        = "SKP_LOG_FILE"
	// EnvConfigFile points Load at an explicit YAML file instead of the per-user path.
	EnvConfigFile = "SKP_CONFIG"
)

// ConfigDir returns the per-user directory holding config.yaml and, by default, the snapshot store.
func ConfigDir() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "Sketchpad")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "Sketchpad")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			base = filepath.Join(xdg, "sketchpad")
		} else {
			base = filepath.Join(os.Getenv("HOME"), ".config", "sketchpad")
		}
	}
	if base == "" || base == "Sketchpad" || base == "sketchpad" {
		return "", errors.New("cannot resolve config directory")
	}
	return base, nil
}

// ConfigPath returns the config file path, honoring SKP_CONFIG.
func ConfigPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfigFile)); p != "" {
		return p, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config file (if present), merges it over the defaults and applies env overrides.
// A missing file is not an error; a malformed one is.
func Load() (AppConfig, error) {
	cfg := Defaults()
	path, err := ConfigPath()
	if err != nil {
		applyEnvOverrides(&cfg)
		return cfg, err
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var fileCfg AppConfig
		if uerr := yaml.Unmarshal(data, &fileCfg); uerr != nil {
			applyEnvOverrides(&cfg)
			return cfg, fmt.Errorf("parse %s: %w", path, uerr)
		}
		mergeInto(&cfg, &fileCfg)
	case !errors.Is(err, os.ErrNotExist):
		applyEnvOverrides(&cfg)
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}
	applyEnvOverrides(&cfg)
	cfg.normalize()
	return cfg, nil
}

// Save writes cfg as YAML to the config path.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// StorageDir resolves the directory of the snapshot store, defaulting to ConfigDir.
func (c AppConfig) StorageDir() (string, error) {
	if d := strings.TrimSpace(c.Storage.Dir); d != "" {
		return d, nil
	}
	return ConfigDir()
}

func mergeInto(dst, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if src.Canvas.Width > 0 {
		dst.Canvas.Width = src.Canvas.Width
	}
	if src.Canvas.Height > 0 {
		dst.Canvas.Height = src.Canvas.Height
	}
	if s := strings.TrimSpace(src.Canvas.Background); s != "" {
		dst.Canvas.Background = s
	}
	if src.Pens.Thin > 0 {
		dst.Pens.Thin = src.Pens.Thin
	}
	if src.Pens.Thick > 0 {
		dst.Pens.Thick = src.Pens.Thick
	}
	dst.Pens.Randomize = src.Pens.Randomize
	if len(src.Stickers.Glyphs) > 0 {
		dst.Stickers.Glyphs = append([]string(nil), src.Stickers.Glyphs...)
	}
	if src.Stickers.Size > 0 {
		dst.Stickers.Size = src.Stickers.Size
	}
	if src.Export.Scale > 0 {
		dst.Export.Scale = src.Export.Scale
	}
	if s := strings.TrimSpace(src.Export.Dir); s != "" {
		dst.Export.Dir = s
	}
	if s := strings.TrimSpace(src.Storage.Backend); s != "" {
		dst.Storage.Backend = strings.ToLower(s)
	}
	if s := strings.TrimSpace(src.Storage.Dir); s != "" {
		dst.Storage.Dir = s
	}
	if s := strings.TrimSpace(src.Storage.Key); s != "" {
		dst.Storage.Key = s
	}
	if s := strings.TrimSpace(src.Font.File); s != "" {
		dst.Font.File = s
	}
	if s := strings.TrimSpace(src.Logging.Level); s != "" {
		dst.Logging.Level = strings.ToLower(s)
	}
	if s := strings.TrimSpace(src.Logging.Format); s != "" {
		dst.Logging.Format = strings.ToLower(s)
	}
	dst.Logging.Source = src.Logging.Source
	if s := strings.TrimSpace(src.Logging.File); s != "" {
		dst.Logging.File = s
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if n, ok := envInt(EnvCanvasWidth); ok && n > 0 {
		cfg.Canvas.Width = n
	}
	if n, ok := envInt(EnvCanvasHeight); ok && n > 0 {
		cfg.Canvas.Height = n
	}
	if n, ok := envInt(EnvExportScale); ok && n > 0 {
		cfg.Export.Scale = n
	}
	if v := strings.TrimSpace(os.Getenv(EnvStorageBackend)); v != "" {
		cfg.Storage.Backend = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvStorageDir)); v != "" {
		cfg.Storage.Dir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvFontFile)); v != "" {
		cfg.Font.File = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvRandomize)); v != "" {
		cfg.Pens.Randomize = truthy(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = truthy(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

// normalize replaces values that would make the canvas unusable.
func (c *AppConfig) normalize() {
	def := Defaults()
	if c.Canvas.Width <= 0 {
		c.Canvas.Width = def.Canvas.Width
	}
	if c.Canvas.Height <= 0 {
		c.Canvas.Height = def.Canvas.Height
	}
	if c.Export.Scale <= 0 {
		c.Export.Scale = def.Export.Scale
	}
	switch c.Storage.Backend {
	case "sqlite", "file":
	default:
		c.Storage.Backend = def.Storage.Backend
	}
}

// EnvOverrideFor returns the env var name if the dotted key is currently overridden by the environment.
func EnvOverrideFor(key string) (string, bool) {
	names := map[string]string{
		"canvas.width":    EnvCanvasWidth,
		"canvas.height":   EnvCanvasHeight,
		"export.scale":    EnvExportScale,
		"storage.backend": EnvStorageBackend,
		"storage.dir":     EnvStorageDir,
		"font.file":       EnvFontFile,
		"pens.randomize":  EnvRandomize,
		"logging.level":   EnvLogLevel,
		"logging.format":  EnvLogFormat,
		"logging.source":  EnvLogSource,
		"logging.file":    EnvLogFile,
	}
	env, ok := names[key]
	if !ok || os.Getenv(env) == "" {
		return "", false
	}
	return env, true
}

func envInt(name string) (int, bool) {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	return n, err == nil
}

func truthy(v string) bool {
	lv := strings.ToLower(strings.TrimSpace(v))
	return lv == "1" || lv == "true" || lv == "on" || lv == "yes"
}
