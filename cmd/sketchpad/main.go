/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"sketchpad/internal/app"
	"sketchpad/internal/config"
	"sketchpad/internal/crash"
	"sketchpad/internal/export"
	applog "sketchpad/internal/log"
	"sketchpad/internal/ui"
	"sketchpad/internal/version"
)

func usage(w io.Writer) {
	fmt.Fprintln(w, "Sketchpad")
	fmt.Fprintf(w, "Version: %s\n", version.String())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  sketchpad version|-v|--version      Show version")
	fmt.Fprintln(w, "  sketchpad ui                        Launch desktop UI (build with -tags fyne for full UI)")
	fmt.Fprintln(w, "  sketchpad show                      Print a summary of the saved drawing")
	fmt.Fprintln(w, "  sketchpad export [<file>]           Export the saved drawing (.png, .svg or .pdf)")
	fmt.Fprintln(w, "  sketchpad export-png [<file>]       Export the saved drawing as PNG")
	fmt.Fprintln(w, "  sketchpad export-pdf [<file>]       Export the saved drawing as PDF")
	fmt.Fprintln(w, "  sketchpad data-url                  Print the saved drawing as a PNG data URL")
	fmt.Fprintln(w, "  sketchpad clear                     Replace the saved drawing with an empty one")
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	applog.Init(app.LogOptions(cfg))
	os.Exit(run(cfg, os.Args[1:], os.Stdout))
}

// run executes one CLI command and returns the process exit code.
func run(cfg config.AppConfig, args []string, out io.Writer) int {
	l := applog.WithComponent("cli")
	l.Debug("start", slog.Int("args", len(args)))
	if len(args) == 0 {
		usage(out)
		return 0
	}
	switch args[0] {
	case "version", "--version", "-v":
		fmt.Fprintln(out, "Sketchpad")
		fmt.Fprintln(out, version.String())
		return 0
	case "help", "-h", "--help":
		usage(out)
		return 0
	case "ui", "show", "export", "export-png", "export-pdf", "data-url", "clear":
	default:
		fmt.Fprintf(out, "unknown command %q\n", args[0])
		usage(out)
		return 2
	}

	a, err := app.New(cfg)
	if err != nil {
		l.Error("startup failed", slog.Any("err", err))
		fmt.Fprintln(out, "Error:", err)
		return 1
	}
	defer a.Close()
	defer crash.Recover(a.CrashSession())

	ctx := context.Background()
	if args[0] == "ui" {
		if _, err := a.Load(ctx); err != nil {
			l.Warn("saved drawing not loaded", slog.Any("err", err))
		}
		if err := ui.Run(a); err != nil {
			fmt.Fprintln(out, "Error:", err)
			return 1
		}
		return 0
	}

	if args[0] == "clear" {
		a.Controller.Clear()
		if err := a.Save(ctx); err != nil {
			fmt.Fprintln(out, "Error:", err)
			return 1
		}
		fmt.Fprintln(out, "Saved drawing cleared.")
		return 0
	}

	found, err := a.Load(ctx)
	if err != nil {
		l.Error("load failed", slog.Any("err", err))
		fmt.Fprintln(out, "Error:", err)
		return 1
	}
	if !found {
		fmt.Fprintln(out, "No saved drawing; using an empty canvas.")
	}

	switch args[0] {
	case "show":
		committed, redo, points := a.Controller.History().Stats()
		fmt.Fprintf(out, "Commands: %d\n", committed)
		fmt.Fprintf(out, "Redo: %d\n", redo)
		fmt.Fprintf(out, "Points: %d\n", points)
		fmt.Fprintf(out, "Canvas: %dx%d\n", cfg.Canvas.Width, cfg.Canvas.Height)
		fmt.Fprintf(out, "Storage: %s\n", cfg.Storage.Backend)
	case "data-url":
		u, err := a.DataURL()
		if err != nil {
			fmt.Fprintln(out, "Error:", err)
			return 1
		}
		fmt.Fprintln(out, u)
	default:
		path := exportPath(a, args)
		if err := a.Export(path); err != nil {
			fmt.Fprintln(out, "Error:", err)
			return 1
		}
		fmt.Fprintln(out, "Exported", path)
	}
	return 0
}

// exportPath picks the target file for the export commands. export-png and
// export-pdf fix the format; a bare export defaults to PNG.
func exportPath(a *app.App, args []string) string {
	format := export.FormatPNG
	if args[0] == "export-pdf" {
		format = export.FormatPDF
	}
	if len(args) < 2 {
		return a.DefaultExportPath(format)
	}
	path := args[1]
	if args[0] != "export" {
		if f, err := export.FormatFor(path); err != nil || f != format {
			path += "." + string(format)
		}
	}
	return path
}
