//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package ui

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"sketchpad/internal/app"
	"sketchpad/internal/crash"
	"sketchpad/internal/export"
	applog "sketchpad/internal/log"
	"sketchpad/internal/sketch"
)

const prefCustomSticker = "sticker.custom"

// Run opens the sketchpad window and blocks until it is closed.
func Run(a *app.App) error {
	if a == nil {
		return fmt.Errorf("ui: no app")
	}
	l := applog.WithComponent("ui")
	l.Info("starting UI")
	defer crash.Recover(a.CrashSession())

	fa := fyneapp.NewWithID("sketchpad")
	w := fa.NewWindow("Sketchpad")
	prefs := fa.Preferences()

	ctrl := a.Controller
	sc := NewSketchCanvas(ctrl, a.Background(), a.Fonts)
	tb := newToolbar(a, w, prefs)

	status := widget.NewLabel("")
	updateStatus := func() {
		h := ctrl.History()
		status.SetText(fmt.Sprintf("%d drawn, %d to redo", h.Len(), h.RedoLen()))
	}
	updateStatus()
	cancel := ctrl.Subscribe(func(ev sketch.Event) {
		sc.Repaint()
		switch ev.Kind {
		case sketch.EventDrawingChanged:
			updateStatus()
			tb.refresh()
		case sketch.EventToolChanged:
			tb.refresh()
		}
	})
	defer cancel()

	addShortcuts(w, a, tb)

	w.SetContent(container.NewBorder(tb.box, status, nil, nil, container.NewCenter(sc)))
	b := ctrl.Bounds()
	w.Resize(fyne.NewSize(b.W+240, b.H+160))
	w.ShowAndRun()
	l.Info("UI closed")
	return nil
}

// toolbar holds the tool buttons so their highlight can follow the tool state.
type toolbar struct {
	a        *app.App
	w        fyne.Window
	prefs    fyne.Preferences
	thin     *widget.Button
	thick    *widget.Button
	stickers map[string]*widget.Button
	custom   *widget.Button
	undo     *widget.Button
	redo     *widget.Button
	box      *fyne.Container
}

func newToolbar(a *app.App, w fyne.Window, prefs fyne.Preferences) *toolbar {
	ctrl := a.Controller
	tb := &toolbar{a: a, w: w, prefs: prefs, stickers: map[string]*widget.Button{}}
	tb.thin = widget.NewButton("THIN", ctrl.SelectThin)
	tb.thick = widget.NewButton("THICK", ctrl.SelectThick)
	tools := []fyne.CanvasObject{tb.thin, tb.thick}
	for _, sym := range ctrl.Stickers() {
		tb.stickers[sym] = widget.NewButton(sym, func() { ctrl.SelectSticker(sym) })
		tools = append(tools, tb.stickers[sym])
	}
	tb.custom = widget.NewButton("?", tb.promptSticker)
	tools = append(tools, tb.custom)

	tb.undo = widget.NewButton("UNDO", func() { ctrl.Undo() })
	tb.redo = widget.NewButton("REDO", func() { ctrl.Redo() })
	edit := []fyne.CanvasObject{
		widget.NewButton("CLEAR", ctrl.Clear),
		tb.undo,
		tb.redo,
		widget.NewSeparator(),
		widget.NewButton("EXPORT", tb.exportDialog),
		widget.NewButton("SAVE", tb.save),
		widget.NewButton("LOAD", tb.load),
	}
	tb.box = container.NewVBox(container.NewHBox(tools...), container.NewHBox(edit...))
	tb.refresh()
	return tb
}

// refresh highlights the active tool and enables undo/redo only when they apply.
func (tb *toolbar) refresh() {
	ts := tb.a.Controller.Tools()
	mark := func(b *widget.Button, on bool) {
		imp := widget.MediumImportance
		if on {
			imp = widget.HighImportance
		}
		if b.Importance != imp {
			b.Importance = imp
			b.Refresh()
		}
	}
	mark(tb.thin, !ts.StickerMode && ts.Pen.Name == "thin")
	mark(tb.thick, !ts.StickerMode && ts.Pen.Name == "thick")
	_, preset := tb.stickers[ts.Symbol]
	for sym, b := range tb.stickers {
		mark(b, ts.StickerMode && ts.Symbol == sym)
	}
	mark(tb.custom, ts.StickerMode && !preset)
	if ts.StickerMode && !preset {
		tb.custom.SetText(ts.Symbol)
	}

	h := tb.a.Controller.History()
	enable(tb.undo, h.CanUndo())
	enable(tb.redo, h.CanRedo())
}

func enable(b *widget.Button, on bool) {
	if on {
		b.Enable()
	} else {
		b.Disable()
	}
}

// promptSticker asks for any glyph. Cancel or an empty answer keeps the current tool.
func (tb *toolbar) promptSticker() {
	entry := widget.NewEntry()
	entry.SetText(tb.prefs.StringWithFallback(prefCustomSticker, ""))
	entry.SetPlaceHolder("emoji or letter")
	items := []*widget.FormItem{widget.NewFormItem("Glyph", entry)}
	dialog.ShowForm("Custom sticker", "Use", "Cancel", items, func(ok bool) {
		sym := strings.TrimSpace(entry.Text)
		if tb.a.Controller.SelectCustomSticker(sym, ok) {
			tb.prefs.SetString(prefCustomSticker, sym)
		}
	}, tb.w)
}

func (tb *toolbar) exportDialog() {
	d := dialog.NewFileSave(func(uc fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, tb.w)
			return
		}
		if uc == nil {
			return
		}
		path := uc.URI().Path()
		_ = uc.Close()
		if _, ferr := export.FormatFor(path); ferr != nil {
			path += "." + string(export.FormatPNG)
		}
		if err := tb.a.Export(path); err != nil {
			dialog.ShowError(err, tb.w)
			return
		}
		dialog.ShowInformation("Export", "Saved "+filepath.Base(path), tb.w)
	}, tb.w)
	d.SetFileName(filepath.Base(tb.a.DefaultExportPath(export.FormatPNG)))
	d.Show()
}

func (tb *toolbar) save() {
	if err := tb.a.Save(context.Background()); err != nil {
		dialog.ShowError(err, tb.w)
	}
}

func (tb *toolbar) load() {
	ok, err := tb.a.Load(context.Background())
	if err != nil {
		dialog.ShowError(err, tb.w)
		return
	}
	if !ok {
		applog.WithComponent("ui").Info("nothing saved yet", slog.String("key", tb.a.Config.Storage.Key))
	}
}

func addShortcuts(w fyne.Window, a *app.App, tb *toolbar) {
	ctrl := a.Controller
	ctl := func(k fyne.KeyName, mod fyne.KeyModifier, fn func()) {
		w.Canvas().AddShortcut(&desktop.CustomShortcut{KeyName: k, Modifier: mod}, func(fyne.Shortcut) { fn() })
	}
	ctl(fyne.KeyZ, fyne.KeyModifierShortcutDefault, func() { ctrl.Undo() })
	ctl(fyne.KeyY, fyne.KeyModifierShortcutDefault, func() { ctrl.Redo() })
	ctl(fyne.KeyZ, fyne.KeyModifierShortcutDefault|fyne.KeyModifierShift, func() { ctrl.Redo() })
	ctl(fyne.KeyS, fyne.KeyModifierShortcutDefault, tb.save)
	ctl(fyne.KeyO, fyne.KeyModifierShortcutDefault, tb.load)
	ctl(fyne.KeyE, fyne.KeyModifierShortcutDefault, tb.exportDialog)
}
