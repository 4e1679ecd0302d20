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
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"sketchpad/internal/raster"
	"sketchpad/internal/sketch"
	"sketchpad/internal/vector"
)

// SketchCanvas is the drawing surface widget. It forwards pointer events to the
// controller and repaints by replaying the controller onto a raster image.
type SketchCanvas struct {
	widget.BaseWidget
	ctrl  *sketch.Controller
	fonts *raster.FontLibrary
	bg    vector.Color
	// logical canvas size in canvas pixels
	w, h float32

	img *raster.Canvas // reused while the pixel size is unchanged
	ras *canvas.Raster
}

var (
	_ desktop.Mouseable = (*SketchCanvas)(nil)
	_ desktop.Hoverable = (*SketchCanvas)(nil)
	_ fyne.Draggable    = (*SketchCanvas)(nil)
)

func NewSketchCanvas(ctrl *sketch.Controller, bg vector.Color, fonts *raster.FontLibrary) *SketchCanvas {
	b := ctrl.Bounds()
	sc := &SketchCanvas{ctrl: ctrl, fonts: fonts, bg: bg, w: b.W, h: b.H}
	sc.ExtendBaseWidget(sc)
	return sc
}

func (s *SketchCanvas) CreateRenderer() fyne.WidgetRenderer {
	s.ras = canvas.NewRaster(s.paint)
	s.ras.SetMinSize(fyne.NewSize(s.w, s.h))
	return widget.NewSimpleRenderer(s.ras)
}

func (s *SketchCanvas) MinSize() fyne.Size { return fyne.NewSize(s.w, s.h) }

// paint renders at the device pixel size fyne asks for.
func (s *SketchCanvas) paint(pw, ph int) image.Image {
	if s.img == nil || s.img.Image().Bounds().Dx() != pw || s.img.Image().Bounds().Dy() != ph {
		s.img = raster.NewCanvas(pw, ph, s.bg, s.fonts)
	}
	s.img.SetTransform(vector.Scale(float32(pw)/s.w, float32(ph)/s.h))
	s.ctrl.Redraw(s.img)
	return s.img.Image()
}

// toCanvas maps a widget position to canvas pixels.
func (s *SketchCanvas) toCanvas(pos fyne.Position) vector.Pt {
	size := s.Size()
	if size.Width <= 0 || size.Height <= 0 {
		return vector.P(pos.X, pos.Y)
	}
	return vector.P(pos.X*s.w/size.Width, pos.Y*s.h/size.Height)
}

func (s *SketchCanvas) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	s.ctrl.PointerDown(s.toCanvas(e.Position))
}

func (s *SketchCanvas) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	s.ctrl.PointerUp(s.toCanvas(e.Position))
}

func (s *SketchCanvas) MouseIn(e *desktop.MouseEvent)    { s.ctrl.PointerEnter(s.toCanvas(e.Position)) }
func (s *SketchCanvas) MouseMoved(e *desktop.MouseEvent) { s.ctrl.PointerMove(s.toCanvas(e.Position)) }
func (s *SketchCanvas) MouseOut()                        { s.ctrl.PointerLeave() }

// Dragged delivers moves while the button is held.
func (s *SketchCanvas) Dragged(e *fyne.DragEvent) { s.ctrl.PointerMove(s.toCanvas(e.Position)) }

// DragEnd finishes the stroke in case the release was delivered outside the widget.
func (s *SketchCanvas) DragEnd() {
	if s.ctrl.State() == sketch.Drawing {
		s.ctrl.PointerUp(s.ctrl.Tooltip().Pos)
	}
}

// Repaint schedules a redraw of the raster.
func (s *SketchCanvas) Repaint() {
	if s.ras != nil {
		s.ras.Refresh()
	}
}
