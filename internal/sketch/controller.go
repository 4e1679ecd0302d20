/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package sketch

import (
	"log/slog"
	"math/rand/v2"
	"strings"

	applog "sketchpad/internal/log"
	"sketchpad/internal/vector"
)

// DefaultStickers are the glyphs offered next to the custom sticker button.
var DefaultStickers = []string{"🐢", "🌮", "🎈"}

// EventKind identifies what changed in a Controller.
type EventKind uint8

const (
	// EventDrawingChanged: the committed history changed.
	EventDrawingChanged EventKind = iota + 1
	// EventToolMoved: the tooltip moved, appeared or disappeared.
	EventToolMoved
	// EventToolChanged: the tool selection changed.
	EventToolChanged
)

func (k EventKind) String() string {
	switch k {
	case EventDrawingChanged:
		return "drawing_changed"
	case EventToolMoved:
		return "tool_moved"
	case EventToolChanged:
		return "tool_changed"
	default:
		return "unknown"
	}
}

// Event is delivered synchronously to subscribers after every mutation.
type Event struct {
	Kind EventKind
	Pos  vector.Pt
}

// Options configures a Controller. Zero values fall back to the built-in defaults.
type Options struct {
	Width, Height float32
	Thin, Thick   float32
	StickerSize   float32
	Stickers      []string
	Randomize     bool
	Rand          *rand.Rand
	Logger        *slog.Logger
}

// Controller owns the application state of one sketchpad: history, tool state,
// pointer tracker and tooltip. It is not safe for concurrent use; drive it from the
// UI goroutine.
type Controller struct {
	history  *History
	tools    *ToolState
	tracker  Tracker
	tooltip  Tooltip
	thin     Pen
	thick    Pen
	stickers []string
	bounds   vector.Rect
	log      *slog.Logger

	subs   map[int]func(Event)
	order  []int
	nextID int
}

func NewController(opts Options) *Controller {
	if opts.Width <= 0 {
		opts.Width = 256
	}
	if opts.Height <= 0 {
		opts.Height = 256
	}
	if opts.Logger == nil {
		opts.Logger = applog.Discard()
	}
	stickers := make([]string, 0, len(opts.Stickers))
	for _, s := range opts.Stickers {
		if s = strings.TrimSpace(s); s != "" {
			stickers = append(stickers, s)
		}
	}
	if len(stickers) == 0 {
		stickers = append(stickers, DefaultStickers...)
	}
	thin, thick := ThinPen(opts.Thin), ThickPen(opts.Thick)
	return &Controller{
		history:  NewHistory(),
		tools:    NewToolState(thin, opts.StickerSize, opts.Randomize, opts.Rand),
		thin:     thin,
		thick:    thick,
		stickers: stickers,
		bounds:   vector.R(0, 0, opts.Width, opts.Height),
		log:      opts.Logger.With(slog.String("component", "sketch")),
		subs:     make(map[int]func(Event)),
	}
}

func (c *Controller) History() *History       { return c.history }
func (c *Controller) Tools() *ToolState       { return c.tools }
func (c *Controller) State() PointerState     { return c.tracker.State() }
func (c *Controller) Tooltip() Tooltip        { return c.tooltip }
func (c *Controller) Bounds() vector.Rect     { return c.bounds }
func (c *Controller) Stickers() []string      { return append([]string(nil), c.stickers...) }
func (c *Controller) Commands() []*Command    { return c.history.Commands() }
func (c *Controller) ActiveCommand() *Command { return c.tracker.Active() }

// Subscribe registers fn for change notifications and returns a func removing it.
func (c *Controller) Subscribe(fn func(Event)) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	c.order = append(c.order, id)
	return func() {
		delete(c.subs, id)
		for i, v := range c.order {
			if v == id {
				c.order = append(c.order[:i], c.order[i+1:]...)
				break
			}
		}
	}
}

func (c *Controller) notify(kind EventKind) {
	ev := Event{Kind: kind, Pos: c.tracker.Last()}
	for _, id := range append([]int(nil), c.order...) {
		if fn, ok := c.subs[id]; ok {
			fn(ev)
		}
	}
}

// PointerEnter shows the tooltip at p.
func (c *Controller) PointerEnter(p vector.Pt) {
	c.tracker.Enter(p)
	c.refreshTooltip()
	c.notify(EventToolMoved)
}

// PointerDown starts a new command from the current tool state and commits it
// right away, which drops the redo list.
func (c *Controller) PointerDown(p vector.Pt) {
	if c.tracker.State() == Drawing {
		// A press without a release in between; the old command is finished.
		c.tracker.Release()
	}
	cmd := NewCommand(p, c.tools.Snapshot())
	c.history.Commit(cmd)
	c.tracker.Press(p, cmd)
	c.tools.Advance()
	c.refreshTooltip()
	c.log.Debug("command started", slog.String("id", cmd.ID), slog.Bool("sticker", cmd.IsSticker()),
		slog.Int("committed", c.history.Len()))
	c.notify(EventDrawingChanged)
}

// PointerMove extends the active command while drawing, otherwise it only moves the
// tooltip.
func (c *Controller) PointerMove(p vector.Pt) {
	if cmd := c.tracker.Move(p); cmd != nil {
		cmd.Extend(p)
		c.refreshTooltip()
		c.notify(EventDrawingChanged)
		return
	}
	c.refreshTooltip()
	c.notify(EventToolMoved)
}

// PointerUp ends the active command; later moves no longer change it.
func (c *Controller) PointerUp(p vector.Pt) {
	if cmd := c.tracker.Active(); cmd != nil {
		c.log.Debug("command finished", slog.String("id", cmd.ID), slog.Int("points", cmd.Len()))
	}
	if !c.tracker.Release() {
		return
	}
	c.tracker.Enter(p)
	c.refreshTooltip()
	c.notify(EventToolMoved)
}

// PointerLeave force-releases the pointer. A command in progress stays committed as
// drawn and the tooltip is hidden.
func (c *Controller) PointerLeave() {
	if c.tracker.Leave() {
		c.log.Debug("pointer left canvas while drawing")
	}
	c.refreshTooltip()
	c.notify(EventToolMoved)
}

// SelectThin switches to the thin pen and leaves sticker mode.
func (c *Controller) SelectThin() { c.SelectPen(c.thin) }

// SelectThick switches to the thick pen and leaves sticker mode.
func (c *Controller) SelectThick() { c.SelectPen(c.thick) }

func (c *Controller) SelectPen(p Pen) {
	c.tools.SelectPen(p)
	c.refreshTooltip()
	c.notify(EventToolChanged)
}

// SelectSticker enters sticker mode with sym. A blank sym keeps the current tool.
func (c *Controller) SelectSticker(sym string) bool {
	if !c.tools.SelectSticker(sym) {
		return false
	}
	c.refreshTooltip()
	c.notify(EventToolChanged)
	return true
}

// SelectCustomSticker applies the answer of the custom glyph prompt. ok is false when
// the prompt was cancelled.
func (c *Controller) SelectCustomSticker(sym string, ok bool) bool {
	if !ok {
		return false
	}
	return c.SelectSticker(sym)
}

// Clear removes every command, including the redo list.
func (c *Controller) Clear() {
	c.tracker.Release()
	c.history.ClearAll()
	c.log.Debug("drawing cleared")
	c.notify(EventDrawingChanged)
}

// Undo reverts the newest command. It reports false when there is nothing to undo.
func (c *Controller) Undo() bool {
	if c.tracker.State() == Drawing {
		c.tracker.Release()
	}
	cmd, ok := c.history.Undo()
	if !ok {
		return false
	}
	c.log.Debug("undo", slog.String("id", cmd.ID), slog.Int("committed", c.history.Len()))
	c.notify(EventDrawingChanged)
	return true
}

// Redo re-applies the most recently undone command.
func (c *Controller) Redo() bool {
	cmd, ok := c.history.Redo()
	if !ok {
		return false
	}
	c.log.Debug("redo", slog.String("id", cmd.ID), slog.Int("committed", c.history.Len()))
	c.notify(EventDrawingChanged)
	return true
}

// Restore replaces the drawing with cmds, as loaded from storage.
func (c *Controller) Restore(cmds []*Command) {
	c.tracker.Release()
	c.history.Restore(cmds)
	c.log.Debug("drawing restored", slog.Int("committed", c.history.Len()))
	c.notify(EventDrawingChanged)
}

// Redraw repaints s from scratch: history first, tooltip on top.
func (c *Controller) Redraw(s Surface) {
	Redraw(s, c.history, &c.tooltip, c.bounds)
}

func (c *Controller) refreshTooltip() {
	pos := c.tracker.Last()
	c.tooltip.Pos = pos
	c.tooltip.Glyph = c.tools.Preview(pos)
	c.tooltip.Visible = c.tracker.State() == Hovering
}
