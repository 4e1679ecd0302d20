/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package sketch

import "sketchpad/internal/vector"

// PointerState is the state of the pointer relative to the canvas.
type PointerState uint8

const (
	// Idle: not pressed and not known to be over the canvas.
	Idle PointerState = iota
	// Hovering: not pressed, over the canvas; the tooltip is shown.
	Hovering
	// Drawing: pressed over the canvas; moves extend the active command.
	Drawing
)

func (s PointerState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Hovering:
		return "hovering"
	case Drawing:
		return "drawing"
	default:
		return "unknown"
	}
}

// Tracker bridges raw pointer events to command mutation. It only tracks state;
// the Controller decides what each transition does to history.
type Tracker struct {
	state  PointerState
	last   vector.Pt
	active *Command
}

func (t *Tracker) State() PointerState { return t.state }
func (t *Tracker) Last() vector.Pt     { return t.last }

// Active returns the command being drawn, or nil outside Drawing.
func (t *Tracker) Active() *Command { return t.active }

// Enter marks the pointer as over the canvas.
func (t *Tracker) Enter(p vector.Pt) {
	t.last = p
	if t.state == Idle {
		t.state = Hovering
	}
}

// Press starts drawing cmd at p.
func (t *Tracker) Press(p vector.Pt, cmd *Command) {
	t.last = p
	t.active = cmd
	t.state = Drawing
}

// Move records p and returns the command to extend, if drawing. A move seen while
// Idle implies the pointer is over the canvas.
func (t *Tracker) Move(p vector.Pt) *Command {
	t.last = p
	if t.state == Idle {
		t.state = Hovering
	}
	if t.state == Drawing {
		return t.active
	}
	return nil
}

// Release ends the active command. It reports whether a command was in progress.
func (t *Tracker) Release() bool {
	if t.state != Drawing {
		return false
	}
	t.active = nil
	t.state = Hovering
	return true
}

// Leave force-releases: an in-progress command stays as drawn and stops growing.
func (t *Tracker) Leave() bool {
	wasDrawing := t.state == Drawing
	t.active = nil
	t.state = Idle
	return wasDrawing
}
