/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package sketch

// History is the undo/redo stack pair over committed commands.
// done holds the visible commands oldest first; undone holds reverted commands with
// the most recently undone last. Commands move between the stacks unmodified.
type History struct {
	done   []*Command
	undone []*Command
}

func NewHistory() *History { return &History{} }

// Commit pushes cmd onto the committed list. Any new command invalidates redo.
func (h *History) Commit(cmd *Command) {
	if cmd == nil {
		return
	}
	h.done = append(h.done, cmd)
	h.undone = nil
}

// Undo moves the newest committed command onto the redo stack.
func (h *History) Undo() (*Command, bool) {
	n := len(h.done)
	if n == 0 {
		return nil, false
	}
	cmd := h.done[n-1]
	h.done[n-1] = nil
	h.done = h.done[:n-1]
	h.undone = append(h.undone, cmd)
	return cmd, true
}

// Redo moves the most recently undone command back onto the committed list.
func (h *History) Redo() (*Command, bool) {
	n := len(h.undone)
	if n == 0 {
		return nil, false
	}
	cmd := h.undone[n-1]
	h.undone[n-1] = nil
	h.undone = h.undone[:n-1]
	h.done = append(h.done, cmd)
	return cmd, true
}

// ClearAll empties both stacks.
func (h *History) ClearAll() {
	h.done = nil
	h.undone = nil
}

// Restore replaces the committed list with cmds (oldest first) and drops redo.
func (h *History) Restore(cmds []*Command) {
	done := make([]*Command, 0, len(cmds))
	for _, c := range cmds {
		if c != nil {
			done = append(done, c)
		}
	}
	h.done = done
	h.undone = nil
}

// ReplayAll renders every committed command in insertion order, so later commands
// paint over earlier ones.
func (h *History) ReplayAll(s Surface) {
	for _, c := range h.done {
		c.Render(s)
	}
}

// Commands returns the committed commands, oldest first. The slice is a copy; the
// commands are shared.
func (h *History) Commands() []*Command { return append([]*Command(nil), h.done...) }

// Last returns the newest committed command, if any.
func (h *History) Last() (*Command, bool) {
	if len(h.done) == 0 {
		return nil, false
	}
	return h.done[len(h.done)-1], true
}

func (h *History) Len() int      { return len(h.done) }
func (h *History) RedoLen() int  { return len(h.undone) }
func (h *History) CanUndo() bool { return len(h.done) > 0 }
func (h *History) CanRedo() bool { return len(h.undone) > 0 }

// Stats returns current sizes for diagnostics.
func (h *History) Stats() (committed, redo, points int) {
	for _, c := range h.done {
		points += c.Len()
	}
	return len(h.done), len(h.undone), points
}
