/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	gojsonschema "github.com/xeipuuv/gojsonschema"

	"sketchpad/internal/sketch"
	"sketchpad/internal/vector"
)

//go:embed drawing.schema.json
var drawingSchema []byte

// ErrInvalidRecord is returned when a stored drawing does not match the record format.
var ErrInvalidRecord = errors.New("invalid drawing record")

// PointRecord is one point of a command record.
type PointRecord struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// CommandRecord is the persisted form of one command.
type CommandRecord struct {
	ID        string        `json:"id,omitempty"`
	Points    []PointRecord `json:"points"`
	Thickness float32       `json:"thickness"`
	IsSticker bool          `json:"isSticker"`
	Symbol    string        `json:"symbol"`
	Color     string        `json:"color"`
	Rotation  float32       `json:"rotation"`
	Size      float32       `json:"size,omitempty"`
}

// Encode serializes cmds, oldest first.
func Encode(cmds []*sketch.Command) ([]byte, error) {
	recs := make([]CommandRecord, 0, len(cmds))
	for _, c := range cmds {
		if c == nil {
			continue
		}
		recs = append(recs, toRecord(c))
	}
	data, err := json.Marshal(recs)
	if err != nil {
		return nil, fmt.Errorf("marshal drawing: %w", err)
	}
	return data, nil
}

// Decode validates data and rebuilds the commands in their original order.
func Decode(data []byte) ([]*sketch.Command, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}
	var recs []CommandRecord
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	cmds := make([]*sketch.Command, 0, len(recs))
	for i, r := range recs {
		c, err := fromRecord(r)
		if err != nil {
			return nil, fmt.Errorf("%w: command %d: %v", ErrInvalidRecord, i, err)
		}
		cmds = append(cmds, c)
	}
	return cmds, nil
}

// Validate checks data against the drawing schema.
func Validate(data []byte) error {
	res, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(drawingSchema), gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	if !res.Valid() {
		msgs := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("%w: %s", ErrInvalidRecord, strings.Join(msgs, "; "))
	}
	return nil
}

func toRecord(c *sketch.Command) CommandRecord {
	st := c.Style()
	pts := c.Points()
	r := CommandRecord{
		ID:        c.ID,
		Points:    make([]PointRecord, len(pts)),
		Thickness: st.Thickness,
		IsSticker: st.Sticker,
		Symbol:    st.Symbol,
		Color:     st.Color.Hex(),
		Rotation:  st.Rotation,
	}
	if st.Sticker {
		r.Size = st.Size
	}
	for i, p := range pts {
		r.Points[i] = PointRecord{X: p.X, Y: p.Y}
	}
	return r
}

func fromRecord(r CommandRecord) (*sketch.Command, error) {
	col, err := vector.ParseColor(r.Color)
	if err != nil {
		return nil, err
	}
	pts := make([]vector.Pt, len(r.Points))
	for i, p := range r.Points {
		pts[i] = vector.P(p.X, p.Y)
	}
	st := sketch.Style{
		Thickness: r.Thickness,
		Color:     col,
		Rotation:  r.Rotation,
		Symbol:    r.Symbol,
		Sticker:   r.IsSticker,
		Size:      r.Size,
	}
	return sketch.RestoreCommand(r.ID, pts, st), nil
}
