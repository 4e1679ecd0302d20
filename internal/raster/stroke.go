/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package raster

import (
	"math"

	xvector "golang.org/x/image/vector"

	"sketchpad/internal/vector"
)

// strokeOutline turns a device-space polyline into filled polygons. All polygons share
// one winding so that overlaps never cancel in the rasterizer.
func strokeOutline(pts []vector.Pt, hw float32, cp vector.LineCap, jn vector.LineJoin) [][]vector.Pt {
	var polys [][]vector.Pt
	n := len(pts)
	for i := 0; i+1 < n; i++ {
		a, b := pts[i], pts[i+1]
		d := b.Sub(a)
		l := d.Len()
		if l == 0 {
			continue
		}
		u := d.Mul(1 / l)
		if cp == vector.CapSquare {
			if i == 0 {
				a = a.Sub(u.Mul(hw))
			}
			if i+2 == n {
				b = b.Add(u.Mul(hw))
			}
		}
		nrm := vector.P(-u.Y, u.X).Mul(hw)
		polys = append(polys, []vector.Pt{a.Add(nrm), b.Add(nrm), b.Sub(nrm), a.Sub(nrm)})
	}
	if cp == vector.CapRound {
		polys = append(polys, disc(pts[0], hw), disc(pts[n-1], hw))
	}
	for i := 1; i+1 < n; i++ {
		switch jn {
		case vector.JoinRound:
			polys = append(polys, disc(pts[i], hw))
		default:
			if j := bevel(pts[i-1], pts[i], pts[i+1], hw); j != nil {
				polys = append(polys, j)
			}
		}
	}
	if len(polys) == 0 {
		// Every point coincides: draw a dot so a zero-length drag is still visible.
		polys = append(polys, disc(pts[0], hw))
	}
	return polys
}

// disc approximates a circle with enough sides to look round at radius r.
func disc(c vector.Pt, r float32) []vector.Pt {
	sides := int(math.Ceil(2 * math.Pi * float64(r) / 1.5))
	sides = min(max(sides, 8), 96)
	out := make([]vector.Pt, sides)
	for i := range out {
		a := 2 * math.Pi * float64(i) / float64(sides)
		out[i] = vector.P(c.X+r*float32(math.Cos(a)), c.Y+r*float32(math.Sin(a)))
	}
	return out
}

// bevel fills the wedge on the outer side of the corner at b.
func bevel(a, b, c vector.Pt, hw float32) []vector.Pt {
	d1, d2 := b.Sub(a), c.Sub(b)
	l1, l2 := d1.Len(), d2.Len()
	if l1 == 0 || l2 == 0 {
		return nil
	}
	n1 := vector.P(-d1.Y/l1, d1.X/l1).Mul(hw)
	n2 := vector.P(-d2.Y/l2, d2.X/l2).Mul(hw)
	if d1.X*d2.Y-d1.Y*d2.X > 0 {
		n1, n2 = n1.Mul(-1), n2.Mul(-1)
	}
	return []vector.Pt{b, b.Add(n1), b.Add(n2)}
}

// fillPoly adds a closed polygon to z, normalized to negative signed area.
func fillPoly(z *xvector.Rasterizer, poly []vector.Pt) {
	if len(poly) < 3 {
		return
	}
	if signedArea(poly) > 0 {
		rev := make([]vector.Pt, len(poly))
		for i, p := range poly {
			rev[len(poly)-1-i] = p
		}
		poly = rev
	}
	z.MoveTo(poly[0].X, poly[0].Y)
	for _, p := range poly[1:] {
		z.LineTo(p.X, p.Y)
	}
	z.ClosePath()
}

func signedArea(poly []vector.Pt) float32 {
	var s float32
	for i, p := range poly {
		q := poly[(i+1)%len(poly)]
		s += p.X*q.Y - q.X*p.Y
	}
	return s / 2
}
