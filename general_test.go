/*
 * general_test.go, part of strainsweep.
 *
 * Copyright 2025 The strainsweep developers
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package strainsweep

import "testing"

//carbonGrid builds an nx x ny rectangular carbon lattice in the z=0
//plane with the given spacing, the stand-in for a small 2D network in
//the tests below.
func carbonGrid(t *testing.T, nx, ny int, spacing float64) *Structure {
	t.Helper()
	symbols := make([]string, 0, nx*ny)
	coords := make([]float64, 0, 3*nx*ny)
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			symbols = append(symbols, "C")
			coords = append(coords, float64(i)*spacing, float64(j)*spacing, 0)
		}
	}
	cell := []float64{
		float64(nx) * spacing, 0, 0,
		0, float64(ny) * spacing, 0,
		0, 0, 15,
	}
	S, err := NewStructure(symbols, coords, cell)
	if err != nil {
		t.Fatalf("building test grid: %v", err)
	}
	return S
}

//symbolsOf collects the element symbols of a structure in order.
func symbolsOf(S *Structure) []string {
	ret := make([]string, S.Len())
	for i, at := range S.Atoms {
		ret[i] = at.Symbol
	}
	return ret
}
