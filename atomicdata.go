/*
 * atomicdata.go, part of strainsweep.
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

//A map for assigning covalent radii to elements.
//Values from Cordero et al., 2008 (DOI:10.1039/B801115J).
//Only the elements that show up in doped molecular-network
//materials are present: the carbon backbone, the usual
//heteroatom dopants, and hydrogen for edge termination.
var symbolCovrad = map[string]float64{
	"H":  0.31,
	"B":  0.84,
	"C":  0.76, //the sp3 radius
	"N":  0.71,
	"O":  0.66,
	"F":  0.57,
	"Si": 1.11,
	"P":  1.07,
	"S":  1.05,
}

//Tolerance added on top of the covalent-radii sum when deriving a
//bonding cutoff, as in DOI:10.1186/1758-2946-3-33.
const bondtol = 0.45

//CovalentRadius returns the tabulated covalent radius of an element
//symbol and whether the element is tabulated at all.
func CovalentRadius(symbol string) (float64, bool) {
	r, ok := symbolCovrad[symbol]
	return r, ok
}

//DefaultCutoffs builds a cutoff table for all unordered pairs of the
//given element symbols, using the sum of covalent radii plus a fixed
//tolerance. Symbols without a tabulated radius are skipped, which makes
//the corresponding pairs non-bonded.
func DefaultCutoffs(symbols ...string) CutoffTable {
	ct := make(CutoffTable)
	for i, a := range symbols {
		ra, ok := symbolCovrad[a]
		if !ok {
			continue
		}
		for _, b := range symbols[i:] {
			rb, ok := symbolCovrad[b]
			if !ok {
				continue
			}
			ct.Set(a, b, ra+rb+bondtol)
		}
	}
	return ct
}
