/*
 * structure.go, part of strainsweep.
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

import (
	"gonum.org/v1/gonum/mat"
)

//Atom represents one site in a periodic structure. Only the element
//symbol matters to the generation engine; the index within the parent
//structure is the site identity.
type Atom struct {
	Symbol string
}

//Structure is an ordered list of atoms with their cartesian coordinates
//and the 3x3 cell matrix of the periodic lattice (lattice vectors as rows).
//Coords has one row per atom, in the same order as Atoms. The atom order
//is significant: every derived structure produced by straining or doping
//keeps the same number of atoms in the same order.
type Structure struct {
	Atoms  []*Atom
	Coords *mat.Dense //Len() x 3
	Cell   *mat.Dense //3 x 3
}

//NewStructure builds a structure from symbols, a flat coordinate slice
//(x1,y1,z1,x2...) and a flat, row-major 3x3 cell. cell may be nil, in
//which case a zero cell is used (a molecule rather than a crystal).
func NewStructure(symbols []string, coords []float64, cell []float64) (*Structure, error) {
	if len(coords) != 3*len(symbols) {
		return nil, Errorf("structure: %d symbols but %d coordinates", len(symbols), len(coords))
	}
	atoms := make([]*Atom, len(symbols))
	for i, s := range symbols {
		atoms[i] = &Atom{Symbol: s}
	}
	if cell == nil {
		cell = make([]float64, 9)
	}
	if len(cell) != 9 {
		return nil, Errorf("structure: cell needs 9 values, got %d", len(cell))
	}
	return &Structure{
		Atoms:  atoms,
		Coords: mat.NewDense(len(symbols), 3, coords),
		Cell:   mat.NewDense(3, 3, cell),
	}, nil
}

//Len returns the number of atoms.
func (S *Structure) Len() int {
	return len(S.Atoms)
}

//Copy returns a deep copy of the structure. Transforms in this package
//never mutate their input; they work on copies obtained here.
func (S *Structure) Copy() *Structure {
	atoms := make([]*Atom, len(S.Atoms))
	for i, at := range S.Atoms {
		a := *at
		atoms[i] = &a
	}
	return &Structure{
		Atoms:  atoms,
		Coords: mat.DenseCopyOf(S.Coords),
		Cell:   mat.DenseCopyOf(S.Cell),
	}
}

//ElementIndices returns, in ascending order, the indices of all atoms
//with the given element symbol.
func (S *Structure) ElementIndices(symbol string) []int {
	ret := make([]int, 0, len(S.Atoms))
	for i, at := range S.Atoms {
		if at.Symbol == symbol {
			ret = append(ret, i)
		}
	}
	return ret
}

//Composition returns a map from element symbol to atom count.
func (S *Structure) Composition() map[string]int {
	comp := make(map[string]int)
	for _, at := range S.Atoms {
		comp[at.Symbol]++
	}
	return comp
}

//Coord returns the cartesian coordinates of atom i.
func (S *Structure) Coord(i int) (x, y, z float64) {
	return S.Coords.At(i, 0), S.Coords.At(i, 1), S.Coords.At(i, 2)
}
