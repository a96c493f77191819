/*
 * xyz.go, part of strainsweep.
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
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

//XYZRead reads a structure from an (extended) XYZ file: an atom count
//line, a comment line, then one "Symbol x y z" line per atom. If the
//comment line carries a Lattice="ax ay az bx by bz cx cy cz" key, the
//nine values fill the cell matrix row by row; otherwise the cell is
//zero. A missing file, a bad count line, or fewer well-formed
//coordinate lines than the declared count all yield an error wrapping
//ErrStructureRead.
func XYZRead(name string) (*Structure, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, errors.Wrapf(ErrStructureRead, "%s: %v", name, err)
	}
	defer f.Close()
	r := bufio.NewReader(f)
	line, err := r.ReadString('\n')
	if err != nil {
		return nil, errors.Wrapf(ErrStructureRead, "%s: missing atom count line", name)
	}
	natoms, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || natoms <= 0 {
		return nil, errors.Wrapf(ErrStructureRead, "%s: bad atom count %q", name, strings.TrimSpace(line))
	}
	comment, _ := r.ReadString('\n')
	cell, err := parseLattice(comment)
	if err != nil {
		return nil, errors.Wrapf(ErrStructureRead, "%s: %v", name, err)
	}
	symbols := make([]string, 0, natoms)
	coords := make([]float64, 0, 3*natoms)
	for i := 0; i < natoms; i++ {
		line, err = r.ReadString('\n')
		if err != nil && line == "" {
			return nil, errors.Wrapf(ErrStructureRead, "%s: declared %d atoms, found %d coordinate lines", name, natoms, i)
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			return nil, errors.Wrapf(ErrStructureRead, "%s: coordinate line %d ill-formed", name, i+1)
		}
		symbols = append(symbols, fields[0])
		for k := 1; k <= 3; k++ {
			v, perr := strconv.ParseFloat(fields[k], 64)
			if perr != nil {
				return nil, errors.Wrapf(ErrStructureRead, "%s: coordinate line %d: %v", name, i+1, perr)
			}
			coords = append(coords, v)
		}
	}
	return NewStructure(symbols, coords, cell)
}

//parseLattice extracts the nine cell values from an extended-XYZ
//comment line. No Lattice key means a nil (zero) cell, not an error.
func parseLattice(comment string) ([]float64, error) {
	const key = `Lattice="`
	start := strings.Index(comment, key)
	if start < 0 {
		return nil, nil
	}
	rest := comment[start+len(key):]
	end := strings.Index(rest, `"`)
	if end < 0 {
		return nil, Errorf("unterminated Lattice key")
	}
	fields := strings.Fields(rest[:end])
	if len(fields) != 9 {
		return nil, Errorf("Lattice key needs 9 values, got %d", len(fields))
	}
	cell := make([]float64, 9)
	for i, fd := range fields {
		v, err := strconv.ParseFloat(fd, 64)
		if err != nil {
			return nil, Errorf("bad Lattice value %q", fd)
		}
		cell[i] = v
	}
	return cell, nil
}

//XYZWrite writes a structure to an extended XYZ file, overwriting any
//existing file of that name. The cell goes into the comment line as a
//Lattice key so the file round-trips through XYZRead.
func XYZWrite(name string, S *Structure) error {
	out, err := os.Create(name)
	if err != nil {
		return errors.Wrapf(err, "writing %s", name)
	}
	defer out.Close()
	w := bufio.NewWriter(out)
	fmt.Fprintf(w, "%d\n", S.Len())
	c := S.Cell
	fmt.Fprintf(w, `Lattice="%g %g %g %g %g %g %g %g %g" Properties=species:S:1:pos:R:3`+"\n",
		c.At(0, 0), c.At(0, 1), c.At(0, 2),
		c.At(1, 0), c.At(1, 1), c.At(1, 2),
		c.At(2, 0), c.At(2, 1), c.At(2, 2))
	for i := range S.Atoms {
		x, y, z := S.Coord(i)
		if _, err = fmt.Fprintf(w, "%-2s  %14.8f %14.8f %14.8f\n", S.Atoms[i].Symbol, x, y, z); err != nil {
			return errors.Wrapf(err, "writing %s", name)
		}
	}
	return w.Flush()
}
