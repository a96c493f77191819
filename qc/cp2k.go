/*
 * cp2k.go, part of strainsweep.
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

package qc

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/molnets/strainsweep"
)

//CP2KHandle runs CP2K on a generated structure. The property datasets
//of the study were computed with CP2K, so this is the only engine
//adapter shipped; the Handle interface keeps the door open for others.
type CP2KHandle struct {
	command   string
	inputname string
}

//NewCP2KHandle returns a handle invoking the given CP2K binary, or
//plain "cp2k" if the argument is empty.
func NewCP2KHandle(command string) *CP2KHandle {
	if command == "" {
		command = "cp2k"
	}
	return &CP2KHandle{command: command, inputname: "job"}
}

func (H *CP2KHandle) SetName(name string) {
	H.inputname = name
}

//BuildInput writes a single-point DFT input deck for the structure. The
//cell and coordinates come straight from the structure; everything else
//comes from C, with quickstep defaults where C is silent.
func (H *CP2KHandle) BuildInput(S *strainsweep.Structure, C *Calc) error {
	if C == nil {
		return errors.New("cp2k: nil calc")
	}
	method := C.Method
	if method == "" {
		method = "PBE"
	}
	basis := C.Basis
	if basis == "" {
		basis = "DZVP-MOLOPT-SR-GTH"
	}
	cutoff := C.Cutoff
	if cutoff == 0 {
		cutoff = 400
	}
	maxscf := C.MaxSCF
	if maxscf == 0 {
		maxscf = 50
	}
	f, err := os.Create(H.inputname + ".inp")
	if err != nil {
		return errors.Wrap(err, "cp2k input")
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "&GLOBAL\n  PROJECT %s\n  RUN_TYPE ENERGY\n&END GLOBAL\n", H.inputname)
	fmt.Fprintf(w, "&FORCE_EVAL\n  METHOD Quickstep\n  &DFT\n")
	fmt.Fprintf(w, "    CHARGE %d\n    MULTIPLICITY %d\n", C.Charge, C.Multiplicity)
	fmt.Fprintf(w, "    &MGRID\n      CUTOFF %g\n    &END MGRID\n", cutoff)
	fmt.Fprintf(w, "    &SCF\n      MAX_SCF %d\n    &END SCF\n", maxscf)
	fmt.Fprintf(w, "    &XC\n      &XC_FUNCTIONAL %s\n      &END XC_FUNCTIONAL\n    &END XC\n", method)
	if C.Others != "" {
		fmt.Fprintln(w, C.Others)
	}
	fmt.Fprintf(w, "  &END DFT\n  &SUBSYS\n    &CELL\n")
	c := S.Cell
	fmt.Fprintf(w, "      A %14.8f %14.8f %14.8f\n", c.At(0, 0), c.At(0, 1), c.At(0, 2))
	fmt.Fprintf(w, "      B %14.8f %14.8f %14.8f\n", c.At(1, 0), c.At(1, 1), c.At(1, 2))
	fmt.Fprintf(w, "      C %14.8f %14.8f %14.8f\n", c.At(2, 0), c.At(2, 1), c.At(2, 2))
	fmt.Fprintf(w, "    &END CELL\n    &COORD\n")
	for i := range S.Atoms {
		x, y, z := S.Coord(i)
		fmt.Fprintf(w, "      %-2s %14.8f %14.8f %14.8f\n", S.Atoms[i].Symbol, x, y, z)
	}
	fmt.Fprintf(w, "    &END COORD\n")
	for _, el := range elementsOf(S) {
		fmt.Fprintf(w, "    &KIND %s\n      BASIS_SET %s\n      POTENTIAL GTH-%s\n    &END KIND\n", el, basis, method)
	}
	fmt.Fprintf(w, "  &END SUBSYS\n&END FORCE_EVAL\n")
	return w.Flush()
}

//Run invokes CP2K on the built input. Without wait, the job is left
//running in the background with nohup, the same way the HPC submission
//scripts do it.
func (H *CP2KHandle) Run(wait bool) error {
	if wait {
		command := exec.Command(H.command, "-i", H.inputname+".inp", "-o", H.inputname+".out")
		return command.Run()
	}
	command := exec.Command("sh", "-c",
		fmt.Sprintf("nohup %s -i %s.inp -o %s.out &", H.command, H.inputname, H.inputname))
	return command.Start()
}

//Report parses total energy, SCF convergence and, when printed, the
//occupied-subspace eigenvalues from the CP2K output file.
func (H *CP2KHandle) Report() (*Result, error) {
	f, err := os.Open(H.inputname + ".out")
	if err != nil {
		return nil, errors.Wrap(err, "cp2k output")
	}
	defer f.Close()
	res := &Result{}
	var foundEnergy bool
	inEigen := false
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.Contains(line, "ENERGY| Total FORCE_EVAL"):
			fields := strings.Fields(line)
			e, perr := strconv.ParseFloat(fields[len(fields)-1], 64)
			if perr != nil {
				return nil, errors.Wrap(perr, "cp2k energy line")
			}
			res.Energy = e
			foundEnergy = true
		case strings.Contains(line, "SCF run converged"):
			res.Converged = true
		case strings.Contains(line, "Eigenvalues of the occupied subspace"):
			inEigen = true
		case inEigen:
			vals, ok := parseFloats(line)
			if ok {
				res.Eigenvalues = append(res.Eigenvalues, vals...)
			} else if !strings.Contains(line, "---") {
				//separator lines follow the header; anything else ends
				//the block
				inEigen = false
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "cp2k output")
	}
	if !foundEnergy {
		return nil, errors.New("cp2k output contains no energy")
	}
	if !res.Converged {
		return res, errors.New("probable problem in calculation: SCF did not converge")
	}
	return res, nil
}

//parseFloats parses a whitespace-separated line of floats. ok is false
//when the line is empty or holds anything non-numeric.
func parseFloats(line string) ([]float64, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, false
	}
	vals := make([]float64, len(fields))
	for i, fd := range fields {
		v, err := strconv.ParseFloat(fd, 64)
		if err != nil {
			return nil, false
		}
		vals[i] = v
	}
	return vals, true
}

func elementsOf(S *strainsweep.Structure) []string {
	seen := make(map[string]struct{})
	ret := make([]string, 0, 4)
	for _, at := range S.Atoms {
		if _, ok := seen[at.Symbol]; !ok {
			seen[at.Symbol] = struct{}{}
			ret = append(ret, at.Symbol)
		}
	}
	return ret
}
