/*
 * qc.go, part of strainsweep.
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

//Package qc is the boundary to the external quantum-chemistry engine
//that computes properties for the generated structures. The generation
//core never depends on it; downstream dataset assembly joins the
//engine's results against the metadata ledger by output identifier.
package qc

import (
	"github.com/molnets/strainsweep"
)

//Calc holds the numeric parameters of one calculation.
type Calc struct {
	Method string //exchange-correlation functional, e.g. PBE
	Basis  string
	//Cutoff is the plane-wave cutoff in Ry.
	Cutoff       float64
	MaxSCF       int
	Charge       int
	Multiplicity int
	//Others is pasted verbatim into the input for anything not covered
	//by the fields above.
	Others string
}

//Result is what the engine reports back for one structure.
type Result struct {
	Energy      float64
	Eigenvalues []float64
	Converged   bool
}

//Handle abstracts one external engine. Implementations build an input
//deck for a structure, run the engine (waiting or not) and parse the
//report back. A Handle is good for one named calculation at a time.
type Handle interface {
	//SetName sets the job name used to derive input and output file
	//names.
	SetName(name string)
	//BuildInput writes the engine's input for the given structure and
	//parameters.
	BuildInput(S *strainsweep.Structure, C *Calc) error
	//Run starts the engine on a previously built input. With wait set
	//it blocks until the engine exits.
	Run(wait bool) error
	//Report parses the engine's output. It returns an error both when
	//the output cannot be parsed and when the calculation did not end
	//properly.
	Report() (*Result, error)
}
