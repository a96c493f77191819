/*
 * doc.go, part of strainsweep.
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

//Package strainsweep generates derived atomic structures for strained,
//heteroatom-doped two-dimensional molecular networks. It applies linear
//strain transforms to a structure's cell and positions, selects
//substitution sites under several policies (seeded-random, evenly
//spaced, or clustered over a distance-derived bonding graph) and
//rewrites element symbols at the selected sites, supporting sequential
//multi-species doping without site collisions. All transforms are pure:
//they return new structures and never mutate their input, and all
//randomness is driven by explicit seeds derived from the generating
//parameters, so any structure in a sweep can be regenerated exactly.
//
//The sweep subpackage enumerates the full cross-product of base
//structures, strain values and doping configurations, writing one
//extended-XYZ file plus one metadata-ledger record per combination.
package strainsweep
