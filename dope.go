/*
 * dope.go, part of strainsweep.
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
	"math"
)

//Dopant is one substitution species: the element written into the
//structure and the fraction of eligible sites it should occupy.
//Concentration is a fraction in (0,1], not a percentage.
type Dopant struct {
	Element       string
	Concentration float64
}

//DopingSpec is the tagged variant consumed by the doping engine. The
//two concrete forms are Single and Mixed; the engine switches
//exhaustively on them.
type DopingSpec interface {
	//Species returns the ordered substitution list. Order is priority:
	//earlier species draw their sites first.
	Species() []Dopant
	//Kind is "single" or "mixed", for ledger records.
	Kind() string
}

//Single is a one-species doping spec.
type Single Dopant

func (s Single) Species() []Dopant { return []Dopant{Dopant(s)} }
func (s Single) Kind() string      { return "single" }

//Mixed is an ordered multi-species doping spec. Sites are drawn for the
//first species before the second; later species never reuse sites
//already consumed.
type Mixed []Dopant

func (m Mixed) Species() []Dopant { return []Dopant(m) }
func (m Mixed) Kind() string      { return "mixed" }

//Substitution reports what one species actually got: the number of
//sites requested after rounding, the sites written, and whether the
//request was clamped because the pool ran short.
type Substitution struct {
	Element   string
	Requested int
	Indices   []int
	Clamped   bool
}

//Doper rewrites element symbols at selected sites of a structure. Base
//is the element being substituted away (the backbone atom, usually
//carbon); Strategy and Graph configure the underlying site picker.
type Doper struct {
	Base     string
	Strategy Strategy
	//Graph is the bonding adjacency of the structure being doped.
	//Required only for the Clustered strategy.
	Graph *BondGraph
}

//targetCount is the number of sites a species claims from a pool of the
//given size: at least one, and round rather than truncate. A consumed
//pool yields zero. clamped reports that the nominal request could not be
//met by the pool.
func targetCount(poolSize int, concentration float64) (n int, clamped bool) {
	if poolSize == 0 {
		return 0, true
	}
	n = int(math.Round(float64(poolSize) * concentration))
	if n < 1 {
		n = 1
	}
	if n > poolSize {
		return poolSize, true
	}
	return n, false
}

//Apply returns a doped copy of S. For every species of the spec, in
//order, it computes the target count against the still-unused eligible
//pool, picks sites with the given seed (folded with the species position
//for mixed specs) and rewrites the element symbols. The input structure
//is never modified; the output has the same atoms in the same order with
//only symbols changed. No site is ever written twice within one call.
func (D *Doper) Apply(S *Structure, spec DopingSpec, seed int64) (*Structure, []Substitution, error) {
	ret := S.Copy()
	used := make(map[int]struct{})
	species := spec.Species()
	subs := make([]Substitution, 0, len(species))
	for seq, sp := range species {
		pool := 0
		for _, i := range ret.ElementIndices(D.Base) {
			if _, ok := used[i]; !ok {
				pool++
			}
		}
		want, clamped := targetCount(pool, sp.Concentration)
		sseed := seed
		if len(species) > 1 {
			sseed = foldSeed(seed, seq)
		}
		picker := &SitePicker{
			Strategy: D.Strategy,
			Seed:     sseed,
			Graph:    D.Graph,
			Exclude:  used,
		}
		picked, err := picker.Pick(ret, D.Base, want)
		if err != nil {
			return nil, nil, err
		}
		for _, i := range picked {
			if _, collision := used[i]; collision {
				//an invariant violation, not a recoverable condition
				panic("doping site collision")
			}
			ret.Atoms[i].Symbol = sp.Element
			used[i] = struct{}{}
		}
		subs = append(subs, Substitution{
			Element:   sp.Element,
			Requested: want,
			Indices:   picked,
			Clamped:   clamped || len(picked) < want,
		})
	}
	return ret, subs, nil
}
