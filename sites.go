/*
 * sites.go, part of strainsweep.
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
	"fmt"
	"hash/fnv"
	"math/rand"
	"sort"

	"github.com/cockroachdb/errors"
)

//Strategy names a site-selection policy.
type Strategy string

const (
	//Random draws sites without replacement from a seeded generator.
	Random Strategy = "uniform-random"
	//Even picks every k-th eligible site in structural order.
	Even Strategy = "evenly-spaced"
	//Clustered grows a connected patch of sites over the bonding graph.
	Clustered Strategy = "clustered"
)

//DeriveSeed maps a full set of generating parameters to a PRNG seed.
//The seed is a pure function of its arguments, so two runs with the same
//parameters select the same sites. replica distinguishes otherwise
//identical configurations within one run; seqPos distinguishes the
//species of a mixed doping spec.
func DeriveSeed(structureID, element string, concentration float64, t StrainType, magnitude float64, seqPos, replica int) int64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%s|%.8f|%s|%.8f|%d|%d", structureID, element, concentration, t, magnitude, seqPos, replica)
	return int64(h.Sum64())
}

//foldSeed derives a sub-seed for the seq-th species of a mixed spec.
func foldSeed(seed int64, seq int) int64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%d|%d", seed, seq)
	return int64(h.Sum64())
}

//SitePicker selects substitution sites in a structure under one of the
//three policies. The seed is explicit: no policy ever touches
//process-wide random state, so reproducibility is structural and the
//picker is safe to use from concurrent sweeps.
type SitePicker struct {
	Strategy Strategy
	Seed     int64
	//Graph is the bonding adjacency; required by Clustered, ignored by
	//the other strategies.
	Graph *BondGraph
	//Exclude removes sites from the eligible pool, regardless of their
	//element. Used for sequential multi-species doping.
	Exclude map[int]struct{}
}

//Pick returns up to count indices of atoms with the given element
//symbol, in ascending order. When fewer than count eligible sites exist,
//the result is silently clamped; the caller decides whether the
//shortfall is worth a warning. A nil error and an empty result is a
//valid outcome for an empty pool.
func (P *SitePicker) Pick(S *Structure, element string, count int) ([]int, error) {
	eligible := make([]int, 0, S.Len())
	for _, i := range S.ElementIndices(element) {
		if _, used := P.Exclude[i]; used {
			continue
		}
		eligible = append(eligible, i)
	}
	if count > len(eligible) {
		count = len(eligible)
	}
	if count <= 0 {
		return []int{}, nil
	}
	var picked []int
	switch P.Strategy {
	case Random:
		rng := rand.New(rand.NewSource(P.Seed))
		picked = drawWithoutReplacement(rng, eligible, count)
	case Even:
		step := len(eligible) / count
		picked = make([]int, count)
		for k := 0; k < count; k++ {
			picked[k] = eligible[k*step]
		}
	case Clustered:
		if P.Graph == nil {
			return nil, Errorf("clustered strategy needs a bond graph")
		}
		picked = P.pickClustered(eligible, count)
	default:
		return nil, errors.Wrapf(ErrUnknownStrategy, "%q", P.Strategy)
	}
	sort.Ints(picked)
	return picked, nil
}

//drawWithoutReplacement takes count elements from pool using rng. The
//pool itself is left untouched.
func drawWithoutReplacement(rng *rand.Rand, pool []int, count int) []int {
	perm := rng.Perm(len(pool))
	picked := make([]int, count)
	for k := 0; k < count; k++ {
		picked[k] = pool[perm[k]]
	}
	return picked
}

//pickClustered seeds a site inside the largest connected component of
//the eligible pool and grows a breadth-first patch over the bonding
//graph, visiting only eligible neighbors. Neighbor lists come back in
//ascending index order, so the traversal is deterministic for a fixed
//seed, and starting in the largest component keeps the patch as
//connected as the pool allows. If the patch still runs out of reachable
//eligible sites before count is reached, the remainder is drawn
//uniformly from the rest of the pool with the same generator, keeping
//the whole result reproducible.
func (P *SitePicker) pickClustered(eligible []int, count int) []int {
	rng := rand.New(rand.NewSource(P.Seed))
	inPool := make(map[int]struct{}, len(eligible))
	for _, i := range eligible {
		inPool[i] = struct{}{}
	}
	comp := P.largestEligibleComponent(eligible, inPool)
	start := comp[rng.Intn(len(comp))]
	picked := make([]int, 0, count)
	visited := map[int]struct{}{start: {}}
	queue := []int{start}
	for len(queue) > 0 && len(picked) < count {
		cur := queue[0]
		queue = queue[1:]
		picked = append(picked, cur)
		for _, nb := range P.Graph.Neighbors(cur) {
			if _, ok := inPool[nb]; !ok {
				continue
			}
			if _, seen := visited[nb]; seen {
				continue
			}
			visited[nb] = struct{}{}
			queue = append(queue, nb)
		}
	}
	if len(picked) < count {
		rest := make([]int, 0, len(eligible)-len(picked))
		taken := make(map[int]struct{}, len(picked))
		for _, i := range picked {
			taken[i] = struct{}{}
		}
		for _, i := range eligible {
			if _, ok := taken[i]; !ok {
				rest = append(rest, i)
			}
		}
		picked = append(picked, drawWithoutReplacement(rng, rest, count-len(picked))...)
	}
	return picked
}

//largestEligibleComponent returns the connected component of the pool
//with the most sites. Components are discovered in ascending index
//order, so ties resolve to the one holding the lowest index.
func (P *SitePicker) largestEligibleComponent(eligible []int, inPool map[int]struct{}) []int {
	visited := make(map[int]struct{}, len(eligible))
	var best []int
	for _, s := range eligible {
		if _, done := visited[s]; done {
			continue
		}
		comp := []int{s}
		visited[s] = struct{}{}
		for k := 0; k < len(comp); k++ {
			for _, nb := range P.Graph.Neighbors(comp[k]) {
				if _, ok := inPool[nb]; !ok {
					continue
				}
				if _, done := visited[nb]; done {
					continue
				}
				visited[nb] = struct{}{}
				comp = append(comp, nb)
			}
		}
		if len(comp) > len(best) {
			best = comp
		}
	}
	return best
}
