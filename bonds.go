/*
 * bonds.go, part of strainsweep.
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
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
)

//ElementPair is an unordered pair of element symbols, stored with the
//symbols sorted so that (C,N) and (N,C) are the same key.
type ElementPair struct {
	A, B string
}

//Pair normalizes two element symbols into an ElementPair.
func Pair(a, b string) ElementPair {
	if b < a {
		a, b = b, a
	}
	return ElementPair{A: a, B: b}
}

//CutoffTable maps an unordered element pair to the maximum distance at
//which two atoms of those elements count as bonded. Pairs absent from
//the table are non-bonded.
type CutoffTable map[ElementPair]float64

//Set registers the cutoff for an unordered element pair.
func (ct CutoffTable) Set(a, b string, cutoff float64) {
	ct[Pair(a, b)] = cutoff
}

//Get returns the cutoff for an unordered element pair, and whether the
//pair is configured at all.
func (ct CutoffTable) Get(a, b string) (float64, bool) {
	c, ok := ct[Pair(a, b)]
	return c, ok
}

//BondGraph is the distance-derived adjacency between atom indices of one
//structure. Node IDs are atom indices. It answers neighbor queries in
//O(degree); the underlying container is a gonum undirected graph.
type BondGraph struct {
	g *simple.UndirectedGraph
	n int
}

//NewBondGraph builds the bonding graph of a structure under a cutoff
//table: an edge i-j exists when the element pair of atoms i and j has a
//configured cutoff and their euclidean distance is strictly below it.
//The scan is a dense O(n^2) pairwise loop. That is fine for the
//tens-to-hundreds of atoms these networks have; a cell list would be
//needed for much larger systems.
func NewBondGraph(S *Structure, cutoffs CutoffTable) *BondGraph {
	g := simple.NewUndirectedGraph()
	n := S.Len()
	for i := 0; i < n; i++ {
		g.AddNode(simple.Node(i))
	}
	for i := 0; i < n; i++ {
		xi, yi, zi := S.Coord(i)
		for j := i + 1; j < n; j++ {
			cutoff, ok := cutoffs.Get(S.Atoms[i].Symbol, S.Atoms[j].Symbol)
			if !ok {
				continue
			}
			xj, yj, zj := S.Coord(j)
			d := math.Sqrt((xi-xj)*(xi-xj) + (yi-yj)*(yi-yj) + (zi-zj)*(zi-zj))
			if d < cutoff {
				g.SetEdge(simple.Edge{F: simple.Node(i), T: simple.Node(j)})
			}
		}
	}
	return &BondGraph{g: g, n: n}
}

//Len returns the number of atoms the graph was built over.
func (B *BondGraph) Len() int {
	return B.n
}

//HasEdge reports whether atoms i and j are bonded.
func (B *BondGraph) HasEdge(i, j int) bool {
	return B.g.HasEdgeBetween(int64(i), int64(j))
}

//Degree returns the number of bonds of atom i.
func (B *BondGraph) Degree(i int) int {
	return len(graph.NodesOf(B.g.From(int64(i))))
}

//Neighbors returns the bonded neighbors of atom i in ascending index
//order. The ordering matters: deterministic traversals are built on it.
func (B *BondGraph) Neighbors(i int) []int {
	nodes := graph.NodesOf(B.g.From(int64(i)))
	ret := make([]int, len(nodes))
	for k, nd := range nodes {
		ret[k] = int(nd.ID())
	}
	sort.Ints(ret)
	return ret
}

//NumBonds returns the total number of edges in the graph.
func (B *BondGraph) NumBonds() int {
	return len(graph.EdgesOf(B.g.Edges()))
}
