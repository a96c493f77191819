/*
 * dope_test.go, part of strainsweep.
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
	"testing"

	"github.com/stretchr/testify/require"
)

func countSymbol(S *Structure, symbol string) int {
	return len(S.ElementIndices(symbol))
}

func TestSingleDopingCount(t *testing.T) {
	//60 eligible sites at 5% -> round(60*0.05) = 3 substitutions
	S := carbonGrid(t, 6, 10, 1.42)
	d := &Doper{Base: "C", Strategy: Random}
	out, subs, err := d.Apply(S, Single{Element: "B", Concentration: 0.05}, 11)
	require.NoError(t, err)
	require.Equal(t, S.Len(), out.Len())
	require.Equal(t, 3, countSymbol(out, "B"))
	require.Equal(t, 57, countSymbol(out, "C"))
	require.Len(t, subs, 1)
	require.Equal(t, 3, subs[0].Requested)
	require.False(t, subs[0].Clamped)
}

func TestSingleDopingAtLeastOneSite(t *testing.T) {
	//a tiny concentration still substitutes one atom
	S := carbonGrid(t, 2, 2, 1.42)
	d := &Doper{Base: "C", Strategy: Random}
	out, _, err := d.Apply(S, Single{Element: "N", Concentration: 0.001}, 5)
	require.NoError(t, err)
	require.Equal(t, 1, countSymbol(out, "N"))
}

func TestDopingOverfullRequestClamps(t *testing.T) {
	S := carbonGrid(t, 2, 2, 1.42)
	d := &Doper{Base: "C", Strategy: Random}
	out, subs, err := d.Apply(S, Single{Element: "P", Concentration: 1.0}, 5)
	require.NoError(t, err)
	require.Equal(t, 4, countSymbol(out, "P"))
	require.Equal(t, 0, countSymbol(out, "C"))
	require.False(t, subs[0].Clamped, "a full-pool request is satisfiable, not clamped")
}

func TestMixedDopingDisjoint(t *testing.T) {
	//60 sites: B at 3% -> 2, then N at 2% of the remaining 58 -> 1
	S := carbonGrid(t, 6, 10, 1.42)
	d := &Doper{Base: "C", Strategy: Random}
	spec := Mixed{
		{Element: "B", Concentration: 0.03},
		{Element: "N", Concentration: 0.02},
	}
	out, subs, err := d.Apply(S, spec, 99)
	require.NoError(t, err)
	require.Equal(t, 2, countSymbol(out, "B"))
	require.Equal(t, 1, countSymbol(out, "N"))
	require.Equal(t, 57, countSymbol(out, "C"))
	require.Len(t, subs, 2)
	//no index may carry two dopants
	seen := make(map[int]struct{})
	for _, sub := range subs {
		for _, i := range sub.Indices {
			_, dup := seen[i]
			require.False(t, dup, "site %d assigned twice", i)
			seen[i] = struct{}{}
		}
	}
	require.Len(t, seen, 3)
}

func TestMixedDopingExhaustedPool(t *testing.T) {
	//first species takes everything; the second gets nothing and is
	//reported clamped rather than failing
	S := carbonGrid(t, 2, 2, 1.42)
	d := &Doper{Base: "C", Strategy: Random}
	spec := Mixed{
		{Element: "B", Concentration: 1.0},
		{Element: "N", Concentration: 0.5},
	}
	out, subs, err := d.Apply(S, spec, 7)
	require.NoError(t, err)
	require.Equal(t, 4, countSymbol(out, "B"))
	require.Equal(t, 0, countSymbol(out, "N"))
	require.Len(t, subs, 2)
	require.Empty(t, subs[1].Indices)
	require.True(t, subs[1].Clamped)
}

func TestDopingDoesNotMutateInput(t *testing.T) {
	S := carbonGrid(t, 3, 3, 1.42)
	before := symbolsOf(S)
	d := &Doper{Base: "C", Strategy: Random}
	_, _, err := d.Apply(S, Single{Element: "B", Concentration: 0.5}, 2)
	require.NoError(t, err)
	require.Equal(t, before, symbolsOf(S))
}

func TestDopingIsReproducible(t *testing.T) {
	S := carbonGrid(t, 6, 10, 1.42)
	d := &Doper{Base: "C", Strategy: Random}
	spec := Mixed{
		{Element: "B", Concentration: 0.05},
		{Element: "N", Concentration: 0.05},
	}
	a, _, err := d.Apply(S, spec, 123)
	require.NoError(t, err)
	b, _, err := d.Apply(S, spec, 123)
	require.NoError(t, err)
	require.Equal(t, symbolsOf(a), symbolsOf(b))
}

func TestDopingPropagatesPickerErrors(t *testing.T) {
	S := carbonGrid(t, 3, 3, 1.42)
	d := &Doper{Base: "C", Strategy: Strategy("bogus")}
	_, _, err := d.Apply(S, Single{Element: "B", Concentration: 0.1}, 1)
	require.Error(t, err)
}
