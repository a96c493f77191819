/*
 * strain_test.go, part of strainsweep.
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
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestIdentityStrain(t *testing.T) {
	S := carbonGrid(t, 3, 4, 1.42)
	for _, st := range []StrainType{Biaxial, UniaxialX, UniaxialY, Shear} {
		out, err := ApplyStrain(S, st, 0.0)
		require.NoError(t, err)
		require.True(t, mat.Equal(S.Coords, out.Coords), "%s: zero strain must keep positions bit-identical", st)
		require.True(t, mat.Equal(S.Cell, out.Cell), "%s: zero strain must keep the cell bit-identical", st)
		require.Equal(t, S.Len(), out.Len())
	}
}

func TestBiaxialLinearity(t *testing.T) {
	S := carbonGrid(t, 3, 4, 1.42)
	const m = 5.0
	factor := 1.0 + m/100.0
	out, err := ApplyStrain(S, Biaxial, m)
	require.NoError(t, err)
	for i := 0; i < S.Len(); i++ {
		x, y, z := S.Coord(i)
		ox, oy, oz := out.Coord(i)
		require.InDelta(t, x*factor, ox, 1e-12)
		require.InDelta(t, y*factor, oy, 1e-12)
		require.Equal(t, z, oz, "out-of-plane component must be untouched")
	}
	require.InDelta(t, S.Cell.At(0, 0)*factor, out.Cell.At(0, 0), 1e-12)
	require.InDelta(t, S.Cell.At(1, 1)*factor, out.Cell.At(1, 1), 1e-12)
	require.Equal(t, S.Cell.At(2, 2), out.Cell.At(2, 2))
}

func TestUniaxialAndShear(t *testing.T) {
	S := carbonGrid(t, 2, 2, 1.5)
	outX, err := ApplyStrain(S, UniaxialX, -2.0)
	require.NoError(t, err)
	x, y, _ := S.Coord(3)
	ox, oy, _ := outX.Coord(3)
	require.InDelta(t, x*0.98, ox, 1e-12)
	require.Equal(t, y, oy, "uniaxial-x must not touch y")

	outS, err := ApplyStrain(S, Shear, 10.0)
	require.NoError(t, err)
	//right-multiplying by a shear with T[0,1]=0.1 adds 0.1*x to y
	sx, sy, _ := outS.Coord(3)
	require.Equal(t, x, sx, "shear with only T[0,1] set must keep x")
	require.InDelta(t, y+0.1*x, sy, 1e-12)
}

func TestUnsupportedStrainType(t *testing.T) {
	S := carbonGrid(t, 2, 2, 1.5)
	_, err := ApplyStrain(S, StrainType("torsional"), 1.0)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrUnsupportedStrainType))
}

func TestStrainDoesNotMutateInput(t *testing.T) {
	S := carbonGrid(t, 3, 3, 1.42)
	before := mat.DenseCopyOf(S.Coords)
	beforeCell := mat.DenseCopyOf(S.Cell)
	_, err := ApplyStrain(S, Biaxial, 3.5)
	require.NoError(t, err)
	require.True(t, mat.Equal(before, S.Coords))
	require.True(t, mat.Equal(beforeCell, S.Cell))
}

func TestStrainRejectsNonFiniteMagnitude(t *testing.T) {
	S := carbonGrid(t, 2, 2, 1.5)
	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := ApplyStrain(S, Biaxial, bad)
		require.Error(t, err)
	}
}
