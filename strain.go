/*
 * strain.go, part of strainsweep.
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

	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/mat"
)

//StrainType identifies the geometry of a mechanical deformation.
type StrainType string

const (
	Biaxial   StrainType = "biaxial"
	UniaxialX StrainType = "uniaxial-x"
	UniaxialY StrainType = "uniaxial-y"
	Shear     StrainType = "shear"
)

//StrainMatrix returns the 3x3 linear map for the given strain type and
//magnitude. The magnitude is a signed percentage, so a biaxial strain of
//+5 scales both in-plane diagonal entries by 1.05. The out-of-plane axis
//is never touched; these are 2D materials.
func StrainMatrix(t StrainType, magnitude float64) (*mat.Dense, error) {
	if math.IsNaN(magnitude) || math.IsInf(magnitude, 0) {
		return nil, Errorf("strain magnitude must be finite, got %v", magnitude)
	}
	factor := 1.0 + magnitude/100.0
	T := mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	})
	switch t {
	case Biaxial:
		T.Set(0, 0, factor)
		T.Set(1, 1, factor)
	case UniaxialX:
		T.Set(0, 0, factor)
	case UniaxialY:
		T.Set(1, 1, factor)
	case Shear:
		T.Set(0, 1, magnitude/100.0)
	default:
		return nil, errors.Wrapf(ErrUnsupportedStrainType, "%q", t)
	}
	return T, nil
}

//ApplyStrain returns a new structure with the strain transform applied
//to both the cell and every atom position, as row vectors right-multiplied
//by the transform. Cell and positions are always transformed together.
//The input structure is not modified. A magnitude of zero returns a copy
//with bit-identical coordinates: the identity transform must not
//introduce floating-point noise.
func ApplyStrain(S *Structure, t StrainType, magnitude float64) (*Structure, error) {
	T, err := StrainMatrix(t, magnitude)
	if err != nil {
		return nil, err
	}
	if magnitude == 0 {
		return S.Copy(), nil
	}
	ret := S.Copy()
	ret.Cell.Mul(S.Cell, T)
	ret.Coords.Mul(S.Coords, T)
	return ret, nil
}
