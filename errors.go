/*
 * errors.go, part of strainsweep.
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
	"github.com/cockroachdb/errors"
)

//Error taxonomy of the generation engine. The first two mark bad
//configuration for a single combination, not for a whole run; the read
//error aborts only the sub-tree of the affected base structure.
var (
	//ErrUnsupportedStrainType is returned by ApplyStrain for a strain
	//type outside the four recognized ones.
	ErrUnsupportedStrainType = errors.New("unsupported strain type")

	//ErrUnknownStrategy is returned by SitePicker for a site-selection
	//strategy outside the three recognized ones.
	ErrUnknownStrategy = errors.New("unknown site-selection strategy")

	//ErrStructureRead marks a missing or malformed structure file.
	ErrStructureRead = errors.New("structure read error")
)

//Errorf builds an error with a stack trace attached.
func Errorf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}
