/*
 * xyz_test.go, part of strainsweep.
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
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestXYZRoundTrip(t *testing.T) {
	S := carbonGrid(t, 3, 4, 1.42)
	S.Atoms[5].Symbol = "B"
	name := filepath.Join(t.TempDir(), "grid.xyz")
	require.NoError(t, XYZWrite(name, S))
	got, err := XYZRead(name)
	require.NoError(t, err)
	require.Equal(t, S.Len(), got.Len())
	require.Equal(t, symbolsOf(S), symbolsOf(got))
	for i := 0; i < S.Len(); i++ {
		x, y, z := S.Coord(i)
		gx, gy, gz := got.Coord(i)
		require.InDelta(t, x, gx, 1e-8)
		require.InDelta(t, y, gy, 1e-8)
		require.InDelta(t, z, gz, 1e-8)
	}
	//the lattice goes through the comment line with full precision
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			require.Equal(t, S.Cell.At(i, j), got.Cell.At(i, j))
		}
	}
}

func TestXYZReadMissingFile(t *testing.T) {
	_, err := XYZRead(filepath.Join(t.TempDir(), "nope.xyz"))
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrStructureRead))
}

func TestXYZReadCountMismatch(t *testing.T) {
	name := filepath.Join(t.TempDir(), "short.xyz")
	content := "5\ncomment\nC 0 0 0\nC 1 0 0\n"
	require.NoError(t, os.WriteFile(name, []byte(content), 0o644))
	_, err := XYZRead(name)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrStructureRead))
}

func TestXYZReadMalformed(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"badcount.xyz": "two\ncomment\nC 0 0 0\n",
		"badline.xyz":  "1\ncomment\nC 0 0\n",
		"badfloat.xyz": "1\ncomment\nC a b c\n",
		"badcell.xyz":  "1\nLattice=\"1 2 3\"\nC 0 0 0\n",
	}
	for base, content := range cases {
		name := filepath.Join(dir, base)
		require.NoError(t, os.WriteFile(name, []byte(content), 0o644))
		_, err := XYZRead(name)
		require.Error(t, err, base)
		require.True(t, errors.Is(err, ErrStructureRead), base)
	}
}

func TestXYZReadNoLattice(t *testing.T) {
	//a plain XYZ file without a Lattice key reads fine with a zero cell
	name := filepath.Join(t.TempDir(), "plain.xyz")
	content := "2\nwater-ish comment\nC 0 0 0\nN 1.1 0 0\n"
	require.NoError(t, os.WriteFile(name, []byte(content), 0o644))
	S, err := XYZRead(name)
	require.NoError(t, err)
	require.Equal(t, 2, S.Len())
	require.Equal(t, 0.0, S.Cell.At(0, 0))
}
