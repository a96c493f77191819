/*
 * ledger_test.go, part of strainsweep.
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

package sweep

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func sampleRecord() Record {
	return Record{
		Base:       "g1",
		StrainType: "biaxial",
		Strain:     2.5,
		Doping:     "single",
		Dopants: []DopantRecord{
			{Element: "B", Concentration: 0.05, Substituted: 3},
		},
		Strategy:    "uniform-random",
		ConfigIndex: 1,
		Seed:        42,
		File:        "out/g1_strain_p2p5_B0p05_uniform-random_r1.xyz",
	}
}

func TestLedgerAppendRejectsDuplicates(t *testing.T) {
	l := NewLedger()
	require.NoError(t, l.Append("a", sampleRecord()))
	require.Error(t, l.Append("a", sampleRecord()))
	require.Equal(t, 1, l.Len())
}

func TestLedgerJSONRoundTrip(t *testing.T) {
	l := NewLedger()
	require.NoError(t, l.Append("a", sampleRecord()))
	pristine := sampleRecord()
	pristine.Doping = "pristine"
	pristine.Dopants = nil
	require.NoError(t, l.Append("b", pristine))

	name := filepath.Join(t.TempDir(), "ledger.json")
	require.NoError(t, l.FlushJSON(name))
	got, err := LoadJSON(name)
	require.NoError(t, err)
	require.Equal(t, l.RunID, got.RunID)
	require.Equal(t, l.Records, got.Records)
}

func TestLedgerZstdRoundTrip(t *testing.T) {
	l := NewLedger()
	require.NoError(t, l.Append("a", sampleRecord()))
	name := filepath.Join(t.TempDir(), "ledger.json.zst")
	require.NoError(t, l.FlushJSON(name))
	got, err := LoadJSON(name)
	require.NoError(t, err)
	require.Equal(t, l.Records, got.Records)
}

func TestLedgerSQLiteFlush(t *testing.T) {
	l := NewLedger()
	require.NoError(t, l.Append("a", sampleRecord()))
	rec := sampleRecord()
	rec.ConfigIndex = 2
	require.NoError(t, l.Append("b", rec))

	name := filepath.Join(t.TempDir(), "ledger.db")
	require.NoError(t, l.FlushSQLite(name))

	db, err := sql.Open("sqlite", name)
	require.NoError(t, err)
	defer db.Close()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM records WHERE run_id = ?`, l.RunID).Scan(&n))
	require.Equal(t, 2, n)
	var payload []byte
	require.NoError(t, db.QueryRow(`SELECT payload FROM records WHERE id = 'a'`).Scan(&payload))
	require.Contains(t, string(payload), `"base_structure":"g1"`)
}
