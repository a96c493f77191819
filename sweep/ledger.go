/*
 * ledger.go, part of strainsweep.
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
	"encoding/json"
	"io"
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	_ "modernc.org/sqlite" //pure go sqlite driver
)

//DopantRecord is the per-species part of a metadata record: what was
//asked for and what actually landed in the structure.
type DopantRecord struct {
	Element       string  `json:"element"`
	Concentration float64 `json:"concentration"`
	Substituted   int     `json:"substituted"`
}

//Record ties one generated output to the full set of parameters that
//produced it. Records are created when the output file is written and
//never mutated afterwards.
type Record struct {
	Base        string         `json:"base_structure"`
	StrainType  string         `json:"strain_type"`
	Strain      float64        `json:"strain_magnitude"`
	Doping      string         `json:"doping"` //pristine, single or mixed
	Dopants     []DopantRecord `json:"dopants,omitempty"`
	Strategy    string         `json:"strategy,omitempty"`
	ConfigIndex int            `json:"config_index,omitempty"`
	Seed        int64          `json:"seed,omitempty"`
	File        string         `json:"file"`
}

//Ledger is the append-only mapping from output identifier to metadata
//record for one generation run. It lives in memory during the run and
//is flushed once, at the end, to JSON and/or SQLite. Identifiers encode
//their generating parameters, so collisions mean a driver bug.
type Ledger struct {
	RunID   string            `json:"run_id"`
	Created time.Time         `json:"created"`
	Records map[string]Record `json:"records"`

	ids []string //insertion order, for stable reports
}

//NewLedger starts an empty ledger with a fresh run identifier.
func NewLedger() *Ledger {
	return &Ledger{
		RunID:   uuid.NewString(),
		Created: time.Now().UTC(),
		Records: make(map[string]Record),
	}
}

//Append registers a record under an output identifier. Duplicate
//identifiers are rejected: a record, once written, is immutable.
func (L *Ledger) Append(id string, r Record) error {
	if _, dup := L.Records[id]; dup {
		return errors.Newf("duplicate ledger id %q", id)
	}
	L.Records[id] = r
	L.ids = append(L.ids, id)
	return nil
}

//Len returns the number of records.
func (L *Ledger) Len() int {
	return len(L.Records)
}

//IDs returns the output identifiers in insertion order.
func (L *Ledger) IDs() []string {
	ret := make([]string, len(L.ids))
	copy(ret, L.ids)
	return ret
}

//FlushJSON persists the ledger to a JSON file in one shot. A name
//ending in .zst gets zstd-compressed on the way out, the same way the
//trajectory formats this tooling grew out of compress their frames.
func (L *Ledger) FlushJSON(name string) error {
	f, err := os.Create(name)
	if err != nil {
		return errors.Wrapf(err, "ledger flush %s", name)
	}
	defer f.Close()
	var w io.Writer = f
	var zw *zstd.Encoder
	if strings.HasSuffix(name, ".zst") {
		zw, err = zstd.NewWriter(f)
		if err != nil {
			return errors.Wrapf(err, "ledger flush %s", name)
		}
		w = zw
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(L); err != nil {
		if zw != nil {
			zw.Close()
		}
		return errors.Wrapf(err, "ledger flush %s", name)
	}
	if zw != nil {
		return zw.Close()
	}
	return nil
}

//LoadJSON reads a ledger previously flushed with FlushJSON, including
//zstd-compressed ones.
func LoadJSON(name string) (*Ledger, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, errors.Wrapf(err, "ledger load %s", name)
	}
	defer f.Close()
	var r io.Reader = f
	if strings.HasSuffix(name, ".zst") {
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, errors.Wrapf(err, "ledger load %s", name)
		}
		defer zr.Close()
		r = zr
	}
	L := &Ledger{}
	if err := json.NewDecoder(r).Decode(L); err != nil {
		return nil, errors.Wrapf(err, "ledger load %s", name)
	}
	for id := range L.Records {
		L.ids = append(L.ids, id)
	}
	return L, nil
}

//FlushSQLite persists the ledger into a SQLite database so downstream
//property tables (energies, band gaps, mobilities) can be joined against
//it by output identifier. Each record goes in as a JSON payload; the
//whole flush is one transaction.
func (L *Ledger) FlushSQLite(name string) error {
	db, err := sql.Open("sqlite", name)
	if err != nil {
		return errors.Wrapf(err, "ledger sqlite %s", name)
	}
	defer db.Close()
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS records (
		id TEXT PRIMARY KEY,
		run_id TEXT NOT NULL,
		payload BLOB NOT NULL
	)`); err != nil {
		return errors.Wrapf(err, "ledger sqlite %s: create table", name)
	}
	tx, err := db.Begin()
	if err != nil {
		return errors.Wrapf(err, "ledger sqlite %s", name)
	}
	stmt, err := tx.Prepare(`INSERT INTO records (id, run_id, payload) VALUES (?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return errors.Wrapf(err, "ledger sqlite %s", name)
	}
	defer stmt.Close()
	for _, id := range L.ids {
		payload, err := json.Marshal(L.Records[id])
		if err != nil {
			_ = tx.Rollback()
			return errors.Wrapf(err, "ledger sqlite %s: record %s", name, id)
		}
		if _, err := stmt.Exec(id, L.RunID, payload); err != nil {
			_ = tx.Rollback()
			return errors.Wrapf(err, "ledger sqlite %s: record %s", name, id)
		}
	}
	return tx.Commit()
}
