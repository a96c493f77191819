/*
 * sweep.go, part of strainsweep.
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

//Package sweep enumerates the cross-product of base structures, strain
//values and doping configurations, emitting one structure file and one
//metadata record per combination. Per-combination failures are logged
//and skipped; an unreadable base structure skips only its own sub-tree.
package sweep

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/molnets/strainsweep"
)

//Config declares the parameter space of one generation run.
type Config struct {
	//Bases are paths to the reference structure files.
	Bases []string
	//StrainType applies to every combination; the systematic datasets
	//of the study are biaxial.
	StrainType strainsweep.StrainType
	//Strains are signed percentages.
	Strains []float64
	//Singles and Mixed are the doping configurations. Either may be
	//empty; a run with both empty produces only pristine strained
	//variants.
	Singles []strainsweep.Dopant
	Mixed   []strainsweep.Mixed
	//Replicas is the number of distinct configurations generated per
	//doped combination. Each replica gets its own derived seed.
	Replicas int
	//Strategy is the site-selection policy for all doped combinations.
	Strategy strainsweep.Strategy
	//BaseElement is the backbone element being substituted away.
	BaseElement string
	//Cutoffs configures the bonding graph for the clustered strategy.
	//Nil means default covalent-radii cutoffs over the base element and
	//all dopant species.
	Cutoffs strainsweep.CutoffTable
	//OutDir receives the structure files and, by default, the ledger.
	OutDir string
	//LedgerJSON and LedgerSQLite are flushed once after the enumeration
	//finishes. An empty LedgerJSON defaults to OutDir/ledger.json; an
	//empty LedgerSQLite skips the SQLite flush.
	LedgerJSON   string
	LedgerSQLite string
}

func (c *Config) withDefaults() Config {
	out := *c
	if out.StrainType == "" {
		out.StrainType = strainsweep.Biaxial
	}
	if out.Replicas < 1 {
		out.Replicas = 1
	}
	if out.Strategy == "" {
		out.Strategy = strainsweep.Random
	}
	if out.BaseElement == "" {
		out.BaseElement = "C"
	}
	if out.LedgerJSON == "" {
		out.LedgerJSON = filepath.Join(out.OutDir, "ledger.json")
	}
	return out
}

//combosPerBase is how many outputs one readable base structure yields.
func (c *Config) combosPerBase() int {
	perStrain := 1 + (len(c.Singles)+len(c.Mixed))*c.Replicas
	return len(c.Strains) * perStrain
}

//Skip records one combination that produced no output, with the reason.
type Skip struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

//Report is the end-of-run accounting: attempted vs generated
//combinations, the skipped ones with reasons, and per-parameter
//breakdowns of what was generated.
type Report struct {
	Attempted int            `json:"attempted"`
	Generated int            `json:"generated"`
	Skipped   []Skip         `json:"skipped,omitempty"`
	ByBase    map[string]int `json:"by_base"`
	//ByStrain is keyed by the %g rendering of the strain percentage, so
	//the report serializes cleanly.
	ByStrain map[string]int `json:"by_strain"`
	ByDoping map[string]int `json:"by_doping"`
}

func newReport() *Report {
	return &Report{
		ByBase:   make(map[string]int),
		ByStrain: make(map[string]int),
		ByDoping: make(map[string]int),
	}
}

func (r *Report) generated(base string, strain float64, doping string) {
	r.Generated++
	r.ByBase[base]++
	r.ByStrain[fmt.Sprintf("%g", strain)]++
	r.ByDoping[doping]++
}

func (r *Report) skip(id, reason string) {
	r.Skipped = append(r.Skipped, Skip{ID: id, Reason: reason})
}

//Generator drives a generation run. It is a single-pass batch driver:
//build one, call Run once, keep the report and the ledger.
type Generator struct {
	cfg Config
	log *zap.SugaredLogger
}

//New returns a generator for the given configuration. A nil logger
//disables logging.
func New(cfg Config, log *zap.SugaredLogger) *Generator {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Generator{cfg: cfg.withDefaults(), log: log}
}

//encNum encodes a signed number for use in an output identifier, in the
//dataset's historical style: 5.0 becomes p5, -2.5 becomes m2p5,
//0.05 becomes p0p05.
var encNum = strings.NewReplacer(".", "p", "-", "m", "+", "p")

func enc(v float64) string {
	return encNum.Replace(fmt.Sprintf("%+g", v))
}

func mixedLabel(m strainsweep.Mixed) string {
	parts := make([]string, len(m))
	for i, d := range m {
		parts[i] = d.Element + enc(d.Concentration)
	}
	return strings.Join(parts, "_")
}

//Run enumerates the whole parameter space. For each base structure and
//strain value it emits the pristine strained variant, then every single
//doping configuration times the replica count, then every mixed
//configuration times the replica count. The ledger is flushed once at
//the very end; the set of ledger entries matches exactly the set of
//files successfully written.
func (G *Generator) Run() (*Report, *Ledger, error) {
	cfg := G.cfg
	report := newReport()
	ledger := NewLedger()
	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return nil, nil, err
	}
	G.log.Infow("starting generation run",
		"run_id", ledger.RunID,
		"bases", len(cfg.Bases),
		"strains", len(cfg.Strains),
		"singles", len(cfg.Singles),
		"mixed", len(cfg.Mixed),
		"replicas", cfg.Replicas,
		"strategy", cfg.Strategy,
	)
	for _, path := range cfg.Bases {
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		base, err := strainsweep.XYZRead(path)
		if err != nil {
			n := cfg.combosPerBase()
			report.Attempted += n
			report.skip(name+"/*", fmt.Sprintf("base structure unreadable, %d combinations skipped: %v", n, err))
			G.log.Errorw("skipping base structure", "base", name, "path", path, "error", err)
			continue
		}
		G.log.Infow("processing base structure", "base", name, "atoms", base.Len())
		for _, strain := range cfg.Strains {
			G.runStrain(report, ledger, base, name, strain)
		}
	}
	if err := ledger.FlushJSON(cfg.LedgerJSON); err != nil {
		return report, ledger, err
	}
	if cfg.LedgerSQLite != "" {
		if err := ledger.FlushSQLite(cfg.LedgerSQLite); err != nil {
			return report, ledger, err
		}
	}
	G.log.Infow("generation run finished",
		"attempted", report.Attempted,
		"generated", report.Generated,
		"skipped", len(report.Skipped),
		"ledger", cfg.LedgerJSON,
	)
	return report, ledger, nil
}

//runStrain emits every combination under one (base, strain) pair.
func (G *Generator) runStrain(report *Report, ledger *Ledger, base *strainsweep.Structure, name string, strain float64) {
	cfg := G.cfg
	strained, err := strainsweep.ApplyStrain(base, cfg.StrainType, strain)
	if err != nil {
		n := 1 + (len(cfg.Singles)+len(cfg.Mixed))*cfg.Replicas
		report.Attempted += n
		id := fmt.Sprintf("%s_strain_%s/*", name, enc(strain))
		report.skip(id, fmt.Sprintf("%d combinations skipped: %v", n, err))
		G.log.Errorw("strain transform failed", "base", name, "strain", strain, "error", err)
		return
	}
	var graph *strainsweep.BondGraph
	if cfg.Strategy == strainsweep.Clustered {
		cutoffs := cfg.Cutoffs
		if cutoffs == nil {
			cutoffs = strainsweep.DefaultCutoffs(G.allElements()...)
		}
		graph = strainsweep.NewBondGraph(strained, cutoffs)
	}
	doper := &strainsweep.Doper{
		Base:     cfg.BaseElement,
		Strategy: cfg.Strategy,
		Graph:    graph,
	}

	//pristine strained variant
	report.Attempted++
	id := fmt.Sprintf("%s_strain_%s_pristine", name, enc(strain))
	rec := Record{
		Base:       name,
		StrainType: string(cfg.StrainType),
		Strain:     strain,
		Doping:     "pristine",
	}
	if G.emit(report, ledger, strained, id, rec) {
		report.generated(name, strain, "pristine")
	}

	//single doping x replicas
	for _, d := range cfg.Singles {
		for r := 1; r <= cfg.Replicas; r++ {
			report.Attempted++
			seed := strainsweep.DeriveSeed(name, d.Element, d.Concentration, cfg.StrainType, strain, 0, r)
			id := fmt.Sprintf("%s_strain_%s_%s%s_%s_r%d",
				name, enc(strain), d.Element, enc(d.Concentration), cfg.Strategy, r)
			doped, subs, err := doper.Apply(strained, strainsweep.Single(d), seed)
			if err != nil {
				report.skip(id, err.Error())
				G.log.Errorw("doping failed", "id", id, "error", err)
				continue
			}
			rec := Record{
				Base:        name,
				StrainType:  string(cfg.StrainType),
				Strain:      strain,
				Doping:      "single",
				Dopants:     dopantRecords([]strainsweep.Dopant{d}, subs),
				Strategy:    string(cfg.Strategy),
				ConfigIndex: r,
				Seed:        seed,
			}
			G.warnClamped(id, subs)
			if G.emit(report, ledger, doped, id, rec) {
				report.generated(name, strain, "single")
			}
		}
	}

	//mixed doping x replicas
	for _, m := range cfg.Mixed {
		label := mixedLabel(m)
		total := 0.0
		for _, d := range m {
			total += d.Concentration
		}
		for r := 1; r <= cfg.Replicas; r++ {
			report.Attempted++
			seed := strainsweep.DeriveSeed(name, label, total, cfg.StrainType, strain, 0, r)
			id := fmt.Sprintf("%s_strain_%s_mixed_%s_%s_r%d",
				name, enc(strain), label, cfg.Strategy, r)
			doped, subs, err := doper.Apply(strained, m, seed)
			if err != nil {
				report.skip(id, err.Error())
				G.log.Errorw("mixed doping failed", "id", id, "error", err)
				continue
			}
			rec := Record{
				Base:        name,
				StrainType:  string(cfg.StrainType),
				Strain:      strain,
				Doping:      "mixed",
				Dopants:     dopantRecords(m, subs),
				Strategy:    string(cfg.Strategy),
				ConfigIndex: r,
				Seed:        seed,
			}
			G.warnClamped(id, subs)
			if G.emit(report, ledger, doped, id, rec) {
				report.generated(name, strain, "mixed")
			}
		}
	}
}

//emit writes the structure file and, only on success, appends the
//ledger record. A failed append removes the file again: the ledger and
//the directory must agree exactly.
func (G *Generator) emit(report *Report, ledger *Ledger, S *strainsweep.Structure, id string, rec Record) bool {
	file := filepath.Join(G.cfg.OutDir, id+".xyz")
	rec.File = file
	if err := strainsweep.XYZWrite(file, S); err != nil {
		report.skip(id, err.Error())
		G.log.Errorw("structure write failed", "id", id, "error", err)
		return false
	}
	if err := ledger.Append(id, rec); err != nil {
		_ = os.Remove(file)
		report.skip(id, err.Error())
		G.log.Errorw("ledger append failed", "id", id, "error", err)
		return false
	}
	G.log.Debugw("generated", "id", id)
	return true
}

func (G *Generator) warnClamped(id string, subs []strainsweep.Substitution) {
	for _, s := range subs {
		if s.Clamped {
			G.log.Warnw("insufficient eligible sites, doping clamped",
				"id", id, "element", s.Element, "requested", s.Requested, "substituted", len(s.Indices))
		}
	}
}

//allElements lists the base element plus every dopant species in the
//configuration, for deriving default bonding cutoffs.
func (G *Generator) allElements() []string {
	seen := map[string]struct{}{G.cfg.BaseElement: {}}
	ret := []string{G.cfg.BaseElement}
	add := func(el string) {
		if _, ok := seen[el]; !ok {
			seen[el] = struct{}{}
			ret = append(ret, el)
		}
	}
	for _, d := range G.cfg.Singles {
		add(d.Element)
	}
	for _, m := range G.cfg.Mixed {
		for _, d := range m {
			add(d.Element)
		}
	}
	return ret
}

func dopantRecords(spec []strainsweep.Dopant, subs []strainsweep.Substitution) []DopantRecord {
	ret := make([]DopantRecord, len(subs))
	for i, s := range subs {
		ret[i] = DopantRecord{
			Element:       s.Element,
			Concentration: spec[i].Concentration,
			Substituted:   len(s.Indices),
		}
	}
	return ret
}
