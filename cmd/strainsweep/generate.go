/*
 * generate.go, part of strainsweep.
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

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/molnets/strainsweep"
	"github.com/molnets/strainsweep/sweep"
)

//dopantConfig mirrors one dopant entry of the YAML run configuration.
type dopantConfig struct {
	Element       string  `mapstructure:"element"`
	Concentration float64 `mapstructure:"concentration"`
}

//cutoffConfig is one per-pair bonding cutoff override.
type cutoffConfig struct {
	A      string  `mapstructure:"a"`
	B      string  `mapstructure:"b"`
	Cutoff float64 `mapstructure:"cutoff"`
}

//runConfig is the YAML shape of a full sweep declaration.
type runConfig struct {
	Structures   []string         `mapstructure:"structures"`
	StrainType   string           `mapstructure:"strain_type"`
	Strains      []float64        `mapstructure:"strains"`
	BaseElement  string           `mapstructure:"base_element"`
	Strategy     string           `mapstructure:"strategy"`
	Replicas     int              `mapstructure:"replicas"`
	Dopants      []dopantConfig   `mapstructure:"dopants"`
	Mixed        [][]dopantConfig `mapstructure:"mixed"`
	Cutoffs      []cutoffConfig   `mapstructure:"cutoffs"`
	OutDir       string           `mapstructure:"out_dir"`
	LedgerJSON   string           `mapstructure:"ledger_json"`
	LedgerSQLite string           `mapstructure:"ledger_sqlite"`
}

var flagConfigFile string

//defaultMixed is the co-doping series generated when the configuration
//declares no mixed key of its own: the B/N grid plus the ternary B/N/P
//configuration the systematic datasets were built from. An explicit
//"mixed: []" disables mixed doping entirely.
var defaultMixed = []any{
	[]map[string]any{
		{"element": "B", "concentration": 0.025},
		{"element": "N", "concentration": 0.025},
	},
	[]map[string]any{
		{"element": "B", "concentration": 0.05},
		{"element": "N", "concentration": 0.025},
	},
	[]map[string]any{
		{"element": "B", "concentration": 0.025},
		{"element": "N", "concentration": 0.05},
	},
	[]map[string]any{
		{"element": "B", "concentration": 0.017},
		{"element": "N", "concentration": 0.017},
		{"element": "P", "concentration": 0.016},
	},
}

//loadRunConfig reads and validates a sweep declaration, filling in the
//defaults for everything the file leaves out.
func loadRunConfig(path string) (runConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("strain_type", string(strainsweep.Biaxial))
	v.SetDefault("base_element", "C")
	v.SetDefault("strategy", string(strainsweep.Random))
	v.SetDefault("replicas", 1)
	v.SetDefault("out_dir", "strain_doped_structures")
	v.SetDefault("mixed", defaultMixed)
	var rc runConfig
	if err := v.ReadInConfig(); err != nil {
		return rc, err
	}
	if err := v.Unmarshal(&rc); err != nil {
		return rc, err
	}
	if len(rc.Structures) == 0 {
		return rc, fmt.Errorf("config declares no base structures")
	}
	if len(rc.Strains) == 0 {
		return rc, fmt.Errorf("config declares no strain values")
	}
	return rc, nil
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the full strain x doping parameter sweep",
	RunE: func(cmd *cobra.Command, args []string) error {
		rc, err := loadRunConfig(flagConfigFile)
		if err != nil {
			return err
		}

		log, err := newLogger()
		if err != nil {
			return err
		}
		defer log.Sync() //nolint:errcheck

		cfg := sweep.Config{
			Bases:        rc.Structures,
			StrainType:   strainsweep.StrainType(rc.StrainType),
			Strains:      rc.Strains,
			Singles:      toDopants(rc.Dopants),
			Replicas:     rc.Replicas,
			Strategy:     strainsweep.Strategy(rc.Strategy),
			BaseElement:  rc.BaseElement,
			OutDir:       rc.OutDir,
			LedgerJSON:   rc.LedgerJSON,
			LedgerSQLite: rc.LedgerSQLite,
		}
		for _, m := range rc.Mixed {
			cfg.Mixed = append(cfg.Mixed, strainsweep.Mixed(toDopants(m)))
		}
		if len(rc.Cutoffs) > 0 {
			ct := make(strainsweep.CutoffTable)
			for _, c := range rc.Cutoffs {
				ct.Set(c.A, c.B, c.Cutoff)
			}
			cfg.Cutoffs = ct
		}

		report, ledger, err := sweep.New(cfg, log).Run()
		if err != nil {
			return err
		}
		printSummary(report, ledger)
		return writeReport(filepath.Join(cfg.OutDir, "report.json"), report)
	},
}

//writeReport stores the run accounting next to the structures, so a
//dataset directory documents not only what is in it but also what was
//attempted and skipped.
func writeReport(name string, report *sweep.Report) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func init() {
	generateCmd.Flags().StringVarP(&flagConfigFile, "config", "c", "sweep.yaml", "run configuration file")
}

func toDopants(dc []dopantConfig) []strainsweep.Dopant {
	ret := make([]strainsweep.Dopant, len(dc))
	for i, d := range dc {
		ret[i] = strainsweep.Dopant{Element: d.Element, Concentration: d.Concentration}
	}
	return ret
}

//printSummary renders the end-of-run accounting: attempted vs generated
//combinations, per-parameter breakdowns and every skipped combination
//with its reason.
func printSummary(report *sweep.Report, ledger *sweep.Ledger) {
	pterm.DefaultSection.Println("Generation run " + ledger.RunID)
	stats := pterm.TableData{
		{"Attempted", fmt.Sprintf("%d", report.Attempted)},
		{"Generated", fmt.Sprintf("%d", report.Generated)},
		{"Skipped", fmt.Sprintf("%d", len(report.Skipped))},
	}
	_ = pterm.DefaultTable.WithData(stats).Render()

	if len(report.ByBase) > 0 {
		pterm.DefaultSection.Println("By base structure")
		data := pterm.TableData{{"Base", "Structures"}}
		for _, k := range sortedKeys(report.ByBase) {
			data = append(data, []string{k, fmt.Sprintf("%d", report.ByBase[k])})
		}
		_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	}
	if len(report.ByDoping) > 0 {
		pterm.DefaultSection.Println("By doping kind")
		data := pterm.TableData{{"Kind", "Structures"}}
		for _, k := range sortedKeys(report.ByDoping) {
			data = append(data, []string{k, fmt.Sprintf("%d", report.ByDoping[k])})
		}
		_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	}
	if len(report.Skipped) > 0 {
		pterm.DefaultSection.Println("Skipped combinations")
		for _, s := range report.Skipped {
			pterm.Warning.Printfln("%s: %s", s.ID, s.Reason)
		}
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
