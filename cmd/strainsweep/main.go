/*
 * main.go, part of strainsweep.
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
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagJSONLogs bool
	flagVerbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "strainsweep",
	Short: "strainsweep - strain + doping dataset generator for 2D molecular networks",
	Long: `strainsweep generates systematically varied atomic structures for a
materials study of doped, strained two-dimensional molecular networks.

Given a set of reference structures it produces the cross-product of
mechanical strain states and heteroatom substitution patterns, each
output tagged in a metadata ledger for later joining against computed
properties.

Commands:
  generate - run a full parameter sweep from a YAML configuration
  inspect  - print composition, cell and bonding summary of a structure`,
	SilenceUsage: true,
}

//newLogger builds the run logger: human-readable by default, JSON when
//the output is for machines.
func newLogger() (*zap.SugaredLogger, error) {
	var cfg zap.Config
	if flagJSONLogs {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	if flagVerbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSONLogs, "json-logs", false, "emit logs as JSON")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log every generated combination")
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(inspectCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
