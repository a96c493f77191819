/*
 * inspect.go, part of strainsweep.
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
	"sort"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/molnets/strainsweep"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <structure.xyz>",
	Short: "Print composition, cell and bonding summary of a structure",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		S, err := strainsweep.XYZRead(args[0])
		if err != nil {
			return err
		}
		comp := S.Composition()
		elements := make([]string, 0, len(comp))
		for el := range comp {
			elements = append(elements, el)
		}
		sort.Strings(elements)
		graph := strainsweep.NewBondGraph(S, strainsweep.DefaultCutoffs(elements...))

		pterm.DefaultSection.Println(args[0])
		data := pterm.TableData{{"Element", "Count"}}
		for _, el := range elements {
			data = append(data, []string{el, fmt.Sprintf("%d", comp[el])})
		}
		_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
		fmt.Printf("atoms: %d   bonds: %d\n", S.Len(), graph.NumBonds())
		c := S.Cell
		for i := 0; i < 3; i++ {
			fmt.Printf("cell[%d]: %12.6f %12.6f %12.6f\n", i, c.At(i, 0), c.At(i, 1), c.At(i, 2))
		}
		return nil
	},
}
