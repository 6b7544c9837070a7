/*
Copyright © 2026 the scc authors.
This file is part of scc, a social cost of greenhouse gases calculator.

scc is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

scc is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with scc.  If not, see <http://www.gnu.org/licenses/>.
*/

package tables

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// Names of the result subdirectories.
const (
	DomesticDir = "domestic"
	MismatchDir = "discontinuity_mismatch"
)

// SCCDir returns the name of the directory that holds the
// per-trial results for gas.
func SCCDir(gas string) string { return "SC-" + gas }

// CellFile returns the name of the file holding the per-trial results
// for the given perturbation year and discounting configuration.
func CellFile(year int, prtp, eta float64) string {
	return fmt.Sprintf("%d_%s_%s.csv", year, formatFloat(prtp), formatFloat(eta))
}

// MismatchFile returns the name of the file holding the discontinuity
// mismatch flags for the given perturbation year and prtp.
func MismatchFile(year int, prtp float64) string {
	return fmt.Sprintf("%d_%s.csv", year, formatFloat(prtp))
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// readColumns reads a CSV file with a header row and returns the
// header and the values in each column.
func readColumns(name string) ([]string, [][]float64, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, nil, fmt.Errorf("tables: %v", err)
	}
	defer f.Close()
	lines, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("tables: reading %s: %v", name, err)
	}
	if len(lines) == 0 {
		return nil, nil, fmt.Errorf("tables: %s is empty", name)
	}
	header := lines[0]
	cols := make([][]float64, len(header))
	for i := range cols {
		cols[i] = make([]float64, len(lines)-1)
	}
	for j, line := range lines[1:] {
		for i, s := range line {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("tables: reading %s line %d: %v", name, j+2, err)
			}
			cols[i][j] = v
		}
	}
	return header, cols, nil
}
