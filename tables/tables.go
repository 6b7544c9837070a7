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

// Package tables summarizes the per-trial results of a Monte Carlo
// social cost of carbon run into percentile, standard error, and
// summary tables.
package tables

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
)

// PooledScenario is the scenario label for statistics calculated
// across all scenarios together.
const PooledScenario = "All"

// Config specifies which results to summarize.
type Config struct {
	// Dir is the output directory of the run. Tables are written
	// directly into it.
	Dir string

	Gas string

	PRTP, ETA []float64
	Years     []int

	// Domestic specifies whether to also summarize the domestic results.
	Domestic bool

	// DropDiscontinuities specifies whether to exclude trials flagged
	// in the discontinuity_mismatch directory.
	DropDiscontinuities bool

	// Plots specifies whether to create box plots of the results.
	Plots bool

	// Quantiles are the quantiles in the percentile tables.
	// They default to DefaultQuantiles.
	Quantiles []float64

	Log logrus.FieldLogger
}

// Make creates percentile and standard error tables for the results
// described by c, and a summary table if ETA is the single value 0.
// The tables are written as CSV files and as sheets of tables.xlsx.
func Make(c *Config) error {
	log := c.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	q := c.Quantiles
	if q == nil {
		q = DefaultQuantiles
	}
	summary := len(c.ETA) == 1 && c.ETA[0] == 0
	if !summary {
		log.Info("tables: eta is not [0]; skipping summary table")
	}

	sets := []struct{ prefix, dir string }{{"", filepath.Join(c.Dir, SCCDir(c.Gas))}}
	if c.Domestic {
		sets = append(sets, struct{ prefix, dir string }{"domestic_", filepath.Join(c.Dir, SCCDir(c.Gas), DomesticDir)})
	}

	var all []*table
	for _, set := range sets {
		pct := &table{name: set.prefix + "percentiles", header: []string{"year", "prtp", "eta", "scenario"}}
		for _, qq := range q {
			pct.header = append(pct.header, formatFloat(qq))
		}
		se := &table{
			name:   set.prefix + "stderror",
			header: []string{"year", "prtp", "eta", "scenario", "n", "mean", "stderror"},
		}
		var sum *mat.Dense
		if summary {
			sum = mat.NewDense(len(c.Years), 2*len(c.PRTP), nil)
		}
		var pl *plots
		if c.Plots {
			pl = newPlots(len(c.PRTP), len(c.ETA), len(c.Years))
		}

		for yi, year := range c.Years {
			for i, prtp := range c.PRTP {
				for j, eta := range c.ETA {
					scenarios, cols, err := c.cell(set.dir, year, prtp, eta)
					if err != nil {
						return err
					}
					var pooled []float64
					for _, col := range cols {
						pooled = append(pooled, col...)
					}
					scenarios = append(scenarios, PooledScenario)
					cols = append(cols, pooled)
					for s, col := range cols {
						row := []interface{}{year, prtp, eta, scenarios[s]}
						for _, v := range quantiles(q, col) {
							row = append(row, v)
						}
						pct.rows = append(pct.rows, row)
						mean, stderr := meanStdErr(col)
						se.rows = append(se.rows, []interface{}{year, prtp, eta, scenarios[s], len(col), mean, stderr})
					}
					if sum != nil {
						mean, _ := meanStdErr(pooled)
						sum.Set(yi, 2*i, mean)
						sum.Set(yi, 2*i+1, quantiles([]float64{0.95}, pooled)[0])
					}
					if pl != nil {
						pl.set(i, j, yi, pooled)
					}
				}
			}
		}
		all = append(all, pct, se)
		if sum != nil {
			all = append(all, summaryTable(set.prefix+"summary", c.Years, c.PRTP, sum))
		}
		if pl != nil {
			if err := pl.save(filepath.Join(c.Dir, "plots"), set.prefix+SCCDir(c.Gas), c.PRTP, c.ETA, c.Years); err != nil {
				return err
			}
		}
	}

	for _, t := range all {
		if err := t.writeCSV(filepath.Join(c.Dir, t.name+".csv")); err != nil {
			return err
		}
	}
	if err := writeWorkbook(filepath.Join(c.Dir, "tables.xlsx"), all); err != nil {
		return err
	}
	log.WithField("dir", c.Dir).Info("tables: finished")
	return nil
}

// cell returns the scenario names and per-scenario trial values for
// one year and discounting configuration, excluding flagged trials if
// requested.
func (c *Config) cell(dir string, year int, prtp, eta float64) ([]string, [][]float64, error) {
	scenarios, cols, err := readColumns(filepath.Join(dir, CellFile(year, prtp, eta)))
	if err != nil {
		return nil, nil, err
	}
	if !c.DropDiscontinuities {
		return scenarios, cols, nil
	}
	_, flags, err := readColumns(filepath.Join(c.Dir, MismatchDir, MismatchFile(year, prtp)))
	if err != nil {
		return nil, nil, err
	}
	if len(flags) != len(cols) {
		return nil, nil, fmt.Errorf("tables: year %d prtp %g: %d scenarios in mismatch file but %d in results",
			year, prtp, len(flags), len(cols))
	}
	for s, col := range cols {
		var kept []float64
		for k, v := range col {
			if flags[s][k] == 0 {
				kept = append(kept, v)
			}
		}
		cols[s] = kept
	}
	return scenarios, cols, nil
}

// summaryTable returns a table with one row per year and the pooled
// mean and 95th percentile for each prtp in the columns.
func summaryTable(name string, years []int, prtp []float64, sum *mat.Dense) *table {
	t := &table{name: name, header: []string{"year"}}
	for _, p := range prtp {
		t.header = append(t.header, "mean_"+formatFloat(p), "p95_"+formatFloat(p))
	}
	r, cols := sum.Dims()
	for i := 0; i < r; i++ {
		row := []interface{}{years[i]}
		for j := 0; j < cols; j++ {
			row = append(row, sum.At(i, j))
		}
		t.rows = append(t.rows, row)
	}
	return t
}

// table is a table of results, where each value is an int,
// a float64, or a string.
type table struct {
	name   string
	header []string
	rows   [][]interface{}
}

func (t *table) writeCSV(name string) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("tables: %v", err)
	}
	w := csv.NewWriter(f)
	w.Write(t.header)
	line := make([]string, len(t.header))
	for _, row := range t.rows {
		for i, v := range row {
			line[i] = formatValue(v)
		}
		w.Write(line)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("tables: writing %s: %v", name, err)
	}
	return f.Close()
}

func formatValue(v interface{}) string {
	switch vv := v.(type) {
	case float64:
		return strconv.FormatFloat(vv, 'g', -1, 64)
	case int:
		return strconv.Itoa(vv)
	default:
		return fmt.Sprint(v)
	}
}
