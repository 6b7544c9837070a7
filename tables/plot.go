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
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

const (
	figWidth  = 7 * vg.Inch
	figHeight = 4 * vg.Inch
)

// plots holds the pooled trial values for each
// (prtp, eta, year) combination.
type plots struct {
	values [][][]plotter.Values
}

func newPlots(nprtp, neta, nyears int) *plots {
	p := &plots{values: make([][][]plotter.Values, nprtp)}
	for i := range p.values {
		p.values[i] = make([][]plotter.Values, neta)
		for j := range p.values[i] {
			p.values[i][j] = make([]plotter.Values, nyears)
		}
	}
	return p
}

func (p *plots) set(prtp, eta, year int, v []float64) {
	p.values[prtp][eta][year] = plotter.Values(v)
}

// save creates a box plot of the distribution in each year for every
// discounting configuration.
func (p *plots) save(dir, prefix string, prtp, eta []float64, years []int) error {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return fmt.Errorf("tables: creating plot directory: %v", err)
	}
	labels := make([]string, len(years))
	for i, y := range years {
		labels[i] = strconv.Itoa(y)
	}
	for i, pr := range prtp {
		for j, e := range eta {
			pl := plot.New()
			pl.Title.Text = fmt.Sprintf("%s, prtp = %s, eta = %s", prefix, formatFloat(pr), formatFloat(e))
			pl.Y.Label.Text = "$ per tonne"
			pl.X.Label.Text = "Perturbation year"
			for k, v := range p.values[i][j] {
				if len(v) == 0 {
					continue
				}
				b, err := plotter.NewBoxPlot(vg.Points(20), float64(k), v)
				if err != nil {
					return fmt.Errorf("tables: making box plot: %v", err)
				}
				pl.Add(b)
			}
			pl.NominalX(labels...)
			name := filepath.Join(dir, fmt.Sprintf("%s_%s_%s.png", prefix, formatFloat(pr), formatFloat(e)))
			if err := pl.Save(figWidth, figHeight, name); err != nil {
				return fmt.Errorf("tables: saving plot: %v", err)
			}
		}
	}
	return nil
}
