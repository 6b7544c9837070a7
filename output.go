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

package scc

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ctessum/cdf"
	"github.com/spatialmodel/scc/tables"
)

// WriteResults writes the tensors in p to dir. For every year and
// discounting configuration, the per-trial values for every scenario
// are written to SC-<gas>/<year>_<prtp>_<eta>.csv, with domestic values
// in SC-<gas>/domestic and discontinuity mismatches in
// discontinuity_mismatch/<year>_<prtp>.csv. All tensors are also
// written to SC-<gas>.nc.
func WriteResults(dir string, p *Payload) error {
	gas := string(p.Gas)
	scenarios := scenarioNames()
	sccDir := filepath.Join(dir, tables.SCCDir(gas))
	if err := writeTensorCSV(sccDir, p.SCC, p, scenarios); err != nil {
		return err
	}
	if p.DomesticSCC != nil {
		if err := writeTensorCSV(filepath.Join(sccDir, tables.DomesticDir), p.DomesticSCC, p, scenarios); err != nil {
			return err
		}
	}
	if p.Mismatch != nil {
		if err := writeMismatchCSV(filepath.Join(dir, tables.MismatchDir), p, scenarios); err != nil {
			return err
		}
	}
	return writeNetCDF(filepath.Join(dir, fmt.Sprintf("SC-%s.nc", gas)), p)
}

func writeTensorCSV(dir string, t *Tensor, p *Payload, scenarios []string) error {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return fmt.Errorf("scc: creating results directory: %v", err)
	}
	ntrials, _, nscen, _, _ := t.Dims()
	row := make([]string, nscen)
	for yi, year := range p.Years {
		for i, prtp := range p.Discount.PRTP {
			for j, eta := range p.Discount.ETA {
				name := filepath.Join(dir, tables.CellFile(year, prtp, eta))
				err := writeCSV(name, scenarios, ntrials, func(trial int) []string {
					for s := range row {
						row[s] = strconv.FormatFloat(t.At(trial, yi, s, i, j), 'g', -1, 64)
					}
					return row
				})
				if err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func writeMismatchCSV(dir string, p *Payload, scenarios []string) error {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return fmt.Errorf("scc: creating results directory: %v", err)
	}
	ntrials, _, nscen, _ := p.Mismatch.Dims()
	row := make([]string, nscen)
	for yi, year := range p.Years {
		for i, prtp := range p.Discount.PRTP {
			name := filepath.Join(dir, tables.MismatchFile(year, prtp))
			err := writeCSV(name, scenarios, ntrials, func(trial int) []string {
				for s := range row {
					row[s] = "0"
					if p.Mismatch.At(trial, yi, s, i) {
						row[s] = "1"
					}
				}
				return row
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// writeCSV writes a CSV file with the given header and n rows.
func writeCSV(name string, header []string, n int, row func(i int) []string) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("scc: writing results: %v", err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return fmt.Errorf("scc: writing %s: %v", name, err)
	}
	for i := 0; i < n; i++ {
		if err := w.Write(row(i)); err != nil {
			f.Close()
			return fmt.Errorf("scc: writing %s: %v", name, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("scc: writing %s: %v", name, err)
	}
	return f.Close()
}

// writeNetCDF writes the tensors in p to a netCDF file.
func writeNetCDF(name string, p *Payload) error {
	ntrials, nyears, nscen, nprtp, neta := p.SCC.Dims()
	h := cdf.NewHeader(
		[]string{"trial", "year", "scenario", "prtp", "eta"},
		[]int{ntrials, nyears, nscen, nprtp, neta},
	)
	h.AddAttribute("", "gas", string(p.Gas))
	h.AddAttribute("", "version", Version)
	if p.RunID != "" {
		h.AddAttribute("", "run_id", p.RunID)
	}
	h.AddAttribute("", "scenarios", strings.Join(scenarioNames(), ", "))

	h.AddVariable("year", []string{"year"}, []int32{0})
	h.AddAttribute("year", "description", "Perturbation year")
	h.AddVariable("prtp", []string{"prtp"}, []float64{0})
	h.AddAttribute("prtp", "description", "Pure rate of time preference")
	h.AddVariable("eta", []string{"eta"}, []float64{0})
	h.AddAttribute("eta", "description", "Elasticity of marginal utility of consumption")

	dims5 := []string{"trial", "year", "scenario", "prtp", "eta"}
	h.AddVariable("scc", dims5, []float64{0})
	h.AddAttribute("scc", "description", fmt.Sprintf("Social cost of %s", p.Gas))
	h.AddAttribute("scc", "units", "$ per tonne")
	if p.DomesticSCC != nil {
		h.AddVariable("domestic_scc", dims5, []float64{0})
		h.AddAttribute("domestic_scc", "description", fmt.Sprintf("Domestic social cost of %s", p.Gas))
		h.AddAttribute("domestic_scc", "units", "$ per tonne")
	}
	if p.Mismatch != nil {
		h.AddVariable("discontinuity_mismatch", []string{"trial", "year", "scenario", "prtp"}, []uint8{0})
		h.AddAttribute("discontinuity_mismatch", "description",
			"1 where the base and marginal runs triggered the damage discontinuity in different timesteps")
	}
	h.Define()
	for _, err := range h.Check() {
		return fmt.Errorf("scc: creating netCDF file: %v", err)
	}

	ff, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("scc: creating netCDF file: %v", err)
	}
	f, err := cdf.Create(ff, h)
	if err != nil {
		ff.Close()
		return fmt.Errorf("scc: creating netCDF file: %v", err)
	}

	years := make([]int32, len(p.Years))
	for i, y := range p.Years {
		years[i] = int32(y)
	}
	data := map[string]interface{}{
		"year": years,
		"prtp": p.Discount.PRTP,
		"eta":  p.Discount.ETA,
		"scc":  p.SCC.Data,
	}
	if p.DomesticSCC != nil {
		data["domestic_scc"] = p.DomesticSCC.Data
	}
	if p.Mismatch != nil {
		m := make([]uint8, len(p.Mismatch.Data))
		for i, v := range p.Mismatch.Data {
			if v {
				m[i] = 1
			}
		}
		data["discontinuity_mismatch"] = m
	}
	for _, v := range h.Variables() {
		end := h.Lengths(v)
		w := f.Writer(v, make([]int, len(end)), end)
		if _, err := w.Write(data[v]); err != nil {
			ff.Close()
			return fmt.Errorf("scc: writing variable %s to netCDF file: %v", v, err)
		}
	}
	return ff.Close()
}
