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
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"testing"

	"github.com/GaryBoone/GoStats/stats"
)

var testScenarios = []string{"IMAGE", "MERGE Optimistic"}

// writeCell writes per-trial values with one column per scenario.
func writeCell(t *testing.T, name string, cols [][]float64) {
	if err := os.MkdirAll(filepath.Dir(name), os.ModePerm); err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(name)
	if err != nil {
		t.Fatal(err)
	}
	w := csv.NewWriter(f)
	w.Write(testScenarios)
	for i := range cols[0] {
		line := make([]string, len(cols))
		for s := range cols {
			line[s] = strconv.FormatFloat(cols[s][i], 'g', -1, 64)
		}
		w.Write(line)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		t.Fatal(err)
	}
	f.Close()
}

func readTable(t *testing.T, name string) [][]string {
	f, err := os.Open(name)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	lines, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	return lines
}

func parse(t *testing.T, s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func different(a, b float64) bool {
	return math.Abs(a-b) > 1e-9*math.Max(1, math.Abs(a))
}

func testValues(offset float64) [][]float64 {
	cols := make([][]float64, len(testScenarios))
	for s := range cols {
		cols[s] = make([]float64, 20)
		for i := range cols[s] {
			cols[s][i] = offset + float64(s*100+i*i)
		}
	}
	return cols
}

func TestMake(t *testing.T) {
	dir := t.TempDir()
	c := &Config{
		Dir:   dir,
		Gas:   "CO2",
		PRTP:  []float64{0.015, 0.03},
		ETA:   []float64{0},
		Years: []int{2020, 2030},
	}
	vals := make(map[string][][]float64)
	for _, y := range c.Years {
		for i, p := range c.PRTP {
			cols := testValues(float64(y) + float64(i))
			name := CellFile(y, p, 0)
			vals[name] = cols
			writeCell(t, filepath.Join(dir, SCCDir("CO2"), name), cols)
		}
	}
	if err := Make(c); err != nil {
		t.Fatal(err)
	}

	t.Run("stderror", func(t *testing.T) {
		lines := readTable(t, filepath.Join(dir, "stderror.csv"))
		want := []string{"year", "prtp", "eta", "scenario", "n", "mean", "stderror"}
		if !reflect.DeepEqual(lines[0], want) {
			t.Fatalf("header: %v != %v", lines[0], want)
		}
		if len(lines) != 1+2*2*(len(testScenarios)+1) {
			t.Fatalf("wrong number of rows: %d", len(lines))
		}
		for _, l := range lines[1:] {
			year, _ := strconv.Atoi(l[0])
			cols := vals[CellFile(year, parse(t, l[1]), 0)]
			var x []float64
			if l[3] == PooledScenario {
				for _, col := range cols {
					x = append(x, col...)
				}
			} else {
				for s, name := range testScenarios {
					if name == l[3] {
						x = cols[s]
					}
				}
			}
			if n, _ := strconv.Atoi(l[4]); n != len(x) {
				t.Errorf("%v: n = %d, want %d", l, n, len(x))
			}
			mean := stats.StatsMean(x)
			se := stats.StatsSampleStandardDeviation(x) / math.Sqrt(float64(len(x)))
			if different(parse(t, l[5]), mean) {
				t.Errorf("%v: mean should be %g", l, mean)
			}
			if different(parse(t, l[6]), se) {
				t.Errorf("%v: stderror should be %g", l, se)
			}
		}
	})

	t.Run("percentiles", func(t *testing.T) {
		lines := readTable(t, filepath.Join(dir, "percentiles.csv"))
		want := []string{"year", "prtp", "eta", "scenario", "0.01", "0.05", "0.1", "0.25", "0.5", "0.75", "0.9", "0.95", "0.99"}
		if !reflect.DeepEqual(lines[0], want) {
			t.Fatalf("header: %v != %v", lines[0], want)
		}
		for _, l := range lines[1:] {
			for i := 5; i < len(l); i++ {
				if parse(t, l[i]) < parse(t, l[i-1]) {
					t.Errorf("%v: percentiles should not decrease", l)
				}
			}
		}
	})

	t.Run("summary", func(t *testing.T) {
		lines := readTable(t, filepath.Join(dir, "summary.csv"))
		want := []string{"year", "mean_0.015", "p95_0.015", "mean_0.03", "p95_0.03"}
		if !reflect.DeepEqual(lines[0], want) {
			t.Fatalf("header: %v != %v", lines[0], want)
		}
		if len(lines) != 3 {
			t.Fatalf("wrong number of rows: %d", len(lines))
		}
		cols := vals[CellFile(2030, 0.03, 0)]
		mean := stats.StatsMean(append(append([]float64{}, cols[0]...), cols[1]...))
		if different(parse(t, lines[2][3]), mean) {
			t.Errorf("pooled mean: %s != %g", lines[2][3], mean)
		}
	})

	if _, err := os.Stat(filepath.Join(dir, "tables.xlsx")); err != nil {
		t.Errorf("workbook: %v", err)
	}
}

func TestMakeNoSummary(t *testing.T) {
	dir := t.TempDir()
	c := &Config{
		Dir:      dir,
		Gas:      "CH4",
		PRTP:     []float64{0.02},
		ETA:      []float64{1.5},
		Years:    []int{2020},
		Domestic: true,
	}
	writeCell(t, filepath.Join(dir, SCCDir("CH4"), CellFile(2020, 0.02, 1.5)), testValues(0))
	writeCell(t, filepath.Join(dir, SCCDir("CH4"), DomesticDir, CellFile(2020, 0.02, 1.5)), testValues(-10))
	if err := Make(c); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"summary.csv", "domestic_summary.csv"} {
		if _, err := os.Stat(filepath.Join(dir, name)); !os.IsNotExist(err) {
			t.Errorf("%s should not exist when eta is not [0]", name)
		}
	}
	for _, name := range []string{"percentiles.csv", "stderror.csv", "domestic_percentiles.csv", "domestic_stderror.csv"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
}

func TestMakeDropDiscontinuities(t *testing.T) {
	dir := t.TempDir()
	c := &Config{
		Dir:                 dir,
		Gas:                 "CO2",
		PRTP:                []float64{0.03},
		ETA:                 []float64{0},
		Years:               []int{2020},
		DropDiscontinuities: true,
	}
	cols := [][]float64{{1, 2, 1000, 3}, {4, 5, 6, 2000}}
	writeCell(t, filepath.Join(dir, SCCDir("CO2"), CellFile(2020, 0.03, 0)), cols)
	writeCell(t, filepath.Join(dir, MismatchDir, MismatchFile(2020, 0.03)), [][]float64{{0, 0, 1, 0}, {0, 0, 0, 1}})
	if err := Make(c); err != nil {
		t.Fatal(err)
	}
	lines := readTable(t, filepath.Join(dir, "stderror.csv"))
	want := map[string][]string{
		"IMAGE":            {"3", "2"},
		"MERGE Optimistic": {"3", "5"},
		PooledScenario:     {"6", "3.5"},
	}
	for _, l := range lines[1:] {
		w, ok := want[l[3]]
		if !ok {
			t.Fatalf("unexpected scenario %s", l[3])
		}
		if got := l[4:6]; !reflect.DeepEqual(got, w) {
			t.Errorf("%s: n, mean = %v; want %v", l[3], got, w)
		}
	}
}

func TestQuantiles(t *testing.T) {
	x := []float64{5, 1, 4, 2, 3}
	got := quantiles([]float64{0.2, 0.5, 1}, x)
	want := []float64{1, 3, 5}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("%v != %v", got, want)
	}
	if !reflect.DeepEqual(x, []float64{5, 1, 4, 2, 3}) {
		t.Error("input was modified")
	}
	for _, v := range quantiles([]float64{0.5}, nil) {
		if !math.IsNaN(v) {
			t.Errorf("empty input should give NaN, got %g", v)
		}
	}
}

func TestCellFile(t *testing.T) {
	type test struct {
		year      int
		prtp, eta float64
		want      string
	}
	for _, tt := range []test{
		{2020, 0.03, 0, "2020_0.03_0.csv"},
		{2050, 0.015, 1.45, "2050_0.015_1.45.csv"},
	} {
		t.Run(tt.want, func(t *testing.T) {
			if got := CellFile(tt.year, tt.prtp, tt.eta); got != tt.want {
				t.Errorf("%s != %s", got, tt.want)
			}
		})
	}
	if got, want := MismatchFile(2020, 0.025), "2020_0.025.csv"; got != want {
		t.Errorf("%s != %s", got, want)
	}
	if got := fmt.Sprint(SCCDir("N2O")); got != "SC-N2O" {
		t.Errorf("SCCDir: %s", got)
	}
}
