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
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/spatialmodel/scc/iam"
	"github.com/spatialmodel/scc/tables"
)

// testYears are native years of each model.
var testYears = map[ModelChoice][]int{
	DICE: {2015, 2025},
	FUND: {2020, 2030},
	PAGE: {2020, 2030},
}

var testNow = time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)

func testOptions(t *testing.T, model ModelChoice) *Options {
	log, _ := test.NewNullLogger()
	return &Options{
		Gas:               CO2,
		Trials:            2,
		PerturbationYears: testYears[model],
		PRTP:              []float64{0.03},
		ETA:               []float64{0, 1.5},
		OutputDir:         filepath.Join(t.TempDir(), "out"),
		Seed:              1,
		Workers:           2,
		Log:               log,
	}
}

func TestRunSCC(t *testing.T) {
	ctx := context.Background()
	for _, model := range []ModelChoice{DICE, FUND, PAGE} {
		for _, gas := range iam.Gases {
			t.Run(model.String()+"_"+string(gas), func(t *testing.T) {
				opts := testOptions(t, model)
				opts.Gas = gas
				opts.Domestic = true
				p, err := runSCC(ctx, model, opts, testNow)
				if err != nil {
					t.Fatal(err)
				}
				want := []int{2, 2, len(iam.Scenarios), 1, 2}
				if got := p.SCC.Shape(); !reflect.DeepEqual(got, want) {
					t.Errorf("shape %v != %v", got, want)
				}
				if got := p.DomesticSCC.Shape(); !reflect.DeepEqual(got, want) {
					t.Errorf("domestic shape %v != %v", got, want)
				}
				for i, v := range p.SCC.Data {
					if math.IsNaN(v) || math.IsInf(v, 0) {
						t.Fatalf("value %d is %g", i, v)
					}
					if gas == CO2 && v <= 0 {
						t.Fatalf("value %d is %g; the SCC should be positive", i, v)
					}
				}
				if (p.Mismatch != nil) != (model == PAGE) {
					t.Errorf("mismatch tensor: %v", p.Mismatch != nil)
				}
				if _, err := os.Stat(filepath.Join(opts.OutputDir, "SC-"+string(gas)+".nc")); err != nil {
					t.Error(err)
				}
			})
		}
	}
}

func TestRunSCCInvalidGas(t *testing.T) {
	opts := testOptions(t, DICE)
	opts.Gas = "SF6"
	err := RunSCC(context.Background(), DICE, *opts)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("want ErrInvalidArgument, got %v", err)
	}
	if _, err := os.Stat(opts.OutputDir); !os.IsNotExist(err) {
		t.Error("output directory should not be created")
	}
}

func TestRunSCCOutOfRange(t *testing.T) {
	opts := testOptions(t, DICE)
	opts.PerturbationYears = []int{1990}
	err := RunSCC(context.Background(), DICE, *opts)
	if !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("want ErrOutOfRange, got %v", err)
	}
	opts = testOptions(t, PAGE)
	opts.PerturbationYears = []int{2020, 2301}
	err = RunSCC(context.Background(), PAGE, *opts)
	if !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("want ErrOutOfRange, got %v", err)
	}
}

func TestRunSCCInvalidDiscounting(t *testing.T) {
	type test struct {
		name      string
		rates     []float64
		prtp, eta []float64
	}
	for _, tt := range []test{
		{name: "empty prtp", prtp: []float64{}, eta: []float64{0}},
		{name: "empty eta", prtp: []float64{0.03}, eta: []float64{}},
		{name: "prtp -1", prtp: []float64{-1}, eta: []float64{0}},
		{name: "deprecated rate -1", rates: []float64{0.03, -1}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			opts := testOptions(t, FUND)
			opts.DiscountRates, opts.PRTP, opts.ETA = tt.rates, tt.prtp, tt.eta
			err := RunSCC(context.Background(), FUND, *opts)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("want ErrInvalidArgument, got %v", err)
			}
			if _, err := os.Stat(opts.OutputDir); !os.IsNotExist(err) {
				t.Error("output directory should not be created")
			}
		})
	}
}

func TestRunSCCEmptyDiscountRates(t *testing.T) {
	opts := testOptions(t, FUND)
	opts.DiscountRates = []float64{}
	p, err := runSCC(context.Background(), FUND, opts, testNow)
	if err != nil {
		t.Fatal(err)
	}
	want := DiscountConfig{PRTP: []float64{0.03}, ETA: []float64{0, 1.5}}
	if !reflect.DeepEqual(p.Discount, want) {
		t.Errorf("discounting %+v != %+v", p.Discount, want)
	}
}

func TestRunSCCTrials(t *testing.T) {
	opts := testOptions(t, FUND)
	opts.Trials = 0
	if err := RunSCC(context.Background(), FUND, *opts); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("want ErrInvalidArgument, got %v", err)
	}
}

func TestRunSCCDefaultGas(t *testing.T) {
	opts := testOptions(t, DICE)
	opts.Gas = ""
	log, hook := test.NewNullLogger()
	opts.Log = log
	p, err := runSCC(context.Background(), DICE, opts, testNow)
	if err != nil {
		t.Fatal(err)
	}
	if p.Gas != CO2 {
		t.Errorf("gas should default to CO2, got %s", p.Gas)
	}
	if len(hook.Entries) == 0 {
		t.Error("missing gas should be warned about")
	}
}

func TestRunSCCInterpolation(t *testing.T) {
	ctx := context.Background()
	native := testOptions(t, DICE)
	pn, err := runSCC(ctx, DICE, native, testNow)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(pn.Years, native.PerturbationYears) {
		t.Errorf("native years should be calculated directly: %v", pn.Years)
	}

	between := testOptions(t, DICE)
	between.PerturbationYears = []int{2020}
	pb, err := runSCC(ctx, DICE, between, testNow)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(pb.Years, []int{2020}) {
		t.Errorf("years: %v", pb.Years)
	}
	for i := 0; i < 2; i++ {
		for s := range iam.Scenarios {
			for e := 0; e < 2; e++ {
				want := (pn.SCC.At(i, 0, s, 0, e) + pn.SCC.At(i, 1, s, 0, e)) / 2
				got := pb.SCC.At(i, 0, s, 0, e)
				if math.Abs(got-want) > 1e-9*math.Abs(want) {
					t.Errorf("trial %d scenario %d eta %d: %g != %g", i, s, e, got, want)
				}
			}
		}
	}
}

func TestRunSCCDeprecatedDiscounting(t *testing.T) {
	ctx := context.Background()
	ramsey := testOptions(t, FUND)
	ramsey.ETA = []float64{0}
	pr, err := runSCC(ctx, FUND, ramsey, testNow)
	if err != nil {
		t.Fatal(err)
	}
	deprecated := testOptions(t, FUND)
	deprecated.DiscountRates = []float64{0.03}
	deprecated.PRTP, deprecated.ETA = nil, nil
	pd, err := runSCC(ctx, FUND, deprecated, testNow)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(pr.SCC.Data, pd.SCC.Data) {
		t.Error("constant discount rates should be the same as prtp with eta = 0")
	}
}

func TestRunSCCDeterministic(t *testing.T) {
	ctx := context.Background()
	a := testOptions(t, PAGE)
	pa, err := runSCC(ctx, PAGE, a, testNow)
	if err != nil {
		t.Fatal(err)
	}
	b := testOptions(t, PAGE)
	b.Workers = 1
	pb, err := runSCC(ctx, PAGE, b, testNow)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(pa.SCC.Data, pb.SCC.Data) {
		t.Error("results should not depend on the number of workers")
	}
	if pa.RunID != pb.RunID {
		t.Errorf("run IDs %s and %s should be the same", pa.RunID, pb.RunID)
	}
}

func TestRunSCCDICEDomestic(t *testing.T) {
	opts := testOptions(t, DICE)
	opts.Domestic = true
	p, err := runSCC(context.Background(), DICE, opts, testNow)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range p.SCC.Data {
		if p.DomesticSCC.Data[i] != diceDomesticShare*v {
			t.Fatalf("value %d: domestic %g is not %g times %g", i, p.DomesticSCC.Data[i], diceDomesticShare, v)
		}
	}
}

func TestRunSCCFiles(t *testing.T) {
	opts := testOptions(t, PAGE)
	opts.Domestic = true
	opts.SaveTrials = true
	opts.Tables = true
	opts.DropDiscontinuities = true
	opts.ETA = []float64{0}
	if _, err := runSCC(context.Background(), PAGE, opts, testNow); err != nil {
		t.Fatal(err)
	}
	dir := opts.OutputDir
	for _, name := range []string{
		"config.toml",
		"trials.csv",
		"SC-CO2.nc",
		filepath.Join("SC-CO2", tables.CellFile(2020, 0.03, 0)),
		filepath.Join("SC-CO2", tables.DomesticDir, tables.CellFile(2030, 0.03, 0)),
		filepath.Join(tables.MismatchDir, tables.MismatchFile(2030, 0.03)),
		"percentiles.csv",
		"stderror.csv",
		"summary.csv",
		"domestic_summary.csv",
		"tables.xlsx",
	} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Error(err)
		}
	}

	var m manifest
	if _, err := toml.DecodeFile(filepath.Join(dir, "config.toml"), &m); err != nil {
		t.Fatal(err)
	}
	if m.RunID == "" || m.RunID != runID(PAGE, opts) {
		t.Errorf("run ID %q", m.RunID)
	}
	if m.Model != "PAGE" || m.Version != Version {
		t.Errorf("manifest: %+v", m)
	}
	if m.Options.Trials != 2 || !reflect.DeepEqual(m.Options.PerturbationYears, []int{2020, 2030}) {
		t.Errorf("manifest options: %+v", m.Options)
	}
}

func TestRunSCCBlob(t *testing.T) {
	dir := t.TempDir()
	opts := testOptions(t, FUND)
	opts.OutputDir = "file://" + filepath.ToSlash(dir)
	if _, err := runSCC(context.Background(), FUND, opts, testNow); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"config.toml", "SC-CO2.nc", filepath.Join("SC-CO2", tables.CellFile(2030, 0.03, 1.5))} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Error(err)
		}
	}
}

func TestOutputDir(t *testing.T) {
	want := filepath.Join("output", "SC-CH4_MCS_FUND_100_2020-01-02_03-04-05")
	if got := defaultOutputDir(FUND, CH4, 100, testNow); got != want {
		t.Errorf("%s != %s", got, want)
	}

	dir := filepath.Join(t.TempDir(), "output", "run")
	var got []string
	for i := 0; i < 3; i++ {
		d, err := createOutputDir(dir, true)
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, d)
	}
	if want := []string{dir, dir + "-1", dir + "-2"}; !reflect.DeepEqual(got, want) {
		t.Errorf("%v != %v", got, want)
	}
	d, err := createOutputDir(dir, false)
	if err != nil {
		t.Fatal(err)
	}
	if d != dir {
		t.Errorf("an explicit directory should be reused: %s", d)
	}
}

func TestComputeSCC(t *testing.T) {
	ctx := context.Background()
	log, _ := test.NewNullLogger()
	opts := ComputeOptions{Gas: CO2, Scenario: iam.MESSAGE, PRTP: 0.03, Log: log}
	var v [3]float64
	for i, y := range []int{2015, 2020, 2025} {
		opts.Year = y
		var err error
		v[i], err = ComputeSCC(ctx, DICE, opts)
		if err != nil {
			t.Fatal(err)
		}
	}
	if v[0] <= 0 || v[2] <= 0 {
		t.Errorf("SCC should be positive: %v", v)
	}
	if want := (v[0] + v[2]) / 2; math.Abs(v[1]-want) > 1e-9*want {
		t.Errorf("interpolated value %g != %g", v[1], want)
	}

	opts.Year = 2500
	if _, err := ComputeSCC(ctx, DICE, opts); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("want ErrOutOfRange, got %v", err)
	}
	opts.Year = 2020
	opts.Gas = "SF6"
	if _, err := ComputeSCC(ctx, DICE, opts); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("want ErrInvalidArgument, got %v", err)
	}
	opts.Gas = CO2
	opts.PRTP = -1
	if _, err := ComputeSCC(ctx, DICE, opts); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("want ErrInvalidArgument, got %v", err)
	}
}

func TestComputeSCCHorizon(t *testing.T) {
	ctx := context.Background()
	log, _ := test.NewNullLogger()
	opts := ComputeOptions{Gas: CO2, Scenario: iam.IMAGE, Year: 2020, PRTP: 0.03, Log: log}
	for _, h := range []int{2000, 2019, 2301, 3000} {
		opts.Horizon = h
		if _, err := ComputeSCC(ctx, FUND, opts); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("horizon %d: want ErrOutOfRange, got %v", h, err)
		}
	}
	opts.Horizon = 2100
	short, err := ComputeSCC(ctx, FUND, opts)
	if err != nil {
		t.Fatal(err)
	}
	opts.Horizon = 0
	full, err := ComputeSCC(ctx, FUND, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !(short > 0 && short < full) {
		t.Errorf("SCC with horizon 2100 (%g) should be positive and less than with the default horizon (%g)", short, full)
	}
}

func TestMakeTables(t *testing.T) {
	opts := testOptions(t, PAGE)
	opts.ETA = []float64{0}
	if _, err := runSCC(context.Background(), PAGE, opts, testNow); err != nil {
		t.Fatal(err)
	}
	log, _ := test.NewNullLogger()
	if err := MakeTables(context.Background(), opts.OutputDir, true, false, log); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"percentiles.csv", "stderror.csv", "summary.csv", "tables.xlsx"} {
		if _, err := os.Stat(filepath.Join(opts.OutputDir, name)); err != nil {
			t.Error(err)
		}
	}
	if err := MakeTables(context.Background(), t.TempDir(), false, false, log); err == nil {
		t.Error("a directory without results should give an error")
	}
}

func TestMakeTablesBlob(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	opts := testOptions(t, FUND)
	opts.OutputDir = "file://" + filepath.ToSlash(dir)
	if _, err := runSCC(ctx, FUND, opts, testNow); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "percentiles.csv")); !os.IsNotExist(err) {
		t.Fatal("tables should not be created unless requested")
	}
	log, _ := test.NewNullLogger()
	if err := MakeTables(ctx, opts.OutputDir, false, false, log); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"percentiles.csv", "stderror.csv", "tables.xlsx"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Error(err)
		}
	}
}

func TestRunSCCPAGEInterpolatedMismatch(t *testing.T) {
	opts := testOptions(t, PAGE)
	opts.Trials = 4
	opts.PerturbationYears = []int{2015, 2025}
	p, err := runSCC(context.Background(), PAGE, opts, testNow)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(p.Years, opts.PerturbationYears) {
		t.Errorf("years %v", p.Years)
	}
	for _, year := range opts.PerturbationYears {
		for _, prtp := range opts.PRTP {
			lines := readCSV(t, filepath.Join(opts.OutputDir, tables.MismatchDir, tables.MismatchFile(year, prtp)))
			if len(lines) != opts.Trials+1 {
				t.Fatalf("%d %g: %d lines", year, prtp, len(lines))
			}
			for _, l := range lines[1:] {
				for _, v := range l {
					if v != "0" && v != "1" {
						t.Errorf("%d %g: mismatch flag %q is not 0 or 1", year, prtp, v)
					}
				}
			}
		}
	}
	if _, err := os.Stat(filepath.Join(opts.OutputDir, tables.MismatchDir, tables.MismatchFile(2020, 0.03))); !os.IsNotExist(err) {
		t.Error("only the requested years should be written")
	}
}

func TestRunSCCUniqueDirs(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)

	var dirs []string
	for i := 0; i < 2; i++ {
		opts := testOptions(t, DICE)
		opts.OutputDir = ""
		if _, err := runSCC(context.Background(), DICE, opts, testNow); err != nil {
			t.Fatal(err)
		}
		dirs = append(dirs, opts.OutputDir)
	}
	if dirs[0] == dirs[1] {
		t.Fatalf("both runs wrote to %s", dirs[0])
	}
	for _, d := range dirs {
		if _, err := os.Stat(filepath.Join(d, "config.toml")); err != nil {
			t.Error(err)
		}
	}
}
