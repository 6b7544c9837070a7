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
	"fmt"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/scc/cloud"
	"github.com/spatialmodel/scc/iam"
	"github.com/spatialmodel/scc/mcs"
	"github.com/spatialmodel/scc/tables"
)

// DefaultPerturbationYears are the years the SCC is calculated for
// when none are given.
var DefaultPerturbationYears = yearRange(2010, 5, 2050)

// Options holds the settings for a Monte Carlo SCC run.
type Options struct {
	// Gas is the species to calculate the social cost of.
	// It defaults to CO2.
	Gas Gas `toml:"gas"`

	// Trials is the number of Monte Carlo trials.
	Trials int `toml:"trials"`

	// PerturbationYears are the emissions years to calculate the
	// SCC for. Years that are not native model years are calculated
	// by interpolation.
	PerturbationYears []int `toml:"perturbation_years"`

	// DiscountRates are constant discount rates.
	//
	// Deprecated: use PRTP with ETA = [0] instead.
	DiscountRates []float64 `toml:"discount_rates,omitempty"`

	// PRTP and ETA are the pure rates of time preference and
	// elasticities of marginal utility to calculate the SCC for.
	PRTP []float64 `toml:"prtp"`
	ETA  []float64 `toml:"eta"`

	// Domestic specifies whether to also calculate the domestic SCC.
	Domestic bool `toml:"domestic"`

	// OutputDir is where results are written. It can be a local
	// directory or a blob storage location (gs://, s3://, or file://).
	// If empty, a new directory is created under "output".
	OutputDir string `toml:"output_dir"`

	// SaveTrials specifies whether to save the sampled parameter
	// values to trials.csv.
	SaveTrials bool `toml:"save_trials"`

	// Tables specifies whether to create summary tables.
	Tables bool `toml:"tables"`

	// DropDiscontinuities specifies whether summary tables for PAGE
	// should exclude trials where the base and marginal runs triggered
	// the damage discontinuity in different timesteps.
	DropDiscontinuities bool `toml:"drop_discontinuities"`

	// Plots specifies whether to create distribution plots
	// along with the tables.
	Plots bool `toml:"plots"`

	// Seed seeds the random number generator.
	Seed uint64 `toml:"seed"`

	// Workers is the number of trials to run in parallel.
	// It defaults to GOMAXPROCS.
	Workers int `toml:"workers"`

	Progress bool `toml:"-"`

	Log logrus.FieldLogger `toml:"-"`
}

// RunSCC calculates the social cost of a greenhouse gas for the given
// model by Monte Carlo simulation and writes the results to files
// in opts.OutputDir.
func RunSCC(ctx context.Context, model ModelChoice, opts Options) error {
	_, err := runSCC(ctx, model, &opts, time.Now())
	return err
}

// runSCC carries out RunSCC and returns the results.
func runSCC(ctx context.Context, model ModelChoice, opts *Options, now time.Time) (*Payload, error) {
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	gas, err := resolveGas(opts.Gas, log)
	if err != nil {
		return nil, err
	}
	opts.Gas = gas
	if opts.Trials < 1 {
		return nil, fmt.Errorf("%w: number of trials must be at least 1, got %d", ErrInvalidArgument, opts.Trials)
	}

	dc := NormalizeDiscounting(opts.DiscountRates, opts.PRTP, opts.ETA, log)
	opts.PRTP, opts.ETA = dc.PRTP, dc.ETA
	if err := dc.validate(); err != nil {
		return nil, err
	}

	autoDir := opts.OutputDir == ""
	if autoDir {
		opts.OutputDir = defaultOutputDir(model, gas, opts.Trials, now)
	}
	log = log.WithFields(logrus.Fields{
		"model":      model,
		"gas":        gas,
		"trials":     opts.Trials,
		"output_dir": opts.OutputDir,
	})

	adapter := adapterFor(model)
	modelYears := adapter.ModelYears()

	years := opts.PerturbationYears
	if len(years) == 0 {
		log.Warnf("scc: no perturbation years specified; using %v", DefaultPerturbationYears)
		years = DefaultPerturbationYears
	}
	opts.PerturbationYears = years
	first, last := modelYears[0], modelYears[len(modelYears)-1]
	for _, y := range years {
		if y < first || y > last {
			return nil, fmt.Errorf("%w: perturbation year %d is outside of the %s time grid [%d, %d]",
				ErrOutOfRange, y, model, first, last)
		}
	}

	id := runID(model, opts)
	log = log.WithField("run_id", id)

	calcYears := years
	interpolate := !nativeYears(modelYears, years)
	if interpolate {
		calcYears = coveringYears(modelYears, years)
		log.Infof("scc: not all perturbation years are %s model years; calculating %v and interpolating", model, calcYears)
	}

	base, marginal, err := adapter.BuildModels(gas)
	if err != nil {
		return nil, err
	}

	p := &Payload{
		RunID:      id,
		Discount:   dc,
		ModelYears: modelYears,
		Years:      calcYears,
		Horizon:    adapter.DefaultHorizon(),
		Gas:        gas,
		Domestic:   opts.Domestic,
		SCC:        NewTensor(opts.Trials, len(calcYears), len(iam.Scenarios), len(dc.PRTP), len(dc.ETA)),
	}
	if opts.Domestic {
		p.DomesticSCC = NewTensor(opts.Trials, len(calcYears), len(iam.Scenarios), len(dc.PRTP), len(dc.ETA))
	}
	if model == PAGE {
		p.Mismatch = NewMismatchTensor(opts.Trials, len(calcYears), len(iam.Scenarios), len(dc.PRTP))
	}

	uploader, err := cloud.Stage(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	dir := opts.OutputDir
	if uploader != nil {
		uploader.Log = log
		dir = uploader.Dir
	} else {
		if dir, err = createOutputDir(dir, autoDir); err != nil {
			return nil, err
		}
		opts.OutputDir = dir
	}
	log = log.WithField("output_dir", dir)
	log.Info("scc: starting Monte Carlo simulation")

	var trialsFile string
	if opts.SaveTrials {
		trialsFile = filepath.Join(dir, "trials.csv")
	}
	result, err := mcs.Execute(ctx, &mcs.Config{
		Definition:    adapter.Definition(),
		Models:        []iam.Model{base, marginal},
		Trials:        opts.Trials,
		Seed:          opts.Seed,
		Scenarios:     iam.Scenarios,
		ScenarioFunc:  adapter.ScenarioFunc(),
		PostTrialFunc: adapter.PostTrialFunc(),
		Payload:       p,
		Workers:       opts.Workers,
		TrialsFile:    trialsFile,
		Progress:      opts.Progress,
		Log:           log,
	})
	if err != nil {
		return nil, err
	}
	p = result.(*Payload)

	if interpolate {
		p.SCC = p.SCC.InterpolateYears(calcYears, years)
		if p.DomesticSCC != nil {
			p.DomesticSCC = p.DomesticSCC.InterpolateYears(calcYears, years)
		}
		if p.Mismatch != nil {
			p.Mismatch = p.Mismatch.InterpolateYears(calcYears, years)
		}
		p.Years = years
	}

	if model == DICE && p.DomesticSCC != nil {
		p.DomesticSCC = p.SCC.Scale(diceDomesticShare)
	}

	if err := WriteResults(dir, p); err != nil {
		return nil, err
	}
	if err := writeManifest(dir, model, id, opts); err != nil {
		return nil, err
	}

	if opts.Tables {
		err = tables.Make(&tables.Config{
			Dir:                 dir,
			Gas:                 string(gas),
			PRTP:                dc.PRTP,
			ETA:                 dc.ETA,
			Years:               p.Years,
			Domestic:            opts.Domestic,
			DropDiscontinuities: opts.DropDiscontinuities && p.Mismatch != nil,
			Plots:               opts.Plots,
			Log:                 log,
		})
		if err != nil {
			return nil, err
		}
	}

	if uploader != nil {
		if err := uploader.Upload(ctx); err != nil {
			return nil, err
		}
	}
	log.Info("scc: finished")
	return p, nil
}

func scenarioNames() []string {
	o := make([]string, len(iam.Scenarios))
	for i, s := range iam.Scenarios {
		o[i] = s.String()
	}
	return o
}
