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

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/scc/iam"
	"github.com/spatialmodel/scc/mcs"
)

// ComputeOptions holds the settings for a deterministic SCC calculation.
type ComputeOptions struct {
	// Gas defaults to CO2.
	Gas Gas

	Scenario iam.Scenario

	// Year is the emissions year. It must be within the time grid
	// of the model but does not need to be a model year.
	Year int

	PRTP, ETA float64

	// Horizon is the last year of damages to include. It must be
	// between Year and the last model year. The model default is used
	// if it is zero.
	Horizon int

	Log logrus.FieldLogger
}

// ComputeSCC calculates the social cost of a greenhouse gas for one
// scenario, emissions year, and discounting configuration using the
// central values of the model's uncertain parameters.
func ComputeSCC(ctx context.Context, model ModelChoice, opts ComputeOptions) (float64, error) {
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	gas, err := resolveGas(opts.Gas, log)
	if err != nil {
		return 0, err
	}
	if opts.Scenario < 0 || int(opts.Scenario) >= len(iam.Scenarios) {
		return 0, fmt.Errorf("%w: invalid scenario %d", ErrInvalidArgument, int(opts.Scenario))
	}
	dc := DiscountConfig{PRTP: []float64{opts.PRTP}, ETA: []float64{opts.ETA}}
	if err := dc.validate(); err != nil {
		return 0, err
	}

	adapter := adapterFor(model)
	modelYears := adapter.ModelYears()
	first, last := modelYears[0], modelYears[len(modelYears)-1]
	if opts.Year < first || opts.Year > last {
		return 0, fmt.Errorf("%w: emissions year %d is outside of the %s time grid [%d, %d]",
			ErrOutOfRange, opts.Year, model, first, last)
	}
	horizon := opts.Horizon
	if horizon == 0 {
		horizon = adapter.DefaultHorizon()
	}
	if horizon < opts.Year || horizon > last {
		return 0, fmt.Errorf("%w: horizon %d is outside of [%d, %d]", ErrOutOfRange, horizon, opts.Year, last)
	}

	years := coveringYears(modelYears, []int{opts.Year})
	base, marginal, err := adapter.BuildModels(gas)
	if err != nil {
		return 0, err
	}
	ms := []iam.Model{base, marginal}
	adapter.ScenarioFunc()(ms, opts.Scenario)

	p := &Payload{
		Discount:   dc,
		ModelYears: modelYears,
		Years:      years,
		Horizon:    horizon,
		Gas:        gas,
		SCC:        NewTensor(1, len(years), len(iam.Scenarios), 1, 1),
	}
	if err := adapter.PostTrialFunc()(ctx, ms, mcs.Trial{}, int(opts.Scenario), p); err != nil {
		return 0, err
	}
	v := Interpolate(years, p.SCC.Series(0, int(opts.Scenario), 0, 0), []int{opts.Year})[0]
	log.WithFields(logrus.Fields{
		"model":    model,
		"gas":      gas,
		"scenario": opts.Scenario,
		"year":     opts.Year,
	}).Debugf("scc: deterministic SCC is %g", v)
	return v, nil
}
