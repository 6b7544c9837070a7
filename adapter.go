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

	"github.com/spatialmodel/scc/iam"
	"github.com/spatialmodel/scc/mcs"
)

// An Adapter hides the differences between the integrated assessment
// models from the Monte Carlo driver.
type Adapter interface {
	Choice() ModelChoice

	// ModelYears returns the native time grid of the model.
	ModelYears() []int

	// DefaultHorizon returns the last year of damages that are
	// included in the SCC.
	DefaultHorizon() int

	// BuildModels returns two independent model instances. The
	// marginal instance can receive an emissions pulse of gas, but
	// its pulse year is not yet set.
	BuildModels(gas Gas) (base iam.Model, marginal iam.Marginal, err error)

	// Definition returns the uncertain model parameters.
	Definition() *mcs.Definition

	ScenarioFunc() mcs.ScenarioFunc

	// PostTrialFunc returns a function that calculates the SCC for
	// every perturbation year and discounting configuration in a
	// *Payload for one trial and scenario.
	PostTrialFunc() mcs.PostTrialFunc
}

// adapterFor returns the adapter for m. It panics if m is not
// one of the defined models.
func adapterFor(m ModelChoice) Adapter {
	switch m {
	case DICE:
		return diceAdapter()
	case FUND:
		return fundAdapter()
	case PAGE:
		return pageAdapter()
	default:
		panic(fmt.Errorf("scc: invalid model choice %d", int(m)))
	}
}

// reducedAdapter is an Adapter for a model represented by
// iam.Reduced.
type reducedAdapter struct {
	choice     ModelChoice
	spec       *iam.Spec
	horizon    int
	definition func() *mcs.Definition
}

func (a *reducedAdapter) Choice() ModelChoice { return a.choice }
func (a *reducedAdapter) ModelYears() []int   { return a.spec.Years }
func (a *reducedAdapter) DefaultHorizon() int { return a.horizon }

func (a *reducedAdapter) Definition() *mcs.Definition { return a.definition() }

func (a *reducedAdapter) BuildModels(gas Gas) (iam.Model, iam.Marginal, error) {
	base, err := iam.NewReduced(a.spec)
	if err != nil {
		return nil, nil, err
	}
	m, err := iam.NewReduced(a.spec)
	if err != nil {
		return nil, nil, err
	}
	marginal, err := iam.AddMarginalEmissions(m, gas)
	if err != nil {
		return nil, nil, err
	}
	return base, marginal, nil
}

func (a *reducedAdapter) ScenarioFunc() mcs.ScenarioFunc {
	return func(models []iam.Model, s iam.Scenario) {
		for _, m := range models {
			m.SetScenario(s)
		}
	}
}

func (a *reducedAdapter) PostTrialFunc() mcs.PostTrialFunc {
	return postTrial
}

// postTrial runs the base model once and the marginal model once for
// each perturbation year, and stores the discounted marginal damages.
// models must be a base model followed by a marginal model.
func postTrial(ctx context.Context, models []iam.Model, t mcs.Trial, scenario int, payload interface{}) error {
	p := payload.(*Payload)
	base := models[0]
	marginal := models[1].(iam.Marginal)

	br, err := base.Run(ctx)
	if err != nil {
		return err
	}
	md := make([]float64, len(br.Years))
	mdDomestic := make([]float64, len(br.Years))
	for yi, year := range p.Years {
		if err := marginal.SetPulseYear(year); err != nil {
			return err
		}
		mr, err := marginal.Run(ctx)
		if err != nil {
			return err
		}
		marginalDamages(md, br.Damages, mr.Damages, marginal.PulseSize())
		presentValues(br.Years, md, br.ConsumptionPerCapita, year, p.Horizon, p.Discount,
			func(i, j int, v float64) {
				p.SCC.Set(t.Index, yi, scenario, i, j, v)
			})
		if p.DomesticSCC != nil && br.DomesticDamages != nil {
			marginalDamages(mdDomestic, br.DomesticDamages, mr.DomesticDamages, marginal.PulseSize())
			presentValues(br.Years, mdDomestic, br.ConsumptionPerCapita, year, p.Horizon, p.Discount,
				func(i, j int, v float64) {
					p.DomesticSCC.Set(t.Index, yi, scenario, i, j, v)
				})
		}
		if p.Mismatch != nil {
			mismatch := br.DiscontinuityIndex != mr.DiscontinuityIndex
			for i := range p.Discount.PRTP {
				p.Mismatch.Set(t.Index, yi, scenario, i, mismatch)
			}
		}
	}
	return nil
}

// marginalDamages sets dst to the difference between marginal and base
// damages per unit of pulse. Damages in billion dollars per Gt are
// equal to dollars per tonne.
func marginalDamages(dst, base, marginal []float64, pulse float64) {
	for i := range dst {
		dst[i] = (marginal[i] - base[i]) / pulse
	}
}
