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

package iam

import (
	"context"
	"fmt"
	"math"
)

// Spec configures a Reduced model.
type Spec struct {
	// Name is the name of the model being represented, e.g. "DICE".
	Name string

	// Years are the model timesteps. They must be strictly increasing.
	Years []int

	// Atmospheric state in the first model year.
	StartCO2         float64 // ppm
	StartCH4         float64 // ppb
	StartN2O         float64 // ppb
	StartTemperature float64 // °C above preindustrial

	// Domestic specifies whether the model reports domestic damages,
	// calculated as DomesticShare times global damages.
	Domestic bool

	// Discontinuity specifies whether a catastrophic loss of
	// DiscontinuityLoss times GDP is triggered once temperature exceeds
	// DiscontinuityThreshold. The loss ramps in linearly over
	// DiscontinuityRamp years.
	Discontinuity     bool
	DiscontinuityRamp float64

	// Defaults are the central values of the model parameters.
	// They are used for any parameter not set with SetParameters.
	Defaults Parameters
}

func (s *Spec) validate() error {
	if len(s.Years) < 2 {
		return fmt.Errorf("iam: %s: need at least two model years, have %d", s.Name, len(s.Years))
	}
	for i := 1; i < len(s.Years); i++ {
		if s.Years[i] <= s.Years[i-1] {
			return fmt.Errorf("iam: %s: model years must be increasing; %d follows %d", s.Name, s.Years[i], s.Years[i-1])
		}
	}
	for _, p := range []string{ClimateSensitivity, ResponseTime, DamageLinear, DamageQuadratic} {
		if _, ok := s.Defaults[p]; !ok {
			return fmt.Errorf("iam: %s: missing default value for parameter %s", s.Name, p)
		}
	}
	if s.Domestic {
		if _, ok := s.Defaults[DomesticShare]; !ok {
			return fmt.Errorf("iam: %s: missing default value for parameter %s", s.Name, DomesticShare)
		}
	}
	if s.Discontinuity {
		for _, p := range []string{DiscontinuityThreshold, DiscontinuityLoss} {
			if _, ok := s.Defaults[p]; !ok {
				return fmt.Errorf("iam: %s: missing default value for parameter %s", s.Name, p)
			}
		}
	}
	return nil
}

// Carbon cycle impulse response (Joos et al., 2013).
var (
	co2PermanentFraction = 0.2173
	co2BoxFractions      = [3]float64{0.2240, 0.2824, 0.2763}
	co2BoxLifetimes      = [3]float64{394.4, 36.54, 4.304} // years
)

const (
	gtCO2PerPPM = 7.8
	gtCH4PerPPB = 0.00278
	gtN2OPerPPB = 0.0048

	ch4Lifetime = 12.4 // years
	n2oLifetime = 121. // years

	preindustrialCO2 = 278. // ppm
	preindustrialCH4 = 722. // ppb
	preindustrialN2O = 270. // ppb

	forcing2xCO2 = 3.71 // W/m²

	savingsRate = 0.22
	maxDamages  = 0.95 // fraction of GDP
)

// Reduced is a reduced-form integrated assessment model: an impulse
// response carbon cycle, first-order decay of CH4 and N2O, a one-box
// temperature response, and polynomial damages.
type Reduced struct {
	spec     *Spec
	scenario Scenario
	params   Parameters
	pulse    *pulse
}

type pulse struct {
	gas   Gas
	size  float64
	index int // index of the pulse year in the model years; -1 if unset.
}

// NewReduced returns a new reduced-form model configured by spec.
// spec must not be modified after it is passed to NewReduced.
func NewReduced(spec *Spec) (*Reduced, error) {
	if err := spec.validate(); err != nil {
		return nil, err
	}
	r := &Reduced{spec: spec}
	r.SetParameters(nil)
	return r, nil
}

// Name returns the name of the model being represented.
func (r *Reduced) Name() string { return r.spec.Name }

// Years returns the model timesteps.
func (r *Reduced) Years() []int { return r.spec.Years }

// SetScenario sets the socioeconomic scenario.
func (r *Reduced) SetScenario(s Scenario) { r.scenario = s }

// SetParameters overrides the default parameter values with the
// values in p.
func (r *Reduced) SetParameters(p Parameters) {
	r.params = make(Parameters, len(r.spec.Defaults)+len(p))
	for k, v := range r.spec.Defaults {
		r.params[k] = v
	}
	for k, v := range p {
		r.params[k] = v
	}
}

// Clone returns an independent copy of r.
func (r *Reduced) Clone() Model { return r.clone() }

func (r *Reduced) clone() *Reduced {
	o := &Reduced{
		spec:     r.spec,
		scenario: r.scenario,
		params:   make(Parameters, len(r.params)),
	}
	for k, v := range r.params {
		o.params[k] = v
	}
	if r.pulse != nil {
		p := *r.pulse
		o.pulse = &p
	}
	return o
}

// AddMarginalEmissions adds an emissions pulse component for gas to r.
// It can only be called once for each model instance.
func (r *Reduced) AddMarginalEmissions(gas Gas) (Marginal, error) {
	if r.pulse != nil {
		return nil, fmt.Errorf("%w: %s already has a %s pulse", ErrMarginalExists, r.spec.Name, r.pulse.gas)
	}
	if !gas.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGas, gas)
	}
	r.pulse = &pulse{gas: gas, size: PulseSize(gas), index: -1}
	return &marginalReduced{Reduced: r}, nil
}

// Run runs the model for all of its years.
func (r *Reduced) Run(ctx context.Context) (*Results, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.pulse != nil && r.pulse.index < 0 {
		return nil, ErrNoPulseYear
	}
	se, ok := usgScenarios[r.scenario]
	if !ok {
		return nil, fmt.Errorf("iam: %s: invalid scenario %v", r.spec.Name, r.scenario)
	}
	ecs := r.params[ClimateSensitivity]
	tau := r.params[ResponseTime]
	if ecs <= 0 || tau <= 0 {
		return nil, fmt.Errorf("iam: %s: climate sensitivity (%g) and response time (%g) must be positive",
			r.spec.Name, ecs, tau)
	}
	d1, d2 := r.params[DamageLinear], r.params[DamageQuadratic]

	years := r.spec.Years
	n := len(years)
	res := &Results{
		Years:                years,
		Temperature:          make([]float64, n),
		Damages:              make([]float64, n),
		ConsumptionPerCapita: make([]float64, n),
		DiscontinuityIndex:   -1,
	}
	if r.spec.Domestic {
		res.DomesticDamages = make([]float64, n)
	}

	y0 := float64(years[0])
	ch4Start, n2oStart := se.emissions(CH4, y0), se.emissions(N2O, y0)

	var co2Perm float64     // Gt CO2
	var co2Boxes [3]float64 // Gt CO2
	var ch4, n2o float64    // ppb above the starting concentration
	temp := r.spec.StartTemperature

	for i, year := range years {
		y := float64(year)
		dt := r.timestep(i)
		if i > 0 {
			e := se.emissions(CO2, y) * dt
			co2Perm += co2PermanentFraction * e
			for j := range co2Boxes {
				co2Boxes[j] = co2Boxes[j]*math.Exp(-dt/co2BoxLifetimes[j]) + co2BoxFractions[j]*e
			}
			ch4 = ch4*math.Exp(-dt/ch4Lifetime) + (se.emissions(CH4, y)-ch4Start)*dt/gtCH4PerPPB
			n2o = n2o*math.Exp(-dt/n2oLifetime) + (se.emissions(N2O, y)-n2oStart)*dt/gtN2OPerPPB
		}
		if r.pulse != nil && r.pulse.index == i {
			switch r.pulse.gas {
			case CO2:
				co2Perm += co2PermanentFraction * r.pulse.size
				for j := range co2Boxes {
					co2Boxes[j] += co2BoxFractions[j] * r.pulse.size
				}
			case CH4:
				ch4 += r.pulse.size / gtCH4PerPPB
			case N2O:
				n2o += r.pulse.size / gtN2OPerPPB
			}
		}

		co2Conc := r.spec.StartCO2 + (co2Perm+co2Boxes[0]+co2Boxes[1]+co2Boxes[2])/gtCO2PerPPM
		f := 5.35*math.Log(math.Max(co2Conc, 1)/preindustrialCO2) +
			0.036*(math.Sqrt(math.Max(r.spec.StartCH4+ch4, 0))-math.Sqrt(preindustrialCH4)) +
			0.12*(math.Sqrt(math.Max(r.spec.StartN2O+n2o, 0))-math.Sqrt(preindustrialN2O))
		if i > 0 {
			teq := ecs / forcing2xCO2 * f
			temp = teq + (temp-teq)*math.Exp(-dt/tau)
		}
		res.Temperature[i] = temp

		frac := d1*temp + d2*temp*temp
		if r.spec.Discontinuity {
			if res.DiscontinuityIndex < 0 && temp > r.params[DiscontinuityThreshold] {
				res.DiscontinuityIndex = i
			}
			if res.DiscontinuityIndex >= 0 {
				ramp := 1.
				if r.spec.DiscontinuityRamp > 0 {
					elapsed := float64(year-years[res.DiscontinuityIndex]) + dt
					ramp = math.Min(1, elapsed/r.spec.DiscontinuityRamp)
				}
				frac += r.params[DiscontinuityLoss] * ramp
			}
		}
		frac = math.Min(frac, maxDamages)

		gdp := se.gdp(y)
		d := frac * gdp
		res.Damages[i] = d
		if r.spec.Domestic {
			res.DomesticDamages[i] = r.params[DomesticShare] * d
		}
		res.ConsumptionPerCapita[i] = (gdp - d) * (1 - savingsRate) / se.population(y)
	}
	return res, nil
}

// timestep returns the length of timestep i in years.
func (r *Reduced) timestep(i int) float64 {
	y := r.spec.Years
	if i == 0 {
		return float64(y[1] - y[0])
	}
	return float64(y[i] - y[i-1])
}

// marginalReduced is a Reduced model with an emissions pulse.
type marginalReduced struct {
	*Reduced
}

func (m *marginalReduced) Gas() Gas           { return m.pulse.gas }
func (m *marginalReduced) PulseSize() float64 { return m.pulse.size }

func (m *marginalReduced) SetPulseYear(year int) error {
	for i, y := range m.spec.Years {
		if y == year {
			m.pulse.index = i
			return nil
		}
	}
	return fmt.Errorf("iam: %s: pulse year %d is not a model year", m.spec.Name, year)
}

func (m *marginalReduced) Clone() Model {
	return &marginalReduced{Reduced: m.Reduced.clone()}
}
