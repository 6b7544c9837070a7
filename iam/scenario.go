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

import "math"

// socioeconomics is a parametric pathway for population, income, and
// emissions under one scenario.
type socioeconomics struct {
	popMax  float64 // billion people
	popRate float64 // per year

	gdpGrowth      float64 // initial per-capita growth rate, per year
	gdpGrowthDecay float64 // per year

	co2Growth  float64 // per year, until co2Peak
	co2Peak    float64 // year
	co2Decline float64 // per year, after co2Peak

	ch4Scale, n2oScale float64
}

// Values in the reference year.
const (
	refYear = 2005.

	refPop   = 6.5  // billion people
	refGDPpc = 9.2  // thousand $ per person
	refCO2   = 30.  // Gt CO2 per year
	refCH4   = 0.33 // Gt CH4 per year
	refN2O   = 0.011

	histPopGrowth = 0.017
	histGDPGrowth = 0.02
	histCO2Growth = 0.025
)

var usgScenarios = map[Scenario]socioeconomics{
	IMAGE: {
		popMax: 9.0, popRate: 0.025,
		gdpGrowth: 0.022, gdpGrowthDecay: 0.008,
		co2Growth: 0.012, co2Peak: 2080, co2Decline: 0.004,
		ch4Scale: 1.0, n2oScale: 1.0,
	},
	MERGEOptimistic: {
		popMax: 9.4, popRate: 0.02,
		gdpGrowth: 0.025, gdpGrowthDecay: 0.007,
		co2Growth: 0.014, co2Peak: 2090, co2Decline: 0.003,
		ch4Scale: 1.1, n2oScale: 1.05,
	},
	MESSAGE: {
		popMax: 8.7, popRate: 0.03,
		gdpGrowth: 0.02, gdpGrowthDecay: 0.009,
		co2Growth: 0.01, co2Peak: 2070, co2Decline: 0.005,
		ch4Scale: 0.95, n2oScale: 1.0,
	},
	MiniCAMBase: {
		popMax: 8.9, popRate: 0.025,
		gdpGrowth: 0.023, gdpGrowthDecay: 0.008,
		co2Growth: 0.016, co2Peak: 2095, co2Decline: 0.002,
		ch4Scale: 1.15, n2oScale: 1.1,
	},
	// The fifth scenario stabilizes concentrations.
	FifthScenario: {
		popMax: 8.9, popRate: 0.025,
		gdpGrowth: 0.022, gdpGrowthDecay: 0.008,
		co2Growth: 0.005, co2Peak: 2030, co2Decline: 0.02,
		ch4Scale: 0.8, n2oScale: 0.85,
	},
}

// population returns the population in year y [billion people].
func (s socioeconomics) population(y float64) float64 {
	if y < refYear {
		return refPop * math.Exp(histPopGrowth*(y-refYear))
	}
	return s.popMax - (s.popMax-refPop)*math.Exp(-s.popRate*(y-refYear))
}

// gdpPerCapita returns per-capita income in year y [thousand $].
func (s socioeconomics) gdpPerCapita(y float64) float64 {
	if y < refYear {
		return refGDPpc * math.Exp(histGDPGrowth*(y-refYear))
	}
	dt := y - refYear
	return refGDPpc * math.Exp(s.gdpGrowth/s.gdpGrowthDecay*(1-math.Exp(-s.gdpGrowthDecay*dt)))
}

// gdp returns gross output in year y [billion $ per year].
func (s socioeconomics) gdp(y float64) float64 {
	return s.population(y) * s.gdpPerCapita(y) * 1000
}

// emissions returns the emissions rate of gas in year y [Gt per year].
func (s socioeconomics) emissions(gas Gas, y float64) float64 {
	var co2 float64
	switch {
	case y < refYear:
		co2 = refCO2 * math.Exp(histCO2Growth*(y-refYear))
	case y <= s.co2Peak:
		co2 = refCO2 * math.Exp(s.co2Growth*(y-refYear))
	default:
		peak := refCO2 * math.Exp(s.co2Growth*(s.co2Peak-refYear))
		co2 = peak * math.Exp(-s.co2Decline*(y-s.co2Peak))
	}
	switch gas {
	case CO2:
		return co2
	case CH4:
		return refCH4 * s.ch4Scale * math.Sqrt(co2/refCO2)
	case N2O:
		return refN2O * s.n2oScale * math.Pow(co2/refCO2, 0.3)
	default:
		panic(ErrUnknownGas)
	}
}
