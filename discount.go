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
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
)

// DefaultPRTP is the pure rate of time preference used when none is given.
var DefaultPRTP = []float64{0.025, 0.03, 0.05}

// DiscountConfig holds the Ramsey discounting parameters. Each
// (PRTP, ETA) pair defines one discounting trajectory.
type DiscountConfig struct {
	PRTP []float64 // pure rate of time preference
	ETA  []float64 // elasticity of marginal utility of consumption
}

// NormalizeDiscounting converts the discounting options into a
// DiscountConfig. rates is the deprecated way of specifying constant
// discount rates; it is equivalent to prtp=rates and eta=[0], and it
// takes precedence over prtp and eta when it is not empty. Nil prtp or
// eta values are replaced by defaults with a warning.
func NormalizeDiscounting(rates, prtp, eta []float64, log logrus.FieldLogger) DiscountConfig {
	if len(rates) > 0 {
		log.Warn("scc: discount_rates is deprecated; use prtp and eta instead. Setting prtp = discount_rates and eta = [0]")
		if len(prtp) > 0 || len(eta) > 0 {
			log.Warn("scc: prtp and eta are ignored because discount_rates is set")
		}
		return DiscountConfig{PRTP: copyFloats(rates), ETA: []float64{0}}
	}
	var dc DiscountConfig
	if prtp == nil {
		log.Warnf("scc: no prtp specified; using default values %v", DefaultPRTP)
		dc.PRTP = copyFloats(DefaultPRTP)
	} else {
		dc.PRTP = copyFloats(prtp)
	}
	if eta == nil {
		log.Warn("scc: no eta specified; using default value [0]")
		dc.ETA = []float64{0}
	} else {
		dc.ETA = copyFloats(eta)
	}
	return dc
}

// validate returns an error wrapping ErrInvalidArgument if dc does not
// define at least one discounting trajectory or if any prtp is not
// greater than -1.
func (dc DiscountConfig) validate() error {
	if len(dc.PRTP) == 0 {
		return fmt.Errorf("%w: at least one prtp value is required", ErrInvalidArgument)
	}
	if len(dc.ETA) == 0 {
		return fmt.Errorf("%w: at least one eta value is required", ErrInvalidArgument)
	}
	for _, p := range dc.PRTP {
		if !(p > -1) || math.IsInf(p, 0) {
			return fmt.Errorf("%w: prtp must be greater than -1, got %g", ErrInvalidArgument, p)
		}
	}
	for _, e := range dc.ETA {
		if math.IsNaN(e) || math.IsInf(e, 0) {
			return fmt.Errorf("%w: eta must be finite, got %g", ErrInvalidArgument, e)
		}
	}
	return nil
}

// zeroETA returns whether ETA is the single value 0.
func (dc DiscountConfig) zeroETA() bool {
	return len(dc.ETA) == 1 && dc.ETA[0] == 0
}

func copyFloats(v []float64) []float64 {
	o := make([]float64, len(v))
	copy(o, v)
	return o
}

// presentValues discounts the marginal damages md [$ per tonne per year]
// defined at years back to pulseYear for every discounting
// configuration in dc, and passes the sums to set. Damages and
// consumption per capita cpc are interpolated to annual values from
// pulseYear through horizon. The discount factor for year t is
// (cpc(pulseYear)/cpc(t))^eta / (1+prtp)^(t-pulseYear).
func presentValues(years []int, md, cpc []float64, pulseYear, horizon int, dc DiscountConfig, set func(i, j int, v float64)) {
	if pulseYear > horizon {
		for i := range dc.PRTP {
			for j := range dc.ETA {
				set(i, j, 0)
			}
		}
		return
	}
	annual := make([]int, horizon-pulseYear+1)
	for k := range annual {
		annual[k] = pulseYear + k
	}
	mdA := Interpolate(years, md, annual)
	cA := Interpolate(years, cpc, annual)
	df := make([]float64, len(annual))
	for i, prtp := range dc.PRTP {
		for j, eta := range dc.ETA {
			for k := range annual {
				df[k] = math.Pow(cA[0]/cA[k], eta) / math.Pow(1+prtp, float64(k))
			}
			set(i, j, floats.Dot(mdA, df))
		}
	}
}
