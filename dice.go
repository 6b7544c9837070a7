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
	"math"

	"github.com/spatialmodel/scc/iam"
	"github.com/spatialmodel/scc/mcs"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// diceDomesticShare is the fraction of the global SCC that is
// attributed to the domestic region for DICE, which does not
// resolve damages regionally.
const diceDomesticShare = 0.1

// yearRange returns the years from start through end in steps of step.
func yearRange(start, step, end int) []int {
	var o []int
	for y := start; y <= end; y += step {
		o = append(o, y)
	}
	return o
}

var diceSpec = &iam.Spec{
	Name:             "DICE",
	Years:            yearRange(2005, 10, 2405),
	StartCO2:         379.8,
	StartCH4:         1774,
	StartN2O:         319,
	StartTemperature: 0.83,
	Defaults: iam.Parameters{
		iam.ClimateSensitivity: 3,
		iam.ResponseTime:       45,
		iam.DamageLinear:       0,
		iam.DamageQuadratic:    0.0028388,
	},
}

func diceAdapter() Adapter {
	return &reducedAdapter{
		choice:  DICE,
		spec:    diceSpec,
		horizon: 2300,
		definition: func() *mcs.Definition {
			d := mcs.NewDefinition()
			d.Add(iam.ClimateSensitivity, climateSensitivity)
			return d
		},
	}
}

// climateSensitivity is a right-skewed distribution of equilibrium
// climate sensitivity with a median of 3 °C.
func climateSensitivity(src rand.Source) distuv.Rander {
	return distuv.LogNormal{Mu: math.Log(3), Sigma: 0.3, Src: src}
}
