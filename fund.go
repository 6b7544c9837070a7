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
	"github.com/spatialmodel/scc/iam"
	"github.com/spatialmodel/scc/mcs"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

var fundSpec = &iam.Spec{
	Name:             "FUND",
	Years:            yearRange(1950, 1, 2300),
	StartCO2:         311,
	StartCH4:         1147,
	StartN2O:         289,
	StartTemperature: 0.25,
	Domestic:         true,
	Defaults: iam.Parameters{
		iam.ClimateSensitivity: 3,
		iam.ResponseTime:       30,
		iam.DamageLinear:       0.0008,
		iam.DamageQuadratic:    0.0018,
		iam.DomesticShare:      0.1,
	},
}

func fundAdapter() Adapter {
	return &reducedAdapter{
		choice:  FUND,
		spec:    fundSpec,
		horizon: 2300,
		definition: func() *mcs.Definition {
			d := mcs.NewDefinition()
			d.Add(iam.ClimateSensitivity, climateSensitivity)
			d.Add(iam.DamageQuadratic, func(src rand.Source) distuv.Rander {
				// Mean 0.0018, coefficient of variation 0.25.
				return distuv.Gamma{Alpha: 16, Beta: 16 / 0.0018, Src: src}
			})
			d.Add(iam.DomesticShare, domesticShare)
			return d
		},
	}
}

func domesticShare(src rand.Source) distuv.Rander {
	return distuv.Uniform{Min: 0.07, Max: 0.13, Src: src}
}
