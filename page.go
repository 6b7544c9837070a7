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

var pageSpec = &iam.Spec{
	Name:              "PAGE",
	Years:             append(append([]int{2009}, yearRange(2010, 10, 2100)...), 2150, 2200, 2250, 2300),
	StartCO2:          386,
	StartCH4:          1790,
	StartN2O:          322,
	StartTemperature:  0.75,
	Domestic:          true,
	Discontinuity:     true,
	DiscontinuityRamp: 30,
	Defaults: iam.Parameters{
		iam.ClimateSensitivity:     3,
		iam.ResponseTime:           35,
		iam.DamageLinear:           0,
		iam.DamageQuadratic:        0.0022,
		iam.DomesticShare:          0.1,
		iam.DiscontinuityThreshold: 3,
		iam.DiscontinuityLoss:      0.05,
	},
}

func pageAdapter() Adapter {
	return &reducedAdapter{
		choice:  PAGE,
		spec:    pageSpec,
		horizon: 2300,
		definition: func() *mcs.Definition {
			d := mcs.NewDefinition()
			d.Add(iam.ClimateSensitivity, climateSensitivity)
			d.Add(iam.DamageQuadratic, func(src rand.Source) distuv.Rander {
				return distuv.NewTriangle(0.001, 0.0035, 0.0022, src)
			})
			d.Add(iam.DomesticShare, domesticShare)
			d.Add(iam.DiscontinuityThreshold, func(src rand.Source) distuv.Rander {
				return distuv.NewTriangle(2, 4, 3, src)
			})
			return d
		},
	}
}
