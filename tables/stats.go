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

package tables

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// DefaultQuantiles are the quantiles reported in the percentile tables.
var DefaultQuantiles = []float64{0.01, 0.05, 0.10, 0.25, 0.50, 0.75, 0.90, 0.95, 0.99}

// quantiles returns the empirical quantiles p of x.
// x is not modified.
func quantiles(p, x []float64) []float64 {
	o := make([]float64, len(p))
	if len(x) == 0 {
		for i := range o {
			o[i] = math.NaN()
		}
		return o
	}
	s := make([]float64, len(x))
	copy(s, x)
	sort.Float64s(s)
	for i, pp := range p {
		o[i] = stat.Quantile(pp, stat.Empirical, s, nil)
	}
	return o
}

// meanStdErr returns the mean of x and the standard error of the mean.
func meanStdErr(x []float64) (mean, stderr float64) {
	switch len(x) {
	case 0:
		return math.NaN(), math.NaN()
	case 1:
		return x[0], math.NaN()
	}
	mean, std := stat.MeanStdDev(x, nil)
	return mean, std / math.Sqrt(float64(len(x)))
}
