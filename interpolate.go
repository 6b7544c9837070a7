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
	"sort"
)

// Interpolate linearly interpolates values, which are defined at
// srcYears, to targetYears. srcYears must be increasing.
// Target years outside of the range of srcYears are assigned the value
// at the nearest end.
func Interpolate(srcYears []int, values []float64, targetYears []int) []float64 {
	if len(srcYears) != len(values) {
		panic(fmt.Errorf("scc: interpolating %d values at %d years", len(values), len(srcYears)))
	}
	o := make([]float64, len(targetYears))
	if len(srcYears) == 0 {
		return o
	}
	last := len(srcYears) - 1
	for i, y := range targetYears {
		switch {
		case y <= srcYears[0]:
			o[i] = values[0]
		case y >= srcYears[last]:
			o[i] = values[last]
		default:
			hi := sort.SearchInts(srcYears, y)
			if srcYears[hi] == y {
				o[i] = values[hi]
				continue
			}
			lo := hi - 1
			frac := float64(y-srcYears[lo]) / float64(srcYears[hi]-srcYears[lo])
			o[i] = values[lo] + frac*(values[hi]-values[lo])
		}
	}
	return o
}

// coveringYears returns the minimal contiguous subset of modelYears
// that spans requested: from the last model year at or before the
// earliest requested year through the first model year at or after
// the latest requested year. All requested years must be within the
// range of modelYears.
func coveringYears(modelYears, requested []int) []int {
	lo, hi := requested[0], requested[0]
	for _, y := range requested {
		if y < lo {
			lo = y
		}
		if y > hi {
			hi = y
		}
	}
	start := sort.SearchInts(modelYears, lo)
	if modelYears[start] != lo {
		start--
	}
	end := sort.SearchInts(modelYears, hi)
	o := make([]int, end-start+1)
	copy(o, modelYears[start:end+1])
	return o
}

// nativeYears returns whether every requested year is a model year.
func nativeYears(modelYears, requested []int) bool {
	for _, y := range requested {
		i := sort.SearchInts(modelYears, y)
		if i == len(modelYears) || modelYears[i] != y {
			return false
		}
	}
	return true
}
