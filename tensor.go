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

import "fmt"

// Tensor is a dense array of SCC values indexed by
// (trial, year, scenario, prtp, eta). Values for one trial are
// stored contiguously.
type Tensor struct {
	Data  []float64
	shape [5]int
}

// NewTensor returns a zeroed tensor with the given dimensions.
func NewTensor(trials, years, scenarios, prtp, eta int) *Tensor {
	return &Tensor{
		Data:  make([]float64, trials*years*scenarios*prtp*eta),
		shape: [5]int{trials, years, scenarios, prtp, eta},
	}
}

// Dims returns the dimensions of t.
func (t *Tensor) Dims() (trials, years, scenarios, prtp, eta int) {
	return t.shape[0], t.shape[1], t.shape[2], t.shape[3], t.shape[4]
}

// Shape returns the dimensions of t as a slice.
func (t *Tensor) Shape() []int { return t.shape[:] }

func (t *Tensor) index(trial, year, scenario, prtp, eta int) int {
	s := t.shape
	if trial < 0 || trial >= s[0] || year < 0 || year >= s[1] || scenario < 0 || scenario >= s[2] ||
		prtp < 0 || prtp >= s[3] || eta < 0 || eta >= s[4] {
		panic(fmt.Errorf("scc: index (%d, %d, %d, %d, %d) out of range for tensor with shape %v",
			trial, year, scenario, prtp, eta, s))
	}
	return (((trial*s[1]+year)*s[2]+scenario)*s[3]+prtp)*s[4] + eta
}

// At returns the value at the given index.
func (t *Tensor) At(trial, year, scenario, prtp, eta int) float64 {
	return t.Data[t.index(trial, year, scenario, prtp, eta)]
}

// Set sets the value at the given index to v.
func (t *Tensor) Set(trial, year, scenario, prtp, eta int, v float64) {
	t.Data[t.index(trial, year, scenario, prtp, eta)] = v
}

// Series returns a copy of the values along the year axis.
func (t *Tensor) Series(trial, scenario, prtp, eta int) []float64 {
	o := make([]float64, t.shape[1])
	for y := range o {
		o[y] = t.At(trial, y, scenario, prtp, eta)
	}
	return o
}

// Trials returns a copy of the values along the trial axis.
func (t *Tensor) Trials(year, scenario, prtp, eta int) []float64 {
	o := make([]float64, t.shape[0])
	for i := range o {
		o[i] = t.At(i, year, scenario, prtp, eta)
	}
	return o
}

// InterpolateYears returns a new tensor where the year axis, which
// currently corresponds to src, is linearly interpolated to dst.
func (t *Tensor) InterpolateYears(src, dst []int) *Tensor {
	if len(src) != t.shape[1] {
		panic(fmt.Errorf("scc: interpolating tensor with %d years from %d years", t.shape[1], len(src)))
	}
	n, _, ns, np, ne := t.Dims()
	o := NewTensor(n, len(dst), ns, np, ne)
	for i := 0; i < n; i++ {
		for s := 0; s < ns; s++ {
			for p := 0; p < np; p++ {
				for e := 0; e < ne; e++ {
					for y, v := range Interpolate(src, t.Series(i, s, p, e), dst) {
						o.Set(i, y, s, p, e, v)
					}
				}
			}
		}
	}
	return o
}

// Scale returns a new tensor with every value of t multiplied by f.
func (t *Tensor) Scale(f float64) *Tensor {
	o := &Tensor{Data: make([]float64, len(t.Data)), shape: t.shape}
	for i, v := range t.Data {
		o.Data[i] = f * v
	}
	return o
}

// MismatchTensor flags, for each (trial, year, scenario, prtp), whether
// the base and marginal model runs triggered the catastrophic damage
// discontinuity in different timesteps.
type MismatchTensor struct {
	Data  []bool
	shape [4]int
}

// NewMismatchTensor returns a tensor with the given dimensions
// and no mismatches.
func NewMismatchTensor(trials, years, scenarios, prtp int) *MismatchTensor {
	return &MismatchTensor{
		Data:  make([]bool, trials*years*scenarios*prtp),
		shape: [4]int{trials, years, scenarios, prtp},
	}
}

// Dims returns the dimensions of t.
func (t *MismatchTensor) Dims() (trials, years, scenarios, prtp int) {
	return t.shape[0], t.shape[1], t.shape[2], t.shape[3]
}

func (t *MismatchTensor) index(trial, year, scenario, prtp int) int {
	s := t.shape
	if trial < 0 || trial >= s[0] || year < 0 || year >= s[1] || scenario < 0 || scenario >= s[2] ||
		prtp < 0 || prtp >= s[3] {
		panic(fmt.Errorf("scc: index (%d, %d, %d, %d) out of range for mismatch tensor with shape %v",
			trial, year, scenario, prtp, s))
	}
	return ((trial*s[1]+year)*s[2]+scenario)*s[3] + prtp
}

// At returns the value at the given index.
func (t *MismatchTensor) At(trial, year, scenario, prtp int) bool {
	return t.Data[t.index(trial, year, scenario, prtp)]
}

// Set sets the value at the given index to v.
func (t *MismatchTensor) Set(trial, year, scenario, prtp int, v bool) {
	t.Data[t.index(trial, year, scenario, prtp)] = v
}

// InterpolateYears returns a new tensor where the year axis, which
// currently corresponds to src, is linearly interpolated to dst.
// Any interpolated value greater than zero counts as a mismatch.
func (t *MismatchTensor) InterpolateYears(src, dst []int) *MismatchTensor {
	if len(src) != t.shape[1] {
		panic(fmt.Errorf("scc: interpolating mismatch tensor with %d years from %d years", t.shape[1], len(src)))
	}
	n, ny, ns, np := t.Dims()
	o := NewMismatchTensor(n, len(dst), ns, np)
	series := make([]float64, ny)
	for i := 0; i < n; i++ {
		for s := 0; s < ns; s++ {
			for p := 0; p < np; p++ {
				for y := range series {
					series[y] = 0
					if t.At(i, y, s, p) {
						series[y] = 1
					}
				}
				for y, v := range Interpolate(src, series, dst) {
					o.Set(i, y, s, p, v > 0)
				}
			}
		}
	}
	return o
}
