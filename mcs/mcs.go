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

// Package mcs runs Monte Carlo simulations of integrated assessment
// models: it samples uncertain parameters and runs every trial under
// every scenario in parallel.
package mcs

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/spatialmodel/scc/iam"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Distribution returns a random variable that draws from src.
type Distribution func(src rand.Source) distuv.Rander

// Definition is an ordered set of named random variables.
type Definition struct {
	names []string
	dists []Distribution
}

// NewDefinition returns an empty simulation definition.
func NewDefinition() *Definition { return new(Definition) }

// Add adds a random variable. It panics if name has already been added.
func (d *Definition) Add(name string, dist Distribution) {
	for _, n := range d.names {
		if n == name {
			panic(fmt.Errorf("mcs: duplicate random variable %q", name))
		}
	}
	d.names = append(d.names, name)
	d.dists = append(d.dists, dist)
}

// Names returns the names of the random variables in the order they
// were added.
func (d *Definition) Names() []string { return d.names }

// Trial is one set of sampled parameter values.
type Trial struct {
	Index  int
	Values iam.Parameters
}

// Sample draws n trials from def. Trial i is drawn from a
// source seeded with seed+i, so the values of a trial do not
// depend on how many trials are drawn or in what order they are run.
func Sample(def *Definition, n int, seed uint64) []Trial {
	trials := make([]Trial, n)
	for i := range trials {
		src := rand.NewSource(seed + uint64(i))
		v := make(iam.Parameters, len(def.names))
		for j, name := range def.names {
			v[name] = def.dists[j](src).Rand()
		}
		trials[i] = Trial{Index: i, Values: v}
	}
	return trials
}

// WriteTrials writes the sampled parameter values to w in CSV format,
// with one column per random variable and one row per trial.
func WriteTrials(w io.Writer, def *Definition, trials []Trial) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(def.names); err != nil {
		return fmt.Errorf("mcs: writing trials: %v", err)
	}
	row := make([]string, len(def.names))
	for _, t := range trials {
		for j, name := range def.names {
			row[j] = strconv.FormatFloat(t.Values[name], 'g', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("mcs: writing trials: %v", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
