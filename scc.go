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

// Package scc computes the social cost of carbon and other greenhouse
// gases by Monte Carlo simulation of the DICE, FUND, and PAGE
// integrated assessment models.
package scc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/scc/iam"
)

// Version gives the version number.
const Version = "0.1.0"

var (
	// ErrInvalidArgument is returned for unsupported option values,
	// e.g. an unknown gas.
	ErrInvalidArgument = errors.New("scc: invalid argument")

	// ErrOutOfRange is returned when a requested perturbation year is
	// outside of the time grid of the selected model.
	ErrOutOfRange = errors.New("scc: out of range")
)

// ModelChoice selects an integrated assessment model.
type ModelChoice int

// The available models.
const (
	DICE ModelChoice = iota
	FUND
	PAGE
)

func (m ModelChoice) String() string {
	switch m {
	case DICE:
		return "DICE"
	case FUND:
		return "FUND"
	case PAGE:
		return "PAGE"
	default:
		return fmt.Sprintf("ModelChoice(%d)", int(m))
	}
}

// ParseModelChoice returns the model with the given name,
// which is not case sensitive.
func ParseModelChoice(name string) (ModelChoice, error) {
	switch strings.ToUpper(name) {
	case "DICE":
		return DICE, nil
	case "FUND":
		return FUND, nil
	case "PAGE":
		return PAGE, nil
	default:
		return 0, fmt.Errorf("%w: unknown model %q; must be one of DICE, FUND, or PAGE", ErrInvalidArgument, name)
	}
}

// Gas is a greenhouse gas species.
type Gas = iam.Gas

// Supported gases.
const (
	CO2 = iam.CO2
	CH4 = iam.CH4
	N2O = iam.N2O
)

// resolveGas returns g, or CO2 if g is unspecified.
func resolveGas(g Gas, log logrus.FieldLogger) (Gas, error) {
	if g == "" {
		log.Warn("scc: no gas specified; defaulting to CO2")
		return CO2, nil
	}
	if !g.Valid() {
		return "", fmt.Errorf("%w: unknown gas %q; must be one of CO2, CH4, or N2O", ErrInvalidArgument, g)
	}
	return g, nil
}
