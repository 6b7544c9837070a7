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

// Package iam holds the contract that integrated assessment models must
// satisfy to be driven by the social cost of carbon experiments, along with
// a reduced-form model that can be configured to stand in for DICE, FUND,
// or PAGE.
package iam

import (
	"context"
	"errors"
	"fmt"
)

// Gas is a greenhouse gas species that can receive a marginal emissions pulse.
type Gas string

// Supported gases.
const (
	CO2 Gas = "CO2"
	CH4 Gas = "CH4"
	N2O Gas = "N2O"
)

// Gases are all of the supported gases.
var Gases = []Gas{CO2, CH4, N2O}

// Valid returns whether g is one of the supported gases.
func (g Gas) Valid() bool {
	for _, gg := range Gases {
		if g == gg {
			return true
		}
	}
	return false
}

// Scenario is one of the five USG socioeconomic scenarios.
type Scenario int

// The USG scenarios.
const (
	IMAGE Scenario = iota
	MERGEOptimistic
	MESSAGE
	MiniCAMBase
	FifthScenario
)

// Scenarios are all of the socioeconomic scenarios, in output order.
var Scenarios = []Scenario{IMAGE, MERGEOptimistic, MESSAGE, MiniCAMBase, FifthScenario}

func (s Scenario) String() string {
	switch s {
	case IMAGE:
		return "IMAGE"
	case MERGEOptimistic:
		return "MERGE Optimistic"
	case MESSAGE:
		return "MESSAGE"
	case MiniCAMBase:
		return "MiniCAM Base"
	case FifthScenario:
		return "5th Scenario"
	default:
		return fmt.Sprintf("Scenario(%d)", int(s))
	}
}

// Parameters holds trial-specific values for a model's uncertain parameters.
type Parameters map[string]float64

// Names of the parameters understood by the reduced-form model.
const (
	ClimateSensitivity     = "climate_sensitivity"     // °C per doubling of CO2
	ResponseTime           = "response_time"           // years
	DamageLinear           = "damage_linear"           // fraction of GDP per °C
	DamageQuadratic        = "damage_quadratic"        // fraction of GDP per °C²
	DomesticShare          = "domestic_share"          // fraction of global damages
	DiscontinuityThreshold = "discontinuity_threshold" // °C
	DiscontinuityLoss      = "discontinuity_loss"      // fraction of GDP
)

// Results are the outputs of one model run, one value per model year.
type Results struct {
	Years []int

	// Temperature is the global mean surface temperature
	// above preindustrial [°C].
	Temperature []float64

	// Damages are global climate damages [billion $ per year].
	Damages []float64

	// DomesticDamages are damages within the domestic region
	// [billion $ per year]. It is nil for models without a
	// domestic damage channel.
	DomesticDamages []float64

	// ConsumptionPerCapita is global consumption per person [$ per year].
	ConsumptionPerCapita []float64

	// DiscontinuityIndex is the index of the timestep where the
	// catastrophic discontinuity was triggered, or -1 if it never was.
	DiscontinuityIndex int
}

// Model is a configured integrated assessment model instance.
// Model instances are not safe for concurrent use; use Clone to
// get an independent copy.
type Model interface {
	Name() string
	Years() []int
	SetScenario(Scenario)
	SetParameters(Parameters)
	Run(ctx context.Context) (*Results, error)
	Clone() Model
}

// Marginal is a Model with an added emissions pulse for one gas.
type Marginal interface {
	Model

	// Gas is the species receiving the pulse.
	Gas() Gas

	// PulseSize is the size of the pulse [Gt of Gas].
	PulseSize() float64

	// SetPulseYear sets the year the pulse is emitted in. year must be
	// one of the model years.
	SetPulseYear(year int) error
}

// MarginalEmitter is implemented by models that can be augmented
// with a marginal emissions pulse.
type MarginalEmitter interface {
	AddMarginalEmissions(gas Gas) (Marginal, error)
}

var (
	// ErrMarginalExists is returned when marginal emissions are added to a
	// model that already has them.
	ErrMarginalExists = errors.New("iam: model already has marginal emissions")

	// ErrUnknownGas is returned for gases other than CO2, CH4, and N2O.
	ErrUnknownGas = errors.New("iam: unknown gas")

	// ErrNoPulseYear is returned when a marginal model is run before its
	// pulse year has been set.
	ErrNoPulseYear = errors.New("iam: marginal model pulse year not set")
)

// AddMarginalEmissions registers an emissions pulse capability for gas
// on m and returns m as a Marginal model. It modifies m, so it can only
// be called once for a given instance.
func AddMarginalEmissions(m Model, gas Gas) (Marginal, error) {
	me, ok := m.(MarginalEmitter)
	if !ok {
		return nil, fmt.Errorf("iam: model %s (%T) does not support marginal emissions", m.Name(), m)
	}
	return me.AddMarginalEmissions(gas)
}

// PulseSize returns the default pulse size for gas [Gt].
func PulseSize(gas Gas) float64 {
	if gas == CO2 {
		return 1.0 // 1 Gt CO2
	}
	return 1.0e-3 // 1 Mt CH4 or N2O
}
