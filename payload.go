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

// Payload holds the configuration and results of one Monte Carlo run.
// Post-trial callbacks read the configuration and write their results
// into the part of each tensor that belongs to their own trial and
// scenario.
type Payload struct {
	// RunID identifies the settings of the run.
	RunID string

	Discount DiscountConfig

	// ModelYears is the native time grid of the model.
	ModelYears []int

	// Years are the perturbation years that are calculated,
	// corresponding to the year axis of the tensors.
	Years []int

	// Horizon is the last year of damages included in the SCC.
	Horizon int

	Gas      Gas
	Domestic bool

	SCC *Tensor

	// DomesticSCC is nil unless domestic values were requested.
	DomesticSCC *Tensor

	// Mismatch is nil unless the model has a damage discontinuity.
	Mismatch *MismatchTensor
}
