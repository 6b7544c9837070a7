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

package sccutil

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/scc"
	"github.com/spatialmodel/scc/iam"
	"github.com/spf13/cast"
)

// runOptions returns the Monte Carlo run settings held in cfg.
func runOptions(cfg *viper.Viper) (*scc.Options, error) {
	years, err := toIntSliceE(cfg.Get("perturbation_years"))
	if err != nil {
		return nil, fmt.Errorf("scc: invalid perturbation_years: %v", err)
	}
	rates, err := toFloat64SliceE(cfg.Get("discount_rates"))
	if err != nil {
		return nil, fmt.Errorf("scc: invalid discount_rates: %v", err)
	}
	prtp, err := toFloat64SliceE(cfg.Get("prtp"))
	if err != nil {
		return nil, fmt.Errorf("scc: invalid prtp: %v", err)
	}
	eta, err := toFloat64SliceE(cfg.Get("eta"))
	if err != nil {
		return nil, fmt.Errorf("scc: invalid eta: %v", err)
	}
	seed, err := cast.ToUint64E(cfg.Get("seed"))
	if err != nil {
		return nil, fmt.Errorf("scc: invalid seed: %v", err)
	}
	return &scc.Options{
		Gas:                 scc.Gas(strings.ToUpper(cfg.GetString("gas"))),
		Trials:              cfg.GetInt("trials"),
		PerturbationYears:   years,
		DiscountRates:       rates,
		PRTP:                prtp,
		ETA:                 eta,
		Domestic:            cfg.GetBool("domestic"),
		OutputDir:           cfg.GetString("output_dir"),
		SaveTrials:          cfg.GetBool("save_trials"),
		Tables:              cfg.GetBool("tables"),
		DropDiscontinuities: cfg.GetBool("drop_discontinuities"),
		Plots:               cfg.GetBool("plots"),
		Seed:                seed,
		Workers:             cfg.GetInt("workers"),
		Progress:            cfg.GetBool("progress"),
		Log:                 logrus.StandardLogger(),
	}, nil
}

// computeOptions returns the deterministic calculation settings
// held in cfg, and the discounting configurations to calculate.
func computeOptions(cfg *viper.Viper) (*scc.ComputeOptions, scc.DiscountConfig, error) {
	s, err := parseScenario(cfg.GetString("scenario"))
	if err != nil {
		return nil, scc.DiscountConfig{}, err
	}
	prtp, err := toFloat64SliceE(cfg.Get("prtp"))
	if err != nil {
		return nil, scc.DiscountConfig{}, fmt.Errorf("scc: invalid prtp: %v", err)
	}
	eta, err := toFloat64SliceE(cfg.Get("eta"))
	if err != nil {
		return nil, scc.DiscountConfig{}, fmt.Errorf("scc: invalid eta: %v", err)
	}
	log := logrus.StandardLogger()
	dc := scc.NormalizeDiscounting(nil, prtp, eta, log)
	return &scc.ComputeOptions{
		Gas:      scc.Gas(strings.ToUpper(cfg.GetString("gas"))),
		Scenario: s,
		Year:     cfg.GetInt("year"),
		Horizon:  cfg.GetInt("horizon"),
		Log:      log,
	}, dc, nil
}

// parseScenario returns the scenario with the given name or
// index. Names are not case sensitive.
func parseScenario(name string) (iam.Scenario, error) {
	for i, s := range iam.Scenarios {
		if strings.EqualFold(name, s.String()) || name == fmt.Sprint(i) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown scenario %q", scc.ErrInvalidArgument, name)
}

// toIntSliceE converts a configuration value to a []int. The value
// may come from a configuration file, or it may be a JSON array if
// it was set from a command line argument.
func toIntSliceE(s interface{}) ([]int, error) {
	switch v := s.(type) {
	case nil:
		return nil, nil
	case []int:
		return v, nil
	case []interface{}:
		o := make([]int, len(v))
		for i, val := range v {
			var err error
			if o[i], err = cast.ToIntE(val); err != nil {
				return nil, err
			}
		}
		return o, nil
	case string:
		if empty(v) {
			return nil, nil
		}
		var o []int
		if err := json.Unmarshal([]byte(bracket(v)), &o); err != nil {
			return nil, err
		}
		return o, nil
	default:
		return cast.ToIntSliceE(s)
	}
}

// toFloat64SliceE converts a configuration value to a []float64 in
// the same way as toIntSliceE. Empty values return nil, which means
// the value was not specified.
func toFloat64SliceE(s interface{}) ([]float64, error) {
	switch v := s.(type) {
	case nil:
		return nil, nil
	case []float64:
		if len(v) == 0 {
			return nil, nil
		}
		return v, nil
	case []interface{}:
		if len(v) == 0 {
			return nil, nil
		}
		o := make([]float64, len(v))
		for i, val := range v {
			var err error
			if o[i], err = cast.ToFloat64E(val); err != nil {
				return nil, err
			}
		}
		return o, nil
	case string:
		if empty(v) {
			return nil, nil
		}
		var o []float64
		if err := json.Unmarshal([]byte(bracket(v)), &o); err != nil {
			return nil, err
		}
		return o, nil
	default:
		return nil, fmt.Errorf("invalid type %T for a list of numbers", s)
	}
}

func empty(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || s == "[]"
}

// bracket allows lists to be given without brackets, as in "2020,2030".
func bracket(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "[") {
		return s
	}
	return "[" + s + "]"
}
