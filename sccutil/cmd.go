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

// Package sccutil provides the command-line interface
// for social cost of carbon calculations.
package sccutil

import (
	"context"
	"fmt"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/scc"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to the program.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "log_level",
			usage: `
              log_level sets the logging verbosity. Valid options are
              "debug", "info", "warn", and "error".`,
			defaultVal: "info",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "model",
			usage: `
              model specifies the integrated assessment model to use.
              Valid options are "DICE", "FUND", and "PAGE".`,
			shorthand:  "m",
			defaultVal: "FUND",
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), computeCmd.Flags()},
		},
		{
			name: "gas",
			usage: `
              gas specifies the greenhouse gas to calculate the social
              cost of. Valid options are "CO2", "CH4", and "N2O".
              If it is not set, CO2 is used.`,
			shorthand:  "g",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), computeCmd.Flags()},
		},
		{
			name: "trials",
			usage: `
              trials is the number of Monte Carlo trials to run.`,
			shorthand:  "n",
			defaultVal: 10000,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "perturbation_years",
			usage: `
              perturbation_years are the emissions years to calculate
              the social cost for. Years that are not model timesteps
              are calculated by interpolation.`,
			defaultVal: scc.DefaultPerturbationYears,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "discount_rates",
			usage: `
              discount_rates are constant discount rates. This option is
              deprecated: use prtp with eta = 0 instead. If it is set,
              prtp and eta are ignored.`,
			defaultVal: []float64{},
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "prtp",
			usage: `
              prtp are the pure rates of time preference to discount
              damages with. If it is not set, the values are 0.025,
              0.03, and 0.05.`,
			defaultVal: []float64{},
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), computeCmd.Flags()},
		},
		{
			name: "eta",
			usage: `
              eta are the elasticities of marginal utility of consumption
              to discount damages with. If it is not set, the value is 0,
              which gives constant discounting.`,
			defaultVal: []float64{},
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), computeCmd.Flags()},
		},
		{
			name: "domestic",
			usage: `
              domestic specifies whether to also calculate the domestic
              social cost.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "output_dir",
			usage: `
              output_dir is the directory to save results in. It can be
              a local directory or a blob storage location beginning with
              gs://, s3://, or file://. If it is not set, a new directory
              is created in ./output.`,
			shorthand:  "o",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), tablesCmd.Flags()},
		},
		{
			name: "save_trials",
			usage: `
              save_trials specifies whether to save the sampled parameter
              values for each trial to trials.csv.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "tables",
			usage: `
              tables specifies whether to create summary tables
              after the simulation finishes.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "drop_discontinuities",
			usage: `
              drop_discontinuities specifies whether to exclude trials
              where the base and marginal PAGE runs triggered the damage
              discontinuity in different timesteps from the summary tables.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), tablesCmd.Flags()},
		},
		{
			name: "plots",
			usage: `
              plots specifies whether to create box plots of the results
              along with the summary tables.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), tablesCmd.Flags()},
		},
		{
			name: "seed",
			usage: `
              seed seeds the random number generator used to sample
              the uncertain parameters.`,
			defaultVal: 0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "workers",
			usage: `
              workers is the number of trials to run in parallel.
              If it is less than 1, the number of processors is used.`,
			defaultVal: 0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "progress",
			usage: `
              progress specifies whether to display a progress bar.`,
			defaultVal: true,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "scenario",
			usage: `
              scenario is the socioeconomic scenario to use. Valid options
              are "IMAGE", "MERGE Optimistic", "MESSAGE", "MiniCAM Base",
              and "5th Scenario".`,
			shorthand:  "s",
			defaultVal: "IMAGE",
			flagsets:   []*pflag.FlagSet{computeCmd.Flags()},
		},
		{
			name: "year",
			usage: `
              year is the emissions year to calculate the social cost for.`,
			defaultVal: 2020,
			flagsets:   []*pflag.FlagSet{computeCmd.Flags()},
		},
		{
			name: "horizon",
			usage: `
              horizon is the last year of damages to include. If it is 0,
              the model default is used.`,
			defaultVal: 0,
			flagsets:   []*pflag.FlagSet{computeCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("SCC")
	Cfg.AutomaticEnv()

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			case []int:
				if option.shorthand == "" {
					set.IntSlice(option.name, option.defaultVal.([]int), option.usage)
				} else {
					set.IntSliceP(option.name, option.shorthand, option.defaultVal.([]int), option.usage)
				}
			case []float64:
				if option.shorthand == "" {
					set.Float64Slice(option.name, option.defaultVal.([]float64), option.usage)
				} else {
					set.Float64SliceP(option.name, option.shorthand, option.defaultVal.([]float64), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(runCmd)
	Root.AddCommand(computeCmd)
	Root.AddCommand(tablesCmd)
}

// setConfig finds and reads in the configuration file, if there is one,
// and sets the logging level.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("scc: problem reading configuration file: %v", err)
		}
	}
	level, err := logrus.ParseLevel(Cfg.GetString("log_level"))
	if err != nil {
		return fmt.Errorf("scc: %v", err)
	}
	logrus.SetLevel(level)
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "scc",
	Short: "Social cost of greenhouse gases.",
	Long: `scc calculates the social cost of carbon dioxide, methane, and nitrous
oxide by Monte Carlo simulation of the DICE, FUND, and PAGE integrated
assessment models.
Use the subcommands specified below to access the functionality.

Refer to the subcommand documentation for configuration options and default settings.
Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'SCC_var' where 'var' is the
name of the variable to be set.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of scc.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("scc v%s\n", scc.Version)
	},
	DisableAutoGenTag: true,
}

// runCmd runs a Monte Carlo simulation.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a Monte Carlo simulation.",
	Long: `run calculates the distribution of the social cost of a greenhouse gas
for every socioeconomic scenario, perturbation year, and discounting
configuration, and saves the results for each trial to output_dir.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		model, err := scc.ParseModelChoice(Cfg.GetString("model"))
		if err != nil {
			return err
		}
		opts, err := runOptions(Cfg)
		if err != nil {
			return err
		}
		return scc.RunSCC(commandContext(cmd), model, *opts)
	},
	DisableAutoGenTag: true,
}

// computeCmd calculates the social cost with central parameter values.
var computeCmd = &cobra.Command{
	Use:   "compute",
	Short: "Calculate a single social cost value.",
	Long: `compute calculates the social cost of a greenhouse gas for one scenario
and emissions year using the central values of the uncertain model
parameters, and prints the result for every discounting configuration.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		model, err := scc.ParseModelChoice(Cfg.GetString("model"))
		if err != nil {
			return err
		}
		opts, dc, err := computeOptions(Cfg)
		if err != nil {
			return err
		}
		ctx := commandContext(cmd)
		for _, prtp := range dc.PRTP {
			for _, eta := range dc.ETA {
				opts.PRTP, opts.ETA = prtp, eta
				v, err := scc.ComputeSCC(ctx, model, *opts)
				if err != nil {
					return err
				}
				cmd.Printf("prtp=%g eta=%g: %.2f $/t\n", prtp, eta, v)
			}
		}
		return nil
	},
	DisableAutoGenTag: true,
}

// tablesCmd summarizes the results of a previous run.
var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Create summary tables.",
	Long: `tables creates percentile, standard error, and summary tables
from the results saved in output_dir by a previous run. output_dir
can be a local directory or a blob storage location.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := Cfg.GetString("output_dir")
		if dir == "" {
			return fmt.Errorf("scc: output_dir must be specified")
		}
		return scc.MakeTables(commandContext(cmd), dir, Cfg.GetBool("drop_discontinuities"), Cfg.GetBool("plots"), logrus.StandardLogger())
	},
	DisableAutoGenTag: true,
}

func commandContext(cmd *cobra.Command) context.Context {
	if cmd != nil && cmd.Context() != nil {
		return cmd.Context()
	}
	return context.Background()
}
