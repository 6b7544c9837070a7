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

package mcs

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/gosuri/uiprogress"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/scc/iam"
	"golang.org/x/sync/errgroup"
)

// ScenarioFunc configures models for scenario s before a trial is run.
type ScenarioFunc func(models []iam.Model, s iam.Scenario)

// PostTrialFunc runs models for trial t under the scenario with index
// scenario in Config.Scenarios and stores the results in payload.
// Calls for different (trial, scenario) pairs may happen concurrently,
// so a PostTrialFunc must only modify the part of payload that
// belongs to its own pair.
type PostTrialFunc func(ctx context.Context, models []iam.Model, t Trial, scenario int, payload interface{}) error

// Config specifies a simulation.
type Config struct {
	Definition *Definition

	// Models are the model instances that make up one
	// simulation unit, e.g. a base model and a marginal model.
	// Each worker runs its own clones of them.
	Models []iam.Model

	Trials int
	Seed   uint64

	// Scenarios are run for every trial.
	Scenarios []iam.Scenario

	ScenarioFunc  ScenarioFunc
	PostTrialFunc PostTrialFunc

	// Payload is passed to every PostTrialFunc call and returned
	// by Execute.
	Payload interface{}

	// Workers is the number of trials to run at once.
	// It defaults to GOMAXPROCS.
	Workers int

	// TrialsFile, if not empty, is where the sampled parameter
	// values are saved.
	TrialsFile string

	// Progress specifies whether to show a progress bar.
	Progress bool

	Log logrus.FieldLogger
}

type task struct {
	trial, scenario int
}

// Execute runs every trial under every scenario and returns the payload.
// The ScenarioFunc and PostTrialFunc are each called exactly once for
// every (trial, scenario) pair. The first error stops the simulation.
func Execute(ctx context.Context, c *Config) (interface{}, error) {
	if c.Trials < 1 {
		return nil, fmt.Errorf("mcs: number of trials must be at least 1, got %d", c.Trials)
	}
	if len(c.Scenarios) == 0 {
		return nil, fmt.Errorf("mcs: no scenarios")
	}
	if c.Definition == nil {
		c.Definition = NewDefinition()
	}
	log := c.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	workers := c.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(-1)
	}
	ntasks := c.Trials * len(c.Scenarios)
	if workers > ntasks {
		workers = ntasks
	}

	trials := Sample(c.Definition, c.Trials, c.Seed)
	if c.TrialsFile != "" {
		f, err := os.Create(c.TrialsFile)
		if err != nil {
			return nil, fmt.Errorf("mcs: %v", err)
		}
		if err := WriteTrials(f, c.Definition, trials); err != nil {
			f.Close()
			return nil, err
		}
		if err := f.Close(); err != nil {
			return nil, fmt.Errorf("mcs: %v", err)
		}
	}

	var bar *uiprogress.Bar
	if c.Progress {
		p := uiprogress.New()
		p.Start()
		defer p.Stop()
		bar = p.AddBar(ntasks).AppendCompleted().PrependElapsed()
	}

	log.WithFields(logrus.Fields{
		"trials":    c.Trials,
		"scenarios": len(c.Scenarios),
		"workers":   workers,
	}).Info("mcs: starting simulation")

	g, ctx := errgroup.WithContext(ctx)
	taskChan := make(chan task)
	g.Go(func() error {
		defer close(taskChan)
		for s := range c.Scenarios {
			for t := range trials {
				select {
				case taskChan <- task{trial: t, scenario: s}:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		}
		return nil
	})
	for w := 0; w < workers; w++ {
		models := make([]iam.Model, len(c.Models))
		for i, m := range c.Models {
			models[i] = m.Clone()
		}
		g.Go(func() error {
			for tk := range taskChan {
				if err := ctx.Err(); err != nil {
					return err
				}
				t := trials[tk.trial]
				for _, m := range models {
					m.SetParameters(t.Values)
				}
				if c.ScenarioFunc != nil {
					c.ScenarioFunc(models, c.Scenarios[tk.scenario])
				}
				if c.PostTrialFunc != nil {
					if err := c.PostTrialFunc(ctx, models, t, tk.scenario, c.Payload); err != nil {
						return fmt.Errorf("mcs: trial %d, scenario %v: %w", t.Index, c.Scenarios[tk.scenario], err)
					}
				}
				if bar != nil {
					bar.Incr()
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	log.Info("mcs: simulation finished")
	return c.Payload, nil
}
