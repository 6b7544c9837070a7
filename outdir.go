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
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/scc/cloud"
	"github.com/spatialmodel/scc/internal/hash"
	"github.com/spatialmodel/scc/tables"
)

// defaultOutputDir returns the output directory name used when
// none is specified.
func defaultOutputDir(model ModelChoice, gas Gas, trials int, now time.Time) string {
	name := fmt.Sprintf("SC-%s_MCS_%s_%d_%s", gas, model, trials, now.Format("2006-01-02_15-04-05"))
	return filepath.Join("output", name)
}

// createOutputDir creates dir. If unique is true and dir already
// exists, a numeric suffix is added to the name so that results from
// another run are never overwritten. It returns the directory that
// was created.
func createOutputDir(dir string, unique bool) (string, error) {
	if !unique {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return "", fmt.Errorf("scc: creating output directory: %v", err)
		}
		return dir, nil
	}
	if err := os.MkdirAll(filepath.Dir(dir), os.ModePerm); err != nil {
		return "", fmt.Errorf("scc: creating output directory: %v", err)
	}
	for i := 0; ; i++ {
		d := dir
		if i > 0 {
			d = fmt.Sprintf("%s-%d", dir, i)
		}
		err := os.Mkdir(d, os.ModePerm)
		if err == nil {
			return d, nil
		}
		if !os.IsExist(err) {
			return "", fmt.Errorf("scc: creating output directory: %v", err)
		}
	}
}

// runKey holds the settings that determine the results of a run.
type runKey struct {
	Model     string
	Gas       Gas
	Trials    int
	Years     []int
	PRTP, ETA []float64
	Domestic  bool
	Seed      uint64
}

// runID returns a key that is the same for all runs whose
// results are the same.
func runID(model ModelChoice, opts *Options) string {
	return hash.Hash(runKey{
		Model:    model.String(),
		Gas:      opts.Gas,
		Trials:   opts.Trials,
		Years:    opts.PerturbationYears,
		PRTP:     opts.PRTP,
		ETA:      opts.ETA,
		Domestic: opts.Domestic,
		Seed:     opts.Seed,
	})
}

// manifest records the settings a run was carried out with.
type manifest struct {
	Model   string   `toml:"model"`
	Version string   `toml:"version"`
	RunID   string   `toml:"run_id"`
	Options *Options `toml:"options"`
}

// writeManifest writes the run settings to config.toml in dir.
func writeManifest(dir string, model ModelChoice, id string, opts *Options) error {
	f, err := os.Create(filepath.Join(dir, "config.toml"))
	if err != nil {
		return fmt.Errorf("scc: writing run configuration: %v", err)
	}
	err = toml.NewEncoder(f).Encode(manifest{
		Model:   model.String(),
		Version: Version,
		RunID:   id,
		Options: opts,
	})
	if err != nil {
		f.Close()
		return fmt.Errorf("scc: writing run configuration: %v", err)
	}
	return f.Close()
}

// readManifest reads the settings of the run whose results are in dir.
func readManifest(dir string) (*manifest, error) {
	m := new(manifest)
	if _, err := toml.DecodeFile(filepath.Join(dir, "config.toml"), m); err != nil {
		return nil, fmt.Errorf("scc: reading run configuration: %v", err)
	}
	if m.Options == nil {
		return nil, fmt.Errorf("scc: run configuration in %s has no options", dir)
	}
	return m, nil
}

// MakeTables creates summary tables from the results of a previous
// run saved in dir, which can be a local directory or a blob storage
// location. Blob results are downloaded to a staging directory and
// the tables are uploaded back to dir. dropDiscontinuities only has
// an effect for PAGE.
func MakeTables(ctx context.Context, dir string, dropDiscontinuities, plots bool, log logrus.FieldLogger) error {
	if log == nil {
		log = logrus.StandardLogger()
	}
	uploader, err := cloud.Stage(dir)
	if err != nil {
		return err
	}
	local := dir
	if uploader != nil {
		uploader.Log = log
		local = uploader.Dir
		defer os.RemoveAll(local)
		if err := cloud.Download(ctx, dir, local, log); err != nil {
			return err
		}
	}
	m, err := readManifest(local)
	if err != nil {
		return err
	}
	model, err := ParseModelChoice(m.Model)
	if err != nil {
		return err
	}
	o := m.Options
	err = tables.Make(&tables.Config{
		Dir:                 local,
		Gas:                 string(o.Gas),
		PRTP:                o.PRTP,
		ETA:                 o.ETA,
		Years:               o.PerturbationYears,
		Domestic:            o.Domestic,
		DropDiscontinuities: dropDiscontinuities && model == PAGE,
		Plots:               plots,
		Log:                 log.WithField("run_id", m.RunID),
	})
	if err != nil {
		return err
	}
	if uploader != nil {
		return uploader.Upload(ctx)
	}
	return nil
}
