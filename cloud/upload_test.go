/*
Copyright © 2018 the scc authors.
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

package cloud

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestIsBlob(t *testing.T) {
	for path, want := range map[string]bool{
		"gs://bucket/out": true,
		"s3://bucket/out": true,
		"file://test":     true,
		"output/SC-CO2":   false,
		"/tmp/output":     false,
	} {
		if got := IsBlob(path); got != want {
			t.Errorf("%s: want %v, got %v", path, want, got)
		}
	}
}

func TestStageLocal(t *testing.T) {
	u, err := Stage("output/run")
	if err != nil {
		t.Fatal(err)
	}
	if u != nil {
		t.Error("local directories should not be staged")
	}
}

func TestUpload(t *testing.T) {
	ctx := context.Background()
	os.Mkdir("test", os.ModePerm)
	defer os.RemoveAll("test")

	u, err := Stage("file://test")
	if err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(u.Dir, "SC-CO2"), os.ModePerm); err != nil {
		t.Fatal(err)
	}
	files := map[string]string{
		"trials.csv":               "ecs\n3\n",
		"SC-CO2/2020_0.03_0.0.csv": "IMAGE\n1.5\n",
	}
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(u.Dir, filepath.FromSlash(name)), []byte(data), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := u.Upload(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(u.Dir); !os.IsNotExist(err) {
		t.Error("staging directory should be removed after upload")
	}
	dir := t.TempDir()
	if err := Download(ctx, "file://test", dir, nil); err != nil {
		t.Fatal(err)
	}
	for name, want := range files {
		got, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(name)))
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != want {
			t.Errorf("%s: want %q, got %q", name, want, got)
		}
	}
}

func TestDownload(t *testing.T) {
	ctx := context.Background()
	root := filepath.ToSlash(t.TempDir())
	b, prefix, err := openBucket(ctx, "file://"+root)
	if err != nil {
		t.Fatal(err)
	}
	if prefix != "" {
		t.Errorf("file buckets should have no prefix, got %q", prefix)
	}
	for key, data := range map[string]string{
		"run/config.toml":    "model = \"FUND\"\n",
		"run/SC-CO2/a.csv":   "IMAGE\n1\n",
		"other/SC-CO2/b.csv": "IMAGE\n2\n",
	} {
		if err := b.WriteAll(ctx, key, []byte(data), nil); err != nil {
			t.Fatal(err)
		}
	}
	b.Close()

	dir := t.TempDir()
	if err := Download(ctx, "file://"+root+"/run", dir, nil); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"config.toml", filepath.Join("SC-CO2", "a.csv")} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Error(err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "SC-CO2", "b.csv")); !os.IsNotExist(err) {
		t.Error("files outside of the directory should not be downloaded")
	}

	if err := Download(ctx, "file://"+root+"/missing", t.TempDir(), nil); err == nil {
		t.Error("expected an error for an empty directory")
	}
	if err := Download(ctx, "ftp://bucket/run", t.TempDir(), nil); err == nil {
		t.Error("expected an error for an invalid provider")
	}
}
