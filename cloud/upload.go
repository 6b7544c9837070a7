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
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/sirupsen/logrus"
)

// maxRetries is the number of times an upload is retried before giving up.
const maxRetries = 5

// Uploader copies a locally staged output directory to blob storage.
type Uploader struct {
	// Dir is the local staging directory.
	Dir string

	// Dest is the blob storage location that the
	// contents of Dir are uploaded to.
	Dest string

	Log logrus.FieldLogger
}

// Stage checks whether dest refers to a blob storage location.
// If it does, a temporary local directory is created and an
// Uploader is returned which will copy that directory's contents to
// dest when Upload is called. Otherwise, the returned Uploader is nil.
func Stage(dest string) (*Uploader, error) {
	if !IsBlob(dest) {
		return nil, nil
	}
	dir, err := os.MkdirTemp("", "scc")
	if err != nil {
		return nil, fmt.Errorf("scc/cloud: creating staging directory: %v", err)
	}
	return &Uploader{Dir: dir, Dest: dest}, nil
}

// Upload copies every file in the staging directory to the destination,
// retrying failed uploads with exponential backoff, and then removes
// the staging directory.
func (u *Uploader) Upload(ctx context.Context) error {
	log := u.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	bucket, prefix, err := openBucket(ctx, u.Dest)
	if err != nil {
		return fmt.Errorf("scc/cloud: opening bucket to upload to '%s': %v", u.Dest, err)
	}
	defer bucket.Close()

	var files []string
	err = filepath.Walk(u.Dir, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("scc/cloud: listing files to upload: %v", err)
	}

	for _, f := range files {
		rel, err := filepath.Rel(u.Dir, f)
		if err != nil {
			return err
		}
		key := path.Join(prefix, filepath.ToSlash(rel))
		b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRetries), ctx)
		err = backoff.RetryNotify(
			func() error {
				r, err := os.Open(f)
				if err != nil {
					return backoff.Permanent(fmt.Errorf("scc/cloud: opening file '%s' for upload: %v", f, err))
				}
				defer r.Close()
				return writeBlob(ctx, bucket, key, r)
			},
			b,
			func(err error, d time.Duration) {
				log.WithField("key", key).Warnf("%v: retrying in %v", err, d)
			},
		)
		if err != nil {
			return err
		}
		log.WithField("key", key).Debug("scc/cloud: uploaded file")
	}
	return os.RemoveAll(u.Dir)
}
