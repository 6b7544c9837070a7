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
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/sirupsen/logrus"
	"gocloud.dev/blob"
)

// readBlob reads the given blob from the given bucket.
func readBlob(ctx context.Context, bucket *blob.Bucket, key string) ([]byte, error) {
	var b bytes.Buffer
	r, err := bucket.NewReader(ctx, key, nil)
	if err != nil {
		return nil, fmt.Errorf("scc/cloud: reading blob %s: %v", key, err)
	}
	defer r.Close()
	_, err = io.Copy(&b, r)
	if err != nil {
		return nil, fmt.Errorf("scc/cloud: reading blob %s: %v", key, err)
	}
	return b.Bytes(), nil
}

// writeBlob writes the contents of r to the given key in the given bucket.
func writeBlob(ctx context.Context, bucket *blob.Bucket, key string, r io.Reader) error {
	w, err := bucket.NewWriter(ctx, key, &blob.WriterOptions{})
	if err != nil {
		return fmt.Errorf("scc/cloud: creating writer for blob %s: %v", key, err)
	}
	if _, err = io.Copy(w, r); err != nil {
		w.Close()
		return fmt.Errorf("scc/cloud: copying blob %s: %v", key, err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("scc/cloud: writing blob %s: %v", key, err)
	}
	return nil
}

// Download copies every file in the blob storage directory src into
// the local directory dir, retrying failed reads with exponential
// backoff. It returns an error if src contains no files.
func Download(ctx context.Context, src, dir string, log logrus.FieldLogger) error {
	if log == nil {
		log = logrus.StandardLogger()
	}
	bucket, prefix, err := openBucket(ctx, src)
	if err != nil {
		return err
	}
	defer bucket.Close()

	opts := new(blob.ListOptions)
	if prefix != "" {
		opts.Prefix = prefix + "/"
	}
	iter := bucket.List(opts)
	n := 0
	for {
		obj, err := iter.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("scc/cloud: listing files in %s: %v", src, err)
		}
		if obj.IsDir {
			continue
		}
		var data []byte
		b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRetries), ctx)
		err = backoff.RetryNotify(
			func() error {
				var err error
				data, err = readBlob(ctx, bucket, obj.Key)
				return err
			},
			b,
			func(err error, d time.Duration) {
				log.WithField("key", obj.Key).Warnf("%v: retrying in %v", err, d)
			},
		)
		if err != nil {
			return err
		}
		name := filepath.Join(dir, filepath.FromSlash(strings.TrimPrefix(obj.Key, opts.Prefix)))
		if err := os.MkdirAll(filepath.Dir(name), os.ModePerm); err != nil {
			return fmt.Errorf("scc/cloud: %v", err)
		}
		if err := os.WriteFile(name, data, 0644); err != nil {
			return fmt.Errorf("scc/cloud: %v", err)
		}
		n++
	}
	if n == 0 {
		return fmt.Errorf("scc/cloud: no files found in %s", src)
	}
	log.WithField("src", src).Debugf("scc/cloud: downloaded %d files", n)
	return nil
}
