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

// Package cloud saves simulation output to blob storage.
package cloud

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"

	// Register the gs:// and s3:// URL openers.
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/s3blob"
)

// IsBlob returns whether path refers to a blob storage location
// rather than a local directory.
func IsBlob(path string) bool {
	return strings.HasPrefix(path, "gs://") || strings.HasPrefix(path, "s3://") || strings.HasPrefix(path, "file://")
}

// openBucket opens the blob storage bucket that location is in and
// returns the key prefix of location within the bucket. location must
// be in the format 'provider://name/path' where provider is the name
// of the storage provider. The currently accepted storage providers are
// "file" for the local filesystem (e.g., for testing), "gs" for Google
// Cloud Storage, and "s3" for AWS S3.
// For "file", the whole path is the bucket directory, and it is created
// if it does not exist. For the other providers, the host part of the
// location is the bucket and credentials are taken from the environment.
func openBucket(ctx context.Context, location string) (*blob.Bucket, string, error) {
	u, err := url.Parse(location)
	if err != nil {
		return nil, "", fmt.Errorf("scc/cloud: opening bucket %s: %v", location, err)
	}
	switch u.Scheme {
	case "file":
		dir := u.Host + u.Path
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return nil, "", fmt.Errorf("scc/cloud: opening bucket %s: %v", location, err)
		}
		b, err := fileblob.OpenBucket(dir, nil)
		return b, "", err
	case "gs", "s3":
		b, err := blob.OpenBucket(ctx, u.Scheme+"://"+u.Host)
		if err != nil {
			return nil, "", fmt.Errorf("scc/cloud: opening bucket %s: %v", location, err)
		}
		return b, strings.Trim(u.Path, "/"), nil
	default:
		return nil, "", fmt.Errorf("scc/cloud: invalid storage provider %s", u.Scheme)
	}
}
