// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tfctl/csvdiff/internal/aws"
	"github.com/tfctl/csvdiff/internal/cacheutil"
	"github.com/tfctl/csvdiff/internal/log"
)

// Ext is appended to every Location name.
const Ext = ".csv"

// ErrNotFound wraps failures to locate an input file.
var ErrNotFound = errors.New("csv file not found")

// Location names a CSV file by directory and base name. Dir may be a local
// path or an s3://bucket/prefix URI. An empty Dir means the working directory.
type Location struct {
	Dir  string
	Name string
}

// String returns the full path or URI of the file.
func (l Location) String() string {
	if l.IsRemote() {
		return aws.JoinKey(l.Dir, l.file())
	}
	return filepath.Join(l.Dir, l.file())
}

// IsRemote reports whether the location lives in S3.
func (l Location) IsRemote() bool {
	return strings.HasPrefix(l.Dir, "s3://")
}

// file returns the base name with Ext appended. A name that already carries
// the extension is left alone.
func (l Location) file() string {
	if strings.HasSuffix(strings.ToLower(l.Name), Ext) {
		return l.Name
	}
	return l.Name + Ext
}

// Reader fetches the bytes behind a Location.
type Reader struct {
	// S3 is consulted for remote Locations. Nil means remote Locations fail.
	S3 aws.ObjectAPI
	// CacheHours is the purge horizon for the download cache; <= 0 skips
	// purging.
	CacheHours int
}

// ReadAll returns the full contents of loc.
func (r *Reader) ReadAll(ctx context.Context, loc Location) ([]byte, error) {
	if loc.Name == "" {
		return nil, fmt.Errorf("%w: empty file name", ErrNotFound)
	}

	if loc.IsRemote() {
		return r.readRemote(ctx, loc)
	}

	data, err := os.ReadFile(loc.String())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, loc)
		}
		return nil, fmt.Errorf("failed to read %s: %w", loc, err)
	}
	log.Debugf("local csv read: path=%s, len=%d", loc, len(data))
	return data, nil
}

// readRemote fetches an S3 object, consulting the download cache keyed on
// the object's URI and ETag.
func (r *Reader) readRemote(ctx context.Context, loc Location) ([]byte, error) {
	if r.S3 == nil {
		return nil, fmt.Errorf("no s3 client configured for %s", loc)
	}

	bucket, key, err := aws.ParseURI(loc.String())
	if err != nil {
		return nil, err
	}

	if err := cacheutil.Purge(r.CacheHours); err != nil {
		log.WithError(err).Warn("failed to purge cache")
	}

	etag, err := aws.ETag(ctx, r.S3, bucket, key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	cacheKey := loc.String() + "#" + etag
	if etag != "" {
		if entry, ok := cacheutil.Read([]string{"s3", bucket}, cacheKey); ok {
			return entry.Data, nil
		}
	}

	data, err := aws.GetObject(ctx, r.S3, bucket, key)
	if err != nil {
		return nil, err
	}

	if etag != "" {
		if err := cacheutil.Write([]string{"s3", bucket}, cacheKey, data); err != nil {
			log.WithError(err).Error("error writing to cache")
		}
	}

	return data, nil
}
