// Package storage reads and writes whole documents, such as database
// backups, on the local filesystem or in S3-compatible object storage.
package storage

import (
	"errors"
	"fmt"
	"strings"
)

// S3Scheme prefixes object storage locations, as in s3://bucket/key
const S3Scheme = "s3://"

// Location is where a document lives: a local path, or a bucket and key
type Location struct {
	Raw    string
	Bucket string
	Key    string
}

// ParseLocation parses a local path or an s3://bucket/key location
func ParseLocation(raw string) (Location, error) {
	if raw == "" {
		return Location{}, errors.New("location is required")
	}
	if !strings.HasPrefix(raw, S3Scheme) {
		return Location{Raw: raw}, nil
	}

	bucket, key, _ := strings.Cut(strings.TrimPrefix(raw, S3Scheme), "/")
	if bucket == "" {
		return Location{}, fmt.Errorf("invalid location %q: bucket is required", raw)
	}
	if key == "" || strings.HasSuffix(key, "/") {
		return Location{}, fmt.Errorf("invalid location %q: object key is required", raw)
	}
	return Location{Raw: raw, Bucket: bucket, Key: key}, nil
}

// IsRemote reports whether the location is in object storage
func (l Location) IsRemote() bool {
	return l.Bucket != ""
}

// String returns the location as given
func (l Location) String() string {
	return l.Raw
}
