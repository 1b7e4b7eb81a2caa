package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocation(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected Location
		remote   bool
	}{
		{"relative path", "backup.json", Location{Raw: "backup.json"}, false},
		{"absolute path", "/var/backups/data.json", Location{Raw: "/var/backups/data.json"}, false},
		{"object", "s3://backups/rtdb/2026-10-16.json", Location{Raw: "s3://backups/rtdb/2026-10-16.json", Bucket: "backups", Key: "rtdb/2026-10-16.json"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := ParseLocation(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, loc)
			assert.Equal(t, tt.remote, loc.IsRemote())
			assert.Equal(t, tt.raw, loc.String())
		})
	}
}

func TestParseLocation_Invalid(t *testing.T) {
	tests := []struct {
		raw string
		msg string
	}{
		{"", "location is required"},
		{"s3://", "bucket is required"},
		{"s3:///key.json", "bucket is required"},
		{"s3://bucket", "object key is required"},
		{"s3://bucket/", "object key is required"},
		{"s3://bucket/dir/", "object key is required"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			_, err := ParseLocation(tt.raw)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}
