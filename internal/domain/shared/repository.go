package shared

import (
	"context"
	"strings"
)

// DataRoot is the subtree that holds every collection owned by the application
const DataRoot = "/data"

// UpdateFunc receives the current value at a path (nil when absent) and
// returns the value to store in its place.
type UpdateFunc func(current any) (any, error)

// TreeStore is the remote hierarchical JSON store addressed by
// slash-delimited paths.
type TreeStore interface {
	// Get decodes the value at path into dst. An absent path leaves dst
	// at its JSON null value.
	Get(ctx context.Context, path string, dst any) error
	// Set creates or fully replaces the value at path.
	Set(ctx context.Context, path string, value any) error
	// Transaction atomically replaces the value at path with fn's result.
	Transaction(ctx context.Context, path string, fn UpdateFunc) error
}

// JoinPath joins path segments with single slashes and a leading slash
func JoinPath(segments ...string) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		for _, p := range strings.Split(s, "/") {
			if p != "" {
				parts = append(parts, p)
			}
		}
	}
	return "/" + strings.Join(parts, "/")
}

// SplitPath returns the non-empty segments of a slash-delimited path
func SplitPath(path string) []string {
	var parts []string
	for _, p := range strings.Split(path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}
