// Package backup copies the whole data subtree to and from JSON documents.
package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/welingtontavares15-hue/diversey-solicitacoes-pwa/internal/domain/shared"
)

// DocumentStore reads and writes whole documents by location. A location is
// a local path or an s3://bucket/key URL.
type DocumentStore interface {
	Read(ctx context.Context, location string) ([]byte, error)
	Write(ctx context.Context, location string, data []byte) error
}

// Result describes a finished backup or restore
type Result struct {
	Location    string `json:"location"`
	Bytes       int    `json:"bytes"`
	Collections int    `json:"collections"`
}

// Option configures a Service
type Option func(*Service)

// WithDataRoot sets the subtree that is backed up and restored
func WithDataRoot(root string) Option {
	return func(s *Service) {
		if root != "" {
			s.dataRoot = root
		}
	}
}

// Service backs up and restores the data subtree
type Service struct {
	tree     shared.TreeStore
	docs     DocumentStore
	dataRoot string
	logger   *zap.Logger
}

// NewService creates a new Service
func NewService(tree shared.TreeStore, docs DocumentStore, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		tree:     tree,
		docs:     docs,
		dataRoot: shared.DataRoot,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Backup reads the data subtree and writes it to out as indented JSON.
// An empty subtree is written as {}.
func (s *Service) Backup(ctx context.Context, out string) (*Result, error) {
	var tree any
	if err := s.tree.Get(ctx, s.dataRoot, &tree); err != nil {
		return nil, err
	}
	if tree == nil {
		tree = map[string]any{}
	}

	data, err := encode(tree)
	if err != nil {
		return nil, fmt.Errorf("failed to encode backup: %w", err)
	}

	if err := s.docs.Write(ctx, out, data); err != nil {
		return nil, err
	}

	result := &Result{Location: out, Bytes: len(data), Collections: countChildren(tree)}
	s.logger.Info("Backup written",
		zap.String("path", s.dataRoot),
		zap.String("location", out),
		zap.Int("bytes", result.Bytes),
		zap.Int("collections", result.Collections),
	)
	return result, nil
}

// Restore replaces the data subtree with the JSON object stored at in.
// Without force nothing is read or written. The document is fully
// validated before the tree store is touched.
func (s *Service) Restore(ctx context.Context, in string, force bool) (*Result, error) {
	if !force {
		return nil, shared.ErrForceRequired
	}

	data, err := s.docs.Read(ctx, in)
	if err != nil {
		return nil, err
	}

	payload, err := decodeObject(in, data)
	if err != nil {
		return nil, err
	}

	if err := s.tree.Set(ctx, s.dataRoot, payload); err != nil {
		if shared.CodeOf(err) != "" {
			return nil, err
		}
		return nil, shared.RemoteWriteError(s.dataRoot, err)
	}

	result := &Result{Location: in, Bytes: len(data), Collections: len(payload)}
	s.logger.Info("Restore completed",
		zap.String("path", s.dataRoot),
		zap.String("location", in),
		zap.Int("collections", result.Collections),
	)
	return result, nil
}

func encode(tree any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(tree); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeObject parses data as a single JSON object. Numbers stay
// json.Number so large integers are written back unchanged.
func decodeObject(location string, data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var root any
	if err := dec.Decode(&root); err != nil {
		return nil, shared.ParseError(location, err)
	}
	if err := dec.Decode(new(any)); !errors.Is(err, io.EOF) {
		return nil, shared.ParseError(location, errors.New("unexpected data after the JSON value"))
	}

	obj, ok := root.(map[string]any)
	if !ok {
		return nil, shared.NewDomainError(shared.CodeInvalidPayload,
			fmt.Sprintf("invalid JSON in %s: expected an object at the root", location))
	}
	return obj, nil
}

func countChildren(tree any) int {
	if obj, ok := tree.(map[string]any); ok {
		return len(obj)
	}
	return 0
}
