package importapp

import (
	"context"

	"go.uber.org/zap"

	"github.com/welingtontavares15-hue/diversey-solicitacoes-pwa/internal/domain/shared"
	tabular "github.com/welingtontavares15-hue/diversey-solicitacoes-pwa/internal/infrastructure/import"
)

// ImportRequest describes one import run
type ImportRequest struct {
	File   string
	Sheet  string
	DryRun bool
}

// ImportResult summarises an import run
type ImportResult struct {
	TotalRows   int      `json:"total_rows"`
	ValidRows   int      `json:"valid_rows"`
	SkippedRows int      `json:"skipped_rows"`
	WrittenRows int      `json:"written_rows"`
	DryRun      bool     `json:"dry_run"`
	Collisions  []string `json:"collisions,omitempty"`
}

// TableLoader reads a tabular source
type TableLoader func(path, sheet string) (*tabular.Table, error)

// Option configures a PartImportService
type Option func(*PartImportService)

// WithDataRoot sets the subtree the catalog collection lives under
func WithDataRoot(root string) Option {
	return func(s *PartImportService) {
		if root != "" {
			s.dataRoot = root
		}
	}
}

// WithLoader replaces the file loader
func WithLoader(load TableLoader) Option {
	return func(s *PartImportService) {
		s.load = load
	}
}

// PartImportService loads a parts spreadsheet, normalizes it and upserts
// every accepted part into the catalog collection.
type PartImportService struct {
	store    shared.TreeStore
	load     TableLoader
	dataRoot string
	logger   *zap.Logger
}

// NewPartImportService creates a new PartImportService. The store is only
// touched when a run actually writes, so a lazily connecting store is never
// opened by a dry run.
func NewPartImportService(store shared.TreeStore, logger *zap.Logger, opts ...Option) *PartImportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &PartImportService{
		store:    store,
		load:     tabular.Load,
		dataRoot: shared.DataRoot,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Import runs load, normalize and, unless DryRun is set, write.
// On a write failure the returned result still reports how many parts were
// written before it.
func (s *PartImportService) Import(ctx context.Context, req ImportRequest) (*ImportResult, error) {
	log := s.logger.With(zap.String("file", req.File))

	table, err := s.load(req.File, req.Sheet)
	if err != nil {
		return nil, err
	}
	log.Info("Source loaded",
		zap.String("sheet", table.Sheet),
		zap.Int("rows", table.Len()),
		zap.Strings("columns", table.Headers),
	)

	normalized, err := Normalize(table)
	if err != nil {
		return nil, err
	}
	s.logIssues(log, normalized)

	result := &ImportResult{
		TotalRows:   normalized.TotalRows,
		ValidRows:   normalized.ValidRows(),
		SkippedRows: normalized.SkippedRows(),
		DryRun:      req.DryRun,
		Collisions:  normalized.Collisions,
	}
	log.Info("Rows validated",
		zap.Int("valid", result.ValidRows),
		zap.Int("skipped", result.SkippedRows),
	)

	if req.DryRun {
		log.Info("Dry run, nothing written", zap.Int("would_write", result.ValidRows))
		return result, nil
	}

	written, err := s.write(ctx, normalized)
	result.WrittenRows = written
	if err != nil {
		log.Error("Import aborted", zap.Int("written", written), zap.Error(err))
		return result, err
	}

	log.Info("Import completed", zap.Int("written", written))
	return result, nil
}

// write upserts parts one at a time and stops at the first failure
func (s *PartImportService) write(ctx context.Context, normalized *NormalizeResult) (int, error) {
	for i, part := range normalized.Parts {
		if err := ctx.Err(); err != nil {
			return i, err
		}

		path := part.Path(s.dataRoot)
		if err := s.store.Set(ctx, path, part); err != nil {
			if shared.CodeOf(err) != "" {
				return i, err
			}
			return i, shared.RemoteWriteError(path, err)
		}
		s.logger.Debug("Part written", zap.String("path", path))
	}
	return len(normalized.Parts), nil
}

func (s *PartImportService) logIssues(log *zap.Logger, normalized *NormalizeResult) {
	for _, issue := range normalized.Skipped.Errors() {
		log.Debug("Row skipped",
			zap.Int("row", issue.Row),
			zap.String("column", issue.Column),
			zap.String("code", issue.Code),
		)
	}
	for _, issue := range normalized.Warnings.Errors() {
		log.Debug("Row value ignored",
			zap.Int("row", issue.Row),
			zap.String("column", issue.Column),
			zap.String("code", issue.Code),
			zap.String("value", issue.Value),
			zap.String("reason", issue.Message),
		)
	}
	logSummary(log, "Rows skipped", normalized.Skipped)
	logSummary(log, "Row values ignored", normalized.Warnings)
	if len(normalized.Collisions) > 0 {
		log.Warn("Several rows share an id, the last one wins",
			zap.Strings("ids", normalized.Collisions),
		)
	}
}

func logSummary(log *zap.Logger, msg string, issues *tabular.ErrorCollection) {
	if issues.TotalCount() == 0 {
		return
	}
	log.Info(msg,
		zap.Int("count", issues.TotalCount()),
		zap.Any("by_code", issues.ErrorSummary()),
		zap.Bool("truncated", issues.IsTruncated()),
	)
	if issues.IsTruncated() {
		log.Debug("Issue list truncated",
			zap.Int("listed", len(issues.Errors())),
			zap.Int("omitted", issues.TotalCount()-len(issues.Errors())),
		)
	}
}
