package identity

import (
	"context"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/welingtontavares15-hue/diversey-solicitacoes-pwa/internal/domain/identity"
	"github.com/welingtontavares15-hue/diversey-solicitacoes-pwa/internal/domain/shared"
)

// SeedOption configures a SeedService
type SeedOption func(*SeedService)

// WithDataRoot sets the subtree the collections live under
func WithDataRoot(root string) SeedOption {
	return func(s *SeedService) {
		if root != "" {
			s.dataRoot = root
		}
	}
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) SeedOption {
	return func(s *SeedService) {
		s.now = now
	}
}

// WithRandom sets the source of salt bytes
func WithRandom(r io.Reader) SeedOption {
	return func(s *SeedService) {
		s.random = r
	}
}

// SeedService prepares a database for the web application: default
// settings, the base collections and one user account
type SeedService struct {
	store    shared.TreeStore
	dataRoot string
	now      func() time.Time
	random   io.Reader
	logger   *zap.Logger
}

// NewSeedService creates a new SeedService
func NewSeedService(store shared.TreeStore, logger *zap.Logger, opts ...SeedOption) *SeedService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &SeedService{
		store:    store,
		dataRoot: shared.DataRoot,
		now:      time.Now,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Seed validates the input, then writes settings and collections only where
// absent and creates or replaces the user document
func (s *SeedService) Seed(ctx context.Context, input SeedInput) (*SeedResult, error) {
	role, err := identity.ParseRole(input.Role)
	if err != nil {
		return nil, err
	}
	user, err := identity.NewUser(input.Username, input.DisplayName, input.Password, role, s.now(), s.random)
	if err != nil {
		return nil, err
	}

	settingsPath := shared.JoinPath(s.dataRoot, identity.SettingsNode)
	created, err := s.initIfAbsent(ctx, settingsPath, identity.DefaultSettings())
	if err != nil {
		return nil, err
	}
	if created {
		s.logger.Info("Default settings created", zap.String("path", settingsPath))
	}

	for _, name := range identity.BaseCollections {
		if _, err := s.initIfAbsent(ctx, shared.JoinPath(s.dataRoot, name), map[string]any{}); err != nil {
			return nil, err
		}
	}

	path := user.Path(s.dataRoot)
	if err := s.store.Set(ctx, path, user); err != nil {
		if shared.CodeOf(err) != "" {
			return nil, err
		}
		return nil, shared.RemoteWriteError(path, err)
	}

	s.logger.Info("User seeded",
		zap.String("user_key", user.Key()),
		zap.String("role", user.Role.String()),
	)
	return &SeedResult{
		UserKey:  user.Key(),
		Username: user.Username,
		Role:     user.Role.String(),
	}, nil
}

// initIfAbsent stores value at path unless something is already there and
// reports whether it did
func (s *SeedService) initIfAbsent(ctx context.Context, path string, value any) (bool, error) {
	created := false
	err := s.store.Transaction(ctx, path, func(current any) (any, error) {
		if current != nil {
			created = false
			return current, nil
		}
		created = true
		return value, nil
	})
	if err != nil {
		if shared.CodeOf(err) != "" {
			return false, err
		}
		return false, shared.RemoteWriteError(path, err)
	}
	return created, nil
}
