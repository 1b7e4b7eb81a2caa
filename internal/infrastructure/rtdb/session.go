// Package rtdb provides shared.TreeStore implementations: a lazily
// connected Firebase Realtime Database session and an in-memory tree.
package rtdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/db"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"

	"github.com/welingtontavares15-hue/diversey-solicitacoes-pwa/internal/domain/shared"
	"github.com/welingtontavares15-hue/diversey-solicitacoes-pwa/internal/infrastructure/config"
)

// Ensure Session implements shared.TreeStore
var _ shared.TreeStore = (*Session)(nil)

// Dialer opens a database client from connection settings
type Dialer func(ctx context.Context, cfg config.RTDBConfig) (*db.Client, error)

// Session holds at most one database client per process. The client is
// created by the first Connect, explicit or implied by Get, Set or
// Transaction, and reused afterwards.
type Session struct {
	cfg    config.RTDBConfig
	dial   Dialer
	logger *zap.Logger

	mu     sync.Mutex
	client *db.Client
}

// SessionOption is a functional option for configuring Session
type SessionOption func(*Session)

// WithLogger sets a custom logger for Session
func WithLogger(logger *zap.Logger) SessionOption {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithDialer replaces the Firebase dialer
func WithDialer(dial Dialer) SessionOption {
	return func(s *Session) {
		s.dial = dial
	}
}

// NewSession creates an unconnected session
func NewSession(cfg config.RTDBConfig, opts ...SessionOption) *Session {
	s := &Session{
		cfg:    cfg,
		dial:   DialFirebase,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// databaseScopes are the OAuth2 scopes a Realtime Database client needs
var databaseScopes = []string{
	"https://www.googleapis.com/auth/cloud-platform",
	"https://www.googleapis.com/auth/firebase.database",
	"https://www.googleapis.com/auth/userinfo.email",
}

type serviceAccountKey struct {
	Type        string `json:"type"`
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
}

// LoadCredentials reads a service account file and mints a first token, so
// a malformed key or a refused account fails before any database call
func LoadCredentials(ctx context.Context, path string) (*google.Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("service account %s: %w", path, err)
	}

	var key serviceAccountKey
	if err := json.Unmarshal(data, &key); err != nil {
		return nil, fmt.Errorf("service account %s is not valid JSON: %w", path, err)
	}
	if key.Type != "service_account" {
		return nil, fmt.Errorf("service account %s has type %q, want service_account", path, key.Type)
	}
	if key.ClientEmail == "" || key.PrivateKey == "" {
		return nil, fmt.Errorf("service account %s lacks client_email or private_key", path)
	}

	creds, err := google.CredentialsFromJSON(ctx, data, databaseScopes...)
	if err != nil {
		return nil, fmt.Errorf("service account %s: %w", path, err)
	}
	if _, err := creds.TokenSource.Token(); err != nil {
		return nil, fmt.Errorf("service account %s rejected: %w", path, err)
	}
	return creds, nil
}

// DialFirebase validates the service account, initialises a Firebase app
// with it and returns its Realtime Database client
func DialFirebase(ctx context.Context, cfg config.RTDBConfig) (*db.Client, error) {
	creds, err := LoadCredentials(ctx, cfg.ServiceAccount)
	if err != nil {
		return nil, err
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{
		DatabaseURL: cfg.DatabaseURL,
		ProjectID:   creds.ProjectID,
	}, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("failed to initialise firebase app: %w", err)
	}

	client, err := app.Database(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create database client: %w", err)
	}
	return client, nil
}

// remoteError reports a failed call at path through wrap, unless the
// failure was a refused token, which is an AUTH_ERROR
func remoteError(path string, err error, wrap func(string, error) error) error {
	var retrieve *oauth2.RetrieveError
	if errors.As(err, &retrieve) {
		return shared.AuthError(err)
	}
	return wrap(path, err)
}

// Connect establishes the client if none exists yet. Credential and
// connection failures are reported as AUTH_ERROR.
func (s *Session) Connect(ctx context.Context) error {
	_, err := s.connect(ctx)
	return err
}

// Connected reports whether a client has been established
func (s *Session) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.client != nil
}

func (s *Session) connect(ctx context.Context) (*db.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client != nil {
		return s.client, nil
	}

	if s.cfg.ServiceAccount == "" {
		return nil, shared.AuthError(errors.New("service account path is required"))
	}
	if s.cfg.DatabaseURL == "" {
		return nil, shared.AuthError(errors.New("database URL is required"))
	}
	info, err := os.Stat(s.cfg.ServiceAccount)
	if err != nil {
		return nil, shared.AuthError(fmt.Errorf("service account %s: %w", s.cfg.ServiceAccount, err))
	}
	if info.IsDir() {
		return nil, shared.AuthError(fmt.Errorf("service account %s is a directory", s.cfg.ServiceAccount))
	}

	client, err := s.dial(ctx, s.cfg)
	if err != nil {
		return nil, shared.AuthError(err)
	}

	s.client = client
	s.logger.Info("Connected to database", zap.String("database_url", s.cfg.DatabaseURL))
	return client, nil
}

// ref connects if needed and returns a call context bounded by the
// configured timeout
func (s *Session) ref(ctx context.Context, path string) (*db.Ref, context.Context, context.CancelFunc, error) {
	client, err := s.connect(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	cancel := context.CancelFunc(func() {})
	if s.cfg.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
	}
	return client.NewRef(path), ctx, cancel, nil
}

// Get decodes the value at path into dst
func (s *Session) Get(ctx context.Context, path string, dst any) error {
	ref, ctx, cancel, err := s.ref(ctx, path)
	if err != nil {
		return err
	}
	defer cancel()

	if err := ref.Get(ctx, dst); err != nil {
		return remoteError(path, err, shared.RemoteReadError)
	}
	return nil
}

// Set creates or fully replaces the value at path
func (s *Session) Set(ctx context.Context, path string, value any) error {
	ref, ctx, cancel, err := s.ref(ctx, path)
	if err != nil {
		return err
	}
	defer cancel()

	if err := ref.Set(ctx, value); err != nil {
		return remoteError(path, err, shared.RemoteWriteError)
	}
	return nil
}

// Transaction replaces the value at path with fn's result, retrying on
// concurrent modification as the database client does
func (s *Session) Transaction(ctx context.Context, path string, fn shared.UpdateFunc) error {
	ref, ctx, cancel, err := s.ref(ctx, path)
	if err != nil {
		return err
	}
	defer cancel()

	err = ref.Transaction(ctx, func(node db.TransactionNode) (interface{}, error) {
		var current any
		if err := node.Unmarshal(&current); err != nil {
			return nil, err
		}
		return fn(current)
	})
	if err != nil {
		return remoteError(path, err, shared.RemoteWriteError)
	}
	return nil
}
