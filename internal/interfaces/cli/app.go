// Package cli builds the cobra commands of the data tools and maps their
// errors to exit codes.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/welingtontavares15-hue/diversey-solicitacoes-pwa/internal/application/backup"
	"github.com/welingtontavares15-hue/diversey-solicitacoes-pwa/internal/domain/shared"
	"github.com/welingtontavares15-hue/diversey-solicitacoes-pwa/internal/infrastructure/config"
	"github.com/welingtontavares15-hue/diversey-solicitacoes-pwa/internal/infrastructure/logger"
	"github.com/welingtontavares15-hue/diversey-solicitacoes-pwa/internal/infrastructure/rtdb"
	"github.com/welingtontavares15-hue/diversey-solicitacoes-pwa/internal/infrastructure/storage"
)

// StoreFactory creates the tree store for a run. The store must not
// connect before its first call.
type StoreFactory func(cfg config.RTDBConfig, log *zap.Logger) shared.TreeStore

// DocumentsFactory creates the document store used by backup and restore
type DocumentsFactory func(cfg *config.Config, log *zap.Logger) backup.DocumentStore

// App holds what the commands share: output streams and factories
type App struct {
	stdout       io.Writer
	stderr       io.Writer
	envFile      string
	newStore     StoreFactory
	newDocuments DocumentsFactory
}

// AppOption configures an App
type AppOption func(*App)

// WithOutput redirects results and logs
func WithOutput(stdout, stderr io.Writer) AppOption {
	return func(a *App) {
		a.stdout = stdout
		a.stderr = stderr
	}
}

// WithEnvFile sets the dotenv file read at startup; "" disables it
func WithEnvFile(path string) AppOption {
	return func(a *App) {
		a.envFile = path
	}
}

// WithStoreFactory replaces the Realtime Database session
func WithStoreFactory(f StoreFactory) AppOption {
	return func(a *App) {
		a.newStore = f
	}
}

// WithDocumentsFactory replaces the local/object storage router
func WithDocumentsFactory(f DocumentsFactory) AppOption {
	return func(a *App) {
		a.newDocuments = f
	}
}

// NewApp creates an App writing to the process streams
func NewApp(opts ...AppOption) *App {
	a := &App{
		stdout:       os.Stdout,
		stderr:       os.Stderr,
		envFile:      ".env",
		newStore:     newSession,
		newDocuments: newDocumentRouter,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func newSession(cfg config.RTDBConfig, log *zap.Logger) shared.TreeStore {
	return rtdb.NewSession(cfg, rtdb.WithLogger(log))
}

func newDocumentRouter(cfg *config.Config, log *zap.Logger) backup.DocumentStore {
	return storage.NewRouter(storage.NewFileStorage(), func() (storage.Backend, error) {
		return storage.NewS3ObjectStorage(&cfg.Storage, storage.WithLogger(log))
	})
}

// Run executes cmd with args under a context cancelled by SIGINT or
// SIGTERM, prints any error to stderr and returns the exit code
func (a *App) Run(cmd *cobra.Command, args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.SetArgs(args)
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)

	err := cmd.ExecuteContext(ctx)
	code := ExitCode(err)
	if err != nil {
		logger.FromContext(cmd.Context()).Error("Command failed",
			zap.Int("exit_code", code),
			zap.Error(err),
		)
		fmt.Fprintf(a.stderr, "error: %v\n", err)
	}
	return code
}

// commonFlags are the flags every tool accepts
type commonFlags struct {
	v          *viper.Viper
	configFile string
}

// newCommand creates a root command with the common flags bound to a
// fresh viper instance
func newCommand(use, short, long string) (*cobra.Command, *commonFlags) {
	common := &commonFlags{v: viper.New()}

	cmd := &cobra.Command{
		Use:           use,
		Short:         short,
		Long:          long,
		Args:          noArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return asUsageError(err)
	})

	flags := cmd.Flags()
	flags.String("service-account", "", "Path to the service account JSON key")
	flags.String("database-url", "", "Realtime Database URL (https://<project>.firebaseio.com)")
	flags.String("log-level", "", "Log level: debug, info, warn, error")
	flags.String("log-format", "", "Log format: console or json")
	flags.StringVar(&common.configFile, "config", "", "Config file (default ./config.toml if present)")

	for key, name := range map[string]string{
		"rtdb.service_account": "service-account",
		"rtdb.database_url":    "database-url",
		"log.level":            "log-level",
		"log.format":           "log-format",
	} {
		_ = common.v.BindPFlag(key, flags.Lookup(name))
	}

	return cmd, common
}

func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return asUsageError(fmt.Errorf("unexpected arguments: %s", strings.Join(args, " ")))
	}
	return nil
}

// runtime is what a command needs once configuration is loaded
type runtime struct {
	cfg    *config.Config
	logger *zap.Logger
}

// setup loads configuration and builds the run logger. The logger is also
// attached to the command context.
func (a *App) setup(cmd *cobra.Command, common *commonFlags, tool string) (*runtime, error) {
	cfg, err := config.Load(
		config.WithViper(common.v),
		config.WithConfigFile(common.configFile),
		config.WithEnvFile(a.envFile),
	)
	if err != nil {
		return nil, asUsageError(err)
	}

	logCfg := &logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	}
	var log *zap.Logger
	if strings.EqualFold(cfg.Log.Output, "stderr") {
		log, err = logger.NewWithWriter(logCfg, a.stderr)
	} else {
		log, err = logger.New(logCfg)
	}
	if err != nil {
		return nil, asUsageError(fmt.Errorf("failed to initialize logger: %w", err))
	}

	ctx, log := logger.WithRunID(cmd.Context(), log, tool)
	cmd.SetContext(ctx)

	return &runtime{cfg: cfg, logger: log}, nil
}

func (rt *runtime) connection() connectionOptions {
	return connectionOptions{
		ServiceAccount: rt.cfg.RTDB.ServiceAccount,
		DatabaseURL:    rt.cfg.RTDB.DatabaseURL,
	}
}

func (rt *runtime) close() {
	_ = rt.logger.Sync()
}
