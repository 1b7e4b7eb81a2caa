package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override (e.g. DIVERSEY_RTDB_DATABASE_URL)
const EnvPrefix = "DIVERSEY"

// Config holds the configuration shared by the data tools
type Config struct {
	RTDB    RTDBConfig
	Log     LogConfig
	Storage StorageConfig
}

// RTDBConfig holds the Realtime Database connection settings
type RTDBConfig struct {
	ServiceAccount string        // path to the service account JSON
	DatabaseURL    string        // e.g. https://<project>.firebaseio.com
	DataPath       string        // subtree owned by the application
	Timeout        time.Duration // per remote call, 0 disables
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// StorageConfig holds S3-compatible object storage settings used for
// s3:// backup locations
type StorageConfig struct {
	Endpoint     string
	Region       string
	AccessKey    string
	SecretKey    string
	UsePathStyle bool
	UseSSL       bool
}

// Option configures Load
type Option func(*loader)

type loader struct {
	v          *viper.Viper
	configFile string
	envFile    string
}

// WithViper loads from v, so flags already bound to it take precedence
func WithViper(v *viper.Viper) Option {
	return func(l *loader) {
		l.v = v
	}
}

// WithConfigFile reads an explicit config file instead of searching for config.toml
func WithConfigFile(path string) Option {
	return func(l *loader) {
		l.configFile = path
	}
}

// WithEnvFile sets the dotenv file read before the environment is consulted
func WithEnvFile(path string) Option {
	return func(l *loader) {
		l.envFile = path
	}
}

// Load loads configuration.
// Priority (highest to lowest):
// 1. Flags bound to the viper instance given with WithViper
// 2. Environment variables with DIVERSEY_ prefix (e.g., DIVERSEY_RTDB_SERVICE_ACCOUNT),
// including those set from .env
// 3. config.toml, or the file given with WithConfigFile
// 4. Built-in defaults
func Load(opts ...Option) (*Config, error) {
	l := &loader{envFile: ".env"}
	for _, opt := range opts {
		opt(l)
	}
	v := l.v
	if v == nil {
		v = viper.New()
	}

	// Existing environment variables win over .env entries
	if l.envFile != "" {
		if err := godotenv.Load(l.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error reading env file: %w", err)
		}
	}

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if l.configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		RTDB: RTDBConfig{
			ServiceAccount: v.GetString("rtdb.service_account"),
			DatabaseURL:    v.GetString("rtdb.database_url"),
			DataPath:       v.GetString("rtdb.data_path"),
			Timeout:        v.GetDuration("rtdb.timeout"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Storage: StorageConfig{
			Endpoint:     v.GetString("storage.endpoint"),
			Region:       v.GetString("storage.region"),
			AccessKey:    v.GetString("storage.access_key"),
			SecretKey:    v.GetString("storage.secret_key"),
			UsePathStyle: v.GetBool("storage.use_path_style"),
			UseSSL:       v.GetBool("storage.use_ssl"),
		},
	}

	applyDefaults(cfg, v)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config, v *viper.Viper) {
	if cfg.RTDB.DataPath == "" {
		cfg.RTDB.DataPath = "/data"
	}
	if !v.IsSet("rtdb.timeout") {
		cfg.RTDB.Timeout = 60 * time.Second
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stderr"
	}
	if cfg.Storage.Region == "" {
		cfg.Storage.Region = "us-east-1"
	}
}

// validate performs validation on the configuration. Whether the
// connection settings are present is checked by each command.
func (c *Config) validate() error {
	if !strings.HasPrefix(c.RTDB.DataPath, "/") {
		return fmt.Errorf("rtdb.data_path must start with '/', got %q", c.RTDB.DataPath)
	}
	if c.RTDB.Timeout < 0 {
		return fmt.Errorf("rtdb.timeout cannot be negative")
	}
	if c.RTDB.DatabaseURL != "" {
		u, err := url.Parse(c.RTDB.DatabaseURL)
		if err != nil {
			return fmt.Errorf("invalid rtdb.database_url: %w", err)
		}
		if u.Scheme != "https" && u.Scheme != "http" {
			return fmt.Errorf("rtdb.database_url must be an http(s) URL, got %q", c.RTDB.DatabaseURL)
		}
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log.format must be 'json' or 'console', got %q", c.Log.Format)
	}
	return nil
}
