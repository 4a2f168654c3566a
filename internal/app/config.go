package app

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"lexvault/internal/store"
)

// Store backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMinIO  = "minio"
)

const (
	configFilename     = "config.toml"
	defaultListen      = "127.0.0.1:8443"
	defaultTimeout     = 30 * time.Second
	defaultMinIOBucket = "lexvault"
)

// StoreConfig selects and configures the material store.
type StoreConfig struct {
	Backend string                  `toml:"backend"`
	Path    string                  `toml:"path"` // directory for the file backend
	DSN     string                  `toml:"dsn"`  // database path for the sqlite backend
	MinIO   store.ObjectStoreConfig `toml:"minio"`
}

// Config holds runtime options for the daemon and the CLI.
type Config struct {
	Home      string `toml:"home"`       // state directory, e.g. $HOME/.lexvault
	Listen    string `toml:"listen"`     // daemon listen address
	ServerURL string `toml:"server_url"` // daemon base URL used by the CLI

	Store StoreConfig `toml:"store"`

	OperationTimeout   time.Duration `toml:"operation_timeout"`
	ConcealFailureKind bool          `toml:"conceal_failure_kind"`

	Verbose bool `toml:"verbose"`
	Debug   bool `toml:"debug"`

	HTTP *http.Client `toml:"-"` // optional; defaults to http.DefaultClient
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	home := ".lexvault"
	if dir, err := os.UserHomeDir(); err == nil {
		home = filepath.Join(dir, ".lexvault")
	}
	return Config{
		Home:             home,
		Listen:           defaultListen,
		ServerURL:        "http://" + defaultListen,
		Store:            StoreConfig{Backend: BackendFile, MinIO: store.ObjectStoreConfig{Bucket: defaultMinIOBucket}},
		OperationTimeout: defaultTimeout,
	}
}

// LoadDotEnv loads KEY=value pairs from each existing file into the process
// environment. Variables that are already set are not overwritten.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// LoadConfig applies, in order: defaults, the TOML file at path (or
// <home>/config.toml when path is empty and that file exists), then
// environment overrides.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if home := os.Getenv("LEXVAULT_HOME"); home != "" {
		cfg.Home = home
	}

	explicit := path != ""
	if !explicit {
		path = filepath.Join(cfg.Home, configFilename)
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	str := map[string]*string{
		"LEXVAULT_HOME":             &c.Home,
		"LEXVAULT_LISTEN":           &c.Listen,
		"LEXVAULT_SERVER_URL":       &c.ServerURL,
		"LEXVAULT_STORE":            &c.Store.Backend,
		"LEXVAULT_STORE_PATH":       &c.Store.Path,
		"LEXVAULT_SQLITE_DSN":       &c.Store.DSN,
		"LEXVAULT_MINIO_ENDPOINT":   &c.Store.MinIO.Endpoint,
		"LEXVAULT_MINIO_ACCESS_KEY": &c.Store.MinIO.AccessKey,
		"LEXVAULT_MINIO_SECRET_KEY": &c.Store.MinIO.SecretKey,
		"LEXVAULT_MINIO_BUCKET":     &c.Store.MinIO.Bucket,
	}
	for key, dst := range str {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}

	flags := map[string]*bool{
		"LEXVAULT_MINIO_USE_SSL":        &c.Store.MinIO.UseSSL,
		"LEXVAULT_CONCEAL_FAILURE_KIND": &c.ConcealFailureKind,
		"LEXVAULT_VERBOSE":              &c.Verbose,
		"LEXVAULT_DEBUG":                &c.Debug,
	}
	for key, dst := range flags {
		if v, ok := os.LookupEnv(key); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = b
		}
	}

	if v, ok := os.LookupEnv("LEXVAULT_OPERATION_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("LEXVAULT_OPERATION_TIMEOUT: %w", err)
		}
		c.OperationTimeout = d
	}
	return nil
}

// Validate reports configuration that cannot be wired.
func (c Config) Validate() error {
	switch c.Store.Backend {
	case BackendFile, BackendSQLite:
	case BackendMinIO:
		if c.Store.MinIO.Endpoint == "" || c.Store.MinIO.Bucket == "" {
			return errors.New("minio store needs an endpoint and a bucket")
		}
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	if c.OperationTimeout < 0 {
		return errors.New("operation_timeout must not be negative")
	}
	return nil
}

// StorePath is the directory of the file backend.
func (c Config) StorePath() string {
	if c.Store.Path != "" {
		return c.Store.Path
	}
	return c.Home
}

// SQLiteDSN is the database of the sqlite backend.
func (c Config) SQLiteDSN() string {
	if c.Store.DSN != "" {
		return c.Store.DSN
	}
	return filepath.Join(c.Home, "materials.db")
}
