package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"sigquery/internal/logger"
	"sigquery/internal/store"
)

// EnvPrefix prefixes every environment override, e.g. SIGQUERY_DATABASE_DSN.
const EnvPrefix = "SIGQUERY"

// Config holds runtime wiring options for building the app.
type Config struct {
	Home           string         `mapstructure:"home"`     // exchange tree, e.g. ./requests
	KeysDir        string         `mapstructure:"keys_dir"` // sealed keys, e.g. $HOME/.sigquery
	Database       DatabaseConfig `mapstructure:"database"`
	KeyBits        int            `mapstructure:"key_bits"`
	BarrierTimeout time.Duration  `mapstructure:"barrier_timeout"`
	Passphrase     string         `mapstructure:"passphrase"` // set to persist party keys
	MetricsFile    string         `mapstructure:"metrics_file"`
	Log            logger.Config  `mapstructure:"log"`
}

// DatabaseConfig selects the relational store.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver"` // sqlite or postgres
	DSN    string `mapstructure:"dsn"`    // file path for sqlite
}

// SetDefaults registers the default of every key on v. Keys unknown to v are
// not picked up from the environment, so every field needs one.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("home", "requests")
	v.SetDefault("keys_dir", defaultKeysDir())
	v.SetDefault("database.driver", store.DriverSQLite)
	v.SetDefault("database.dsn", "sigquery.db")
	v.SetDefault("key_bits", 2048)
	v.SetDefault("barrier_timeout", "30s")
	v.SetDefault("passphrase", "")
	v.SetDefault("metrics_file", "")
	v.SetDefault("log.level", "INFO")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.add_source", false)
}

// LoadConfig resolves the configuration from, lowest first: defaults, the
// optional config file, SIGQUERY_* environment variables and any flags
// already bound on v.
func LoadConfig(v *viper.Viper, file string) (Config, error) {
	SetDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the app cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Home == "":
		return errors.New("home must not be empty")
	case c.KeyBits < 2048:
		return fmt.Errorf("key_bits %d below 2048", c.KeyBits)
	case c.BarrierTimeout <= 0:
		return errors.New("barrier_timeout must be positive")
	case c.Database.Driver != store.DriverSQLite && c.Database.Driver != store.DriverPostgres:
		return fmt.Errorf("unknown database driver %q", c.Database.Driver)
	case c.Database.DSN == "":
		return errors.New("database dsn must not be empty")
	}
	return nil
}

func defaultKeysDir() string {
	dir, err := os.UserHomeDir()
	if err != nil {
		return ".sigquery"
	}
	return filepath.Join(dir, ".sigquery")
}
