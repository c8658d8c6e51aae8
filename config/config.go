// Package config loads the process configuration from the environment and
// an optional configuration file.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/iov-one/xswap/errors"
	"github.com/spf13/viper"
)

// Supported storage backends.
const (
	BackendMemory = "memory"
	BackendIAVL   = "iavl"
	BackendBolt   = "bolt"
)

type Config struct {
	Datadir          string
	Backend          string
	LogLevel         string
	Genesis          string
	ClaimWindow      time.Duration
	SettlementWindow time.Duration
}

var (
	Datadir          = "DATADIR"
	Backend          = "BACKEND"
	LogLevel         = "LOG_LEVEL"
	Genesis          = "GENESIS"
	ClaimWindow      = "CLAIM_WINDOW"
	SettlementWindow = "SETTLEMENT_WINDOW"

	defaultDatadir          = filepath.Join(os.ExpandEnv("$HOME"), ".xswap")
	defaultBackend          = BackendMemory
	defaultLogLevel         = "info"
	defaultClaimWindow      = 10 * time.Hour
	defaultSettlementWindow = 20 * time.Hour
)

// Load returns the configuration read from XSWAP_ prefixed environment
// variables and, if path is not empty, from the file at path. The
// environment takes precedence over the file. Durations must carry a unit,
// for example "10h".
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("XSWAP")
	v.AutomaticEnv()

	v.SetDefault(Datadir, defaultDatadir)
	v.SetDefault(Backend, defaultBackend)
	v.SetDefault(LogLevel, defaultLogLevel)
	v.SetDefault(Genesis, "")
	v.SetDefault(ClaimWindow, defaultClaimWindow)
	v.SetDefault(SettlementWindow, defaultSettlementWindow)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "read config %q: %s", path, err)
		}
	}

	config := &Config{
		Datadir:          v.GetString(Datadir),
		Backend:          strings.ToLower(v.GetString(Backend)),
		LogLevel:         strings.ToLower(v.GetString(LogLevel)),
		Genesis:          v.GetString(Genesis),
		ClaimWindow:      v.GetDuration(ClaimWindow),
		SettlementWindow: v.GetDuration(SettlementWindow),
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate returns an error if the configuration cannot be used.
func (c *Config) Validate() error {
	var errs error
	switch c.Backend {
	case BackendMemory:
	case BackendIAVL, BackendBolt:
		if c.Datadir == "" {
			errs = errors.AppendField(errs, "Datadir", errors.Wrapf(errors.ErrInput, "required by %s backend", c.Backend))
		}
	default:
		errs = errors.AppendField(errs, "Backend", errors.Wrapf(errors.ErrInput, "unknown backend %q", c.Backend))
	}
	switch c.LogLevel {
	case "debug", "info", "error", "none":
	default:
		errs = errors.AppendField(errs, "LogLevel", errors.Wrapf(errors.ErrInput, "unknown level %q", c.LogLevel))
	}
	if c.ClaimWindow < time.Second {
		errs = errors.AppendField(errs, "ClaimWindow", errors.Wrap(errors.ErrInput, "must be at least one second"))
	}
	if c.SettlementWindow.Truncate(time.Second) <= c.ClaimWindow.Truncate(time.Second) {
		errs = errors.AppendField(errs, "SettlementWindow", errors.Wrap(errors.ErrInput, "must be longer than the claim window"))
	}
	return errs
}
