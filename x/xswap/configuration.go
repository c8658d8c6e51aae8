package xswap

import (
	"time"

	"github.com/iov-one/xswap"
	"github.com/iov-one/xswap/errors"
	"github.com/iov-one/xswap/gconf"
)

const (
	// DefaultClaimWindow is used when no configuration was stored.
	DefaultClaimWindow = 10 * time.Hour
	// DefaultSettlementWindow is used when no configuration was stored.
	DefaultSettlementWindow = 20 * time.Hour

	confPkg = "xswap"
)

var _ gconf.Configuration = (*Configuration)(nil)

// DefaultConfiguration returns the configuration used by a store that was
// never configured.
func DefaultConfiguration() *Configuration {
	return &Configuration{
		ClaimWindow:      xswap.AsUnixDuration(DefaultClaimWindow),
		SettlementWindow: xswap.AsUnixDuration(DefaultSettlementWindow),
	}
}

// Validate returns an error unless the settlement window is longer than the
// claim window and both are positive.
func (c *Configuration) Validate() error {
	var errs error
	if c.ClaimWindow <= 0 {
		errs = errors.AppendField(errs, "ClaimWindow", errors.Wrap(errors.ErrInput, "must be positive"))
	}
	if c.SettlementWindow <= c.ClaimWindow {
		errs = errors.AppendField(errs, "SettlementWindow", errors.Wrap(errors.ErrInput, "must be longer than the claim window"))
	}
	return errs
}

// SaveConfiguration validates and persists the configuration.
func SaveConfiguration(db gconf.Store, c *Configuration) error {
	return gconf.Save(db, confPkg, c)
}

// ReadConfiguration returns the stored configuration. ErrNotFound is
// returned if none was stored.
func ReadConfiguration(db gconf.ReadStore) (*Configuration, error) {
	var c Configuration
	if err := gconf.Load(db, confPkg, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadConfiguration returns the stored configuration or the default one if
// none was stored.
func LoadConfiguration(db gconf.ReadStore) (*Configuration, error) {
	switch c, err := ReadConfiguration(db); {
	case err == nil:
		return c, nil
	case errors.ErrNotFound.Is(err):
		return DefaultConfiguration(), nil
	default:
		return nil, errors.Wrap(err, "load configuration")
	}
}

// Initializer stores the configuration found in the genesis under
// conf.xswap. Nothing is stored when the genesis has none.
type Initializer struct{}

var _ xswap.Initializer = Initializer{}

// FromGenesis implements xswap.Initializer.
func (Initializer) FromGenesis(opts xswap.Options, kv xswap.KVStore) error {
	err := gconf.InitConfig(kv, opts, confPkg, &Configuration{})
	if errors.ErrNotFound.Is(err) {
		return nil
	}
	return err
}
