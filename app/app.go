/*
Package app builds a ready to use swap coordinator from the process
configuration: the logger, the storage backend, the funds controller and
the ledger.
*/
package app

import (
	"context"
	"io"
	"path/filepath"
	"time"

	"github.com/iov-one/xswap"
	"github.com/iov-one/xswap/config"
	"github.com/iov-one/xswap/crypto"
	"github.com/iov-one/xswap/errors"
	"github.com/iov-one/xswap/store"
	"github.com/iov-one/xswap/store/bolt"
	"github.com/iov-one/xswap/store/iavl"
	"github.com/iov-one/xswap/x/cash"
	swap "github.com/iov-one/xswap/x/xswap"
	"github.com/tendermint/tendermint/libs/log"
)

// App holds a coordinator together with the resources it uses.
type App struct {
	logger log.Logger
	store  xswap.CacheableKVStore
	closer func() error
	coord  *swap.Coordinator
}

// NewLogger returns a logger writing to w, dropping messages below given
// level.
func NewLogger(w io.Writer, level string) (log.Logger, error) {
	opt, err := log.AllowLevel(level)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	logger := log.NewTMLogger(log.NewSyncWriter(w))
	return log.NewFilter(logger, opt), nil
}

// New opens the configured backend and returns an application using it.
// When a genesis file is configured and the store was never initialized,
// the genesis is loaded first. The configured swap windows are stored
// unless the store already holds a swap configuration.
func New(conf *config.Config, logger log.Logger) (*App, error) {
	if err := conf.Validate(); err != nil {
		return nil, errors.Wrap(err, "config")
	}
	db, closer, err := openStore(conf)
	if err != nil {
		return nil, err
	}
	a := &App{
		logger: logger.With("module", "app"),
		store:  db,
		closer: closer,
	}
	ledger := swap.NewLedger(db, cash.NewController(cash.NewBucket()))
	a.coord = swap.NewCoordinator(ledger, crypto.NewVerifier())

	if conf.Genesis != "" {
		gen, err := LoadGenesis(conf.Genesis)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		if err := a.InitGenesis(gen.AppState); err != nil && !errors.ErrAlreadyOpen.Is(err) {
			_ = a.Close()
			return nil, err
		}
	}
	if err := a.ensureConfiguration(conf); err != nil {
		_ = a.Close()
		return nil, err
	}

	a.logger.Info("application ready", "backend", conf.Backend, "datadir", conf.Datadir)
	return a, nil
}

func openStore(conf *config.Config) (xswap.CacheableKVStore, func() error, error) {
	switch conf.Backend {
	case config.BackendMemory:
		return store.MemStore(), func() error { return nil }, nil
	case config.BackendIAVL:
		cs, err := iavl.NewCommitStore(conf.Datadir, "xswap")
		if err != nil {
			return nil, nil, errors.Wrap(err, "open iavl store")
		}
		return cs.Locked(), cs.Close, nil
	case config.BackendBolt:
		db, err := bolt.Open(filepath.Join(conf.Datadir, "xswap.db"))
		if err != nil {
			return nil, nil, errors.Wrap(err, "open bolt store")
		}
		return store.NewLockedStore(db, nil), db.Close, nil
	default:
		return nil, nil, errors.Wrapf(errors.ErrInput, "unknown backend %q", conf.Backend)
	}
}

// ensureConfiguration stores the configured windows if the store holds no
// swap configuration.
func (a *App) ensureConfiguration(conf *config.Config) error {
	c, err := swap.ReadConfiguration(a.store)
	switch {
	case err == nil:
		if c.ClaimWindow.Duration() != conf.ClaimWindow || c.SettlementWindow.Duration() != conf.SettlementWindow {
			a.logger.Info("using stored swap windows",
				"claim_window", c.ClaimWindow,
				"settlement_window", c.SettlementWindow)
		}
		return nil
	case errors.ErrNotFound.Is(err):
		c = &swap.Configuration{}
		c.ClaimWindow = xswap.AsUnixDuration(conf.ClaimWindow)
		c.SettlementWindow = xswap.AsUnixDuration(conf.SettlementWindow)
		return swap.SaveConfiguration(a.store, c)
	default:
		return err
	}
}

// Coordinator returns the swap coordinator.
func (a *App) Coordinator() *swap.Coordinator {
	return a.coord
}

// Logger returns the application logger.
func (a *App) Logger() log.Logger {
	return a.logger
}

// Context returns a context for a single call at given block time.
func (a *App) Context(ctx context.Context, now time.Time) context.Context {
	ctx = xswap.WithLogger(ctx, a.logger)
	return xswap.WithBlockTime(ctx, now)
}

// Close releases the storage backend.
func (a *App) Close() error {
	return a.closer()
}
