package app

import (
	"encoding/json"
	"os"

	"github.com/iov-one/xswap"
	"github.com/iov-one/xswap/errors"
	"github.com/iov-one/xswap/x/cash"
	swap "github.com/iov-one/xswap/x/xswap"
)

// Genesis file format, designed to be overlayed with tendermint genesis.
type Genesis struct {
	AppState xswap.Options `json:"app_state"`
}

// LoadGenesis tries to load a given file into a Genesis struct.
func LoadGenesis(path string) (*Genesis, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "load genesis file: %s", err)
	}
	var gen Genesis
	if err := json.Unmarshal(raw, &gen); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "unmarshal genesis file: %s", err)
	}
	if len(gen.AppState) == 0 {
		return nil, errors.Wrap(errors.ErrInput, "app_state not set in genesis")
	}
	return &gen, nil
}

// Initializer returns the initializer of all extensions, in the order they
// are loaded from the genesis.
func Initializer() xswap.Initializer {
	return xswap.ChainInitializers(
		cash.Initializer{},
		swap.Initializer{},
	)
}

const genesisKey = "_app:genesis"

// InitGenesis loads the genesis into the store. It is written in a single
// batch together with a marker so that a store is initialized only once.
// ErrAlreadyOpen is returned for a store that was already initialized.
func (a *App) InitGenesis(opts xswap.Options) error {
	done, err := a.store.Has([]byte(genesisKey))
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if done {
		return errors.Wrap(errors.ErrAlreadyOpen, "genesis already loaded")
	}

	cache := a.store.CacheWrap()
	if err := Initializer().FromGenesis(opts, cache); err != nil {
		cache.Discard()
		return errors.Wrap(err, "genesis")
	}
	if err := cache.Set([]byte(genesisKey), []byte{1}); err != nil {
		cache.Discard()
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	a.logger.Info("genesis loaded")
	return nil
}
