package cash

import (
	"github.com/iov-one/xswap"
	"github.com/iov-one/xswap/errors"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from genesis file
// use xswap.Address, so address in hex, not base64
type GenesisAccount struct {
	Address xswap.Address `json:"address"`
	Balance uint64        `json:"balance"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ xswap.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis
// and save it to the database
func (Initializer) FromGenesis(opts xswap.Options, kv xswap.KVStore) error {
	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return errors.Wrapf(errors.ErrInput, "read %s: %s", optKey, err)
	}
	bucket := NewBucket()
	for i, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		if err := bucket.Put(kv, acct.Address, &Wallet{Balance: acct.Balance}); err != nil {
			return err
		}
	}
	return nil
}
