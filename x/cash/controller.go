package cash

import (
	"math"

	"github.com/iov-one/xswap"
	"github.com/iov-one/xswap/errors"
	"github.com/iov-one/xswap/orm"
)

// Controller is the functionality needed by the swap extension to hold and
// release funds. Other extensions should depend on this interface rather
// than on the implementation.
type Controller interface {
	Balance(db xswap.ReadOnlyKVStore, addr xswap.Address) (uint64, error)
	MoveCoins(db xswap.KVStore, src, dest xswap.Address, amount uint64) error
	IssueCoins(db xswap.KVStore, dest xswap.Address, amount uint64) error
}

// BaseController implements Controller on top of a wallet bucket.
type BaseController struct {
	bucket orm.ModelBucket
}

var _ Controller = BaseController{}

// NewController returns a controller using given bucket.
func NewController(bucket orm.ModelBucket) BaseController {
	return BaseController{bucket: bucket}
}

// Balance returns the amount held by given address. An address that was
// never funded holds nothing.
func (c BaseController) Balance(db xswap.ReadOnlyKVStore, addr xswap.Address) (uint64, error) {
	w, err := c.wallet(db, addr)
	if err != nil {
		return 0, err
	}
	return w.Balance, nil
}

// MoveCoins moves the given amount from src to dest.
// If src doesn't exist, or doesn't have sufficient
// coins, it fails.
func (c BaseController) MoveCoins(db xswap.KVStore, src, dest xswap.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "non-positive amount")
	}
	if err := src.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}

	sender, err := c.wallet(db, src)
	if err != nil {
		return err
	}
	if sender.Balance < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "wallet %s holds %d, need %d", src, sender.Balance, amount)
	}
	if src.Equals(dest) {
		return nil
	}

	recipient, err := c.wallet(db, dest)
	if err != nil {
		return err
	}
	if recipient.Balance > math.MaxUint64-amount {
		return errors.Wrapf(errors.ErrOverflow, "wallet %s", dest)
	}

	sender.Balance -= amount
	recipient.Balance += amount

	// save them and return
	if err := c.bucket.Put(db, src, sender); err != nil {
		return err
	}
	return c.bucket.Put(db, dest, recipient)
}

// IssueCoins attempts to add the given amount of coins to
// the destination address. Fails if it overflows the wallet.
func (c BaseController) IssueCoins(db xswap.KVStore, dest xswap.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "non-positive amount")
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	recipient, err := c.wallet(db, dest)
	if err != nil {
		return err
	}
	if recipient.Balance > math.MaxUint64-amount {
		return errors.Wrapf(errors.ErrOverflow, "wallet %s", dest)
	}
	recipient.Balance += amount
	return c.bucket.Put(db, dest, recipient)
}

func (c BaseController) wallet(db xswap.ReadOnlyKVStore, addr xswap.Address) (*Wallet, error) {
	var w Wallet
	switch err := c.bucket.One(db, addr, &w); {
	case err == nil:
		return &w, nil
	case errors.ErrNotFound.Is(err):
		return &Wallet{}, nil
	default:
		return nil, err
	}
}
