package xswap

import (
	"context"

	"github.com/iov-one/xswap"
	"github.com/iov-one/xswap/errors"
	"github.com/iov-one/xswap/orm"
	"github.com/iov-one/xswap/x/cash"
)

// Ledger is the only owner of the swap records. Every change is done in a
// Unit that is executed under the lock of the swap identifier and is
// written to the store in a single batch.
//
// A unit moves funds between at most two wallets, the escrow wallet of its
// swap and one other. Both wallet locks are acquired together, in address
// order, after the swap lock. A unit never waits for a swap lock while
// holding a wallet lock, so units cannot deadlock.
type Ledger struct {
	store     xswap.CacheableKVStore
	cash      cash.Controller
	swaps     orm.ModelBucket
	events    orm.ModelBucket
	ids       *keyedMutex
	wallets   *keyedMutex
	listeners listeners
}

// NewLedger returns a ledger keeping swaps in given store. The store must
// serialize reads against batch writes, for example store.LockedStore.
func NewLedger(store xswap.CacheableKVStore, ctrl cash.Controller) *Ledger {
	return &Ledger{
		store:   store,
		cash:    ctrl,
		swaps:   orm.NewModelBucket(bucketSwaps),
		events:  orm.NewModelBucket(bucketEvents),
		ids:     newKeyedMutex(),
		wallets: newKeyedMutex(),
	}
}

// Exec runs fn as a single unit of work for the swap with given id. All
// changes made through the unit are written if fn returns nil and
// discarded otherwise. Events journaled by the unit are passed to the
// listeners once written.
//
// The block time is read from the context once and is available as
// Unit.Now. A panic in fn discards the unit and is returned as ErrPanic.
func (l *Ledger) Exec(ctx context.Context, id SwapID, fn func(*Unit) error) (err error) {
	defer errors.Recover(&err)

	now, ok := xswap.BlockUnixTime(ctx)
	if !ok {
		return errors.Wrap(errors.ErrHuman, "block time not set in the context")
	}

	unlock := l.ids.Lock(id[:])
	defer unlock()

	cache := l.store.CacheWrap()
	u := &Unit{
		ledger: l,
		db:     cache,
		id:     id,
		now:    now,
	}
	defer u.releaseWallets()

	if err := u.load(); err != nil {
		cache.Discard()
		return err
	}
	if err := fn(u); err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	u.releaseWallets()

	l.listeners.notify(ctx, u.events)
	return nil
}

// Create stores a new swap and moves its principal from the sender to the
// escrow wallet. ErrAlreadyOpen is returned if the identifier was ever
// used.
func (l *Ledger) Create(ctx context.Context, id SwapID, swap *Swap) error {
	return l.Exec(ctx, id, func(u *Unit) error {
		return u.Create(swap)
	})
}

// Read returns the swap with given id. ErrNotFound is returned if no such
// swap was ever opened.
func (l *Ledger) Read(id SwapID) (*Swap, error) {
	var s Swap
	if err := l.swaps.One(l.store, id[:], &s); err != nil {
		return nil, errors.Wrapf(err, "swap %s", id)
	}
	return &s, nil
}

// MovePrincipal pays the principal of an open swap to recipient and closes
// the swap.
func (l *Ledger) MovePrincipal(ctx context.Context, id SwapID, recipient xswap.Address) error {
	return l.Exec(ctx, id, func(u *Unit) error {
		return u.MovePrincipal(recipient)
	})
}

// Balance returns the funds held by given wallet.
func (l *Ledger) Balance(addr xswap.Address) (uint64, error) {
	return l.cash.Balance(l.store, addr)
}

// EscrowBalance returns the funds held in escrow by the swap with given
// id. It is the principal while the swap is open and zero once closed.
func (l *Ledger) EscrowBalance(id SwapID) (uint64, error) {
	ok, err := l.swaps.Has(l.store, id[:])
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, errors.Wrapf(errors.ErrNotFound, "swap %s", id)
	}
	return l.cash.Balance(l.store, EscrowAddress(id))
}

// Events returns the journal of the swap with given id, oldest first.
func (l *Ledger) Events(id SwapID) ([]*Event, error) {
	var (
		res []*Event
		e   Event
	)
	err := l.events.Each(l.store, id[:], &e, func([]byte) error {
		cpy := e
		res = append(res, &cpy)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Record is a swap together with its identifier.
type Record struct {
	ID SwapID `json:"id"`
	*Swap
}

// List returns all swaps in given state ordered by identifier. Use
// StateInvalid to list swaps in any state.
func (l *Ledger) List(state State) ([]Record, error) {
	var (
		res []Record
		s   Swap
	)
	err := l.swaps.Each(l.store, nil, &s, func(key []byte) error {
		if state != StateInvalid && s.State != state {
			return nil
		}
		id, err := SwapIDFromBytes(key)
		if err != nil {
			return errors.Wrap(errors.ErrModel, "swap key")
		}
		res = append(res, Record{ID: id, Swap: s.Copy()})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Subscribe registers a listener notified about every committed event.
func (l *Ledger) Subscribe(ln Listener) {
	l.listeners.add(ln)
}

// Unit is a view of a single swap inside a Ledger.Exec call. It must not be
// used after fn returns.
type Unit struct {
	ledger *Ledger
	db     xswap.KVCacheWrap
	id     SwapID
	now    xswap.UnixTime
	swap   *Swap

	unlockWallets func()
	events        []*Event
}

// ID returns the identifier of the swap.
func (u *Unit) ID() SwapID {
	return u.id
}

// Now returns the block time this unit is executed at.
func (u *Unit) Now() xswap.UnixTime {
	return u.now
}

// Exists returns true if the identifier was ever used.
func (u *Unit) Exists() bool {
	return u.swap != nil
}

// Swap returns a copy of the current record. ErrNotFound is returned if no
// such swap was ever opened.
func (u *Unit) Swap() (*Swap, error) {
	if u.swap == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "swap %s", u.id)
	}
	return u.swap.Copy(), nil
}

// Create stores swap as a new open record and moves the principal from the
// sender to the escrow wallet.
func (u *Unit) Create(swap *Swap) error {
	if u.swap != nil {
		return errors.Wrapf(errors.ErrAlreadyOpen, "swap %s", u.id)
	}
	s := swap.Copy()
	s.State = StateOpen
	s.OpenedAt = u.now
	s.Unlocked = false
	s.RevealedMessage = nil
	s.ClosedAt = 0
	s.Payee = nil
	if err := s.Validate(); err != nil {
		return errors.Wrap(err, "invalid swap")
	}
	if err := u.moveFunds(s.Sender, EscrowAddress(u.id), s.PrincipalValue); err != nil {
		return errors.Wrap(err, "fund escrow")
	}
	if err := u.save(s); err != nil {
		return err
	}
	return u.emit(&Event{
		Kind:     EventOpened,
		Receiver: s.Receiver.Clone(),
		Amount:   s.PrincipalValue,
	})
}

// Unlock marks an open swap as unlocked by given claim-reveal message.
func (u *Unit) Unlock(message []byte) error {
	if u.swap == nil {
		return errors.Wrapf(errors.ErrNotFound, "swap %s", u.id)
	}
	if !isOpen(u.swap) || u.swap.Unlocked {
		return errors.Wrapf(errors.ErrInvalidState, "swap %s is %s, unlocked %v", u.id, u.swap.State, u.swap.Unlocked)
	}
	s := u.swap.Copy()
	s.Unlocked = true
	s.RevealedMessage = cloneBytes(message)
	if err := u.save(s); err != nil {
		return err
	}
	return u.emit(&Event{
		Kind:    EventRevealed,
		Message: cloneBytes(message),
	})
}

// MovePrincipal pays the principal to recipient and closes the swap.
func (u *Unit) MovePrincipal(recipient xswap.Address) error {
	if u.swap == nil {
		return errors.Wrapf(errors.ErrNotFound, "swap %s", u.id)
	}
	if !isOpen(u.swap) {
		return errors.Wrapf(errors.ErrInvalidState, "swap %s is %s", u.id, u.swap.State)
	}
	if err := u.moveFunds(EscrowAddress(u.id), recipient, u.swap.PrincipalValue); err != nil {
		return errors.Wrap(err, "release escrow")
	}
	return u.transitionToClosed(recipient)
}

// transitionToClosed is the only way a swap leaves the open state.
func (u *Unit) transitionToClosed(payee xswap.Address) error {
	if u.swap == nil {
		return errors.Wrapf(errors.ErrNotFound, "swap %s", u.id)
	}
	if !isOpen(u.swap) {
		return errors.Wrapf(errors.ErrInvalidState, "swap %s is %s", u.id, u.swap.State)
	}
	s := u.swap.Copy()
	s.State = StateClosed
	s.ClosedAt = u.now
	s.Payee = payee.Clone()
	if err := u.save(s); err != nil {
		return err
	}
	return u.emit(&Event{
		Kind:      EventClosed,
		Recipient: payee.Clone(),
		Amount:    s.PrincipalValue,
	})
}

// moveFunds locks both wallets and moves amount between them. A unit can
// lock wallets only once.
func (u *Unit) moveFunds(src, dst xswap.Address, amount uint64) error {
	if u.unlockWallets != nil {
		return errors.Wrap(errors.ErrHuman, "wallets already locked by this unit")
	}
	u.unlockWallets = u.ledger.wallets.LockAll(src, dst)
	return u.ledger.cash.MoveCoins(u.db, src, dst, amount)
}

func (u *Unit) releaseWallets() {
	if u.unlockWallets != nil {
		u.unlockWallets()
		u.unlockWallets = nil
	}
}

func (u *Unit) load() error {
	var s Swap
	switch err := u.ledger.swaps.One(u.db, u.id[:], &s); {
	case err == nil:
		u.swap = &s
		return nil
	case errors.ErrNotFound.Is(err):
		return nil
	default:
		return errors.Wrapf(err, "swap %s", u.id)
	}
}

func (u *Unit) save(s *Swap) error {
	if err := u.ledger.swaps.Put(u.db, u.id[:], s); err != nil {
		return errors.Wrapf(err, "swap %s", u.id)
	}
	u.swap = s
	return nil
}

// emit journals the event in the same write as the state change.
func (u *Unit) emit(e *Event) error {
	seq, err := eventSequence(u.id).NextInt(u.db)
	if err != nil {
		return errors.Wrap(err, "event sequence")
	}
	e.SwapID = append([]byte(nil), u.id[:]...)
	e.Sequence = seq
	e.Time = u.now
	if err := u.ledger.events.Put(u.db, eventKey(u.id, seq), e); err != nil {
		return errors.Wrap(err, "journal event")
	}
	u.events = append(u.events, e)
	return nil
}
