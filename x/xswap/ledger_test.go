package xswap

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/iov-one/xswap/errors"
	"github.com/iov-one/xswap/xswaptest"
	"github.com/iov-one/xswap/xswaptest/assert"
)

func TestExecDiscardsOnError(t *testing.T) {
	f := newFixture(t)
	id := f.open(t, "discard", 0)
	var rec recorder
	f.ledger.Subscribe(&rec)

	failure := errors.ErrHuman.New("abort")
	err := f.ledger.Exec(xswaptest.BlockCtx(700), id, func(u *Unit) error {
		if err := u.MovePrincipal(f.receiver); err != nil {
			return err
		}
		return failure
	})
	assert.IsErr(t, failure, err)

	assert.Equal(t, StateOpen, f.get(t, id).State)
	assert.Equal(t, uint64(0), f.balance(t, f.receiver))
	assert.Equal(t, uint64(principal), f.balance(t, EscrowAddress(id)))
	events, err := f.coord.Events(id)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(events))
	assert.Equal(t, 0, len(rec.kinds()))
}

func TestExecRecoversPanic(t *testing.T) {
	f := newFixture(t)
	id := f.open(t, "panic", 0)

	err := f.ledger.Exec(xswaptest.BlockCtx(700), id, func(u *Unit) error {
		if err := u.MovePrincipal(f.receiver); err != nil {
			return err
		}
		panic("boom")
	})
	assert.IsErr(t, errors.ErrPanic, err)
	assert.Equal(t, StateOpen, f.get(t, id).State)
	assert.Equal(t, uint64(principal), f.balance(t, EscrowAddress(id)))

	// Both the swap and the wallet locks were released.
	assert.Equal(t, true, f.nullify(t, id, 700))
	assert.Equal(t, uint64(funds), f.balance(t, f.sender))
}

func TestUnit(t *testing.T) {
	f := newFixture(t)
	id := swapID("unit")

	err := f.ledger.Exec(xswaptest.BlockCtx(0), id, func(u *Unit) error {
		assert.Equal(t, id, u.ID())
		assert.Equal(t, false, u.Exists())
		_, err := u.Swap()
		assert.IsErr(t, errors.ErrNotFound, err)
		assert.IsErr(t, errors.ErrNotFound, u.Unlock([]byte(claimMessage)))
		assert.IsErr(t, errors.ErrNotFound, u.MovePrincipal(f.sender))
		return nil
	})
	assert.Nil(t, err)

	f.open(t, "unit", 0)
	err = f.ledger.Exec(xswaptest.BlockCtx(5), id, func(u *Unit) error {
		assert.Equal(t, true, u.Exists())
		assert.Equal(t, int64(5), int64(u.Now()))

		s, err := u.Swap()
		assert.Nil(t, err)
		// The view is a copy.
		s.State = StateClosed
		again, err := u.Swap()
		assert.Nil(t, err)
		assert.Equal(t, StateOpen, again.State)

		assert.IsErr(t, errors.ErrAlreadyOpen, u.Create(s))
		assert.Nil(t, u.Unlock([]byte(claimMessage)))
		assert.IsErr(t, errors.ErrInvalidState, u.Unlock([]byte(claimMessage)))
		return nil
	})
	assert.Nil(t, err)
	assert.Equal(t, true, f.get(t, id).Unlocked)
}

func TestUnitLocksWalletsOnce(t *testing.T) {
	f := newFixture(t)
	id := f.open(t, "wallets once", 0)

	err := f.ledger.Exec(xswaptest.BlockCtx(700), id, func(u *Unit) error {
		if err := u.MovePrincipal(f.sender); err != nil {
			return err
		}
		return u.moveFunds(f.sender, f.receiver, 1)
	})
	assert.IsErr(t, errors.ErrHuman, err)
	assert.Equal(t, StateOpen, f.get(t, id).State)
	assert.Equal(t, 0, f.ledger.wallets.size())
	assert.Equal(t, 0, f.ledger.ids.size())
}

func TestConcurrentPayouts(t *testing.T) {
	const workers = 32

	f := newFixture(t)
	id := f.open(t, "race", 0)
	var rec recorder
	f.coord.Subscribe(&rec)

	var (
		wg        sync.WaitGroup
		succeeded int32
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var ok bool
			switch i % 3 {
			case 0:
				ok = f.nullify(t, id, 700)
			case 1:
				ok = f.cancel(t, id, 700, refundMessage)
			case 2:
				ok = f.swap(t, id, 599, claimMessage) && f.settle(t, id, 1300)
			}
			if ok {
				atomic.AddInt32(&succeeded, 1)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), succeeded)
	s := f.get(t, id)
	assert.Equal(t, StateClosed, s.State)
	assert.Equal(t, uint64(funds), f.balance(t, f.sender)+f.balance(t, f.receiver))
	assert.Equal(t, uint64(0), f.balance(t, EscrowAddress(id)))

	kinds := rec.kinds()
	if kinds[len(kinds)-1] != EventClosed {
		t.Fatalf("last event must close the swap: %v", kinds)
	}
	closedCount := 0
	for _, k := range kinds {
		if k == EventClosed {
			closedCount++
		}
	}
	assert.Equal(t, 1, closedCount)
}

func TestConcurrentSwapsShareWallets(t *testing.T) {
	const swaps = 40

	f := newFixture(t)
	ids := make([]SwapID, swaps)
	for i := range ids {
		ids[i] = swapID(fmt.Sprintf("shared %d", i))
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id SwapID) {
			defer wg.Done()
			msg := f.openMsg("")
			msg.ID = id
			msg.PrincipalValue = 10
			assert.Nil(t, f.coord.Open(xswaptest.BlockCtx(0), f.sender, msg))
		}(id)
	}
	wg.Wait()
	assert.Equal(t, uint64(funds-swaps*10), f.balance(t, f.sender))

	for i, id := range ids {
		wg.Add(1)
		go func(i int, id SwapID) {
			defer wg.Done()
			if i%2 == 0 {
				assert.Equal(t, true, f.nullify(t, id, 700))
			} else {
				assert.Equal(t, true, f.swap(t, id, 100, claimMessage))
				assert.Equal(t, true, f.settle(t, id, 1300))
			}
		}(i, id)
	}
	wg.Wait()

	assert.Equal(t, uint64(funds-swaps*5), f.balance(t, f.sender))
	assert.Equal(t, uint64(swaps*5), f.balance(t, f.receiver))
	assert.Equal(t, 0, f.ledger.ids.size())
	assert.Equal(t, 0, f.ledger.wallets.size())
}

// A receiver may be the escrow wallet of another swap. Both swaps then
// modify the same wallet and must not lose an update.
func TestConcurrentEscrowAsReceiver(t *testing.T) {
	const rounds = 20

	for r := 0; r < rounds; r++ {
		f := newFixture(t)
		target := f.open(t, "target", 0)

		msg := f.openMsg("feeder")
		msg.Receiver = EscrowAddress(target)
		assert.Nil(t, f.coord.Open(xswaptest.BlockCtx(0), f.sender, msg))
		assert.Equal(t, true, f.swap(t, msg.ID, 100, claimMessage))

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			assert.Equal(t, true, f.settle(t, msg.ID, 1300))
		}()
		go func() {
			defer wg.Done()
			assert.Equal(t, true, f.cancel(t, target, 1300, refundMessage))
		}()
		wg.Wait()

		assert.Equal(t, uint64(funds), f.balance(t, f.sender)+f.balance(t, EscrowAddress(target)))
	}
}
