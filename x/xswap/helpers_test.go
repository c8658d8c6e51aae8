package xswap

import (
	"context"
	"crypto/sha256"
	"sync"
	"testing"

	"github.com/iov-one/xswap"
	"github.com/iov-one/xswap/crypto"
	"github.com/iov-one/xswap/store"
	"github.com/iov-one/xswap/x/cash"
	"github.com/iov-one/xswap/xswaptest"
	"github.com/iov-one/xswap/xswaptest/assert"
)

const (
	claimMessage  = "claim: release the counterpart multisig"
	refundMessage = "refund: counterpart refused"

	funds     = 1000
	principal = 100
)

// fixture is a coordinator over a memory store configured with a 600s
// claim window and a 1200s settlement window.
type fixture struct {
	db       xswap.CacheableKVStore
	cash     cash.Controller
	ledger   *Ledger
	coord    *Coordinator
	sender   xswap.Address
	receiver xswap.Address
	signer   xswaptest.Key
}

func newFixture(t testing.TB) *fixture {
	t.Helper()
	db := store.MemStore()
	ctrl := cash.NewController(cash.NewBucket())
	assert.Nil(t, SaveConfiguration(db, &Configuration{ClaimWindow: 600, SettlementWindow: 1200}))

	f := &fixture{
		db:       db,
		cash:     ctrl,
		sender:   xswaptest.RandomAddr(t),
		receiver: xswaptest.RandomAddr(t),
		signer:   xswaptest.NewSecp256k1Key(t),
	}
	assert.Nil(t, ctrl.IssueCoins(db, f.sender, funds))
	f.ledger = NewLedger(db, ctrl)
	f.coord = NewCoordinator(f.ledger, crypto.NewVerifier())
	return f
}

// openMsg returns a message committing to the claim and refund messages.
func (f *fixture) openMsg(name string) *OpenMsg {
	return &OpenMsg{
		ID:                   swapID(name),
		Receiver:             f.receiver,
		PrincipalValue:       principal,
		CounterpartValue:     7,
		CounterpartSenderRef: "mvd6qFeVkqH6MNAS2Y2cLifbdaX5XUkbZJ",
		CounterpartEscrowRef: "2N2mH3UhGufGYAb3HgC2wzk9dmdt4BVbMum",
		ClaimHash:            crypto.ContentHash([]byte(claimMessage)),
		RefundHash:           crypto.ContentHash([]byte(refundMessage)),
	}
}

// open opens a swap at given block time.
func (f *fixture) open(t testing.TB, name string, at int64) SwapID {
	t.Helper()
	msg := f.openMsg(name)
	assert.Nil(t, f.coord.Open(xswaptest.BlockCtx(at), f.sender, msg))
	return msg.ID
}

func (f *fixture) swap(t testing.TB, id SwapID, at int64, message string) bool {
	t.Helper()
	msg, _, sig := xswaptest.Reveal(f.signer, message)
	ok, err := f.coord.Swap(xswaptest.BlockCtx(at), id, f.signer.Identity(), sig, msg)
	assert.Nil(t, err)
	return ok
}

func (f *fixture) cancel(t testing.TB, id SwapID, at int64, message string) bool {
	t.Helper()
	msg, _, sig := xswaptest.Reveal(f.signer, message)
	ok, err := f.coord.Cancel(xswaptest.BlockCtx(at), id, f.signer.Identity(), sig, msg)
	assert.Nil(t, err)
	return ok
}

func (f *fixture) nullify(t testing.TB, id SwapID, at int64) bool {
	t.Helper()
	ok, err := f.coord.Nullify(xswaptest.BlockCtx(at), id)
	assert.Nil(t, err)
	return ok
}

func (f *fixture) settle(t testing.TB, id SwapID, at int64) bool {
	t.Helper()
	ok, err := f.coord.Settle(xswaptest.BlockCtx(at), id)
	assert.Nil(t, err)
	return ok
}

func (f *fixture) balance(t testing.TB, addr xswap.Address) uint64 {
	t.Helper()
	b, err := f.coord.Balance(addr)
	assert.Nil(t, err)
	return b
}

func (f *fixture) get(t testing.TB, id SwapID) *Swap {
	t.Helper()
	s, err := f.coord.Get(id)
	assert.Nil(t, err)
	return s
}

// swapID returns a deterministic identifier for given name.
func swapID(name string) SwapID {
	return SwapID(sha256.Sum256([]byte(name)))
}

// recorder is a Listener keeping all received events.
type recorder struct {
	mu     sync.Mutex
	events []*Event
}

func (r *recorder) OnEvent(ctx context.Context, e *Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

func (r *recorder) kinds() []EventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := make([]EventKind, len(r.events))
	for i, e := range r.events {
		res[i] = e.Kind
	}
	return res
}
