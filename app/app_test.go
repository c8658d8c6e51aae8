package app

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/iov-one/xswap"
	"github.com/iov-one/xswap/config"
	"github.com/iov-one/xswap/crypto"
	"github.com/iov-one/xswap/errors"
	swap "github.com/iov-one/xswap/x/xswap"
	"github.com/iov-one/xswap/xswaptest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

var blockTime = time.Unix(1700000000, 0)

func writeGenesis(t *testing.T, dir string, addr xswap.Address, balance uint64, conf string) string {
	t.Helper()
	content := fmt.Sprintf(`{
  "chain_id": "xswap-test",
  "app_state": {
    "cash": [{"address": %q, "balance": %d}]%s
  }
}`, addr.String(), balance, conf)
	path := filepath.Join(dir, "genesis.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func testConfig(t *testing.T, backend string) *config.Config {
	return &config.Config{
		Datadir:          t.TempDir(),
		Backend:          backend,
		LogLevel:         "error",
		ClaimWindow:      10 * time.Minute,
		SettlementWindow: 20 * time.Minute,
	}
}

func openMsg(name string) *swap.OpenMsg {
	return &swap.OpenMsg{
		ID:                   swap.SwapID(sha256.Sum256([]byte(name))),
		Receiver:             xswap.NewCondition("test", "receiver", []byte(name)).Address(),
		PrincipalValue:       40,
		CounterpartValue:     1,
		CounterpartSenderRef: "sender",
		CounterpartEscrowRef: "escrow",
		ClaimHash:            crypto.ContentHash([]byte("claim " + name)),
		RefundHash:           crypto.ContentHash([]byte("refund " + name)),
	}
}

func TestNewMemoryWithGenesis(t *testing.T) {
	conf := testConfig(t, config.BackendMemory)
	sender := xswaptest.RandomAddr(t)
	conf.Genesis = writeGenesis(t, conf.Datadir, sender, 500,
		`, "conf": {"xswap": {"claim_window": "1m", "settlement_window": 120}}`)

	a, err := New(conf, log.NewNopLogger())
	require.NoError(t, err)
	defer a.Close()

	balance, err := a.Coordinator().Balance(sender)
	require.NoError(t, err)
	assert.EqualValues(t, 500, balance)

	// The genesis configuration takes precedence over the process one.
	ctx := a.Context(context.Background(), blockTime)
	msg := openMsg("genesis")
	require.NoError(t, a.Coordinator().Open(ctx, sender, msg))
	s, err := a.Coordinator().Get(msg.ID)
	require.NoError(t, err)
	assert.Equal(t, xswap.AsUnixTime(blockTime.Add(time.Minute)), s.ClaimDeadline)
	assert.Equal(t, xswap.AsUnixTime(blockTime.Add(2*time.Minute)), s.RefundGraceDeadline)
}

func TestNewStoresProcessWindows(t *testing.T) {
	conf := testConfig(t, config.BackendMemory)
	sender := xswaptest.RandomAddr(t)
	conf.Genesis = writeGenesis(t, conf.Datadir, sender, 100, "")

	a, err := New(conf, log.NewNopLogger())
	require.NoError(t, err)
	defer a.Close()

	ctx := a.Context(context.Background(), blockTime)
	msg := openMsg("windows")
	require.NoError(t, a.Coordinator().Open(ctx, sender, msg))
	s, err := a.Coordinator().Get(msg.ID)
	require.NoError(t, err)
	assert.Equal(t, xswap.AsUnixTime(blockTime.Add(10*time.Minute)), s.ClaimDeadline)
	assert.Equal(t, xswap.AsUnixTime(blockTime.Add(20*time.Minute)), s.RefundGraceDeadline)
}

func TestPersistentBackends(t *testing.T) {
	for _, backend := range []string{config.BackendBolt, config.BackendIAVL} {
		t.Run(backend, func(t *testing.T) {
			conf := testConfig(t, backend)
			sender := xswaptest.RandomAddr(t)
			conf.Genesis = writeGenesis(t, conf.Datadir, sender, 100, "")
			msg := openMsg(backend)

			a, err := New(conf, log.NewNopLogger())
			require.NoError(t, err)
			ctx := a.Context(context.Background(), blockTime)
			require.NoError(t, a.Coordinator().Open(ctx, sender, msg))
			require.NoError(t, a.Close())

			// Reopening must not load the genesis again.
			a, err = New(conf, log.NewNopLogger())
			require.NoError(t, err)
			defer a.Close()

			balance, err := a.Coordinator().Balance(sender)
			require.NoError(t, err)
			assert.EqualValues(t, 60, balance)
			escrow, err := a.Coordinator().EscrowBalance(msg.ID)
			require.NoError(t, err)
			assert.EqualValues(t, 40, escrow)

			ctx = a.Context(context.Background(), blockTime)
			ok, err := a.Coordinator().Nullify(ctx, msg.ID)
			require.NoError(t, err)
			assert.True(t, ok)

			balance, err = a.Coordinator().Balance(sender)
			require.NoError(t, err)
			assert.EqualValues(t, 100, balance)
		})
	}
}

func TestInitGenesisOnce(t *testing.T) {
	a, err := New(testConfig(t, config.BackendMemory), log.NewNopLogger())
	require.NoError(t, err)
	defer a.Close()

	addr := xswaptest.RandomAddr(t)
	opts := xswap.Options{
		"cash": []byte(fmt.Sprintf(`[{"address": %q, "balance": 7}]`, addr.String())),
	}
	require.NoError(t, a.InitGenesis(opts))
	err = a.InitGenesis(opts)
	assert.True(t, errors.ErrAlreadyOpen.Is(err), "got %v", err)
}

func TestInitGenesisFailureLeavesStoreUntouched(t *testing.T) {
	a, err := New(testConfig(t, config.BackendMemory), log.NewNopLogger())
	require.NoError(t, err)
	defer a.Close()

	addr := xswaptest.RandomAddr(t)
	opts := xswap.Options{
		"cash": []byte(fmt.Sprintf(`[{"address": %q, "balance": 7}]`, addr.String())),
		"conf": []byte(`{"xswap": {"claim_window": 0, "settlement_window": 10}}`),
	}
	require.Error(t, a.InitGenesis(opts))

	balance, err := a.Coordinator().Balance(addr)
	require.NoError(t, err)
	assert.EqualValues(t, 0, balance)

	// A failed genesis does not mark the store as initialized.
	delete(opts, "conf")
	require.NoError(t, a.InitGenesis(opts))
}

func TestLoadGenesis(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadGenesis(filepath.Join(dir, "missing.json"))
	assert.True(t, errors.ErrInput.Is(err))

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte(`{"chain_id": "x"}`), 0o600))
	_, err = LoadGenesis(empty)
	assert.True(t, errors.ErrInput.Is(err))

	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte(`{"app_state": [`), 0o600))
	_, err = LoadGenesis(broken)
	assert.True(t, errors.ErrInput.Is(err))
}

func TestNewInvalidConfig(t *testing.T) {
	conf := testConfig(t, "mongo")
	_, err := New(conf, log.NewNopLogger())
	assert.True(t, errors.ErrInput.Is(err), "got %v", err)
}

func TestNewLogger(t *testing.T) {
	_, err := NewLogger(os.Stdout, "info")
	assert.NoError(t, err)
	_, err = NewLogger(os.Stdout, "verbose")
	assert.True(t, errors.ErrInput.Is(err))
}
