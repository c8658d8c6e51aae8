/*
Package xswap defines the primitives shared by the cross-chain swap escrow
packages.

The escrow itself lives in x/xswap. This package keeps what every part of
the module needs to agree on: addresses and the conditions they are derived
from, the POSIX time representation used for deadlines, the storage
interfaces, and the context helpers.

We pass context through context.Context between the coordinator, the
ledger and the listeners. Every operation needs the current block time,
which is never read from a wall clock inside this module:

	ctx = xswap.WithBlockTime(ctx, blockTime)
	ctx = xswap.WithLogger(ctx, logger)

There exist two functions for every XYZ of type T that we support in the
context:

	WithXYZ(Context, T) Context
	GetXYZ(Context) (val T, ok bool)
*/
package xswap
