package xswaptest

import (
	"context"
	"time"

	"github.com/iov-one/xswap"
)

// BlockCtx returns a context with the block time set to given UNIX seconds.
func BlockCtx(unix int64) context.Context {
	return xswap.WithBlockTime(context.Background(), time.Unix(unix, 0).UTC())
}
