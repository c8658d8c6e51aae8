// nolint
package store

import "github.com/iov-one/xswap"

// Move references for all storage types into this package
// for shorter names everywhere

type ReadOnlyKVStore = xswap.ReadOnlyKVStore
type SetDeleter = xswap.SetDeleter
type KVStore = xswap.KVStore
type Batch = xswap.Batch
type Iterator = xswap.Iterator
type CacheableKVStore = xswap.CacheableKVStore
type KVCacheWrap = xswap.KVCacheWrap
type CommitKVStore = xswap.CommitKVStore
type CommitID = xswap.CommitID
