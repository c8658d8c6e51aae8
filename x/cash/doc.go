/*
Package cash defines a simple implementation of holding and moving a
single kind of coin between wallets.

There is no logic in the coins, except that the balance of any wallet may
not go below zero or overflow. Thus, this implementation is referred to as
cash. Simple and safe.

Wallets are addressed by xswap.Address. A wallet that was never written
holds nothing.
*/
package cash
