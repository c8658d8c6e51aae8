// Package xswaptest provides helpers shared by the tests of the swap
// extension and its supporting packages.
package xswaptest
