/*
Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each extension keeps a single configuration entity, stored under the
"_c:<package>" key. A configuration is validated before it is saved, so a
loaded configuration is always valid.

Configuration can be loaded from the "conf" section of a genesis document,
keyed by the package name.
*/
package gconf
