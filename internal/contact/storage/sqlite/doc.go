// Package sqlite contains SQLite repository implementations of the
// evaluation label and result stores.
//
// The schema is embedded and applied with golang-migrate on Open, so a
// fresh file is usable immediately.
package sqlite
