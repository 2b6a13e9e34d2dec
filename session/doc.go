// Package session provides core.Store implementations: a volatile in-memory
// store and a JSON-file-backed store. Both serialize mutations through a
// store-level mutex so concurrent turns on the same (or different) session
// ids can never lose each other's writes. A SQLite-backed store lives in the
// sqlite subpackage.
package session
