// Package sqlite caches keyword tables in a local SQLite database.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. Each keyword source (identified by its Name) has at most
// one cached table, replaced on every successful fetch.
//
// # Schema
//
// The schema is managed through versioned migrations in the migrations/
// directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// The database is stored as keywords.db in the config directory,
// ~/.adcheck by default.
package sqlite
