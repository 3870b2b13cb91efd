// Package store persists BingeBoard state in a single SQLite database.
//
// State is kept as JSON documents in a key/value table so the list layer can
// read and rewrite its whole collection under one key. Feedback submissions
// live in their own table.
//
// The schema is built from the embedded migrations/NNN_name.sql files, applied
// forward-only on open. A database written by a newer build is refused with
// ErrSchemaMismatch.
package store
