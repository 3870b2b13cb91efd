// Package lists is the single source of truth for a user's watchlists.
//
// Every operation reads the whole collection through a Repository, mutates it,
// and writes it back. BlobRepository keeps the collection as one JSON document
// in the key/value store and owns the read-side invariants: legacy or missing
// fields are normalized and expired entries of the reserved "Interested" list
// are pruned on every load. Unparseable state is logged and treated as an empty
// collection.
package lists
