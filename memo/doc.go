// Package memo provides bounded memo tables for pure functions of a
// (coin bound, remaining value) state.
//
// A memo table is only correct for pure functions: the value stored for a
// Key must be the value any later evaluation of the same Key would produce.
// Entries may be dropped at any time, in which case the caller recomputes.
//
// Two backends are provided:
//   - Table: two generations of sync.Map per shard, rotated when the head
//     generation is full. Keys are spread over shards with xxhash.
//   - Ristretto: a lossy admission-controlled cache from dgraph-io/ristretto.
//
// Tableize wraps a function so every call goes through a Store.
package memo
