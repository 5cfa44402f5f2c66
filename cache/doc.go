// SPDX-License-Identifier: MIT

// Package cache persists numeric artifacts (eigenvalue lists and other
// float64 vectors) between runs so repeated analyses of the same
// checkpoint skip the expensive eigendecompositions.
//
// A Store maps a Key (checkpoint identity, artifact name and the numeric
// settings that produced it) to a []float64. Three stores are provided:
//
//   - Memory:  bounded in-process cache on ristretto.
//   - SQLite:  durable cache in a single sqlite file (modernc.org/sqlite,
//     no cgo).
//   - Layered: Memory in front of SQLite; hits on the back store are
//     promoted to the front.
//
// GetOrCompute is the single entry point used by the pipeline. Numeric
// packages never see a Store.
//
// Concurrency: every Store is safe for concurrent use. Concurrent writers
// of the same Key are not coordinated; the last Put wins.
package cache
