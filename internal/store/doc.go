// Package store records committed conflations in SQLite.
//
// Three tables hold the history:
//   - conflations: one summary row per committed conflation
//   - module_traces: rows, columns and digest of each module's trace file
//   - limit_overflows: modules that exceeded their configured row limit
//
// Conflations are ordered by a logical seq assigned at insert time, never
// by timestamps, so listings are identical across machines. Queries order
// ties with COLLATE BINARY.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL
//   - busy_timeout=5000
//   - foreign_keys=ON
package store
