// Package module defines the contract shared by every arithmetization module
// and a generic base that implements the bookkeeping.
//
// A module turns events into Operations. Each Operation knows its row count
// the moment it is built, so a module's total is available before any buffer
// is allocated. The engine then sizes a trace.Writer to RowCount and calls
// Commit, which replays the surviving operations in insertion order, stamping
// each with the module's own monotonic counter.
//
// # Exogenous calls
//
// A module may evaluate part of its computation by calling another module's
// exported method (for example Wcp.LessThan). The callee returns the value and
// records a matching Operation in its own container, so the same computation
// appears as a row in both tables and the solver can link them.
package module
