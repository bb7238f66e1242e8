// Package engine drives a conflation through the arithmetization modules.
//
// The engine stands where the EVM tracer's hub would: it owns one instance
// of every enabled module, wires the exogenous calls between them, and
// replays an ordered event stream into them.
//
// ARCHITECTURE:
//
// Single pass, single goroutine:
// Process dispatches events strictly in order. Modules are not safe for
// concurrent use and row order is part of the output, so nothing inside a
// conflation runs in parallel.
//
// Event Processing Flow:
//  1. Each event is stamped with the next Clock value.
//  2. Enter and leave events are broadcast to every module, which checkpoint
//     or roll back their operations.
//  3. Opcode and precompile events go to every module that records events;
//     modules that do not handle an event ignore it.
//  4. A module may call into other modules while recording. Those calls
//     record rows in the callee as a side effect.
//
// Commit then finalizes every module, sizes a writer from its RowCount and
// fills it. Only finished traces leave the engine, and only they may be
// flushed concurrently.
//
// FAILURE MODEL:
//
// Any module error or invariant panic aborts the conflation with a
// RuntimeError naming the event sequence number and the module. There are
// no retries: a partially traced conflation is never committed.
package engine
