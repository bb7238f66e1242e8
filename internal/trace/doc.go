// Package trace holds the column-major witness tables produced by modules.
//
// A module declares its columns once, then the engine allocates a Writer sized
// to the module's pre-computed row count and the module replays its operations
// into it. The Writer enforces that every column of a row is written exactly
// once before the row is validated:
//
//	w, _ := trace.NewWriter("wcp", headers, rows)
//	w.Row().Uint("wcp.COUNTER", 0).Bool("wcp.RESULT", true)...Validate()
//	t, err := w.Build()
//
// Any violation poisons the writer: the first error is returned by every later
// call, so a module can write a whole row and check a single error at the end.
// Built traces serialize to a flat binary format, one byte array per column,
// that the constraint solver can map directly.
package trace
