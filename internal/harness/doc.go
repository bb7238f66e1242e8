// Package harness runs conformance scenarios against the engine.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: lt_one_zero
//	description: "LT(1,0) spans 16 rows and is false"
//	modules: [wcp]            # optional; callees are added automatically
//	limits: { wcp: 8 }        # optional row limits
//	events:
//	  - kind: opcode
//	    opcode: LT
//	    stack: [1, 0]
//	expect:
//	  error: SCOPE_UNDERFLOW  # optional; the conflation must fail with it
//	assertions:
//	  - type: row_count
//	    module: wcp
//	    count: 16
//	  - type: cell
//	    column: wcp.RESULT
//	    row: 15
//	    value: 0
//
// # Assertion Types
//
//   - row_count: the module's trace has exactly count rows
//   - cell: the cell at (column, row) equals value
//   - column: the column holds exactly values, one per row
//   - overflow: the module exceeded its row limit
//
// Columns are named with their module prefix; the module of a cell or
// column assertion is read from it.
//
// # Deterministic Testing
//
// Every scenario runs in a fresh engine with a fixed conflation id, so
// traces and golden snapshots are identical across runs. Golden snapshots
// live in testdata/golden and are regenerated with
//
//	go test ./internal/harness -update
package harness
