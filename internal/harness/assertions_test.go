package harness

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/zkarith/internal/word"
)

func u(v uint64) word.Word { return word.FromUint64(v) }

// ltResult runs LT(1,0) through wcp alone.
func ltResult(t *testing.T) *Result {
	t.Helper()
	s := mustParse(t, `
name: lt
modules: [wcp]
events:
  - kind: opcode
    opcode: LT
    stack: [1, 0]
assertions: []
`)
	r, err := Run(context.Background(), s)
	require.NoError(t, err)
	require.True(t, r.Pass, r.Errors)
	return r
}

func TestEvaluateAssertions_Pass(t *testing.T) {
	r := ltResult(t)
	errs := EvaluateAssertions(r, []Assertion{
		{Type: AssertRowCount, Module: "wcp", Count: 16},
		{Type: AssertCell, Column: "wcp.RESULT", Row: 0, Value: word.Zero},
		{Type: AssertCell, Column: "wcp.ARGUMENT_1_LO", Row: 3, Value: u(1)},
	})
	assert.Empty(t, errs)
}

func TestEvaluateAssertions_Failures(t *testing.T) {
	r := ltResult(t)

	tests := []struct {
		name      string
		assertion Assertion
		want      string
	}{
		{
			name:      "row count",
			assertion: Assertion{Type: AssertRowCount, Module: "wcp", Count: 1},
			want:      "row_count wcp: expected 1, actual 16",
		},
		{
			name:      "untraced module",
			assertion: Assertion{Type: AssertRowCount, Module: "shf", Count: 1},
			want:      `module "shf" not traced`,
		},
		{
			name:      "unknown column",
			assertion: Assertion{Type: AssertCell, Column: "wcp.NOPE", Value: u(1)},
			want:      `no column "wcp.NOPE"`,
		},
		{
			name:      "cell value",
			assertion: Assertion{Type: AssertCell, Column: "wcp.RESULT", Row: 2, Value: u(1)},
			want:      "cell wcp.RESULT[2]",
		},
		{
			name:      "row out of range",
			assertion: Assertion{Type: AssertCell, Column: "wcp.RESULT", Row: 16, Value: u(1)},
			want:      "expected row 16, actual 16 rows",
		},
		{
			name:      "column length",
			assertion: Assertion{Type: AssertColumn, Column: "wcp.RESULT", Values: []word.Word{word.Zero}},
			want:      "column wcp.RESULT",
		},
		{
			name:      "no overflow",
			assertion: Assertion{Type: AssertOverflow, Module: "wcp"},
			want:      "overflow wcp: expected rows over limit, actual within limit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := EvaluateAssertions(r, []Assertion{tt.assertion})
			require.Len(t, errs, 1)
			assert.Contains(t, errs[0], "assertion[0]")
			assert.Contains(t, errs[0], tt.want)
		})
	}
}

func TestSnapshot_OmitsEmptyFields(t *testing.T) {
	data, err := NewSnapshot("lt", ltResult(t)).Marshal()
	require.NoError(t, err)
	assert.Equal(t,
		`{"conflation":"scenario-lt","events":1,"modules":[{"module":"wcp","rows":16}],"scenario":"lt"}`+"\n",
		string(data))
}
