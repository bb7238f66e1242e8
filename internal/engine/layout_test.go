package engine

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

// TestLayoutGolden pins every module's column names, widths and order.
// Regenerate with: go test ./internal/engine -run TestLayoutGolden -update
func TestLayoutGolden(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	for _, name := range ModuleNames() {
		t.Run(name, func(t *testing.T) {
			headers, err := Layout(name)
			require.NoError(t, err)

			var b strings.Builder
			for _, h := range headers {
				fmt.Fprintf(&b, "%s %d\n", h.Name, h.Width)
			}
			g.Assert(t, "layout_"+name, []byte(b.String()))
		})
	}
}

func TestLayout_UnknownModule(t *testing.T) {
	_, err := Layout("nope")
	require.Error(t, err)
}
