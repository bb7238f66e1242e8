package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/zkarith/internal/engine"
	"github.com/roach88/zkarith/internal/output"
	"github.com/roach88/zkarith/internal/store"
)

func runTraceCmd(t *testing.T, format string, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := newTraceCommand(&TraceOptions{
		RootOptions: &RootOptions{Format: format},
		IDs:         engine.NewFixedGenerator("c-cli"),
	})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestTraceWritesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	out, err := runTraceCmd(t, "text", filepath.Join("testdata", "events.yaml"), "--out", dir, "--no-progress")
	require.NoError(t, err)
	assert.Contains(t, out, "Conflation c-cli: 5 event(s)")
	assert.Contains(t, out, "MODULE")

	m, err := output.Verify(dir)
	require.NoError(t, err)
	assert.Equal(t, "c-cli", m.Conflation)
	assert.Len(t, m.Modules, len(engine.ModuleNames()))
	for _, name := range engine.ModuleNames() {
		_, err := os.Stat(filepath.Join(dir, name+".bin"))
		assert.NoError(t, err, name)
	}
}

func TestTraceJSON(t *testing.T) {
	dir := t.TempDir()
	out, err := runTraceCmd(t, "json", filepath.Join("testdata", "events.yaml"), "--out", dir)
	require.NoError(t, err)

	var resp struct {
		Status string       `json:"status"`
		Data   TraceSummary `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "c-cli", resp.Data.Conflation)
	assert.Equal(t, uint64(5), resp.Data.Events)
	assert.Equal(t, dir, resp.Data.Dir)

	rows := map[string]int{}
	for _, e := range resp.Data.Modules {
		rows[e.Module] = e.Rows
	}
	assert.Equal(t, 1, rows["add"])
	assert.Equal(t, 1, rows["oob"], "JUMP is a single-row chunk")
	assert.GreaterOrEqual(t, rows["wcp"], 16)
}

func TestTraceRecordsHistory(t *testing.T) {
	db := filepath.Join(t.TempDir(), "history.db")
	_, err := runTraceCmd(t, "text", filepath.Join("testdata", "events.yaml"), "--out", t.TempDir(), "--db", db, "--no-progress")
	require.NoError(t, err)

	st, err := store.Open(db)
	require.NoError(t, err)
	defer st.Close()
	c, err := st.ReadConflation(context.Background(), "c-cli")
	require.NoError(t, err)
	assert.Equal(t, uint64(5), c.Events)
}

func TestTraceStrictLimits(t *testing.T) {
	dir := t.TempDir()
	out, err := runTraceCmd(t, "text", filepath.Join("testdata", "events.yaml"),
		"--config", filepath.Join("testdata", "limits.yaml"), "--out", dir, "--no-progress")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.True(t, engine.IsLimitError(err))
	assert.Contains(t, out, "LIMIT_EXCEEDED")

	m, err := output.ReadManifest(dir)
	require.NoError(t, err, "traces are written before the strict check")
	require.Len(t, m.Overflows, 1)
	assert.Equal(t, "wcp", m.Overflows[0].Module)
}

func TestTraceStrictFlagOverridesConfig(t *testing.T) {
	_, err := runTraceCmd(t, "text", filepath.Join("testdata", "events.yaml"),
		"--config", filepath.Join("testdata", "limits.yaml"), "--strict=false", "--out", t.TempDir(), "--no-progress")
	assert.NoError(t, err)
}

func TestTraceBadInputs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code string
	}{
		{"missing events", []string{"testdata/none.yaml"}, ErrCodeGeneric},
		{"invalid config", []string{"testdata/events.yaml", "--config", "testdata/bad.yaml"}, "CONFIG_SCHEMA"},
		{"config is not events", []string{"testdata/bad.yaml"}, "EVENT_DECODE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append(tt.args, "--out", t.TempDir(), "--no-progress")
			out, err := runTraceCmd(t, "text", args...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, out, "Error ["+tt.code+"]")
		})
	}
}
