package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalCanonical(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want string
	}{
		{"sorted keys", map[string]any{"b": 1, "a": true}, `{"a":true,"b":1}`},
		{"no html escaping", "<a&b>", `"<a&b>"`},
		{"control characters", "a\nb\x01", `"a\nb\u0001"`},
		{"line separator stays literal", "x\u2028y", "\"x\u2028y\""},
		{"nfc", "e\u0301", "\"\u00e9\""},
		{"nested", []any{map[string]any{"z": "", "y": []any{}}}, `[{"y":[],"z":""}]`},
		{"utf16 order", map[string]any{"\U0001F600": 1, "ﬁ": 2}, "{\"\U0001F600\":1,\"ﬁ\":2}"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := MarshalCanonical(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, string(got))
		})
	}
}

func TestMarshalCanonicalRejects(t *testing.T) {
	for _, v := range []any{nil, 1.5, map[string]any{"a": nil}, struct{}{}} {
		_, err := MarshalCanonical(v)
		assert.Error(t, err, "%#v", v)
	}
}

func TestDigestIsDomainSeparated(t *testing.T) {
	data := []byte("rows")
	assert.NotEqual(t, Digest(DomainTrace, data), Digest(DomainManifest, data))
	assert.Len(t, Digest(DomainTrace, data), 64)
	assert.Equal(t, Digest(DomainTrace, data), Digest(DomainTrace, []byte("rows")))
}

func TestManifestMarshalIsStable(t *testing.T) {
	m := &Manifest{
		Conflation: "c-1",
		Events:     3,
		Modules: []Entry{
			{Module: "wcp", File: "wcp.bin", Rows: 16, Columns: 30, Bytes: 100, Digest: "ab"},
			{Module: "add", File: "add.bin", Rows: 1, Columns: 9, Bytes: 50, Digest: "cd"},
		},
	}
	m.Sort()
	assert.Equal(t, "add", m.Modules[0].Module)
	assert.Equal(t, 17, m.Rows())

	a, err := m.Marshal()
	require.NoError(t, err)
	b, err := m.Marshal()
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Contains(t, string(a), `"conflation":"c-1"`)
	assert.Contains(t, string(a), `"overflows":[]`)

	d, err := m.Digest()
	require.NoError(t, err)
	assert.Equal(t, Digest(DomainManifest, a), d)
}

func TestUnmarshalRoundTrip(t *testing.T) {
	m := &Manifest{
		Conflation: "c-2",
		Modules:    []Entry{{Module: "add", File: "add.bin", Rows: 2, Columns: 9, Bytes: 10, Digest: "ff"}},
		Overflows:  []Overflow{{Module: "add", Rows: 2, Limit: 1}},
	}
	data, err := m.Marshal()
	require.NoError(t, err)

	got, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, m, got)

	_, err = Unmarshal([]byte(`{"version":9}`))
	assert.ErrorContains(t, err, "unsupported manifest version")
}
