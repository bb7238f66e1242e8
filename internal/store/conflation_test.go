package store

import (
	"context"
	"errors"
	"testing"

	"github.com/roach88/zkarith/internal/manifest"
)

func memoryStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(MemoryPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testManifest(id string) *manifest.Manifest {
	return &manifest.Manifest{
		Conflation: id,
		Events:     5,
		Modules: []manifest.Entry{
			{Module: "add", File: "add.bin", Rows: 1, Columns: 9, Bytes: 120, Digest: "aa"},
			{Module: "wcp", File: "wcp.bin", Rows: 16, Columns: 31, Bytes: 900, Digest: "bb"},
		},
		Overflows: []manifest.Overflow{{Module: "wcp", Rows: 16, Limit: 8}},
	}
}

func TestWriteConflation(t *testing.T) {
	ctx := context.Background()
	s := memoryStore(t)
	m := testManifest("c-1")

	inserted, err := s.WriteConflation(ctx, m, "out/c-1")
	if err != nil {
		t.Fatalf("WriteConflation() failed: %v", err)
	}
	if !inserted {
		t.Fatal("first write not reported as inserted")
	}

	c, err := s.ReadConflation(ctx, "c-1")
	if err != nil {
		t.Fatalf("ReadConflation() failed: %v", err)
	}
	digest, _ := m.Digest()
	want := Conflation{ID: "c-1", Seq: 1, Events: 5, Rows: 17, ManifestDigest: digest, OutDir: "out/c-1"}
	if c != want {
		t.Errorf("ReadConflation() = %+v, want %+v", c, want)
	}

	entries, err := s.ReadModuleTraces(ctx, "c-1")
	if err != nil {
		t.Fatalf("ReadModuleTraces() failed: %v", err)
	}
	if len(entries) != 2 || entries[0] != m.Modules[0] || entries[1] != m.Modules[1] {
		t.Errorf("ReadModuleTraces() = %+v, want %+v", entries, m.Modules)
	}

	overflows, err := s.ReadOverflows(ctx, "c-1")
	if err != nil {
		t.Fatalf("ReadOverflows() failed: %v", err)
	}
	if len(overflows) != 1 || overflows[0] != m.Overflows[0] {
		t.Errorf("ReadOverflows() = %+v", overflows)
	}
}

func TestWriteConflation_Idempotent(t *testing.T) {
	ctx := context.Background()
	s := memoryStore(t)

	if _, err := s.WriteConflation(ctx, testManifest("c-1"), "a"); err != nil {
		t.Fatal(err)
	}
	inserted, err := s.WriteConflation(ctx, testManifest("c-1"), "b")
	if err != nil {
		t.Fatalf("second WriteConflation() failed: %v", err)
	}
	if inserted {
		t.Error("duplicate id reported as inserted")
	}

	c, err := s.ReadConflation(ctx, "c-1")
	if err != nil {
		t.Fatal(err)
	}
	if c.OutDir != "a" {
		t.Errorf("duplicate write replaced out_dir: %q", c.OutDir)
	}
	entries, _ := s.ReadModuleTraces(ctx, "c-1")
	if len(entries) != 2 {
		t.Errorf("duplicate write changed module traces: %d entries", len(entries))
	}
}

func TestListConflations_OrderedBySeq(t *testing.T) {
	ctx := context.Background()
	s := memoryStore(t)

	list, err := s.ListConflations(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if list == nil || len(list) != 0 {
		t.Errorf("empty store: got %v, want empty non-nil slice", list)
	}

	for _, id := range []string{"zz", "aa", "mm"} {
		if _, err := s.WriteConflation(ctx, testManifest(id), id); err != nil {
			t.Fatal(err)
		}
	}
	list, err = s.ListConflations(ctx)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for i, c := range list {
		got = append(got, c.ID)
		if c.Seq != int64(i+1) {
			t.Errorf("%s: seq %d, want %d", c.ID, c.Seq, i+1)
		}
	}
	if len(got) != 3 || got[0] != "zz" || got[1] != "aa" || got[2] != "mm" {
		t.Errorf("ListConflations() order = %v, want insertion order", got)
	}
}

func TestReadConflation_NotFound(t *testing.T) {
	_, err := memoryStore(t).ReadConflation(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("ReadConflation(missing) error = %v, want ErrNotFound", err)
	}
}

func TestWriteConflation_NoOverflows(t *testing.T) {
	ctx := context.Background()
	s := memoryStore(t)
	m := testManifest("c-2")
	m.Overflows = nil
	if _, err := s.WriteConflation(ctx, m, "out"); err != nil {
		t.Fatal(err)
	}
	overflows, err := s.ReadOverflows(ctx, "c-2")
	if err != nil {
		t.Fatal(err)
	}
	if len(overflows) != 0 {
		t.Errorf("expected no overflows, got %+v", overflows)
	}
}
