package container

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func add(t *testing.T, s *Stacked[int], v int) Handle {
	t.Helper()
	h, err := s.Add(v)
	require.NoError(t, err)
	return h
}

func TestRollbackRestoresPriorState(t *testing.T) {
	s := New[int]()
	for i := 0; i < 3; i++ {
		add(t, s, i)
	}
	before := append([]int(nil), s.All()...)

	require.NoError(t, s.EnterScope())
	add(t, s, 10)
	add(t, s, 11)
	require.NoError(t, s.LeaveScope(false))

	assert.Equal(t, before, s.All())
	assert.Equal(t, 0, s.Depth())
}

func TestCommitKeepsOperations(t *testing.T) {
	s := New[int]()
	require.NoError(t, s.EnterScope())
	add(t, s, 1)
	require.NoError(t, s.LeaveScope(true))
	assert.Equal(t, []int{1}, s.All())
}

func TestNestedScopes(t *testing.T) {
	s := New[int]()
	add(t, s, 1)
	require.NoError(t, s.EnterScope()) // transaction
	add(t, s, 2)
	require.NoError(t, s.EnterScope()) // inner call
	add(t, s, 3)
	require.NoError(t, s.LeaveScope(false))
	add(t, s, 4)
	require.NoError(t, s.LeaveScope(true))

	assert.Equal(t, []int{1, 2, 4}, s.All())
}

func TestOuterRollbackDiscardsCommittedInner(t *testing.T) {
	s := New[int]()
	require.NoError(t, s.EnterScope())
	require.NoError(t, s.EnterScope())
	add(t, s, 1)
	require.NoError(t, s.LeaveScope(true))
	require.NoError(t, s.LeaveScope(false))
	assert.Zero(t, s.Len())
}

func TestScopeUnderflow(t *testing.T) {
	s := New[int]()
	assert.ErrorIs(t, s.LeaveScope(true), ErrScopeUnderflow)
}

func TestDeferredPatchesApplyOnceAtFinalize(t *testing.T) {
	s := New[*int]()
	v := 1
	h, err := s.Add(&v)
	require.NoError(t, err)

	calls := 0
	require.NoError(t, s.Defer(h, func() error {
		calls++
		v = 42
		return nil
	}))
	assert.Equal(t, 1, s.PendingPatches())
	assert.Equal(t, Pending, s.State())

	require.NoError(t, s.Finalize())
	require.NoError(t, s.Finalize())
	assert.Equal(t, 1, calls)
	assert.Equal(t, 42, v)
	assert.Equal(t, Finalized, s.State())

	_, err = s.Add(&v)
	assert.ErrorIs(t, err, ErrFinalized)
	assert.ErrorIs(t, s.Defer(h, func() error { return nil }), ErrFinalized)
	assert.ErrorIs(t, s.EnterScope(), ErrFinalized)
}

func TestRollbackDropsPatchesOfDiscardedOperations(t *testing.T) {
	s := New[int]()
	keep := add(t, s, 1)
	require.NoError(t, s.EnterScope())
	gone := add(t, s, 2)
	require.NoError(t, s.Defer(gone, func() error { return errors.New("must not run") }))
	require.NoError(t, s.Defer(keep, func() error { return errors.New("must not run") }))
	require.NoError(t, s.LeaveScope(false))

	assert.Equal(t, 0, s.PendingPatches())
	assert.ErrorIs(t, s.Defer(gone, func() error { return nil }), ErrUnknownHandle)

	// A new operation at the same index does not revive the stale handle.
	add(t, s, 3)
	_, err := s.Get(gone)
	assert.ErrorIs(t, err, ErrUnknownHandle)

	require.NoError(t, s.Finalize())
}

func TestRollbackDropsPatchesOnEarlierOperations(t *testing.T) {
	s := New[int]()
	h := add(t, s, 1)

	applied := map[string]bool{}
	require.NoError(t, s.Defer(h, func() error { applied["before"] = true; return nil }))

	require.NoError(t, s.EnterScope())
	require.NoError(t, s.Defer(h, func() error { applied["reverted"] = true; return nil }))
	require.NoError(t, s.LeaveScope(false))

	require.NoError(t, s.EnterScope())
	require.NoError(t, s.Defer(h, func() error { applied["committed"] = true; return nil }))
	require.NoError(t, s.LeaveScope(true))

	require.NoError(t, s.Finalize())
	assert.Equal(t, map[string]bool{"before": true, "committed": true}, applied)
}

func TestOuterRollbackDropsPatchesOfCommittedInner(t *testing.T) {
	s := New[int]()
	h := add(t, s, 1)

	require.NoError(t, s.EnterScope())
	require.NoError(t, s.EnterScope())
	require.NoError(t, s.Defer(h, func() error { return errors.New("must not run") }))
	require.NoError(t, s.LeaveScope(true))
	assert.Equal(t, 1, s.PendingPatches())
	require.NoError(t, s.LeaveScope(false))

	assert.Equal(t, 0, s.PendingPatches())
	require.NoError(t, s.Finalize())
}

func TestFinalizeRejectsOpenScopes(t *testing.T) {
	s := New[int]()
	require.NoError(t, s.EnterScope())
	assert.Error(t, s.Finalize())
}

func TestFinalizeSurfacesPatchError(t *testing.T) {
	s := New[int]()
	h := add(t, s, 1)
	require.NoError(t, s.Defer(h, func() error { return errors.New("boom") }))
	err := s.Finalize()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.Equal(t, Pending, s.State())
}
