// Package container provides the checkpointed operation list every module
// records into.
//
// Scopes mirror call frames and transactions: EnterScope remembers the
// current length and LeaveScope either keeps everything recorded since
// (commit) or truncates back to it (rollback). Operations dropped by a
// rollback never reach a trace writer.
//
// Operations may be amended after they are recorded through deferred
// patches. The container is Pending until Finalize applies every patch once;
// from then on it is frozen.
package container

import (
	"errors"
	"fmt"
)

// Lifecycle is the container's patching phase.
type Lifecycle int

const (
	// Pending accepts operations, scopes and patches.
	Pending Lifecycle = iota
	// Finalized is immutable; only reads are allowed.
	Finalized
)

func (l Lifecycle) String() string {
	if l == Finalized {
		return "finalized"
	}
	return "pending"
}

var (
	// ErrScopeUnderflow is returned by LeaveScope without a matching EnterScope.
	ErrScopeUnderflow = errors.New("scope underflow: leave without enter")

	// ErrFinalized is returned by mutations after Finalize.
	ErrFinalized = errors.New("container is finalized")

	// ErrUnknownHandle is returned when a patch targets no live operation.
	ErrUnknownHandle = errors.New("handle does not reference a live operation")
)

// Handle references one recorded operation.
type Handle struct {
	index int
	gen   uint64
}

// Index returns the operation's position in insertion order.
func (h Handle) Index() int {
	return h.index
}

// checkpoint records the operation and patch counts at EnterScope.
type checkpoint struct {
	ops, patches int
}

type patch struct {
	target Handle
	apply  func() error
}

// Stacked is an ordered list of operations with nested checkpoints.
type Stacked[T any] struct {
	ops         []T
	gens        []uint64
	checkpoints []checkpoint
	patches     []patch
	nextGen     uint64
	state       Lifecycle
}

// New returns an empty Pending container.
func New[T any]() *Stacked[T] {
	return &Stacked[T]{}
}

// Add appends op and returns its handle.
func (s *Stacked[T]) Add(op T) (Handle, error) {
	if s.state == Finalized {
		return Handle{}, ErrFinalized
	}
	s.nextGen++
	s.ops = append(s.ops, op)
	s.gens = append(s.gens, s.nextGen)
	return Handle{index: len(s.ops) - 1, gen: s.nextGen}, nil
}

// EnterScope pushes a checkpoint at the current operation and patch counts.
func (s *Stacked[T]) EnterScope() error {
	if s.state == Finalized {
		return ErrFinalized
	}
	s.checkpoints = append(s.checkpoints, checkpoint{ops: len(s.ops), patches: len(s.patches)})
	return nil
}

// LeaveScope pops the innermost checkpoint. With committed false every
// operation and patch recorded since the checkpoint is discarded, including
// patches that target operations recorded before it.
func (s *Stacked[T]) LeaveScope(committed bool) error {
	if s.state == Finalized {
		return ErrFinalized
	}
	n := len(s.checkpoints)
	if n == 0 {
		return ErrScopeUnderflow
	}
	cp := s.checkpoints[n-1]
	mark := cp.ops
	s.checkpoints = s.checkpoints[:n-1]
	if committed {
		return nil
	}
	var zero T
	for i := mark; i < len(s.ops); i++ {
		s.ops[i] = zero
	}
	s.ops = s.ops[:mark]
	s.gens = s.gens[:mark]
	clear(s.patches[cp.patches:])
	s.patches = s.patches[:cp.patches]
	kept := s.patches[:0]
	for _, p := range s.patches {
		if p.target.index < mark {
			kept = append(kept, p)
		}
	}
	s.patches = kept
	return nil
}

// Depth returns the number of open scopes.
func (s *Stacked[T]) Depth() int {
	return len(s.checkpoints)
}

// Len returns the number of live operations.
func (s *Stacked[T]) Len() int {
	return len(s.ops)
}

// All returns the live operations in insertion order. The slice must not be
// modified.
func (s *Stacked[T]) All() []T {
	return s.ops
}

// Get returns the operation behind h.
func (s *Stacked[T]) Get(h Handle) (T, error) {
	var zero T
	if !s.live(h) {
		return zero, ErrUnknownHandle
	}
	return s.ops[h.index], nil
}

func (s *Stacked[T]) live(h Handle) bool {
	return h.gen != 0 && h.index < len(s.ops) && s.gens[h.index] == h.gen
}

// Defer registers fn to amend the operation behind h at Finalize.
func (s *Stacked[T]) Defer(h Handle, fn func() error) error {
	if s.state == Finalized {
		return ErrFinalized
	}
	if !s.live(h) {
		return ErrUnknownHandle
	}
	s.patches = append(s.patches, patch{target: h, apply: fn})
	return nil
}

// PendingPatches returns the number of unresolved patches.
func (s *Stacked[T]) PendingPatches() int {
	return len(s.patches)
}

// State reports the lifecycle phase.
func (s *Stacked[T]) State() Lifecycle {
	return s.state
}

// Finalize applies every pending patch in registration order and freezes
// the container. Open scopes are an error: the frame that opened them never
// resolved.
func (s *Stacked[T]) Finalize() error {
	if s.state == Finalized {
		return nil
	}
	if len(s.checkpoints) > 0 {
		return fmt.Errorf("finalize with %d open scopes", len(s.checkpoints))
	}
	for i, p := range s.patches {
		if err := p.apply(); err != nil {
			return fmt.Errorf("patch %d on operation %d: %w", i, p.target.index, err)
		}
	}
	s.patches = nil
	s.state = Finalized
	return nil
}
