package module

import (
	"errors"
	"fmt"

	"github.com/roach88/zkarith/internal/container"
	"github.com/roach88/zkarith/internal/event"
	"github.com/roach88/zkarith/internal/trace"
)

// Handle references a recorded operation for deferred amendment.
type Handle = container.Handle

// Operation is one traced computation.
type Operation interface {
	// RowCount is fixed when the operation is built.
	RowCount() int

	// Trace writes exactly RowCount rows. previousID is the id of the
	// previously traced operation (its stamp when it has no external id),
	// 0 for the first.
	Trace(w *trace.Writer, stamp, previousID uint64) error
}

// Identified is implemented by operations carrying an id assigned upstream.
type Identified interface {
	ID() uint64
}

// Module is the unit the engine drives.
type Module interface {
	Name() string
	Columns() []trace.ColumnHeader
	EnterScope() error
	LeaveScope(committed bool) error
	RowCount() int
	Finalize() error
	Commit(w *trace.Writer) error
}

// EventRecorder is implemented by modules that react to events directly.
// ok is false when the event is of no interest to the module.
type EventRecorder interface {
	RecordEvent(ev *event.Event) (h Handle, ok bool, err error)
}

// Base implements Module bookkeeping for operations of type T.
type Base[T Operation] struct {
	name      string
	columns   []trace.ColumnHeader
	ops       *container.Stacked[T]
	stamp     *Stamp
	committed bool
}

// NewBase creates the bookkeeping for module name with the given layout.
func NewBase[T Operation](name string, columns []trace.ColumnHeader) *Base[T] {
	return &Base[T]{
		name:    name,
		columns: columns,
		ops:     container.New[T](),
		stamp:   &Stamp{},
	}
}

// Name returns the module name.
func (b *Base[T]) Name() string {
	return b.name
}

// Columns returns the module's column layout.
func (b *Base[T]) Columns() []trace.ColumnHeader {
	return b.columns
}

// Record appends op.
func (b *Base[T]) Record(op T) (Handle, error) {
	h, err := b.ops.Add(op)
	if err != nil {
		return h, b.wrap(err)
	}
	return h, nil
}

// MustRecord appends op on a path where the container cannot be finalized,
// panicking with the invariant error otherwise. Exogenous calls use it:
// they return values, not errors.
func (b *Base[T]) MustRecord(op T) Handle {
	h, err := b.Record(op)
	if err != nil {
		panic(err)
	}
	return h
}

// Defer registers a patch for the operation behind h.
func (b *Base[T]) Defer(h Handle, fn func(op T) error) error {
	op, err := b.ops.Get(h)
	if err != nil {
		return b.wrap(err)
	}
	return b.wrap(b.ops.Defer(h, func() error { return fn(op) }))
}

// Operations returns the live operations in insertion order.
func (b *Base[T]) Operations() []T {
	return b.ops.All()
}

// EnterScope opens a checkpoint.
func (b *Base[T]) EnterScope() error {
	return b.wrap(b.ops.EnterScope())
}

// LeaveScope closes the innermost checkpoint.
func (b *Base[T]) LeaveScope(committed bool) error {
	return b.wrap(b.ops.LeaveScope(committed))
}

// RowCount sums the row counts of the live operations.
func (b *Base[T]) RowCount() int {
	n := 0
	for _, op := range b.ops.All() {
		n += op.RowCount()
	}
	return n
}

// Finalize applies deferred patches and freezes the module.
func (b *Base[T]) Finalize() error {
	return b.wrap(b.ops.Finalize())
}

// Commit traces every live operation into w. It may succeed only once.
func (b *Base[T]) Commit(w *trace.Writer) error {
	if b.committed {
		return NewInvariantError(b.name, ErrCodeAlreadyCommitted, "commit called twice")
	}
	if n := b.ops.PendingPatches(); n > 0 {
		return NewInvariantError(b.name, ErrCodePendingPatches, "%d unresolved patches", n)
	}
	if rows := b.RowCount(); w.Len() != rows {
		return NewInvariantError(b.name, ErrCodeRowCountMismatch, "writer sized for %d rows, module holds %d", w.Len(), rows)
	}
	b.committed = true

	var previous uint64
	for i, op := range b.ops.All() {
		before, err := w.Size()
		if err != nil {
			return err
		}
		stamp := b.stamp.Next()
		if err := op.Trace(w, stamp, previous); err != nil {
			return fmt.Errorf("%s: trace operation %d: %w", b.name, i, err)
		}
		after, err := w.Size()
		if err != nil {
			return err
		}
		if got := after - before; got != op.RowCount() {
			return NewInvariantError(b.name, ErrCodeRowCountMismatch, "operation %d wrote %d rows, announced %d", i, got, op.RowCount())
		}
		if id, ok := any(op).(Identified); ok {
			previous = id.ID()
		} else {
			previous = stamp
		}
	}
	return nil
}

func (b *Base[T]) wrap(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, container.ErrScopeUnderflow):
		return &InvariantError{Code: ErrCodeScopeUnderflow, Module: b.name, Message: "leave scope without enter", Err: err}
	case errors.Is(err, container.ErrFinalized):
		return &InvariantError{Code: ErrCodeFinalized, Module: b.name, Message: "module already finalized", Err: err}
	default:
		return fmt.Errorf("%s: %w", b.name, err)
	}
}
