package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/roach88/zkarith/internal/event"
	"github.com/roach88/zkarith/internal/module"
	"github.com/roach88/zkarith/internal/trace"
)

// Engine replays events into the module set of one conflation.
//
// Thread-safety model:
//   - Process and Commit must be called from one goroutine.
//   - Clock and ID are safe from any goroutine.
//
// INVARIANTS:
//   - module order never changes after construction
//   - every enabled module sees every scope event
//   - Commit succeeds at most once
type Engine struct {
	id        string
	clock     *Clock
	ids       IDGenerator
	limits    Limits
	names     []string
	modules   *moduleSet
	depth     int
	committed bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLimits sets per-module row limits reported by CheckLimits.
func WithLimits(l Limits) Option {
	return func(e *Engine) {
		e.limits = l
	}
}

// WithModules restricts the engine to the named modules and the modules
// they call into. No names means every module.
func WithModules(names ...string) Option {
	return func(e *Engine) {
		e.names = names
	}
}

// WithIDGenerator replaces the UUIDv7 conflation ids.
func WithIDGenerator(g IDGenerator) Option {
	return func(e *Engine) {
		e.ids = g
	}
}

// WithClock starts event numbering from an existing clock.
func WithClock(c *Clock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

// New creates an engine and its modules.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		clock:  NewClock(),
		ids:    UUIDv7Generator{},
		limits: Limits{},
	}
	for _, opt := range opts {
		opt(e)
	}
	set, err := buildModules(e.names)
	if err != nil {
		return nil, err
	}
	e.modules = set
	e.id = e.ids.Generate()
	return e, nil
}

// ID returns the conflation id.
func (e *Engine) ID() string {
	return e.id
}

// Clock returns the event clock.
func (e *Engine) Clock() *Clock {
	return e.clock
}

// Modules returns the enabled modules in dispatch order.
func (e *Engine) Modules() []module.Module {
	return e.modules.list
}

// Module returns the named module if it is enabled.
func (e *Engine) Module(name string) (module.Module, bool) {
	m, ok := e.modules.byName[name]
	return m, ok
}

// Process dispatches events in order. Cancellation is checked between
// events; an event is never half dispatched.
func (e *Engine) Process(ctx context.Context, events []event.Event) error {
	slog.Info("conflation started", "conflation", e.id, "events", len(events), "modules", len(e.modules.list))
	for i := range events {
		if err := ctx.Err(); err != nil {
			slog.Info("conflation cancelled", "conflation", e.id, "processed", i)
			return fmt.Errorf("conflation %s cancelled after %d events: %w", e.id, i, err)
		}
		if err := e.Dispatch(&events[i]); err != nil {
			slog.Error("event processing failed",
				"conflation", e.id,
				"index", i,
				"kind", events[i].Kind,
				"error", err,
			)
			return err
		}
	}
	return nil
}

// Dispatch stamps and routes a single event.
func (e *Engine) Dispatch(ev *event.Event) error {
	seq := e.clock.Next()
	if e.committed {
		return &RuntimeError{Code: ErrCodeAlreadyCommitted, Message: "event after commit", Conflation: e.id, Seq: seq}
	}
	switch ev.Kind {
	case event.KindEnter:
		return e.enterScope(seq)
	case event.KindLeave:
		return e.leaveScope(seq, ev.Committed)
	case event.KindOpcode, event.KindPrecompile:
		slog.Debug("dispatching event", "seq", seq, "kind", ev.Kind, "opcode", ev.Opcode, "precompile", ev.Precompile)
		for _, m := range e.modules.list {
			r, ok := m.(module.EventRecorder)
			if !ok {
				continue
			}
			if err := e.record(seq, m.Name(), r, ev); err != nil {
				return err
			}
		}
		return nil
	default:
		return &RuntimeError{Code: ErrCodeModuleFailure, Message: fmt.Sprintf("unknown event kind %q", ev.Kind), Conflation: e.id, Seq: seq}
	}
}

// record runs one module's RecordEvent. Exogenous calls report invariant
// failures by panicking; those panics are turned back into errors here.
// Any other panic is a bug and propagates.
func (e *Engine) record(seq uint64, name string, r module.EventRecorder, ev *event.Event) (err error) {
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		perr, ok := p.(error)
		if !ok || !module.IsInvariantError(perr) {
			panic(p)
		}
		err = e.moduleError(seq, name, perr)
	}()
	if _, _, rerr := r.RecordEvent(ev); rerr != nil {
		return e.moduleError(seq, name, rerr)
	}
	return nil
}

func (e *Engine) moduleError(seq uint64, name string, err error) *RuntimeError {
	return &RuntimeError{
		Code:       ErrCodeModuleFailure,
		Message:    "module rejected event",
		Conflation: e.id,
		Seq:        seq,
		Module:     name,
		Err:        err,
	}
}

// Result is a committed conflation.
type Result struct {
	ID     string
	Events uint64
	Traces []*trace.Trace
}

// Rows returns the total row count over all traces.
func (r *Result) Rows() int {
	n := 0
	for _, t := range r.Traces {
		n += t.Rows
	}
	return n
}

// Commit finalizes every module and builds its trace. Deferred patches may
// still touch other modules' operations, so all modules are finalized
// before any is committed.
func (e *Engine) Commit() (*Result, error) {
	if e.committed {
		return nil, &RuntimeError{Code: ErrCodeAlreadyCommitted, Message: "commit called twice", Conflation: e.id}
	}
	if e.depth != 0 {
		return nil, &RuntimeError{Code: ErrCodeOpenScopes, Message: fmt.Sprintf("%d scopes still open", e.depth), Conflation: e.id}
	}
	e.committed = true

	for _, m := range e.modules.list {
		if err := m.Finalize(); err != nil {
			return nil, e.commitError(m.Name(), err)
		}
	}
	res := &Result{ID: e.id, Events: e.clock.Current()}
	for _, m := range e.modules.list {
		w, err := trace.NewWriter(m.Name(), m.Columns(), m.RowCount())
		if err != nil {
			return nil, e.commitError(m.Name(), err)
		}
		if err := m.Commit(w); err != nil {
			return nil, e.commitError(m.Name(), err)
		}
		t, err := w.Build()
		if err != nil {
			return nil, e.commitError(m.Name(), err)
		}
		slog.Debug("module committed", "conflation", e.id, "module", m.Name(), "rows", t.Rows)
		res.Traces = append(res.Traces, t)
	}
	slog.Info("conflation committed", "conflation", e.id, "events", res.Events, "rows", res.Rows())
	return res, nil
}

func (e *Engine) commitError(name string, err error) *RuntimeError {
	msg := "commit failed"
	var te *trace.Error
	if errors.As(err, &te) {
		msg = fmt.Sprintf("commit failed with %s", te.Code)
	}
	return &RuntimeError{Code: ErrCodeModuleFailure, Message: msg, Conflation: e.id, Module: name, Err: err}
}
