package engine

import (
	"log/slog"
)

// enterScope opens a checkpoint in every module.
func (e *Engine) enterScope(seq uint64) error {
	for _, m := range e.modules.list {
		if err := m.EnterScope(); err != nil {
			return e.moduleError(seq, m.Name(), err)
		}
	}
	e.depth++
	return nil
}

// leaveScope closes the innermost checkpoint everywhere. Underflow is caught
// before any module is touched, so no module is left half rolled back.
func (e *Engine) leaveScope(seq uint64, committed bool) error {
	if e.depth == 0 {
		slog.Warn("leave without enter", "conflation", e.id, "seq", seq)
		return &RuntimeError{Code: ErrCodeScopeUnderflow, Message: "leave event without matching enter", Conflation: e.id, Seq: seq}
	}
	for _, m := range e.modules.list {
		if err := m.LeaveScope(committed); err != nil {
			return e.moduleError(seq, m.Name(), err)
		}
	}
	e.depth--
	if !committed {
		slog.Debug("scope reverted", "conflation", e.id, "seq", seq, "depth", e.depth)
	}
	return nil
}

// Depth returns the number of open scopes.
func (e *Engine) Depth() int {
	return e.depth
}
