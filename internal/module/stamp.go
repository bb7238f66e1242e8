package module

import "sync/atomic"

// Stamp is a module's monotonic operation counter. The first stamp handed
// out is 1. Each module owns its own Stamp so independent modules can be
// committed and tested in isolation.
type Stamp struct {
	seq atomic.Uint64
}

// NewStampAt creates a counter whose next value is start+1.
func NewStampAt(start uint64) *Stamp {
	s := &Stamp{}
	s.seq.Store(start)
	return s
}

// Next returns the next stamp.
func (s *Stamp) Next() uint64 {
	return s.seq.Add(1)
}

// Current returns the last stamp handed out.
func (s *Stamp) Current() uint64 {
	return s.seq.Load()
}
