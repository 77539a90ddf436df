// Package flight implements the "supersede in-flight work" discipline used
// by every asynchronous interaction in the client: the search debounce
// window, the per-selection detail fetch, and view teardown.
//
// A Slot hands out generation-numbered Tickets. Issuing a new ticket
// supersedes all earlier ones; a result arriving with a stale ticket is
// ignored rather than committed. This is logical cancellation: the
// underlying work is not aborted, its result just never lands.
//
// Slots are owned by the event loop and are not safe for concurrent use.
// Tickets are plain values and may be carried through messages freely.
package flight

// Ticket identifies one issue of a Slot's work.
type Ticket struct {
	gen uint64
}

// Gen exposes the ticket's generation, for logging.
func (t Ticket) Gen() uint64 {
	return t.gen
}

// Slot guards one kind of single-flight work.
//
// The zero value is ready to use and holds no ticket.
type Slot struct {
	gen uint64
}

// Issue supersedes any outstanding ticket and returns a fresh one. Results
// tagged with earlier tickets will no longer commit.
func (s *Slot) Issue() Ticket {
	s.gen++
	return Ticket{gen: s.gen}
}

// Current reports whether t is the most recently issued ticket. A zero
// Ticket is never current.
func (s *Slot) Current(t Ticket) bool {
	return t.gen != 0 && t.gen == s.gen
}

// Invalidate supersedes any outstanding ticket without issuing a new one.
// Used on teardown and when a stronger action overrides pending work.
func (s *Slot) Invalidate() {
	s.gen++
}
