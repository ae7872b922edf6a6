package refresh

import "sync"

// Ticket identifies one fetch of a resource.
type Ticket struct {
	Resource Resource
	Seq      uint64
}

// Tracker issues per-resource sequence numbers. A fetch result is only
// applied when its ticket is still the newest issued for that resource.
// It is safe for concurrent use.
type Tracker struct {
	mu     sync.Mutex
	latest map[Resource]uint64
}

// NewTracker returns an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{latest: make(map[Resource]uint64)}
}

// Begin issues the next ticket for r. Call it immediately before the
// request is sent.
func (t *Tracker) Begin(r Resource) Ticket {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.latest[r]++
	return Ticket{Resource: r, Seq: t.latest[r]}
}

// Accept reports whether tk is the newest ticket issued for its resource.
func (t *Tracker) Accept(tk Ticket) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return tk.Seq != 0 && t.latest[tk.Resource] == tk.Seq
}

// Latest returns the newest sequence number issued for r, or 0.
func (t *Tracker) Latest(r Resource) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.latest[r]
}
