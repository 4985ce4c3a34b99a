package cursorfx

import (
	"sync"
)

type FrameID uint64

// FrameScheduler is the host's display-refresh callback queue.
type FrameScheduler interface {
	// RequestFrame schedules fn for the next display frame.
	RequestFrame(fn func()) FrameID
	// CancelFrame drops a request that has not run yet.
	CancelFrame(id FrameID)
}

// FrameQueue is a FrameScheduler driven by whoever owns the display loop:
// each RunFrame call is one display refresh.
type FrameQueue struct {
	mu      sync.Mutex
	next    FrameID
	order   []FrameID
	pending map[FrameID]func()
}

func NewFrameQueue() *FrameQueue {
	return &FrameQueue{
		pending: make(map[FrameID]func()),
	}
}

func (q *FrameQueue) RequestFrame(fn func()) FrameID {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.next++
	id := q.next
	q.pending[id] = fn
	q.order = append(q.order, id)
	return id
}

func (q *FrameQueue) CancelFrame(id FrameID) {
	q.mu.Lock()
	delete(q.pending, id)
	q.mu.Unlock()
}

// RunFrame runs, in request order, the callbacks requested before the call.
// Callbacks requested while running wait for the next RunFrame. Returns the
// number of callbacks run.
func (q *FrameQueue) RunFrame() int {
	q.mu.Lock()
	order := q.order
	q.order = nil
	fns := make([]func(), 0, len(order))
	for _, id := range order {
		if fn, ok := q.pending[id]; ok {
			fns = append(fns, fn)
			delete(q.pending, id)
		}
	}
	q.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
	return len(fns)
}

// Pending returns the number of requests waiting for the next frame.
func (q *FrameQueue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// FrameLoop runs fn once per display frame by rescheduling itself after
// every run until Stop.
type FrameLoop struct {
	sched   FrameScheduler
	fn      func()
	pending FrameID
	queued  bool
	stopped bool
	frames  uint64
}

func NewFrameLoop(sched FrameScheduler, fn func()) *FrameLoop {
	return &FrameLoop{sched: sched, fn: fn}
}

// Start runs the first frame immediately, then keeps rescheduling.
func (l *FrameLoop) Start() {
	l.tick()
}

func (l *FrameLoop) tick() {
	l.queued = false
	if l.stopped {
		return
	}
	l.fn()
	l.frames++
	if l.stopped {
		return
	}
	l.pending = l.sched.RequestFrame(l.tick)
	l.queued = true
}

// Stop cancels the pending frame. A frame already running finishes.
func (l *FrameLoop) Stop() {
	l.stopped = true
	if l.queued {
		l.sched.CancelFrame(l.pending)
		l.queued = false
	}
}

func (l *FrameLoop) Frames() uint64 {
	return l.frames
}

func (l *FrameLoop) Running() bool {
	return !l.stopped
}
