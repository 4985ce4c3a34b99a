package cursorfx

import (
	"sync"

	"github.com/google/uuid"
)

type PointerMoveFunc func(x, y float64)

type ResizeFunc func(width, height int)

// Events is a host's registry of pointer-move and resize listeners.
// Listeners are independent; dispatch order between them is unspecified.
type Events struct {
	mu      sync.Mutex
	pointer map[uuid.UUID]PointerMoveFunc
	resize  map[uuid.UUID]ResizeFunc
}

func NewEvents() *Events {
	return &Events{
		pointer: make(map[uuid.UUID]PointerMoveFunc),
		resize:  make(map[uuid.UUID]ResizeFunc),
	}
}

// Subscription is a scoped listener registration.
type Subscription struct {
	id     uuid.UUID
	once   sync.Once
	remove func(uuid.UUID)
}

func (s *Subscription) ID() uuid.UUID {
	return s.id
}

// Unsubscribe removes the listener. Further calls do nothing.
func (s *Subscription) Unsubscribe() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		s.remove(s.id)
	})
}

func (e *Events) OnPointerMove(fn PointerMoveFunc) *Subscription {
	id := uuid.New()
	e.mu.Lock()
	e.pointer[id] = fn
	e.mu.Unlock()
	return &Subscription{id: id, remove: func(id uuid.UUID) {
		e.mu.Lock()
		delete(e.pointer, id)
		e.mu.Unlock()
	}}
}

func (e *Events) OnResize(fn ResizeFunc) *Subscription {
	id := uuid.New()
	e.mu.Lock()
	e.resize[id] = fn
	e.mu.Unlock()
	return &Subscription{id: id, remove: func(id uuid.UUID) {
		e.mu.Lock()
		delete(e.resize, id)
		e.mu.Unlock()
	}}
}

func (e *Events) EmitPointerMove(x, y float64) {
	for _, fn := range e.pointerListeners() {
		fn(x, y)
	}
}

func (e *Events) EmitResize(width, height int) {
	for _, fn := range e.resizeListeners() {
		fn(width, height)
	}
}

// ListenerCount returns the number of live registrations of both kinds.
func (e *Events) ListenerCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.pointer) + len(e.resize)
}

// listeners are copied out so a callback may unsubscribe without deadlocking
func (e *Events) pointerListeners() []PointerMoveFunc {
	e.mu.Lock()
	defer e.mu.Unlock()
	fns := make([]PointerMoveFunc, 0, len(e.pointer))
	for _, fn := range e.pointer {
		fns = append(fns, fn)
	}
	return fns
}

func (e *Events) resizeListeners() []ResizeFunc {
	e.mu.Lock()
	defer e.mu.Unlock()
	fns := make([]ResizeFunc, 0, len(e.resize))
	for _, fn := range e.resize {
		fns = append(fns, fn)
	}
	return fns
}
