package stream

import (
	"sync"

	"github.com/rs/zerolog"
)

// Handler receives stream events.
type Handler func(Event)

type registration struct {
	id      uint64
	handler Handler
}

// Registration identifies a registered listener.
type Registration struct {
	router *Router
	kind   Kind
	id     uint64
}

// Remove unregisters the listener. Removing twice is a no-op.
func (r *Registration) Remove() {
	if r == nil || r.router == nil {
		return
	}
	r.router.remove(r.kind, r.id)
}

// Router maps event kinds to ordered listener lists and invokes them.
// Registration is safe from any goroutine, including from inside a listener.
type Router struct {
	mu        sync.RWMutex
	listeners map[Kind][]registration
	nextID    uint64
	logger    zerolog.Logger
}

func NewRouter(logger zerolog.Logger) *Router {
	return &Router{
		listeners: make(map[Kind][]registration),
		logger:    logger,
	}
}

// On registers h for kind. Listeners of one kind run in registration order.
// A nil h is ignored and the returned Registration removes nothing.
func (r *Router) On(kind Kind, h Handler) *Registration {
	if h == nil {
		return &Registration{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.listeners[kind] = append(r.listeners[kind], registration{id: r.nextID, handler: h})
	return &Registration{router: r, kind: kind, id: r.nextID}
}

func (r *Router) remove(kind Kind, id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	regs := r.listeners[kind]
	for i, reg := range regs {
		if reg.id != id {
			continue
		}
		// copy so a dispatch iterating the old slice is unaffected
		next := make([]registration, 0, len(regs)-1)
		next = append(next, regs[:i]...)
		next = append(next, regs[i+1:]...)
		if len(next) == 0 {
			delete(r.listeners, kind)
		} else {
			r.listeners[kind] = next
		}
		return
	}
}

// Count returns the number of listeners registered for kind.
func (r *Router) Count(kind Kind) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.listeners[kind])
}

// Dispatch invokes every listener registered for the event's kind on the
// calling goroutine. Kinds nobody listens to are dropped.
func (r *Router) Dispatch(ev Event) {
	r.mu.RLock()
	regs := r.listeners[ev.Kind]
	r.mu.RUnlock()

	if len(regs) == 0 {
		switch ev.Kind {
		case KindError:
			r.logger.Debug().Err(ev.Err).Msg("unobserved stream error")
		default:
			r.logger.Trace().Str("kind", ev.Kind.String()).Msg("no listeners for stream event")
		}
		return
	}

	for _, reg := range regs {
		reg.handler(ev)
	}
}
