package event

// Handler processes specific event types
type Handler interface {
	// HandleEvent processes a single event, called synchronously on the battle loop
	HandleEvent(ev GameEvent)

	// EventTypes returns the event types this handler processes
	EventTypes() []EventType
}

// HandlerFunc adapts a function to Handler for a fixed set of types
type HandlerFunc struct {
	Types []EventType
	Fn    func(GameEvent)
}

func (h HandlerFunc) HandleEvent(ev GameEvent) { h.Fn(ev) }
func (h HandlerFunc) EventTypes() []EventType  { return h.Types }

// Router dispatches events from one queue to registered handlers
//
// Architecture:
//   - Single-threaded dispatch on the battle loop
//   - Multiple handlers per type, invoked in registration order
//   - All handlers for an event run before the next event
type Router struct {
	handlers map[EventType][]Handler
	queue    *EventQueue
}

// NewRouter creates a router attached to the given queue
func NewRouter(queue *EventQueue) *Router {
	return &Router{
		handlers: make(map[EventType][]Handler),
		queue:    queue,
	}
}

// Register adds a handler for its declared event types
func (r *Router) Register(handler Handler) {
	for _, t := range handler.EventTypes() {
		r.handlers[t] = append(r.handlers[t], handler)
	}
}

// Queue returns the source queue
func (r *Router) Queue() *EventQueue {
	return r.queue
}

// Dispatch routes a single event without queueing
func (r *Router) Dispatch(ev GameEvent) {
	for _, h := range r.handlers[ev.Type] {
		h.HandleEvent(ev)
	}
}

// DispatchAll consumes all pending events and routes them in FIFO order, returns the count
func (r *Router) DispatchAll() int {
	events := r.queue.Consume()
	for _, ev := range events {
		r.Dispatch(ev)
	}
	return len(events)
}

// HasHandlers returns true if any handler is registered for the type
func (r *Router) HasHandlers(t EventType) bool {
	return len(r.handlers[t]) > 0
}

// Unhandled returns the wire types with no registered handler
func (r *Router) Unhandled() []EventType {
	var out []EventType
	for _, t := range WireTypes {
		if !r.HasHandlers(t) {
			out = append(out, t)
		}
	}
	return out
}
