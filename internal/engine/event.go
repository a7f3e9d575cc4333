package engine

// Event is a multi-cast event. Listeners are removed through the handle
// returned by AddListener.
type Event struct {
	listeners []listener[func()]
	nextID    uint32
}

type listener[F any] struct {
	id uint32
	fn F
}

// ListenerHandle unregisters one listener. Remove is safe to call more than once.
type ListenerHandle struct {
	remove func()
}

func (h *ListenerHandle) Remove() {
	if h == nil || h.remove == nil {
		return
	}
	h.remove()
	h.remove = nil
}

// AddListener adds a callback to be invoked when the event fires.
// A nil callback is ignored and yields an inert handle.
func (e *Event) AddListener(callback func()) *ListenerHandle {
	if callback == nil {
		return &ListenerHandle{}
	}
	e.nextID++
	id := e.nextID
	e.listeners = append(e.listeners, listener[func()]{id: id, fn: callback})
	return &ListenerHandle{remove: func() { e.listeners = removeListener(e.listeners, id) }}
}

func (e *Event) RemoveAllListeners() {
	e.listeners = nil
}

// Invoke calls all registered listeners. Listeners added or removed during
// Invoke take effect on the next call.
func (e *Event) Invoke() {
	for _, l := range append([]listener[func()](nil), e.listeners...) {
		l.fn()
	}
}

func (e *Event) GetListenerCount() int {
	return len(e.listeners)
}

// EventWithArg is a generic event with one argument
type EventWithArg[T any] struct {
	listeners []listener[func(T)]
	nextID    uint32
}

func (e *EventWithArg[T]) AddListener(callback func(T)) *ListenerHandle {
	if callback == nil {
		return &ListenerHandle{}
	}
	e.nextID++
	id := e.nextID
	e.listeners = append(e.listeners, listener[func(T)]{id: id, fn: callback})
	return &ListenerHandle{remove: func() { e.listeners = removeListener(e.listeners, id) }}
}

func (e *EventWithArg[T]) RemoveAllListeners() {
	e.listeners = nil
}

func (e *EventWithArg[T]) Invoke(arg T) {
	for _, l := range append([]listener[func(T)](nil), e.listeners...) {
		l.fn(arg)
	}
}

func (e *EventWithArg[T]) GetListenerCount() int {
	return len(e.listeners)
}

func removeListener[F any](s []listener[F], id uint32) []listener[F] {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = listener[F]{}
			return s[:len(s)-1]
		}
	}
	return s
}
