package touchdraw

// signal is a minimal synchronous pub-sub list. Listeners run in connection
// order on the goroutine that emits.
type signal[T any] struct {
	next      int
	listeners []listener[T]
}

type listener[T any] struct {
	id int
	fn func(T)
}

// connect registers fn and returns a function that removes it again.
// Calling the returned function more than once is harmless.
func (s *signal[T]) connect(fn func(T)) func() {
	s.next++
	id := s.next
	s.listeners = append(s.listeners, listener[T]{id: id, fn: fn})

	return func() {
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// emit calls every listener connected at the time of the call
func (s *signal[T]) emit(value T) {
	listeners := s.listeners
	for _, l := range listeners {
		l.fn(value)
	}
}

func (s *signal[T]) count() int {
	return len(s.listeners)
}

// clear removes every listener
func (s *signal[T]) clear() {
	s.listeners = nil
}
