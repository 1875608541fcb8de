package sensor

import "github.com/thatsimonsguy/sensor-dashboard/internal/model"

// Subscribe returns a channel that receives the state after every mutation.
// The channel holds at most one pending state: a slow reader misses
// intermediate states but always sees the latest. Call the returned func to
// unsubscribe; it closes the channel.
func (s *Service) Subscribe() (<-chan model.SensorState, func()) {
	ch := make(chan model.SensorState, 1)

	s.subMutex.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = ch
	s.subMutex.Unlock()

	cancel := func() {
		s.subMutex.Lock()
		defer s.subMutex.Unlock()
		if _, ok := s.subscribers[id]; ok {
			delete(s.subscribers, id)
			close(ch)
		}
	}
	return ch, cancel
}

// publish must be called with s.mutex held so subscribers see states in order.
func (s *Service) publish(st model.SensorState) {
	s.subMutex.Lock()
	defer s.subMutex.Unlock()

	for _, ch := range s.subscribers {
		offer(ch, st)
	}
}

// offer delivers st without blocking, replacing an unread older state.
func offer(ch chan model.SensorState, st model.SensorState) {
	select {
	case ch <- st:
		return
	default:
	}

	select {
	case <-ch:
	default:
	}

	select {
	case ch <- st:
	default:
	}
}
