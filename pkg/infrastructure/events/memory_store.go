package events

import (
	"sync"

	"github.com/vsinha/bakeplan/pkg/infrastructure/logging"
)

type InMemoryEventStore struct {
	streams     map[string][]Event
	subscribers map[string][]EventHandler
	mutex       sync.RWMutex
	position    int
	allEvents   []Event
	pending     sync.WaitGroup
	logger      *logging.Logger
}

// NewInMemoryEventStore creates an event store. A nil logger discards handler errors.
func NewInMemoryEventStore(logger *logging.Logger) *InMemoryEventStore {
	if logger == nil {
		logger = logging.Nop()
	}
	return &InMemoryEventStore{
		streams:     make(map[string][]Event),
		subscribers: make(map[string][]EventHandler),
		allEvents:   make([]Event, 0),
		logger:      logger.WithComponent("events"),
	}
}

func (s *InMemoryEventStore) AppendEvent(streamID string, event Event) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	eventWithVersion := BaseEvent{
		EventType:    event.Type(),
		Stream:       streamID,
		EventData:    event.Data(),
		EventTime:    event.Timestamp(),
		EventVersion: len(s.streams[streamID]) + 1,
	}

	s.streams[streamID] = append(s.streams[streamID], eventWithVersion)
	s.allEvents = append(s.allEvents, eventWithVersion)
	s.position++

	s.pending.Add(1)
	go s.notifySubscribers(eventWithVersion)

	return nil
}

func (s *InMemoryEventStore) ReadEvents(streamID string, fromVersion int) ([]Event, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	events, exists := s.streams[streamID]
	if !exists {
		return []Event{}, nil
	}

	if fromVersion < 1 {
		fromVersion = 1
	}

	if fromVersion > len(events) {
		return []Event{}, nil
	}

	return append([]Event(nil), events[fromVersion-1:]...), nil
}

func (s *InMemoryEventStore) ReadAllEvents(fromPosition int) ([]Event, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if fromPosition < 0 {
		fromPosition = 0
	}

	if fromPosition >= len(s.allEvents) {
		return []Event{}, nil
	}

	return append([]Event(nil), s.allEvents[fromPosition:]...), nil
}

func (s *InMemoryEventStore) Subscribe(eventTypes []string, handler EventHandler) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, eventType := range eventTypes {
		s.subscribers[eventType] = append(s.subscribers[eventType], handler)
	}

	return nil
}

func (s *InMemoryEventStore) Unsubscribe(handler EventHandler) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for eventType, handlers := range s.subscribers {
		kept := make([]EventHandler, 0, len(handlers))
		for _, h := range handlers {
			if h != handler {
				kept = append(kept, h)
			}
		}
		s.subscribers[eventType] = kept
	}

	return nil
}

// Wait blocks until every handler started so far has returned
func (s *InMemoryEventStore) Wait() {
	s.pending.Wait()
}

func (s *InMemoryEventStore) notifySubscribers(event Event) {
	defer s.pending.Done()

	s.mutex.RLock()
	handlers := append([]EventHandler(nil), s.subscribers[event.Type()]...)
	s.mutex.RUnlock()

	var wg sync.WaitGroup
	for _, handler := range handlers {
		if !handler.CanHandle(event.Type()) {
			continue
		}
		wg.Add(1)
		go func(h EventHandler, e Event) {
			defer wg.Done()
			if err := h.Handle(e); err != nil {
				s.logger.Error("event handler failed", "type", e.Type(), "stream", e.StreamID(), "error", err)
			}
		}(handler, event)
	}
	wg.Wait()
}
