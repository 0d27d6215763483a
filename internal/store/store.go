// Package store holds the in-memory sensor collection. A Store is created by
// the caller and handed to the repository; there is no package-level state.
package store

import (
	"sync"

	"sensor-api/internal/models"
)

// Store maps sensor ids to records and remembers insertion order.
type Store struct {
	mu    sync.RWMutex
	byID  map[string]models.Sensor
	order []string
}

// New returns a store pre-populated with initial, in the given order.
// Later duplicates in initial are ignored.
func New(initial ...models.Sensor) *Store {
	s := &Store{byID: make(map[string]models.Sensor, len(initial))}
	for _, sensor := range initial {
		s.Insert(sensor)
	}
	return s
}

// All returns a copy of every record in insertion order.
func (s *Store) All() []models.Sensor {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Sensor, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

// Get returns the record for id.
func (s *Store) Get(id string) (models.Sensor, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sensor, ok := s.byID[id]
	return sensor, ok
}

// Has reports whether id is present.
func (s *Store) Has(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byID[id]
	return ok
}

// Insert adds sensor under its SensorID. It returns false and leaves the
// existing record untouched if the id is already taken.
func (s *Store) Insert(sensor models.Sensor) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[sensor.SensorID]; exists {
		return false
	}
	s.byID[sensor.SensorID] = sensor
	s.order = append(s.order, sensor.SensorID)
	return true
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
