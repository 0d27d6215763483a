package repository

import (
	"fmt"

	"sensor-api/internal/models"
	"sensor-api/internal/store"
)

// Repository Interface
type Repository interface {
	FindAll() []models.Sensor
	FindByID(id string) (models.Sensor, bool)
	Exists(id string) bool
	Create(sensor models.Sensor) (models.Sensor, error)
}

// MemoryRepository is the only component allowed to mutate a store.Store.
type MemoryRepository struct {
	store *store.Store
}

// NewMemoryRepository creates a new MemoryRepository over s.
func NewMemoryRepository(s *store.Store) *MemoryRepository {
	return &MemoryRepository{
		store: s,
	}
}

// FindAll returns every record in insertion order.
func (r *MemoryRepository) FindAll() []models.Sensor {
	return r.store.All()
}

// FindByID returns the record for id, or false if there is none.
func (r *MemoryRepository) FindByID(id string) (models.Sensor, bool) {
	return r.store.Get(id)
}

// Exists reports whether a record with id is stored.
func (r *MemoryRepository) Exists(id string) bool {
	return r.store.Has(id)
}

// Create stores sensor keyed by its SensorID and returns it. Callers check
// Exists first; Create still refuses to overwrite so that two concurrent
// creates for the same id cannot both succeed.
func (r *MemoryRepository) Create(sensor models.Sensor) (models.Sensor, error) {
	if !r.store.Insert(sensor) {
		return models.Sensor{}, fmt.Errorf("create %q: %w", sensor.SensorID, models.ErrSensorExists)
	}
	return sensor, nil
}
