package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"sensor-api/internal/logger"
	"sensor-api/internal/models"
	"sensor-api/internal/repository"
)

// ReadingSink receives every sensor after it has been stored.
type ReadingSink interface {
	Publish(ctx context.Context, sensor models.Sensor) error
}

// CreateObserver is told about each successful create.
type CreateObserver interface {
	SensorCreated(sensorType models.SensorType)
}

// defaultSinkTimeout bounds each mirror write so a slow sink cannot stall creates.
const defaultSinkTimeout = 2 * time.Second

// Option configures a SensorService.
type Option func(*SensorService)

// WithSink mirrors created sensors to sink.
func WithSink(sink ReadingSink) Option {
	return func(s *SensorService) { s.sink = sink }
}

// WithSinkTimeout overrides how long a single Publish may take.
func WithSinkTimeout(d time.Duration) Option {
	return func(s *SensorService) { s.sinkTimeout = d }
}

// WithObserver reports successful creates to o.
func WithObserver(o CreateObserver) Option {
	return func(s *SensorService) { s.observer = o }
}

// WithClock replaces time.Now for timestamp defaulting.
func WithClock(now func() time.Time) Option {
	return func(s *SensorService) { s.now = now }
}

// SensorService handles the business rules for sensor readings.
type SensorService struct {
	repo        repository.Repository
	logger      *slog.Logger
	sink        ReadingSink
	sinkTimeout time.Duration
	observer    CreateObserver
	now         func() time.Time
}

// NewSensorService creates a new SensorService.
func NewSensorService(repo repository.Repository, log *slog.Logger, opts ...Option) *SensorService {
	s := &SensorService{
		repo:        repo,
		logger:      log,
		sink:        repository.NopSink{},
		sinkTimeout: defaultSinkTimeout,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListSensors returns stored sensors narrowed by filter, in store order.
func (s *SensorService) ListSensors(ctx context.Context, filter models.ListFilter) []models.Sensor {
	logger.FromContext(ctx, s.logger).Info("Fetching all sensors", "filters", filter)

	sensors := s.repo.FindAll()

	if filter.Type != "" {
		matched := make([]models.Sensor, 0, len(sensors))
		for _, sensor := range sensors {
			if sensor.Type == filter.Type {
				matched = append(matched, sensor)
			}
		}
		sensors = matched
	}

	if filter.Limit != nil {
		sensors = paginate(sensors, *filter.Limit, filter.Offset)
	}

	return sensors
}

func paginate(sensors []models.Sensor, limit int, offset *int) []models.Sensor {
	start := 0
	if offset != nil {
		start = *offset
	}
	start = min(max(start, 0), len(sensors))
	end := min(start+max(limit, 0), len(sensors))
	return sensors[start:end]
}

// GetSensorByID returns the sensor for id or models.ErrSensorNotFound.
func (s *SensorService) GetSensorByID(ctx context.Context, id string) (models.Sensor, error) {
	log := logger.FromContext(ctx, s.logger)
	log.Info("Fetching sensor", "sensor_id", id)

	sensor, ok := s.repo.FindByID(id)
	if !ok {
		log.Warn("Sensor not found", "sensor_id", id)
		return models.Sensor{}, fmt.Errorf("get %q: %w", id, models.ErrSensorNotFound)
	}
	return sensor, nil
}

// CreateSensor applies the create rules and stores the sensor. It returns
// models.ErrSensorExists for a duplicate id and *models.RangeError for an
// out-of-range value; the store is unchanged in both cases.
func (s *SensorService) CreateSensor(ctx context.Context, req models.CreateSensorRequest) (models.Sensor, error) {
	log := logger.FromContext(ctx, s.logger)
	log.Info("Creating sensor", "sensor_id", req.SensorID)

	if s.repo.Exists(req.SensorID) {
		log.Warn("Sensor already exists", "sensor_id", req.SensorID)
		return models.Sensor{}, fmt.Errorf("create %q: %w", req.SensorID, models.ErrSensorExists)
	}

	sensor := models.Sensor{
		SensorID:  req.SensorID,
		Type:      req.Type,
		Value:     req.Value,
		Unit:      req.Unit,
		Timestamp: req.Timestamp,
	}
	if sensor.Timestamp == "" {
		sensor.Timestamp = models.FormatTimestamp(s.now())
	}

	if err := ValidateRange(sensor); err != nil {
		log.Warn("Sensor value out of range", "sensor_id", sensor.SensorID, "error", err.Error())
		return models.Sensor{}, err
	}

	created, err := s.repo.Create(sensor)
	if err != nil {
		if errors.Is(err, models.ErrSensorExists) {
			log.Warn("Sensor already exists", "sensor_id", sensor.SensorID)
		}
		return models.Sensor{}, err
	}

	if s.observer != nil {
		s.observer.SensorCreated(created.Type)
	}
	s.publish(ctx, log, created)

	log.Info("Sensor created", "sensor_id", created.SensorID)
	return created, nil
}

func (s *SensorService) publish(ctx context.Context, log *slog.Logger, sensor models.Sensor) {
	ctx, cancel := context.WithTimeout(ctx, s.sinkTimeout)
	defer cancel()
	if err := s.sink.Publish(ctx, sensor); err != nil {
		log.Warn("Failed to mirror sensor", "sensor_id", sensor.SensorID, "error", err.Error())
	}
}
