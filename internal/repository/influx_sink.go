// internal/repository/influx_sink.go

package repository

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"sensor-api/internal/models"
)

// readingMeasurement is the InfluxDB measurement created sensors are mirrored to.
const readingMeasurement = "sensor_reading"

// NopSink discards readings. It is used when no InfluxDB is configured.
type NopSink struct{}

// Publish does nothing.
func (NopSink) Publish(context.Context, models.Sensor) error { return nil }

// InfluxSink mirrors created sensors into an InfluxDB bucket. It is write-only;
// the in-memory store stays the source of truth.
type InfluxSink struct {
	client influxdb2.Client
	org    string
	bucket string
	logger *slog.Logger
}

// NewInfluxSink creates a new InfluxSink.
func NewInfluxSink(url, token, org, bucket string, logger *slog.Logger) *InfluxSink {
	client := influxdb2.NewClient(url, token)
	return &InfluxSink{
		client: client,
		org:    org,
		bucket: bucket,
		logger: logger,
	}
}

// Ping checks that the InfluxDB server is reachable.
func (s *InfluxSink) Ping(ctx context.Context) error {
	ok, err := s.client.Ping(ctx)
	if err != nil {
		return fmt.Errorf("error pinging InfluxDB: %w", err)
	}
	if !ok {
		return fmt.Errorf("InfluxDB at %s is not ready", s.client.ServerURL())
	}
	return nil
}

// EnsureBucket creates the configured bucket in the organization when it does
// not exist yet. System buckets are never written to.
func (s *InfluxSink) EnsureBucket(ctx context.Context) error {
	if isSystemBucket(s.bucket) {
		return fmt.Errorf("refusing to write readings to system bucket %q", s.bucket)
	}

	bucketsAPI := s.client.BucketsAPI()
	if _, err := bucketsAPI.FindBucketByName(ctx, s.bucket); err == nil {
		return nil
	}

	org, err := s.client.OrganizationsAPI().FindOrganizationByName(ctx, s.org)
	if err != nil {
		return fmt.Errorf("error finding organization %q: %w", s.org, err)
	}
	if _, err := bucketsAPI.CreateBucketWithName(ctx, org, s.bucket); err != nil {
		return fmt.Errorf("error creating bucket %q: %w", s.bucket, err)
	}
	s.logger.InfoContext(ctx, "InfluxDB bucket created", "bucket", s.bucket, "org", s.org)
	return nil
}

// isSystemBucket reports whether name is one of InfluxDB's reserved buckets.
func isSystemBucket(name string) bool {
	return strings.HasPrefix(name, "_")
}

// Publish writes sensor as a single point.
func (s *InfluxSink) Publish(ctx context.Context, sensor models.Sensor) error {
	writeAPI := s.client.WriteAPIBlocking(s.org, s.bucket)

	p := newReadingPoint(sensor, time.Now())
	if err := writeAPI.WritePoint(ctx, p); err != nil {
		return fmt.Errorf("error writing to InfluxDB: %w", err)
	}
	s.logger.DebugContext(ctx, "Reading mirrored to InfluxDB",
		"bucket", s.bucket,
		"sensor_id", sensor.SensorID,
		"value", sensor.Value,
	)
	return nil
}

// Close releases the underlying HTTP client.
func (s *InfluxSink) Close() {
	s.client.Close()
}

// newReadingPoint builds the point for sensor. The record timestamp is used
// when it parses, otherwise now.
func newReadingPoint(sensor models.Sensor, now time.Time) *write.Point {
	ts := now
	if sensor.Timestamp != "" {
		if parsed, err := models.ParseTimestamp(sensor.Timestamp); err == nil {
			ts = parsed
		}
	}

	return influxdb2.NewPoint(
		readingMeasurement,
		map[string]string{
			"sensor_id": sensor.SensorID,
			"type":      string(sensor.Type),
			"unit":      sensor.Unit,
		},
		map[string]interface{}{"value": sensor.Value},
		ts,
	)
}
