package validator

import (
	"context"
	"encoding/json"
	"errors"

	"sensor-api/internal/models"
)

// ErrInvalidJSON is returned when a create body is not a JSON object.
var ErrInvalidJSON = errors.New("body is not a JSON object")

// DecodeSensorCreate parses a POST /sensors body and validates it. The
// request is built from the same decoded object the rules ran on, so keys
// that only differ in case from a known field are ignored.
func DecodeSensorCreate(body []byte) (models.CreateSensorRequest, []string, error) {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil || payload == nil {
		return models.CreateSensorRequest{}, nil, ErrInvalidJSON
	}
	if errs := ValidateSensorCreate(payload); len(errs) > 0 {
		return models.CreateSensorRequest{}, errs, nil
	}
	return createRequestFrom(payload), nil, nil
}

// createRequestFrom expects a payload that passed ValidateSensorCreate.
func createRequestFrom(payload map[string]any) models.CreateSensorRequest {
	req := models.CreateSensorRequest{
		SensorID: payload["sensor_id"].(string),
		Type:     models.SensorType(payload["type"].(string)),
		Value:    payload["value"].(float64),
		Unit:     payload["unit"].(string),
	}
	if ts, ok := payload["timestamp"].(string); ok {
		req.Timestamp = ts
	}
	return req
}

type createRequestKey struct{}

// NewContext returns a copy of ctx carrying a validated create request.
func NewContext(ctx context.Context, req models.CreateSensorRequest) context.Context {
	return context.WithValue(ctx, createRequestKey{}, req)
}

// FromContext returns the validated create request stored by NewContext.
func FromContext(ctx context.Context) (models.CreateSensorRequest, bool) {
	req, ok := ctx.Value(createRequestKey{}).(models.CreateSensorRequest)
	return req, ok
}
