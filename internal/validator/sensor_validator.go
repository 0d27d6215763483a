// Package validator performs structural checks on sensor payloads before they
// reach business logic.
package validator

import (
	"fmt"
	"regexp"
	"strings"

	"sensor-api/internal/models"
)

const maxSensorIDLength = 100

var sensorIDPattern = regexp.MustCompile(`^[a-z0-9_]+$`)

// ValidateSensorCreate checks a decoded POST /sensors body. Every rule is
// evaluated; the returned slice holds one message per violation and is
// empty when the payload passes.
func ValidateSensorCreate(body map[string]any) []string {
	var errs []string

	switch id, ok := body["sensor_id"].(string); {
	case !ok || id == "":
		errs = append(errs, "sensor_id is required and must be a string")
	case !sensorIDPattern.MatchString(id):
		errs = append(errs, "sensor_id must match pattern: lowercase letters, numbers, and underscores only")
	case len(id) > maxSensorIDLength:
		errs = append(errs, fmt.Sprintf("sensor_id must be %d characters or less", maxSensorIDLength))
	}

	if t, ok := body["type"].(string); !ok || !models.SensorType(t).Valid() {
		errs = append(errs, "type is required and must be one of: "+sensorTypeList())
	}

	if _, ok := body["value"].(float64); !ok {
		errs = append(errs, "value is required and must be a number")
	}

	if unit, ok := body["unit"].(string); !ok || unit == "" {
		errs = append(errs, "unit is required and must be a string")
	}

	if raw, present := body["timestamp"]; present && raw != nil {
		if ts, ok := raw.(string); !ok {
			errs = append(errs, "timestamp must be a string")
		} else if _, err := models.ParseTimestamp(ts); err != nil {
			errs = append(errs, "timestamp must be a valid ISO 8601 date-time string")
		}
	}

	return errs
}

func sensorTypeList() string {
	names := make([]string, len(models.SensorTypes))
	for i, t := range models.SensorTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
