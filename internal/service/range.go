package service

import "sensor-api/internal/models"

type rangeRule struct {
	check   func(v float64) bool
	message string
}

func between(lo, hi float64) func(float64) bool {
	return func(v float64) bool { return v >= lo && v <= hi }
}

// rangeRules is keyed by type then unit. Units missing for a type are not checked.
var rangeRules = map[models.SensorType]map[string]rangeRule{
	models.SensorTypeTemperature: {
		"F": {between(-50, 150), "Temperature out of valid range (-50 to 150 F)"},
		"C": {between(-45, 65), "Temperature out of valid range (-45 to 65 C)"},
	},
	models.SensorTypeHumidity: {
		"%": {between(0, 100), "Humidity out of valid range (0 to 100%)"},
	},
	models.SensorTypeMotion: {
		"boolean": {func(v float64) bool { return v == 0 || v == 1 }, "Motion sensor value must be 0 or 1"},
	},
	models.SensorTypePressure: {
		"psi": {between(0, 200), "Pressure out of valid range (0 to 200 psi)"},
		"kPa": {between(0, 1400), "Pressure out of valid range (0 to 1400 kPa)"},
	},
	models.SensorTypeLight: {
		"lux": {func(v float64) bool { return v >= 0 }, "Light value must be non-negative"},
	},
}

// ValidateRange checks sensor.Value against the bounds for its type and
// unit. It returns a *models.RangeError on violation.
func ValidateRange(sensor models.Sensor) error {
	rule, ok := rangeRules[sensor.Type][sensor.Unit]
	if !ok || rule.check(sensor.Value) {
		return nil
	}
	return &models.RangeError{
		Type:    sensor.Type,
		Unit:    sensor.Unit,
		Value:   sensor.Value,
		Message: rule.message,
	}
}
