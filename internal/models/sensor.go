package models

// SensorType is the kind of reading a sensor reports.
type SensorType string

const (
	SensorTypeTemperature SensorType = "temperature"
	SensorTypeHumidity    SensorType = "humidity"
	SensorTypeMotion      SensorType = "motion"
	SensorTypePressure    SensorType = "pressure"
	SensorTypeLight       SensorType = "light"
)

// SensorTypes lists every accepted sensor type in display order.
var SensorTypes = []SensorType{
	SensorTypeTemperature,
	SensorTypeHumidity,
	SensorTypeMotion,
	SensorTypePressure,
	SensorTypeLight,
}

// Valid reports whether t is one of the known sensor types.
func (t SensorType) Valid() bool {
	for _, known := range SensorTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Sensor is a single stored reading. SensorID is the store key.
type Sensor struct {
	SensorID  string     `json:"sensor_id"`
	Type      SensorType `json:"type"`
	Value     float64    `json:"value"`
	Unit      string     `json:"unit"`
	Timestamp string     `json:"timestamp"`
}

// CreateSensorRequest is the decoded body of POST /sensors. Timestamp is
// empty when the caller omitted it.
type CreateSensorRequest struct {
	SensorID  string     `json:"sensor_id"`
	Type      SensorType `json:"type"`
	Value     float64    `json:"value"`
	Unit      string     `json:"unit"`
	Timestamp string     `json:"timestamp,omitempty"`
}

// DemoSensors returns the readings a fresh server starts with.
func DemoSensors() []Sensor {
	const ts = "2026-01-18T14:30:00Z"
	return []Sensor{
		{SensorID: "temp_living_room", Type: SensorTypeTemperature, Value: 72.4, Unit: "F", Timestamp: ts},
		{SensorID: "humidity_basement", Type: SensorTypeHumidity, Value: 45, Unit: "%", Timestamp: ts},
		{SensorID: "motion_kitchen", Type: SensorTypeMotion, Value: 0, Unit: "boolean", Timestamp: ts},
		{SensorID: "temp_bedroom", Type: SensorTypeTemperature, Value: 68.2, Unit: "F", Timestamp: ts},
		{SensorID: "humidity_living_room", Type: SensorTypeHumidity, Value: 42, Unit: "%", Timestamp: ts},
	}
}
