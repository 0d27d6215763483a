package models

// ListFilter narrows GET /sensors. A nil Limit disables pagination; Offset
// is only honoured when Limit is set.
type ListFilter struct {
	Type   SensorType `json:"type,omitempty"`
	Limit  *int       `json:"limit,omitempty"`
	Offset *int       `json:"offset,omitempty"`
}

// SensorListResponse is the body of a successful list call.
type SensorListResponse struct {
	Data  []Sensor `json:"data"`
	Count int      `json:"count"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}
