// Package client is a typed HTTP client for the sensor API.
package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"sensor-api/internal/middleware"
	"sensor-api/internal/models"
)

// APIError is returned for any non-2xx response.
type APIError struct {
	StatusCode    int
	Message       string
	Details       []string
	CorrelationID string
}

func (e *APIError) Error() string {
	if len(e.Details) > 0 {
		return fmt.Sprintf("%d %s: %v", e.StatusCode, e.Message, e.Details)
	}
	return fmt.Sprintf("%d %s", e.StatusCode, e.Message)
}

// Client talks to one sensor API instance.
type Client struct {
	http *resty.Client
}

// New returns a client for baseURL. apiKey is only needed for CreateSensor.
func New(baseURL, apiKey string) *Client {
	r := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetHeader("Accept", "application/json")
	if apiKey != "" {
		r.SetAuthToken(apiKey)
	}
	return &Client{http: r}
}

// Health calls GET /health.
func (c *Client) Health(ctx context.Context) (models.HealthResponse, error) {
	var out models.HealthResponse
	err := c.do(c.request(ctx).SetResult(&out), http.MethodGet, "/health")
	return out, err
}

// ListSensors calls GET /sensors with the filter as query parameters.
func (c *Client) ListSensors(ctx context.Context, filter models.ListFilter) (models.SensorListResponse, error) {
	req := c.request(ctx)
	if filter.Type != "" {
		req.SetQueryParam("type", string(filter.Type))
	}
	if filter.Limit != nil {
		req.SetQueryParam("limit", strconv.Itoa(*filter.Limit))
	}
	if filter.Offset != nil {
		req.SetQueryParam("offset", strconv.Itoa(*filter.Offset))
	}

	var out models.SensorListResponse
	err := c.do(req.SetResult(&out), http.MethodGet, "/sensors")
	return out, err
}

// GetSensor calls GET /sensors/{id}.
func (c *Client) GetSensor(ctx context.Context, id string) (models.Sensor, error) {
	var out models.Sensor
	err := c.do(c.request(ctx).SetPathParam("id", id).SetResult(&out), http.MethodGet, "/sensors/{id}")
	return out, err
}

// CreateSensor calls POST /sensors.
func (c *Client) CreateSensor(ctx context.Context, in models.CreateSensorRequest) (models.Sensor, error) {
	var out models.Sensor
	err := c.do(c.request(ctx).SetBody(in).SetResult(&out), http.MethodPost, "/sensors")
	return out, err
}

type correlationKey struct{}

// WithCorrelationID makes requests issued with ctx send id as X-Correlation-ID.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationKey{}, id)
}

func (c *Client) request(ctx context.Context) *resty.Request {
	req := c.http.R().SetContext(ctx).SetError(&models.APIError{})
	if id, ok := ctx.Value(correlationKey{}).(string); ok && id != "" {
		req.SetHeader(middleware.CorrelationIDHeader, id)
	}
	return req
}

func (c *Client) do(req *resty.Request, method, path string) error {
	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if !resp.IsError() {
		return nil
	}

	apiErr := &APIError{
		StatusCode:    resp.StatusCode(),
		Message:       http.StatusText(resp.StatusCode()),
		CorrelationID: resp.Header().Get(middleware.CorrelationIDHeader),
	}
	if body, ok := resp.Error().(*models.APIError); ok && body.Message != "" {
		apiErr.Message = body.Message
		apiErr.Details = body.Details
	}
	return apiErr
}
