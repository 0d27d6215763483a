package controller

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"sensor-api/internal/logger"
	"sensor-api/internal/models"
	"sensor-api/internal/utils"
	"sensor-api/internal/validator"
)

// maxBodyBytes caps how much of a create body is read.
const maxBodyBytes = 1 << 20

// SensorService is the business layer the controller drives.
type SensorService interface {
	ListSensors(ctx context.Context, filter models.ListFilter) []models.Sensor
	GetSensorByID(ctx context.Context, id string) (models.Sensor, error)
	CreateSensor(ctx context.Context, req models.CreateSensorRequest) (models.Sensor, error)
}

// Response is what a controller action produces: a status and a JSON body.
type Response struct {
	Status int
	Body   any
}

// ListRequest carries the raw query parameters of GET /sensors.
type ListRequest struct {
	Type   string
	Limit  string
	Offset string
}

// SensorController translates HTTP requests into service calls.
type SensorController struct {
	service     SensorService
	logger      *slog.Logger
	serviceName string
}

// NewSensorController creates a new SensorController. serviceName is
// reported by the health endpoint.
func NewSensorController(service SensorService, log *slog.Logger, serviceName string) *SensorController {
	return &SensorController{
		service:     service,
		logger:      log,
		serviceName: serviceName,
	}
}

// List runs the list action.
func (c *SensorController) List(ctx context.Context, req ListRequest) Response {
	filter := models.ListFilter{
		Type:   models.SensorType(req.Type),
		Limit:  parseCount(req.Limit),
		Offset: parseCount(req.Offset),
	}

	sensors := c.service.ListSensors(ctx, filter)
	if sensors == nil {
		sensors = []models.Sensor{}
	}
	return Response{
		Status: http.StatusOK,
		Body:   models.SensorListResponse{Data: sensors, Count: len(sensors)},
	}
}

// Get runs the get-by-id action.
func (c *SensorController) Get(ctx context.Context, id string) Response {
	sensor, err := c.service.GetSensorByID(ctx, id)
	switch {
	case err == nil:
		return Response{Status: http.StatusOK, Body: sensor}
	case errors.Is(err, models.ErrSensorNotFound):
		return errorResponse(models.NewAPIError(models.ErrorCodeResourceNotFound, models.MsgSensorNotFound, nil, http.StatusNotFound))
	default:
		return c.internalError(ctx, "Error fetching sensor", err)
	}
}

// Create runs the create action.
func (c *SensorController) Create(ctx context.Context, req models.CreateSensorRequest) Response {
	created, err := c.service.CreateSensor(ctx, req)
	if err == nil {
		return Response{Status: http.StatusCreated, Body: created}
	}

	var rangeErr *models.RangeError
	switch {
	case errors.Is(err, models.ErrSensorExists):
		return errorResponse(models.NewAPIError(models.ErrorCodeDuplicateResource, models.MsgSensorExists, nil, http.StatusConflict))
	case errors.As(err, &rangeErr):
		return errorResponse(models.NewAPIError(models.ErrorCodeRangeInvalid, rangeErr.Message, nil, http.StatusBadRequest))
	default:
		return c.internalError(ctx, "Error creating sensor", err)
	}
}

// Health reports liveness.
func (c *SensorController) Health() Response {
	return Response{
		Status: http.StatusOK,
		Body:   models.HealthResponse{Status: "ok", Service: c.serviceName},
	}
}

// HandleListSensors handles GET /sensors.
func (c *SensorController) HandleListSensors(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	write(w, c.List(r.Context(), ListRequest{
		Type:   query.Get("type"),
		Limit:  query.Get("limit"),
		Offset: query.Get("offset"),
	}))
}

// HandleGetSensor handles GET /sensors/{id}.
func (c *SensorController) HandleGetSensor(w http.ResponseWriter, r *http.Request) {
	write(w, c.Get(r.Context(), mux.Vars(r)["id"]))
}

// HandleCreateSensor handles POST /sensors. It uses the request validated
// by middleware.ValidateSensorCreate, and decodes the body with the same
// validator when mounted without it.
func (c *SensorController) HandleCreateSensor(w http.ResponseWriter, r *http.Request) {
	req, ok := validator.FromContext(r.Context())
	if !ok {
		defer r.Body.Close()
		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil {
			utils.RespondWithError(w, models.NewAPIError(models.ErrorCodeBadRequest, models.MsgInvalidJSON, nil, http.StatusBadRequest))
			return
		}

		var errs []string
		req, errs, err = validator.DecodeSensorCreate(body)
		if err != nil {
			utils.RespondWithError(w, models.NewAPIError(models.ErrorCodeInvalidFormat, models.MsgInvalidJSON, nil, http.StatusBadRequest))
			return
		}
		if len(errs) > 0 {
			utils.RespondWithError(w, models.NewAPIError(models.ErrorCodeValidationFailed, models.MsgValidationFailed, errs, http.StatusBadRequest))
			return
		}
	}
	write(w, c.Create(r.Context(), req))
}

// HandleHealth handles GET /health.
func (c *SensorController) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	write(w, c.Health())
}

func (c *SensorController) internalError(ctx context.Context, msg string, err error) Response {
	logger.FromContext(ctx, c.logger).Error(msg, "error", err.Error())
	return errorResponse(models.NewAPIError(models.ErrorCodeInternalServerError, models.MsgInternalError, nil, http.StatusInternalServerError))
}

func errorResponse(apiErr models.APIError) Response {
	return Response{Status: apiErr.StatusCode, Body: apiErr}
}

func write(w http.ResponseWriter, resp Response) {
	utils.RespondWithJSON(w, resp.Status, resp.Body)
}

// parseCount reads a non-negative integer query value. Anything else,
// including an empty string, means the parameter is absent. Zero is kept as
// a real value, so limit=0 yields an empty page; the Node service tested the
// limit for truthiness and returned every record instead.
func parseCount(raw string) *int {
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return nil
	}
	return &n
}
