package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"sensor-api/internal/models"
)

func TestRespondWithError(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondWithError(rec, models.NewAPIError(
		models.ErrorCodeValidationFailed,
		models.MsgValidationFailed,
		[]string{"value is required and must be a number"},
		http.StatusBadRequest,
	))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"Validation failed","details":["value is required and must be a number"]}`, rec.Body.String())
}

func TestRespondWithError_OmitsEmptyDetails(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondWithError(rec, models.NewAPIError(models.ErrorCodeNotFound, models.MsgSensorNotFound, nil, http.StatusNotFound))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Sensor not found"}`, rec.Body.String())
}

func TestRespondWithJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondWithJSON(rec, http.StatusCreated, map[string]string{"status": "ok"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
