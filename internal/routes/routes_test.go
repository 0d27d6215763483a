package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sensor-api/internal/controller"
	"sensor-api/internal/logger"
	"sensor-api/internal/middleware"
	"sensor-api/internal/models"
	"sensor-api/internal/repository"
	"sensor-api/internal/service"
	"sensor-api/internal/store"
)

const testAPIKey = "test-api-key-123"

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	log := logger.Discard()
	metrics := middleware.NewMetrics()
	repo := repository.NewMemoryRepository(store.New(models.DemoSensors()...))
	svc := service.NewSensorService(repo, log, service.WithObserver(metrics))

	return NewHandler(Dependencies{
		Controller:     controller.NewSensorController(svc, log, "node"),
		Logger:         log,
		Metrics:        metrics,
		APIKey:         testAPIKey,
		AllowedOrigins: []string{"*"},
	})
}

func do(t *testing.T, h http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func authed() map[string]string {
	return map[string]string{"Authorization": "Bearer " + testAPIKey}
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestHandler(t), http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","service":"node"}`, rec.Body.String())
}

func TestCreateThenGet_RoundTrip(t *testing.T) {
	h := newTestHandler(t)
	body := `{"sensor_id":"test_temp_sensor","type":"temperature","value":75.5,"unit":"F","timestamp":"2026-02-01T10:00:00Z"}`

	created := do(t, h, http.MethodPost, "/sensors", body, authed())
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())
	assert.JSONEq(t, body, created.Body.String())

	fetched := do(t, h, http.MethodGet, "/sensors/test_temp_sensor", "", nil)
	require.Equal(t, http.StatusOK, fetched.Code)
	assert.JSONEq(t, body, fetched.Body.String())
}

func TestCreate_StoresTheValidatedPayload(t *testing.T) {
	h := newTestHandler(t)

	rec := do(t, h, http.MethodPost, "/sensors",
		`{"sensor_id":"ok_id","type":"temperature","value":70,"unit":"F","Sensor_ID":"BAD ID!!","Type":"bogus","Timestamp":"not-a-date","extra":true}`, authed())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[models.Sensor](t, rec)
	assert.Equal(t, "ok_id", created.SensorID)
	assert.Equal(t, models.SensorTypeTemperature, created.Type)
	assert.Equal(t, "F", created.Unit)
	_, err := models.ParseTimestamp(created.Timestamp)
	assert.NoError(t, err)

	stored := do(t, h, http.MethodGet, "/sensors/ok_id", "", nil)
	assert.JSONEq(t, rec.Body.String(), stored.Body.String())

	for _, s := range decode[models.SensorListResponse](t, do(t, h, http.MethodGet, "/sensors", "", nil)).Data {
		assert.NotEqual(t, "BAD ID!!", s.SensorID)
		assert.True(t, s.Type.Valid(), s.SensorID)
	}
}

func TestCreate_CaseVariantUnitCannotSkipRange(t *testing.T) {
	h := newTestHandler(t)

	rec := do(t, h, http.MethodPost, "/sensors", `{"sensor_id":"t_hot","type":"temperature","value":9999,"unit":"F","Unit":"Q"}`, authed())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[models.APIError](t, rec).Message, "-50 to 150")
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/sensors/t_hot", "", nil).Code)
}

func TestCreate_DefaultsTimestamp(t *testing.T) {
	h := newTestHandler(t)

	rec := do(t, h, http.MethodPost, "/sensors", `{"sensor_id":"light_porch","type":"light","value":10,"unit":"lux"}`, authed())
	require.Equal(t, http.StatusCreated, rec.Code)

	sensor := decode[models.Sensor](t, rec)
	ts, err := time.Parse(time.RFC3339, sensor.Timestamp)
	require.NoError(t, err, sensor.Timestamp)
	assert.WithinDuration(t, time.Now(), ts, time.Minute)
}

func TestCreate_Duplicate(t *testing.T) {
	h := newTestHandler(t)
	body := `{"sensor_id":"duplicate_sensor","type":"temperature","value":70,"unit":"F"}`

	assert.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/sensors", body, authed()).Code)

	second := do(t, h, http.MethodPost, "/sensors", strings.Replace(body, "70", "71", 1), authed())
	assert.Equal(t, http.StatusConflict, second.Code)
	assert.JSONEq(t, `{"error":"Sensor already exists"}`, second.Body.String())

	list := decode[models.SensorListResponse](t, do(t, h, http.MethodGet, "/sensors", "", nil))
	matches := 0
	for _, s := range list.Data {
		if s.SensorID == "duplicate_sensor" {
			matches++
			assert.Equal(t, 70.0, s.Value)
		}
	}
	assert.Equal(t, 1, matches)
}

func TestCreate_Auth(t *testing.T) {
	h := newTestHandler(t)
	body := `{"sensor_id":"humidity_cellar","type":"humidity","value":50,"unit":"%"}`

	missing := do(t, h, http.MethodPost, "/sensors", body, nil)
	assert.Equal(t, http.StatusUnauthorized, missing.Code)
	assert.Contains(t, decode[models.APIError](t, missing).Message, "API key")

	wrong := do(t, h, http.MethodPost, "/sensors", body, map[string]string{"Authorization": "Bearer invalid-key"})
	assert.Equal(t, http.StatusUnauthorized, wrong.Code)

	ok := do(t, h, http.MethodPost, "/sensors", body, authed())
	assert.Equal(t, http.StatusCreated, ok.Code)
}

func TestCreate_AuthCheckedBeforeValidation(t *testing.T) {
	rec := do(t, newTestHandler(t), http.MethodPost, "/sensors", `{}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreate_ValidationFailed(t *testing.T) {
	rec := do(t, newTestHandler(t), http.MethodPost, "/sensors", `{"type":"temperature","value":70}`, authed())

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	apiErr := decode[models.APIError](t, rec)
	assert.Equal(t, "Validation failed", apiErr.Message)
	assert.Len(t, apiErr.Details, 2)
}

func TestCreate_RangeInvalid(t *testing.T) {
	h := newTestHandler(t)

	rec := do(t, h, http.MethodPost, "/sensors", `{"sensor_id":"temp_hot","type":"temperature","value":200,"unit":"F"}`, authed())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[models.APIError](t, rec).Message, "-50 to 150")

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/sensors/temp_hot", "", nil).Code)
}

func TestCreate_MotionValues(t *testing.T) {
	h := newTestHandler(t)

	bad := do(t, h, http.MethodPost, "/sensors", `{"sensor_id":"motion_two","type":"motion","value":2,"unit":"boolean"}`, authed())
	assert.Equal(t, http.StatusBadRequest, bad.Code)
	assert.JSONEq(t, `{"error":"Motion sensor value must be 0 or 1"}`, bad.Body.String())

	for _, tc := range []struct{ id, value string }{{"motion_zero", "0"}, {"motion_one", "1"}} {
		rec := do(t, h, http.MethodPost, "/sensors", `{"sensor_id":"`+tc.id+`","type":"motion","value":`+tc.value+`,"unit":"boolean"}`, authed())
		assert.Equal(t, http.StatusCreated, rec.Code, tc.id)
	}
}

func TestGet_NotFound(t *testing.T) {
	rec := do(t, newTestHandler(t), http.MethodGet, "/sensors/does_not_exist", "", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Sensor not found"}`, rec.Body.String())
}

func TestList_FilterByType(t *testing.T) {
	h := newTestHandler(t)
	do(t, h, http.MethodPost, "/sensors", `{"sensor_id":"temp_new","type":"temperature","value":20,"unit":"C"}`, authed())

	list := decode[models.SensorListResponse](t, do(t, h, http.MethodGet, "/sensors?type=temperature", "", nil))

	assert.Equal(t, 3, list.Count)
	for _, s := range list.Data {
		assert.Equal(t, models.SensorTypeTemperature, s.Type)
	}
}

func TestList_Pagination(t *testing.T) {
	h := newTestHandler(t)

	list := decode[models.SensorListResponse](t, do(t, h, http.MethodGet, "/sensors?limit=2&offset=0", "", nil))
	assert.Len(t, list.Data, 2)
	assert.Equal(t, len(list.Data), list.Count)

	all := decode[models.SensorListResponse](t, do(t, h, http.MethodGet, "/sensors", "", nil))
	assert.Equal(t, 5, all.Count)
}

func TestList_LimitZeroIsAnEmptyPage(t *testing.T) {
	rec := do(t, newTestHandler(t), http.MethodGet, "/sensors?limit=0", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":[],"count":0}`, rec.Body.String())
}

func TestCorrelationID_OnEveryResponse(t *testing.T) {
	h := newTestHandler(t)

	responses := []*httptest.ResponseRecorder{
		do(t, h, http.MethodGet, "/health", "", nil),
		do(t, h, http.MethodGet, "/sensors", "", nil),
		do(t, h, http.MethodGet, "/sensors/missing", "", nil),
		do(t, h, http.MethodPost, "/sensors", `{}`, nil),
		do(t, h, http.MethodPost, "/sensors", `{}`, authed()),
		do(t, h, http.MethodGet, "/nowhere", "", nil),
		do(t, h, http.MethodDelete, "/sensors", "", nil),
	}
	for _, rec := range responses {
		assert.NotEmpty(t, rec.Header().Get(middleware.CorrelationIDHeader), rec.Body.String())
	}

	echoed := do(t, h, http.MethodGet, "/health", "", map[string]string{middleware.CorrelationIDHeader: "my-trace"})
	assert.Equal(t, "my-trace", echoed.Header().Get(middleware.CorrelationIDHeader))
}

func TestUnknownRouteAndMethod(t *testing.T) {
	h := newTestHandler(t)

	notFound := do(t, h, http.MethodGet, "/nowhere", "", nil)
	assert.Equal(t, http.StatusNotFound, notFound.Code)
	assert.JSONEq(t, `{"error":"Not found"}`, notFound.Body.String())

	notAllowed := do(t, h, http.MethodDelete, "/sensors", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, notAllowed.Code)
	assert.JSONEq(t, `{"error":"Method not allowed"}`, notAllowed.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestHandler(t)
	do(t, h, http.MethodPost, "/sensors", `{"sensor_id":"light_a","type":"light","value":5,"unit":"lux"}`, authed())
	do(t, h, http.MethodGet, "/sensors/light_a", "", nil)

	rec := do(t, h, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `sensor_api_sensors_created_total{type="light"} 1`)
	assert.Contains(t, body, `route="/sensors/{id}"`)
}

func TestCORSPreflight(t *testing.T) {
	rec := do(t, newTestHandler(t), http.MethodOptions, "/sensors", "", map[string]string{
		"Origin":                         "http://localhost:5173",
		"Access-Control-Request-Method":  http.MethodPost,
		"Access-Control-Request-Headers": "Authorization, Content-Type",
	})

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, rec.Header().Get(middleware.CorrelationIDHeader))
}
