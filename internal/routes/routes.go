package routes

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"sensor-api/internal/controller"
	"sensor-api/internal/middleware"
	"sensor-api/internal/models"
	"sensor-api/internal/utils"
)

// Dependencies groups what the HTTP layer needs.
type Dependencies struct {
	Controller     *controller.SensorController
	Logger         *slog.Logger
	Metrics        *middleware.Metrics
	APIKey         string
	AllowedOrigins []string
}

// RegisterRoutes registers all application routes on router.
func RegisterRoutes(router *mux.Router, deps Dependencies) {
	c := deps.Controller

	// Health check
	router.HandleFunc("/health", c.HandleHealth).Methods(http.MethodGet)

	// Sensors: reads are open, creates need the API key and a valid body
	router.HandleFunc("/sensors", c.HandleListSensors).Methods(http.MethodGet)
	router.Handle("/sensors", chain(
		http.HandlerFunc(c.HandleCreateSensor),
		middleware.APIKeyAuth(deps.APIKey, deps.Logger),
		middleware.ValidateSensorCreate(deps.Logger),
	)).Methods(http.MethodPost)
	router.HandleFunc("/sensors/{id}", c.HandleGetSensor).Methods(http.MethodGet)

	if deps.Metrics != nil {
		router.Handle("/metrics", deps.Metrics.Handler()).Methods(http.MethodGet)
	}

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondWithError(w, models.NewAPIError(models.ErrorCodeNotFound, models.MsgNotFound, nil, http.StatusNotFound))
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondWithError(w, models.NewAPIError(models.ErrorCodeMethodNotAllowed, models.MsgMethodNotAllowed, nil, http.StatusMethodNotAllowed))
	})
}

// NewHandler returns the full HTTP handler: routes wrapped in request
// logging, CORS and correlation-ID assignment. The correlation middleware is
// outermost so unmatched routes and CORS preflights carry the header too.
func NewHandler(deps Dependencies) http.Handler {
	router := mux.NewRouter()
	RegisterRoutes(router, deps)

	var h http.Handler = router
	h = middleware.RequestLogger(deps.Logger, deps.Metrics, routeTemplate(router))(h)
	h = cors.New(cors.Options{
		AllowedOrigins: deps.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", middleware.CorrelationIDHeader},
		ExposedHeaders: []string{middleware.CorrelationIDHeader},
	}).Handler(h)
	return middleware.CorrelationID(h)
}

// chain applies mws so that the first one runs first.
func chain(h http.Handler, mws ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// routeTemplate labels requests by their mux path template so metrics do not
// grow a series per sensor id.
func routeTemplate(router *mux.Router) func(*http.Request) string {
	return func(r *http.Request) string {
		var match mux.RouteMatch
		if router.Match(r, &match) && match.Route != nil {
			if tpl, err := match.Route.GetPathTemplate(); err == nil {
				return tpl
			}
		}
		return "unmatched"
	}
}
