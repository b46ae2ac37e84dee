package api

import (
	"net/http"
	"os"
	"time"

	"github.com/go-chi/httprate"
	"github.com/goccy/go-json"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"scheduling-service/audit"
	"scheduling-service/metrics"
	"scheduling-service/user"
)

type API struct {
	router    *mux.Router
	registry  *user.Registry
	recorder  audit.Recorder
	metrics   *metrics.Metrics
	log       *zap.Logger
	rateLimit int
	now       func() time.Time
}

type Option func(*API)

func WithRecorder(r audit.Recorder) Option {
	return func(a *API) {
		a.recorder = r
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(a *API) {
		a.metrics = m
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(a *API) {
		a.log = log
	}
}

// WithRateLimit caps requests per second per client IP. Zero disables the limit.
func WithRateLimit(rps int) Option {
	return func(a *API) {
		a.rateLimit = rps
	}
}

func WithClock(now func() time.Time) Option {
	return func(a *API) {
		a.now = now
	}
}

func NewAPI(registry *user.Registry, opts ...Option) *API {
	a := &API{
		router:   mux.NewRouter(),
		registry: registry,
		recorder: audit.Nop{},
		metrics:  metrics.New(),
		log:      zap.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *API) Router() *mux.Router {
	return a.router
}

func (a *API) Handler() http.Handler {
	// Use Gorilla's built-in logging handler
	return handlers.LoggingHandler(os.Stdout, a.router)
}

type Response struct {
	Status   int `json:"status"`
	Response any `json:"response"`
}

// Response writes data wrapped in the status envelope. Used for transport errors.
func (a *API) Response(w http.ResponseWriter, status int, data any) {
	a.JSON(w, status, Response{
		Status:   status,
		Response: data,
	})
}

// JSON writes data as the bare response body.
func (a *API) JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		a.log.Error("encode response", zap.Error(err))
	}
}

func (a *API) NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) RegisterRoutes() {
	a.router.Use(a.metricsMiddleware, a.loggingMiddleware)
	if a.rateLimit > 0 {
		a.router.Use(httprate.LimitByIP(a.rateLimit, time.Second))
	}

	a.router.HandleFunc("/health", a.health).Methods(http.MethodGet)
	a.router.Handle("/metrics", a.metrics.Handler()).Methods(http.MethodGet)
	a.router.HandleFunc("/appointments", a.scheduleAppointment).Methods(http.MethodPost)
	a.router.HandleFunc("/users/{userId}/appointments", a.getUserAppointments).Methods(http.MethodGet)
	a.router.HandleFunc("/users/{userId}/decisions", a.getUserDecisions).Methods(http.MethodGet)
}
