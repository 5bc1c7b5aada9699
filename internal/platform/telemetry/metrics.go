// Package telemetry provides Prometheus metrics and OpenTelemetry tracing for
// the registry server.
package telemetry

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Transition results recorded per workflow step.
const (
	ResultAdvance  = "advance"
	ResultInvalid  = "invalid"
	ResultRedirect = "redirect"
)

// Metrics holds the registry's collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	gatherer prometheus.Gatherer

	Transitions         *prometheus.CounterVec
	ProceduresAssembled *prometheus.CounterVec
	SessionsStarted     prometheus.Counter
	RequestDuration     *prometheus.HistogramVec
	ActiveRequests      prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		gatherer: reg,
		Transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "registry_workflow_transitions_total",
			Help: "Workflow step submissions by step and result",
		}, []string{"step", "result"}),
		ProceduresAssembled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "registry_procedures_assembled_total",
			Help: "Procedures saved, by create or edit",
		}, []string{"mode"}),
		SessionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "registry_sessions_started_total",
			Help: "Journeys started with start-prototype",
		}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "registry_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"method", "route", "status"}),
		ActiveRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "registry_http_active_requests",
			Help: "Requests currently being served",
		}),
	}

	reg.MustRegister(
		m.Transitions,
		m.ProceduresAssembled,
		m.SessionsStarted,
		m.RequestDuration,
		m.ActiveRequests,
	)
	return m
}

func (m *Metrics) StepTransition(step, result string) {
	if m == nil {
		return
	}
	m.Transitions.WithLabelValues(step, result).Inc()
}

func (m *Metrics) ProcedureAssembled(mode string) {
	if m == nil {
		return
	}
	m.ProceduresAssembled.WithLabelValues(mode).Inc()
}

func (m *Metrics) SessionStarted() {
	if m == nil {
		return
	}
	m.SessionsStarted.Inc()
}

// Middleware records request duration labelled by route pattern.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if m == nil {
				return next(c)
			}
			m.ActiveRequests.Inc()
			defer m.ActiveRequests.Dec()

			start := time.Now()
			err := next(c)

			route := c.Path()
			if route == "" {
				route = c.Request().URL.Path
			}
			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
			m.RequestDuration.
				WithLabelValues(c.Request().Method, route, strconv.Itoa(status)).
				Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// Handler serves the registry's collectors in Prometheus text format.
func (m *Metrics) Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{}))
}
