package httpServer

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	originClient = "client"
	// originRender is the page info request made while rendering "/".
	originRender = "render"
)

type metrics struct {
	totalRequests   *prometheus.CounterVec
	durationSec     *prometheus.HistogramVec
	inflightRequest *prometheus.GaugeVec
	isRender        func(*fiber.Ctx) bool
}

func (m *metrics) metricsMiddleware(ctx *fiber.Ctx) (err error) {
	s := time.Now()

	routeLabel := "<unmatched>"
	if r := ctx.Route(); r != nil && r.Path != "" {
		routeLabel = r.Path
	}

	origin := originClient
	if m.isRender(ctx) {
		origin = originRender
	}

	method := ctx.Method()

	m.inflightRequest.WithLabelValues(routeLabel, method).Inc()
	defer m.inflightRequest.WithLabelValues(routeLabel, method).Dec()

	err = ctx.Next()

	// The matched handler's route is only known once the chain has run.
	if r := ctx.Route(); r != nil && r.Path != "" {
		routeLabel = r.Path
	}

	labels := []string{
		routeLabel,
		method,
		strconv.Itoa(ctx.Response().StatusCode()),
		origin,
	}

	m.totalRequests.WithLabelValues(labels...).Inc()
	m.durationSec.WithLabelValues(labels...).Observe(time.Since(s).Seconds())

	return
}

func newMetrics(registry prometheus.Registerer, namespace, subsystem string, isRender func(*fiber.Ctx) bool) *metrics {
	labels := []string{"route", "method", "code", "origin"}
	inflightLabels := []string{"route", "method"}

	t := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "requests_total",
		Help:      "Total number of requests",
	}, labels)
	d := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "requests_duration",
		Help:      "Duration of requests",
		Buckets: []float64{
			0.001, 0.005, 0.01, 0.025,
			0.05, 0.1, 0.25, 0.5,
			1, 2.5, 5, 10, 30,
		},
	}, labels)
	i := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "requests_inflight",
		Help:      "Number of inflight requests",
	}, inflightLabels)

	registry.MustRegister(
		t,
		d,
		i,
	)

	return &metrics{
		totalRequests:   t,
		durationSec:     d,
		inflightRequest: i,
		isRender:        isRender,
	}
}
