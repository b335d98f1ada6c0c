package layers

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/leofalp/strata/core/service"
)

// MetricsConfig holds the Prometheus wiring for the metrics layer. Zero
// values are replaced with the defaults documented below when NewMetrics
// is called.
type MetricsConfig struct {
	// Namespace prefixes every metric name. Default: "strata".
	Namespace string

	// Pipeline identifies the pipeline in a "pipeline" const label. Give
	// each metrics layer sharing a Registerer a distinct Pipeline, since
	// registering the same metric names with identical label sets twice
	// panics. Empty omits the label. Default: "".
	Pipeline string

	// Registerer receives the layer's collectors. Default:
	// prometheus.DefaultRegisterer.
	Registerer prometheus.Registerer
}

// applyMetricsDefaults fills in zero-valued fields in config with sensible defaults.
func applyMetricsDefaults(config *MetricsConfig) {
	if config.Namespace == "" {
		config.Namespace = "strata"
	}

	if config.Registerer == nil {
		config.Registerer = prometheus.DefaultRegisterer
	}
}

// Metrics is a layer that records Prometheus metrics for every call: a
// counter of calls by outcome, a latency histogram, and an in-flight
// gauge.
//
// The collectors are created and registered once, by NewMetrics; every
// Service the layer produces shares them, so one pipeline built twice
// reports into the same series.
type Metrics[Req, Resp any] struct {
	calls    *prometheus.CounterVec
	duration prometheus.Histogram
	inflight prometheus.Gauge
}

// NewMetrics constructs a Metrics layer and registers its collectors with
// the configured Registerer. It panics, as MustRegister does, when the
// collectors collide with previously registered ones.
func NewMetrics[Req, Resp any](config MetricsConfig) Metrics[Req, Resp] {
	applyMetricsDefaults(&config)

	constLabels := prometheus.Labels{}
	if config.Pipeline != "" {
		constLabels["pipeline"] = config.Pipeline
	}

	m := Metrics[Req, Resp]{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "service_calls_total",
			Help:        "Total service calls by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Name:        "service_call_duration_seconds",
			Help:        "Service call latency",
			ConstLabels: constLabels,
		}),
		inflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Name:        "service_inflight_calls",
			Help:        "Current number of in-flight service calls",
			ConstLabels: constLabels,
		}),
	}

	config.Registerer.MustRegister(m.calls, m.duration, m.inflight)

	return m
}

// Wrap returns a service that reports every call to inner into the layer's
// collectors.
func (l Metrics[Req, Resp]) Wrap(inner service.Service[Req, Resp]) service.Service[Req, Resp] {
	return service.Func[Req, Resp](func(ctx context.Context, req Req) (Resp, error) {
		l.inflight.Inc()
		start := time.Now()

		resp, err := inner.Call(ctx, req)

		l.duration.Observe(time.Since(start).Seconds())
		l.inflight.Dec()

		outcome := "success"
		if err != nil {
			outcome = "error"
		}
		l.calls.WithLabelValues(outcome).Inc()

		return resp, err
	})
}
