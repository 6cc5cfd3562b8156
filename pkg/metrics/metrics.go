// Package metrics records projection and markup activity.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder receives instrumentation events. Implementations must be safe for
// concurrent use since one projector serves every request.
type Recorder interface {
	ObserveProjection(formID string)
	ObserveUnresolved(role string)
	ObserveMarkupFailure(widget string)
}

// Nop discards every event.
type Nop struct{}

func (Nop) ObserveProjection(string)    {}
func (Nop) ObserveUnresolved(string)    {}
func (Nop) ObserveMarkupFailure(string) {}

// PrometheusRecorder implements Recorder with Prometheus counters.
type PrometheusRecorder struct {
	projectionsTotal    prometheus.Counter
	unresolvedTotal     *prometheus.CounterVec
	markupFailuresTotal *prometheus.CounterVec
}

// NewPrometheusRecorder creates the collectors and registers them on reg.
// A nil reg uses prometheus.DefaultRegisterer.
func NewPrometheusRecorder(reg prometheus.Registerer) (*PrometheusRecorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	r := &PrometheusRecorder{
		projectionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "seoform_projections_total",
			Help: "Total number of settings bags projected from form trees",
		}),
		unresolvedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seoform_unresolved_fields_total",
				Help: "Field lookups that degraded to an empty value, by role",
			},
			[]string{"role"},
		),
		markupFailuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seoform_markup_failures_total",
				Help: "Widget markup renders that failed and were skipped",
			},
			[]string{"widget"},
		),
	}
	for _, collector := range []prometheus.Collector{r.projectionsTotal, r.unresolvedTotal, r.markupFailuresTotal} {
		if err := reg.Register(collector); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// ObserveProjection implements Recorder.
func (r *PrometheusRecorder) ObserveProjection(string) {
	r.projectionsTotal.Inc()
}

// ObserveUnresolved implements Recorder.
func (r *PrometheusRecorder) ObserveUnresolved(role string) {
	r.unresolvedTotal.WithLabelValues(role).Inc()
}

// ObserveMarkupFailure implements Recorder.
func (r *PrometheusRecorder) ObserveMarkupFailure(widget string) {
	r.markupFailuresTotal.WithLabelValues(widget).Inc()
}
