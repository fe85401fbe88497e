// ABOUTME: Prometheus collectors for program generation, library health and HTTP traffic.
// ABOUTME: Registered on the default registry; Recorder adapts them to the generator.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mfulp2020/forgefitness/internal/models"
)

var (
	programsGenerated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "forge",
		Subsystem: "generator",
		Name:      "programs_generated_total",
		Help:      "Programs generated, by split and focus.",
	}, []string{"split", "focus"})

	templatesGenerated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "forge",
		Subsystem: "generator",
		Name:      "templates_generated_total",
		Help:      "Day templates produced across all generated programs.",
	})

	generationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "forge",
		Subsystem: "generator",
		Name:      "generation_duration_seconds",
		Help:      "Wall time to assemble one program.",
		Buckets:   []float64{.0001, .00025, .0005, .001, .0025, .005, .01, .025, .05},
	})

	libraryDiagnostics = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "forge",
		Subsystem: "library",
		Name:      "diagnostics",
		Help:      "Problems reported by the most recent knowledge base verification.",
	})

	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "forge",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests served, by method, route pattern and status code.",
	}, []string{"method", "route", "status"})

	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "forge",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route pattern.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})
)

func init() {
	prometheus.MustRegister(
		programsGenerated,
		templatesGenerated,
		generationDuration,
		libraryDiagnostics,
		httpRequests,
		httpDuration,
	)
}

// Recorder feeds generator measurements into the collectors.
type Recorder struct{}

// NewRecorder returns a Recorder bound to the package collectors.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// ObserveProgram counts one generated program and its templates.
func (*Recorder) ObserveProgram(splitID string, focus models.Focus, templates int, elapsed time.Duration) {
	programsGenerated.WithLabelValues(splitID, string(focus)).Inc()
	templatesGenerated.Add(float64(templates))
	generationDuration.Observe(elapsed.Seconds())
}

// SetLibraryDiagnostics records the latest verification result.
func (*Recorder) SetLibraryDiagnostics(n int) {
	libraryDiagnostics.Set(float64(n))
}

// ObserveRequest records one served HTTP request. route should be the
// router pattern, not the raw path, to keep label cardinality bounded.
func ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
