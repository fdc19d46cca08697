package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry collects one generation run. A batch job has no scrape endpoint,
// so the registry is written out as a node_exporter textfile instead.
type Registry struct {
	reg *prometheus.Registry

	runs        *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	days        prometheus.Gauge
	chapters    prometheus.Gauge
	pages       prometheus.Gauge
	bytes       prometheus.Gauge
	lastSuccess prometheus.Gauge
}

// New builds a registry with the readingplan collectors registered.
func New() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "readingplan",
				Name:      "runs_total",
				Help:      "Generation runs by result (success, failed)",
			},
			[]string{"result"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "readingplan",
				Name:      "stage_duration_seconds",
				Help:      "Duration of each generation stage",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"stage"},
		),
		days: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "readingplan",
			Name:      "plan_days",
			Help:      "Days in the last generated plan",
		}),
		chapters: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "readingplan",
			Name:      "plan_chapters",
			Help:      "Chapters scheduled in the last generated plan",
		}),
		pages: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "readingplan",
			Name:      "output_pages",
			Help:      "Pages in the last rendered document",
		}),
		bytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "readingplan",
			Name:      "output_bytes",
			Help:      "Size of the last rendered document",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "readingplan",
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful run",
		}),
	}
	r.reg.MustRegister(r.runs, r.duration, r.days, r.chapters, r.pages, r.bytes, r.lastSuccess)
	return r
}

func (r *Registry) ObserveStage(stage string, dur time.Duration) {
	r.duration.WithLabelValues(stage).Observe(dur.Seconds())
}

func (r *Registry) SetPlan(days, chapters int) {
	r.days.Set(float64(days))
	r.chapters.Set(float64(chapters))
}

func (r *Registry) SetOutput(pages int, size int64) {
	r.pages.Set(float64(pages))
	r.bytes.Set(float64(size))
}

func (r *Registry) IncRun(result string) {
	r.runs.WithLabelValues(result).Inc()
	if result == "success" {
		r.lastSuccess.SetToCurrentTime()
	}
}

// WriteTextfile writes all metrics to path atomically.
func (r *Registry) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.reg)
}
