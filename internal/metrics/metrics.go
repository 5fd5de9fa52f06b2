// Package metrics records the outcome of a sync run and exports it as a
// Prometheus textfile for the node-exporter textfile collector.
package metrics

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/garmin2obsidian/internal/common"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = common.AppName

// Run statuses reported by the run_status gauge.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Recorder holds the gauges of a single run. The zero value is not usable;
// construct with New.
type Recorder struct {
	registry *prometheus.Registry

	lastRun      prometheus.Gauge
	lastSuccess  prometheus.Gauge
	status       *prometheus.GaugeVec
	workouts     prometheus.Gauge
	bytes        prometheus.Gauge
	stageSeconds *prometheus.GaugeVec
}

// New returns a Recorder with its own registry.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix timestamp of the most recent sync run.",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix timestamp of the most recent successful sync run.",
		}),
		status: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_status",
			Help:      "1 for the status of the most recent run, 0 otherwise.",
		}, []string{"status"}),
		workouts: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "note",
			Name:      "workouts_appended",
			Help:      "Workouts written to the daily note by the most recent run.",
		}),
		bytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "note",
			Name:      "bytes_appended",
			Help:      "Bytes appended to the daily note by the most recent run.",
		}),
		stageSeconds: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Wall time spent in each pipeline stage of the most recent run.",
		}, []string{"stage"}),
	}

	r.registry.MustRegister(r.lastRun, r.lastSuccess, r.status, r.workouts, r.bytes, r.stageSeconds)
	return r
}

// Registry exposes the underlying registry, e.g. for gathering in tests.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveStage records how long a pipeline stage took.
func (r *Recorder) ObserveStage(stage string, d time.Duration) {
	r.stageSeconds.WithLabelValues(stage).Set(d.Seconds())
}

// RecordAppend records what was written to the note.
func (r *Recorder) RecordAppend(workouts, bytes int) {
	r.workouts.Set(float64(workouts))
	r.bytes.Set(float64(bytes))
}

// RecordRun records the end of a run at ts.
func (r *Recorder) RecordRun(ts time.Time, err error) {
	r.lastRun.Set(float64(ts.Unix()))
	if err != nil {
		r.status.WithLabelValues(StatusSuccess).Set(0)
		r.status.WithLabelValues(StatusFailure).Set(1)
		return
	}
	r.lastSuccess.Set(float64(ts.Unix()))
	r.status.WithLabelValues(StatusSuccess).Set(1)
	r.status.WithLabelValues(StatusFailure).Set(0)
}

// WriteTextfile writes all gauges to path in the Prometheus text format.
// The file is replaced atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile %s: %w", path, err)
	}
	return nil
}
