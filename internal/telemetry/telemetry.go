// Package telemetry exposes run statistics as Prometheus metrics written to a
// node_exporter textfile.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"

	"vendor-risk-assessor/internal/model"
)

const namespace = "vendor_risk"

// Recorder holds the metrics of one assessment run on a private registry.
type Recorder struct {
	reg *prometheus.Registry

	vendorsScored  prometheus.Counter
	sourcesSkipped prometheus.Counter
	diagnostics    *prometheus.CounterVec
	averageRisk    prometheus.Gauge
	vendorRisk     *prometheus.GaugeVec
	missedControls *prometheus.GaugeVec
	duration       prometheus.Gauge
}

func NewRecorder() *Recorder {
	r := &Recorder{
		reg: prometheus.NewRegistry(),
		vendorsScored: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "vendors_scored_total",
			Help:      "Vendor sources scored and folded into the dataset.",
		}),
		sourcesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sources_skipped_total",
			Help:      "Vendor sources skipped because they could not be read or parsed.",
		}),
		diagnostics: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "diagnostics_total",
			Help:      "Diagnostics raised during the run, by kind.",
		}, []string{"kind"}),
		averageRisk: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "average_risk_score",
			Help:      "Mean vendor risk score percentage.",
		}),
		vendorRisk: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "vendor_risk_score",
			Help:      "Risk score percentage per vendor.",
		}, []string{"vendor"}),
		missedControls: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "vendor_missed_controls",
			Help:      "Controls missed per vendor.",
		}, []string{"vendor"}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of the assessment run.",
		}),
	}
	r.reg.MustRegister(r.vendorsScored, r.sourcesSkipped, r.diagnostics,
		r.averageRisk, r.vendorRisk, r.missedControls, r.duration)
	return r
}

// Observe records a finished report.
func (r *Recorder) Observe(rep *model.Report) {
	r.vendorsScored.Add(float64(len(rep.SystemRiskScores)))
	r.sourcesSkipped.Add(float64(rep.Run.SourcesSkipped))
	for _, d := range rep.Diagnostics {
		r.diagnostics.WithLabelValues(string(d.Kind)).Inc()
	}
	r.averageRisk.Set(rep.AverageRisk())
	for vendor, score := range rep.SystemRiskScores {
		r.vendorRisk.WithLabelValues(vendor).Set(score)
	}
	for _, v := range rep.Vendors {
		r.missedControls.WithLabelValues(v.Vendor).Set(float64(len(v.MissedControls)))
	}
	r.duration.Set(rep.Run.DurationSeconds)
}

func (r *Recorder) Registry() *prometheus.Registry { return r.reg }

// WriteTextfile writes every metric to path in the text exposition format.
// The file is replaced atomically.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.reg)
}
