package metrics

import (
	"strconv"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/apilinks/internal/foundation/errors"
)

const namespace = "apilinks"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	registry      *prom.Registry
	linkStatus    *prom.CounterVec
	rewrites      *prom.CounterVec
	checkDuration *prom.HistogramVec
	runDuration   prom.Histogram
	lastRun       prom.Gauge
}

// NewPrometheusRecorder constructs and registers the metrics on reg. A nil
// registry gets a fresh one.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		registry: reg,
		linkStatus: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "link_checks_total",
			Help:      "Checked links by policy and status",
		}, []string{"policy", "status"}),
		rewrites: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "link_rewrites_total",
			Help:      "Corrected links by policy",
		}, []string{"policy", "dry_run"}),
		checkDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "link_check_duration_seconds",
			Help:      "Duration of a single (policy, file) check",
			Buckets:   prom.DefBuckets,
		}, []string{"policy"}),
		runDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Total duration of a check run",
			Buckets:   prom.ExponentialBuckets(0.5, 2, 10),
		}),
		lastRun: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last check run finished",
		}),
	}
	reg.MustRegister(pr.linkStatus, pr.rewrites, pr.checkDuration, pr.runDuration, pr.lastRun)
	return pr
}

// Registry returns the registry the metrics are registered on.
func (p *PrometheusRecorder) Registry() *prom.Registry { return p.registry }

func (p *PrometheusRecorder) IncLinkStatus(policy, status string) {
	if p == nil {
		return
	}
	p.linkStatus.WithLabelValues(policy, status).Inc()
}

func (p *PrometheusRecorder) IncRewrite(policy string, dryRun bool) {
	if p == nil {
		return
	}
	p.rewrites.WithLabelValues(policy, strconv.FormatBool(dryRun)).Inc()
}

func (p *PrometheusRecorder) ObserveCheckDuration(policy string, d time.Duration) {
	if p == nil {
		return
	}
	p.checkDuration.WithLabelValues(policy).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.runDuration.Observe(d.Seconds())
	p.lastRun.SetToCurrentTime()
}

// WriteTextfile writes all registered metrics to path in the text exposition
// format. The file is replaced atomically.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if err := prom.WriteToTextfile(path, p.registry); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write metrics file").
			WithContext("path", path).
			Build()
	}
	return nil
}
