package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	require.Same(t, reg, pr.Registry())

	pr.IncLinkStatus("paddle", "ok")
	pr.IncLinkStatus("paddle", "ok")
	pr.IncLinkStatus("torch", "unreachable")
	pr.IncRewrite("torch", false)
	pr.ObserveCheckDuration("paddle", 150*time.Millisecond)
	pr.ObserveRunDuration(2 * time.Second)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(mfs))
	for _, mf := range mfs {
		names = append(names, mf.GetName())
	}
	require.ElementsMatch(t, []string{
		"apilinks_link_checks_total",
		"apilinks_link_rewrites_total",
		"apilinks_link_check_duration_seconds",
		"apilinks_run_duration_seconds",
		"apilinks_last_run_timestamp_seconds",
	}, names)
}

func TestPrometheusRecorderWriteTextfile(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.IncLinkStatus("paddle", "marker_missing")
	pr.IncRewrite("paddle", true)

	path := filepath.Join(t.TempDir(), "apilinks.prom")
	require.NoError(t, pr.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	require.Contains(t, text, `apilinks_link_checks_total{policy="paddle",status="marker_missing"} 1`)
	require.Contains(t, text, `apilinks_link_rewrites_total{dry_run="true",policy="paddle"} 1`)
}

func TestPrometheusRecorderWriteTextfileError(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	err := pr.WriteTextfile(filepath.Join(t.TempDir(), "missing", "apilinks.prom"))
	require.Error(t, err)
}

func TestNilPrometheusRecorder(t *testing.T) {
	var pr *PrometheusRecorder
	require.NotPanics(t, func() {
		pr.IncLinkStatus("paddle", "ok")
		pr.IncRewrite("paddle", false)
		pr.ObserveCheckDuration("paddle", time.Second)
		pr.ObserveRunDuration(time.Second)
	})
}

var _ Recorder = NoopRecorder{}
var _ Recorder = (*PrometheusRecorder)(nil)
