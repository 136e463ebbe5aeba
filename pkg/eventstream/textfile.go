package eventstream

import (
	"context"
	"fmt"
	"maps"
	"path/filepath"
	"regexp"
	"slices"

	"github.com/glorpus-work/artifactswap/pkg/errors"
	"github.com/glorpus-work/artifactswap/pkg/fsutil"
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "artifactswap"

var invalidMetricChars = regexp.MustCompile(`[^a-zA-Z0-9_]`)

// TextfileSink writes the numeric fields of each event as Prometheus gauges
// into a node-exporter textfile collector directory. Each catalog gets its
// own file, which is replaced on every event.
type TextfileSink struct {
	dir string
}

// NewTextfileSink creates a sink writing into dir.
func NewTextfileSink(dir string) *TextfileSink {
	return &TextfileSink{dir: dir}
}

// Path returns the file events of catalog are written to.
func (s *TextfileSink) Path(catalog string) string {
	return filepath.Join(s.dir, metricsNamespace+"_"+catalog+".prom")
}

// Send replaces the metrics file of the event's catalog. String fields
// become labels of every gauge.
func (s *TextfileSink) Send(_ context.Context, event Event) error {
	f, err := fields(event)
	if err != nil {
		return err
	}

	labels := prometheus.Labels{}
	for k, v := range f {
		if str, ok := v.(string); ok {
			labels[metricName(k)] = str
		}
	}

	reg := prometheus.NewRegistry()
	for _, k := range slices.Sorted(maps.Keys(f)) {
		n, ok := f[k].(float64)
		if !ok {
			continue
		}
		g := prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   metricsNamespace,
			Subsystem:   metricName(event.CatalogName()),
			Name:        metricName(k),
			Help:        fmt.Sprintf("Value of %s in the last %s run.", k, event.CatalogName()),
			ConstLabels: labels,
		})
		g.Set(n)
		if err := reg.Register(g); err != nil {
			return errors.Wrapf(err, "failed to register %s", k)
		}
	}

	if err := fsutil.EnsureDir(s.dir); err != nil {
		return err
	}
	if err := prometheus.WriteToTextfile(s.Path(event.CatalogName()), reg); err != nil {
		return errors.Wrap(err, "failed to write metrics textfile")
	}
	return nil
}

func metricName(s string) string {
	return invalidMetricChars.ReplaceAllString(s, "_")
}
