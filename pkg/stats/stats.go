package stats

import (
	"bufio"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

const (
	OutcomeBuilt   = "built"
	OutcomeInvalid = "invalid"
	OutcomeFailed  = "failed"
)

var (
	compositions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "trezor_composer",
			Name:      "compositions_total",
			Help:      "Number of transaction compositions by outcome.",
		},
		[]string{"outcome"},
	)
	backendRequests = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "trezor_composer",
			Name:      "backend_request_duration_seconds",
			Help:      "Duration of the requests made to the backend.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
)

func init() {
	prometheus.MustRegister(compositions, backendRequests)
}

// CountComposition increments the counter of compositions for the given
// outcome.
func CountComposition(outcome string) {
	compositions.WithLabelValues(outcome).Inc()
}

// ObserveBackendRequest records the duration of a request made to the given
// backend endpoint, starting from the given time.
func ObserveBackendRequest(endpoint string, start time.Time) {
	backendRequests.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}

// DumpPrometheusDefaults appends the gathered Prometheus metrics to the file
// at the given path.
func DumpPrometheusDefaults(path string) error {
	file, err := os.OpenFile(
		path,
		os.O_APPEND|os.O_CREATE|os.O_RDWR,
		0644,
	)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	metricFamily, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return err
	}
	for _, v := range metricFamily {
		if !strings.HasPrefix(v.GetName(), "trezor_composer") {
			continue
		}
		if _, err := writer.WriteString(v.String() + "\n"); err != nil {
			return err
		}
	}

	return writer.Flush()
}

// PrintCompositions logs the number of compositions per outcome.
func PrintCompositions() {
	for _, outcome := range []string{OutcomeBuilt, OutcomeInvalid, OutcomeFailed} {
		metric, err := compositions.GetMetricWithLabelValues(outcome)
		if err != nil {
			continue
		}
		log.Infof("compositions %s: %v", outcome, counterValue(metric))
	}
}
