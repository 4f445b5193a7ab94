package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// LogEntries exposes the counter of one level and prefix to tests.
func LogEntries(level logrus.Level, prefix string) prometheus.Counter {
	return logEntries.WithLabelValues(level.String(), prefix)
}
