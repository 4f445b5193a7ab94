package prometheus_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/prysmaticlabs/transition-vectors/shared/prometheus"
	"github.com/prysmaticlabs/transition-vectors/shared/testutil/assert"
	"github.com/prysmaticlabs/transition-vectors/shared/testutil/require"
	"github.com/sirupsen/logrus"
)

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.AddHook(prometheus.NewLogrusCollector())
	l.SetLevel(logrus.InfoLevel)
	return l
}

func TestLogrusCollector(t *testing.T) {
	l := newLogger()

	tests := []struct {
		name   string
		count  int
		prefix string
		level  logrus.Level
	}{
		{"info message with empty prefix", 3, "", logrus.InfoLevel},
		{"warn message with empty prefix", 2, "", logrus.WarnLevel},
		{"error message with empty prefix", 1, "", logrus.ErrorLevel},
		{"error message with prefix", 1, "collector-test", logrus.ErrorLevel},
		{"info message with prefix", 3, "collector-test", logrus.InfoLevel},
		{"warn message with prefix", 2, "collector-test", logrus.WarnLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefix := "global"
			entry := logrus.NewEntry(l)
			if tt.prefix != "" {
				prefix = tt.prefix
				entry = entry.WithField("prefix", tt.prefix)
			}
			before := testutil.ToFloat64(prometheus.LogEntries(tt.level, prefix))
			for i := 0; i < tt.count; i++ {
				entry.Log(tt.level, "collector message")
			}
			after := testutil.ToFloat64(prometheus.LogEntries(tt.level, prefix))
			assert.Equal(t, float64(tt.count), after-before)
		})
	}
}

func TestLogrusCollector_IgnoresDebug(t *testing.T) {
	l := newLogger()
	l.SetLevel(logrus.DebugLevel)
	before := testutil.ToFloat64(prometheus.LogEntries(logrus.DebugLevel, "global"))
	l.Debug("not counted")
	assert.Equal(t, before, testutil.ToFloat64(prometheus.LogEntries(logrus.DebugLevel, "global")))
}

func TestLogrusCollector_NonStringPrefix(t *testing.T) {
	hook := prometheus.NewLogrusCollector()
	entry := logrus.NewEntry(logrus.New()).WithField("prefix", 7)
	entry.Level = logrus.InfoLevel
	require.ErrorContains(t, "not a string", hook.Fire(entry))
}
