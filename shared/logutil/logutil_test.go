package logutil

import (
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	joonix "github.com/joonix/log"
	"github.com/prysmaticlabs/transition-vectors/shared/testutil/assert"
	"github.com/prysmaticlabs/transition-vectors/shared/testutil/require"
	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

func TestFormatter(t *testing.T) {
	tests := []struct {
		format  string
		check   func(f logrus.Formatter) bool
		wantErr string
	}{
		{format: "text", check: func(f logrus.Formatter) bool { _, ok := f.(*prefixed.TextFormatter); return ok }},
		{format: "json", check: func(f logrus.Formatter) bool { _, ok := f.(*logrus.JSONFormatter); return ok }},
		{format: "fluentd", check: func(f logrus.Formatter) bool { _, ok := f.(*joonix.Formatter); return ok }},
		{format: "xml", wantErr: "unknown log format xml"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			f, err := Formatter(tt.format, false)
			if tt.wantErr != "" {
				require.ErrorContains(t, tt.wantErr, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, true, tt.check(f))
		})
	}
}

func TestConfigurePersistentLogging(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "vector-gen.log")
	require.NoError(t, ConfigurePersistentLogging(logFile, "json"))
	logrus.WithField("prefix", "test").Info("Persisted line")

	data, err := ioutil.ReadFile(logFile)
	require.NoError(t, err)
	assert.Equal(t, true, strings.Contains(string(data), "Persisted line"), string(data))
}

func TestConfigurePersistentLogging_UnknownFormat(t *testing.T) {
	err := ConfigurePersistentLogging(filepath.Join(t.TempDir(), "x.log"), "xml")
	require.ErrorContains(t, "unknown log file format xml", err)
}

func TestConfigure(t *testing.T) {
	prev := logrus.StandardLogger().Formatter
	defer logrus.SetFormatter(prev)

	require.NoError(t, Configure("json"))
	_, ok := logrus.StandardLogger().Formatter.(*logrus.JSONFormatter)
	assert.Equal(t, true, ok)
	require.ErrorContains(t, "unknown log format xml", Configure("xml"))
}
