// Package logutil configures the process logger: its output format and an optional
// rotating log file mirroring everything written to stderr.
package logutil

import (
	"fmt"
	"path/filepath"
	"strings"

	joonix "github.com/joonix/log"
	"github.com/wercker/journalhook"
	"github.com/prysmaticlabs/transition-vectors/shared/fileutil"
	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
	"gopkg.in/natefinch/lumberjack.v2"
)

// JournaldFormat sends log entries to the systemd journal instead of stderr.
const JournaldFormat = "journald"

// Rotation limits of the persistent log file.
const (
	maxLogFileMegabytes = 100
	maxLogFileBackups   = 3
)

var _ = logrus.Hook(&WriterHook{})

// WriterHook is a hook that writes logs of specified LogLevels to specified Writer.
type WriterHook struct {
	LogLevels []logrus.Level
}

// Fire will be called when some logging function is called with current hook.
// It will format log entry to string and write it to appropriate writer.
func (hook *WriterHook) Fire(entry *logrus.Entry) error {
	line, err := entry.String()
	if err != nil {
		return err
	}
	//simply call the file logger Println func after removing the new line char
	line = strings.TrimSuffix(line, "\n")
	fileLogger.Println(line)
	return err
}

// Levels defines on which log levels this hook would trigger.
func (hook *WriterHook) Levels() []logrus.Level {
	return hook.LogLevels
}

var fileLogger = &logrus.Logger{
	Level: logrus.TraceLevel,
}

// Formatter returns the logrus formatter for a log format name: text, json or fluentd.
// Text output is colored unless disableColors is set.
func Formatter(format string, disableColors bool) (logrus.Formatter, error) {
	switch format {
	case "text":
		formatter := new(prefixed.TextFormatter)
		formatter.TimestampFormat = "2006-01-02 15:04:05"
		formatter.FullTimestamp = true
		formatter.DisableColors = disableColors
		return formatter, nil
	case "fluentd":
		return joonix.NewFormatter(), nil
	case "json":
		return &logrus.JSONFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown log format %v", format)
	}
}

// Configure applies format to the standard logger.
func Configure(format string) error {
	if format == JournaldFormat {
		journalhook.Enable()
		return nil
	}
	formatter, err := Formatter(format, false /*disableColors*/)
	if err != nil {
		return err
	}
	logrus.SetFormatter(formatter)
	return nil
}

// ConfigurePersistentLogging adds a log-to-file writer hook to the logrus logger. The writer hook appends new
// logs to the specified log file, creating its parent directory when needed. The file is
// rotated once it grows past maxLogFileMegabytes.
func ConfigurePersistentLogging(logFileName string, logFileFormatName string) error {
	formatter, err := Formatter(logFileFormatName, true /*disableColors*/)
	if err != nil {
		return fmt.Errorf("unknown log file format %v", logFileFormatName)
	}
	logrus.WithField("logFileName", logFileName).Info("Logs will be made persistent")
	if dir := filepath.Dir(logFileName); dir != "." {
		if err := fileutil.MkdirAll(dir); err != nil {
			return err
		}
	}
	fileLogger.SetOutput(&lumberjack.Logger{
		Filename:   logFileName,
		MaxSize:    maxLogFileMegabytes,
		MaxBackups: maxLogFileBackups,
	})
	fileLogger.SetFormatter(formatter)

	logrus.Info("File logger initialized")
	logrus.AddHook(&WriterHook{
		LogLevels: logrus.AllLevels,
	})
	return nil
}
