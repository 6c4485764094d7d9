package logger

import (
	"io"
	"os"

	"github.com/natefinch/lumberjack"
	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

// Init configures the global logrus instance. verbosity is the net of the
// -v and -q flags: negative silences everything below errors, 0 is normal
// progress, 1 adds per-bucket detail, 2 and above enables trace output.
// When logFilePath is set, output is mirrored to a rotating log file.
func Init(verbosity int, logFilePath string) error {
	var level logrus.Level
	switch {
	case verbosity < 0:
		level = logrus.ErrorLevel
	case verbosity == 0:
		level = logrus.InfoLevel
	case verbosity == 1:
		level = logrus.DebugLevel
	default:
		level = logrus.TraceLevel
	}

	logrus.SetLevel(level)
	logrus.SetFormatter(&prefixed.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
		ForceFormatting: true,
	})

	out := io.Writer(os.Stdout)
	if logFilePath != "" {
		out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   logFilePath,
			MaxSize:    25,
			MaxBackups: 5,
			MaxAge:     30,
			Compress:   true,
		})
	}
	logrus.SetOutput(out)

	return nil
}

// GetLogger returns a prefixed entry for the given component.
func GetLogger(prefix string) *logrus.Entry {
	return logrus.WithFields(logrus.Fields{"prefix": prefix})
}
