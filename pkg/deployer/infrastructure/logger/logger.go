package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	applogger "github.com/tss-calculator/go-lib/pkg/application/logger"
	textlogger "github.com/tss-calculator/go-lib/pkg/infrastructure/logger"
)

// debugEnv is read by the text logger of go-lib.
const debugEnv = "DEBUG"

// NewMainLogger annotates the run with workflow commands inside GitHub
// Actions and falls back to plain text lines on stderr everywhere else.
func NewMainLogger(debug bool) applogger.MainLogger {
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return NewActionsLogger(os.Stdout, debug)
	}
	if debug && os.Getenv(debugEnv) == "" {
		_ = os.Setenv(debugEnv, "1")
	}
	return textlogger.NewTextLogger()
}

func NewActionsLogger(out io.Writer, debug bool) applogger.MainLogger {
	impl := logrus.New()
	impl.SetOutput(out)
	impl.SetFormatter(&ActionsFormatter{})
	if debug {
		impl.SetLevel(logrus.DebugLevel)
	}
	return &actionsLogger{impl}
}

type actionsLogger struct {
	logrus.FieldLogger
}

func (l *actionsLogger) WithField(key string, value interface{}) applogger.Logger {
	return &actionsLogger{l.FieldLogger.WithField(key, value)}
}

func (l *actionsLogger) WithFields(fields applogger.Fields) applogger.Logger {
	return &actionsLogger{l.FieldLogger.WithFields(logrus.Fields(fields))}
}

func (l *actionsLogger) Error(err error, args ...interface{}) {
	l.FieldLogger.WithError(err).Error(args...)
}

func (l *actionsLogger) Warning(err error, args ...interface{}) {
	l.FieldLogger.WithError(err).Warn(args...)
}

func (l *actionsLogger) FatalError(err error, args ...interface{}) {
	l.FieldLogger.WithError(err).Fatal(args...)
}
