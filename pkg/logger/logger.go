package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is usable immediately; InitLogger switches it to production settings.
var Log = logrus.New()

func InitLogger() {
	// Output to stdout instead of the default stderr
	Log.Out = os.Stdout

	// Set JSON formatter for structured logging
	Log.SetFormatter(&logrus.JSONFormatter{})

	// Log level can be changed depending on environment
	Log.SetLevel(logrus.InfoLevel)
}
