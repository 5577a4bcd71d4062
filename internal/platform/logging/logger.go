// Package logging configures the process-wide logrus logger.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Setup configures the standard logrus logger and returns it.
// Development gets colored text with full timestamps, everything else JSON.
func Setup(appName, env string) *logrus.Logger {
	return configure(logrus.StandardLogger(), os.Stdout, appName, env)
}

// New creates a standalone logger with the same settings as Setup.
func New(out io.Writer, appName, env string) *logrus.Logger {
	return configure(logrus.New(), out, appName, env)
}

func configure(logger *logrus.Logger, out io.Writer, appName, env string) *logrus.Logger {
	logger.SetOutput(out)
	if env == "development" {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	logger.WithFields(logrus.Fields{"app": appName, "env": env}).Info("logger initialized")
	return logger
}
