// file: logger/logger.go

package logger

import (
	"os"
	"strings"

	"bigwallet-api/config"

	"github.com/sirupsen/logrus"
)

// Log is the application-wide logger. It is usable before Init with logrus defaults.
var Log = logrus.New()

// Init configures Log from config.AppConfig.Log. Unknown levels fall back to info.
func Init() {
	Log.SetOutput(os.Stdout)

	switch strings.ToLower(config.AppConfig.Log.Format) {
	case "json":
		Log.SetFormatter(&logrus.JSONFormatter{})
	default:
		Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(config.AppConfig.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)
}
