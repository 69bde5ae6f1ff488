package logger

import (
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// New returns a named logger. The level string comes from config; when it
// is empty LOG_LEVEL is consulted, and unknown values fall back to INFO.
func New(name, level string) hclog.Logger {
	return NewWithOutput(name, level, os.Stdout)
}

func NewWithOutput(name, level string, out io.Writer) hclog.Logger {
	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   name,
		Output: out,
		Level:  getLogLevel(strings.ToUpper(strings.TrimSpace(level))),
	})
}

func getLogLevel(levelStr string) hclog.Level {
	switch levelStr {
	case "TRACE":
		return hclog.Trace
	case "DEBUG":
		return hclog.Debug
	case "INFO":
		return hclog.Info
	case "WARN", "WARNING":
		return hclog.Warn
	case "ERROR":
		return hclog.Error
	default:
		return hclog.Info
	}
}
