package logger

import (
	"bytes"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
)

func TestGetLogLevel(t *testing.T) {
	assert.Equal(t, hclog.Debug, getLogLevel("DEBUG"))
	assert.Equal(t, hclog.Warn, getLogLevel("WARNING"))
	assert.Equal(t, hclog.Info, getLogLevel("nonsense"))
}

func TestNewWithOutputRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput("test", "warn", &buf)

	log.Info("hidden")
	log.Warn("shown", "check", "spelling")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "check=spelling")
}
