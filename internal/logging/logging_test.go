package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "paceman.log")

	log, closeLog, err := New(Options{Level: "info", File: path})
	require.NoError(t, err)

	log.WithField("dispatch_id", "abc").Info("request completed")
	log.Debug("hidden")
	require.NoError(t, closeLog())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "request completed")
	assert.Contains(t, string(data), "dispatch_id=abc")
	assert.NotContains(t, string(data), "hidden")
}

func TestNew_DebugOverridesLevel(t *testing.T) {
	var buf bytes.Buffer
	log, closeLog, err := New(Options{Level: "error", Debug: true, Output: &buf})
	require.NoError(t, err)
	defer closeLog()

	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	log.Debug("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestNew_DefaultsToInfoAndDiscard(t *testing.T) {
	log, closeLog, err := New(Options{})
	require.NoError(t, err)
	assert.NoError(t, closeLog())
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}

func TestNew_InvalidLevel(t *testing.T) {
	_, _, err := New(Options{Level: "loud"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}
