package logging

import (
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	logger := log.New()
	closer, err := Setup(logger, Options{Level: "debug"})
	require.Nil(t, err)
	require.Nil(t, closer.Close())
	require.Equal(t, log.DebugLevel, logger.GetLevel())
	require.IsType(t, &log.TextFormatter{}, logger.Formatter)

	_, err = Setup(logger, Options{Level: "loud"})
	require.NotNil(t, err)
}

func TestSetupFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sd.log")
	logger := log.New()
	closer, err := Setup(logger, Options{Level: "info", Format: "json", File: path, MaxSizeMB: 1})
	require.Nil(t, err)
	require.IsType(t, &log.JSONFormatter{}, logger.Formatter)
	logger.WithField("people", 9).Info("report written")
	logger.Debug("dropped")
	require.Nil(t, closer.Close())

	content, err := os.ReadFile(path)
	require.Nil(t, err)
	require.Contains(t, string(content), `"msg":"report written"`)
	require.Contains(t, string(content), `"people":9`)
	require.NotContains(t, string(content), "dropped")
}
