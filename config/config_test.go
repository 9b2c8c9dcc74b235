package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuannh982/spreader-detector/tracing"
)

func writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.Nil(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.Nil(t, err)
	require.Equal(t, Default(), cfg)
	require.Equal(t, tracing.DefaultParams(), cfg.Params())
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, "sd.toml", `
output_path = "out.txt"
log_level = "debug"
max_slots = 4096
age_threshold = 60
medical_supervision_threshold = 0.5
`)
	cfg, err := Load(path)
	require.Nil(t, err)
	require.Equal(t, "out.txt", cfg.OutputPath)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, 4096, cfg.MaxSlots)
	require.Equal(t, uint64(60), cfg.AgeThreshold)
	require.Equal(t, 0.5, cfg.MedicalSupervisionThreshold)
	// untouched keys keep their defaults
	require.Equal(t, tracing.DefaultMaxMeasure, cfg.MaxMeasure)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeFile(t, "sd.toml", `output_path = "from-file.txt"`)
	t.Setenv("SD_OUTPUT_PATH", "from-env.txt")
	t.Setenv("SD_MIN_DISTANCE", "2.5")
	cfg, err := Load(path)
	require.Nil(t, err)
	require.Equal(t, "from-env.txt", cfg.OutputPath)
	require.Equal(t, 2.5, cfg.MinDistance)
}

func TestLoadEnvFile(t *testing.T) {
	envFile := writeFile(t, "test.env", "SD_LOG_FORMAT=json\nSD_MAX_SLOTS=64\n")
	t.Cleanup(func() {
		_ = os.Unsetenv("SD_LOG_FORMAT")
		_ = os.Unsetenv("SD_MAX_SLOTS")
	})
	cfg, err := Load("", envFile)
	require.Nil(t, err)
	require.Equal(t, "json", cfg.LogFormat)
	require.Equal(t, 64, cfg.MaxSlots)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NotNil(t, err)

	_, err = Load(writeFile(t, "bad.toml", `output_path = `))
	require.NotNil(t, err)

	_, err = Load(writeFile(t, "inverted.toml", "regular_quarantine_threshold = 0.9\n"))
	require.ErrorIs(t, err, ErrInvalidConfig)

	t.Setenv("SD_MAX_SLOTS", "many")
	_, err = Load("")
	require.NotNil(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.Nil(t, cfg.Validate())

	cases := []func(c *Config){
		func(c *Config) { c.OutputPath = "" },
		func(c *Config) { c.LogLevel = "loud" },
		func(c *Config) { c.LogFormat = "xml" },
		func(c *Config) { c.MaxSlots = -1 },
		func(c *Config) { c.MaxMeasure = 0 },
	}
	for _, mutate := range cases {
		c := Default()
		mutate(c)
		require.ErrorIs(t, c.Validate(), ErrInvalidConfig)
	}
}
