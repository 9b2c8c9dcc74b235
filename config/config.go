package config

import (
	"io/fs"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/tuannh982/spreader-detector/tracing"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "sd"

var ErrInvalidConfig = errors.New("invalid config")

// Config is the configuration of the spreader-detector command.
type Config struct {
	OutputPath string `toml:"output_path" envconfig:"OUTPUT_PATH"`

	LogLevel      string `toml:"log_level" envconfig:"LOG_LEVEL"`
	LogFormat     string `toml:"log_format" envconfig:"LOG_FORMAT"`
	LogFile       string `toml:"log_file" envconfig:"LOG_FILE"`
	LogMaxSizeMB  int    `toml:"log_max_size_mb" envconfig:"LOG_MAX_SIZE_MB"`
	LogMaxBackups int    `toml:"log_max_backups" envconfig:"LOG_MAX_BACKUPS"`

	// MaxSlots caps the slots all containers may hold at once, 0 is unlimited.
	MaxSlots int `toml:"max_slots" envconfig:"MAX_SLOTS"`

	MinDistance                 float64 `toml:"min_distance" envconfig:"MIN_DISTANCE"`
	MaxMeasure                  float64 `toml:"max_measure" envconfig:"MAX_MEASURE"`
	AgeThreshold                uint64  `toml:"age_threshold" envconfig:"AGE_THRESHOLD"`
	AgeAddition                 float64 `toml:"age_addition" envconfig:"AGE_ADDITION"`
	MedicalSupervisionThreshold float64 `toml:"medical_supervision_threshold" envconfig:"MEDICAL_SUPERVISION_THRESHOLD"`
	RegularQuarantineThreshold  float64 `toml:"regular_quarantine_threshold" envconfig:"REGULAR_QUARANTINE_THRESHOLD"`
}

func Default() *Config {
	params := tracing.DefaultParams()
	return &Config{
		OutputPath:                  "SpreaderDetectorOutputFile.out",
		LogLevel:                    log.InfoLevel.String(),
		LogFormat:                   "text",
		LogMaxSizeMB:                100,
		LogMaxBackups:               3,
		MinDistance:                 params.MinDistance,
		MaxMeasure:                  params.MaxMeasure,
		AgeThreshold:                params.AgeThreshold,
		AgeAddition:                 params.AgeAddition,
		MedicalSupervisionThreshold: params.MedicalSupervisionThreshold,
		RegularQuarantineThreshold:  params.RegularQuarantineThreshold,
	}
}

// Load builds the configuration from the defaults, the toml file at path
// when path is not empty, an optional .env file and the environment, later
// sources overriding earlier ones.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := Default()
	if path != "" {
		md, err := toml.DecodeFile(path, cfg)
		if err != nil {
			return nil, errors.Wrapf(err, "decode %s", path)
		}
		for _, key := range md.Undecoded() {
			log.WithField("key", key.String()).Warn("unknown config key")
		}
	}
	// Load a .env file if it exists
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrap(err, "load env file")
	}
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, errors.Wrap(err, "process env")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.OutputPath == "" {
		return errors.Wrap(ErrInvalidConfig, "empty output path")
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return errors.Wrapf(ErrInvalidConfig, "log format %q", c.LogFormat)
	}
	if c.MaxSlots < 0 {
		return errors.Wrapf(ErrInvalidConfig, "max slots %d", c.MaxSlots)
	}
	if err := c.Params().Validate(); err != nil {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}
	return nil
}

func (c *Config) Params() tracing.Params {
	return tracing.Params{
		MinDistance:                 c.MinDistance,
		MaxMeasure:                  c.MaxMeasure,
		AgeThreshold:                c.AgeThreshold,
		AgeAddition:                 c.AgeAddition,
		MedicalSupervisionThreshold: c.MedicalSupervisionThreshold,
		RegularQuarantineThreshold:  c.RegularQuarantineThreshold,
	}
}
