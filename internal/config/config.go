// Package config loads the interop tool configuration from defaults, an
// optional YAML file and INTEROP_ environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Sentinel validation errors.
var (
	ErrInvalidLogLevel  = errors.New("invalid logging level")
	ErrInvalidLogFormat = errors.New("invalid logging format")
	ErrInvalidScale     = errors.New("invalid quality scale")
)

// Default configuration values.
const (
	defaultLogLevel      = "warn"
	defaultLogFormat     = "text"
	defaultRscript       = "Rscript"
	defaultExtractor     = "illumina_mismatches"
	defaultQualityScale  = "bin"
	envPrefix            = "INTEROP"
	configName           = "interop"
	userConfigDirSegment = "$HOME/.config/interop"
)

// Config is the effective tool configuration.
type Config struct {
	Force    bool           `mapstructure:"force" yaml:"force"`
	Logging  LoggingConfig  `mapstructure:"logging" yaml:"logging"`
	Plot     PlotConfig     `mapstructure:"plot" yaml:"plot"`
	Mismatch MismatchConfig `mapstructure:"mismatch" yaml:"mismatch"`
	Output   OutputConfig   `mapstructure:"output" yaml:"output"`
	Quality  QualityConfig  `mapstructure:"quality" yaml:"quality"`
}

// LoggingConfig selects the log level and handler format.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// PlotConfig locates the plotting scripts.
type PlotConfig struct {
	ScriptDir string `mapstructure:"script_dir" yaml:"script_dir"`
	Rscript   string `mapstructure:"rscript" yaml:"rscript"`
}

// MismatchConfig names the mismatch extractor executable.
type MismatchConfig struct {
	Extractor string `mapstructure:"extractor" yaml:"extractor"`
}

// OutputConfig controls the intermediate table files.
type OutputConfig struct {
	KeepTables bool   `mapstructure:"keep_tables" yaml:"keep_tables"`
	TableDir   string `mapstructure:"table_dir" yaml:"table_dir"`
}

// QualityConfig selects how quality bins are scored.
type QualityConfig struct {
	Scale string `mapstructure:"scale" yaml:"scale"`
}

// Load loads configuration from path, or from interop.yaml in the working
// directory or $HOME/.config/interop when path is empty. A missing default
// file is not an error; a missing explicit path is.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(userConfigDirSegment)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("force", false)

	v.SetDefault("logging.level", defaultLogLevel)
	v.SetDefault("logging.format", defaultLogFormat)

	v.SetDefault("plot.script_dir", "")
	v.SetDefault("plot.rscript", defaultRscript)

	v.SetDefault("mismatch.extractor", defaultExtractor)

	v.SetDefault("output.keep_tables", false)
	v.SetDefault("output.table_dir", "")

	v.SetDefault("quality.scale", defaultQualityScale)
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Logging.Level)
	}

	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.Logging.Format)
	}

	switch c.Quality.Scale {
	case "bin", "remapped":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidScale, c.Quality.Scale)
	}

	return nil
}
