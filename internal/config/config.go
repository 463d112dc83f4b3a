// Package config provides configuration management for webpulse using Viper
// for flexible configuration loading from files, environment variables, and
// command-line flags.
//
// Configuration is read from the file named by --config, then from the file
// named by WEBPULSE_CONFIG_FILE, then from .webpulse.yml in the working
// directory. Every key can be overridden with a WEBPULSE_ prefixed
// environment variable where dots become underscores, for example
// WEBPULSE_ANALYSIS_WORKERS.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/conneroisu/webpulse/internal/analyzer"
	pulseerrors "github.com/conneroisu/webpulse/internal/errors"
	"github.com/conneroisu/webpulse/internal/logging"
	"github.com/conneroisu/webpulse/internal/manifest"
)

const (
	// EnvPrefix is prepended to every environment override.
	EnvPrefix = "WEBPULSE"
	// EnvConfigFile names the environment variable holding a config file path.
	EnvConfigFile = "WEBPULSE_CONFIG_FILE"
	// DefaultFileName is looked up in the working directory.
	DefaultFileName = ".webpulse"
	// DefaultFileType is the format of the default config file.
	DefaultFileType = "yml"
)

var envKeyReplacer = strings.NewReplacer(".", "_")

type Config struct {
	Analysis AnalysisConfig `mapstructure:"analysis" yaml:"analysis" json:"analysis"`
	Output   OutputConfig   `mapstructure:"output" yaml:"output" json:"output"`
	Log      LogConfig      `mapstructure:"log" yaml:"log" json:"log"`
	Watch    WatchConfig    `mapstructure:"watch" yaml:"watch" json:"watch"`
}

type AnalysisConfig struct {
	Workers         int      `mapstructure:"workers" yaml:"workers" json:"workers"`
	MaxFileSize     int64    `mapstructure:"max_file_size" yaml:"max_file_size" json:"max_file_size"`
	MaxManifestSize int64    `mapstructure:"max_manifest_size" yaml:"max_manifest_size" json:"max_manifest_size"`
	MaxRushSize     int64    `mapstructure:"max_rush_size" yaml:"max_rush_size" json:"max_rush_size"`
	Salesforce      bool     `mapstructure:"salesforce" yaml:"salesforce" json:"salesforce"`
	ExtraSkipDirs   []string `mapstructure:"extra_skip_dirs" yaml:"extra_skip_dirs" json:"extra_skip_dirs"`
}

type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format" json:"format"`
	Color  bool   `mapstructure:"color" yaml:"color" json:"color"`
}

type LogConfig struct {
	Level      string `mapstructure:"level" yaml:"level" json:"level"`
	Format     string `mapstructure:"format" yaml:"format" json:"format"`
	File       string `mapstructure:"file" yaml:"file" json:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" yaml:"max_size_mb" json:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups" json:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days" yaml:"max_age_days" json:"max_age_days"`
}

type WatchConfig struct {
	Debounce   time.Duration `mapstructure:"debounce" yaml:"debounce" json:"debounce"`
	Serve      string        `mapstructure:"serve" yaml:"serve" json:"serve"`
	OpenOrigin []string      `mapstructure:"open_origin" yaml:"open_origin" json:"open_origin"`
}

// SetDefaults registers every known key on v. Keys must be registered for
// AutomaticEnv overrides to reach Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("analysis.workers", runtime.NumCPU())
	v.SetDefault("analysis.max_file_size", int64(manifest.MaxFileSize))
	v.SetDefault("analysis.max_manifest_size", int64(manifest.MaxManifestSize))
	v.SetDefault("analysis.max_rush_size", int64(manifest.MaxRushSize))
	v.SetDefault("analysis.salesforce", false)
	v.SetDefault("analysis.extra_skip_dirs", []string{})

	v.SetDefault("output.format", "text")
	v.SetDefault("output.color", true)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)

	v.SetDefault("watch.debounce", 500*time.Millisecond)
	v.SetDefault("watch.serve", "")
	v.SetDefault("watch.open_origin", []string{})
}

// Init prepares v for loading: defaults, environment overrides and the
// config file. It returns the path of the file that was read, or "" when no
// file was found. A file named explicitly, by flag or environment, must
// exist.
func Init(v *viper.Viper, cfgFile string) (string, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	explicit := true
	switch {
	case cfgFile != "":
		v.SetConfigFile(cfgFile)
	case os.Getenv(EnvConfigFile) != "":
		v.SetConfigFile(os.Getenv(EnvConfigFile))
	default:
		explicit = false
		v.AddConfigPath(".")
		v.SetConfigName(DefaultFileName)
		v.SetConfigType(DefaultFileType)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !explicit && errors.As(err, &notFound) {
			return "", nil
		}
		return "", pulseerrors.WrapConfig(err, pulseerrors.ErrCodeConfigInvalid, "failed to read config file")
	}

	return v.ConfigFileUsed(), nil
}

// Load unmarshals and validates the configuration held by the global viper
// instance.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom unmarshals and validates the configuration held by v.
func LoadFrom(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, pulseerrors.WrapConfig(err, pulseerrors.ErrCodeConfigInvalid, "failed to unmarshal config")
	}

	if config.Analysis.Workers == 0 {
		config.Analysis.Workers = runtime.NumCPU()
	}
	if config.Output.Format == "" {
		config.Output.Format = "text"
	}
	if config.Log.Level == "" {
		config.Log.Level = "info"
	}
	if config.Log.Format == "" {
		config.Log.Format = "text"
	}

	if err := Validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// AnalyzerOptions converts the analysis section into analyzer options.
func (c *Config) AnalyzerOptions() analyzer.Options {
	options := analyzer.DefaultOptions()
	options.Workers = c.Analysis.Workers
	options.MaxFileSize = c.Analysis.MaxFileSize
	options.MaxManifestSize = c.Analysis.MaxManifestSize
	options.MaxRushSize = c.Analysis.MaxRushSize
	options.Salesforce = c.Analysis.Salesforce
	if len(c.Analysis.ExtraSkipDirs) > 0 {
		options.SkipDirs = append(options.SkipDirs, c.Analysis.ExtraSkipDirs...)
	}
	return options
}

// LoggerConfig converts the log section into a logger configuration writing
// to stderr.
func (c *Config) LoggerConfig() (*logging.LoggerConfig, error) {
	level, err := logging.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("log.level: %w", err)
	}
	config := logging.DefaultConfig()
	config.Level = level
	config.Format = c.Log.Format
	return config, nil
}

// Rotation returns the log file rotation settings. Path is empty when file
// logging is disabled.
func (c *Config) Rotation() logging.RotationConfig {
	return logging.RotationConfig{
		Path:       c.Log.File,
		MaxSizeMB:  c.Log.MaxSizeMB,
		MaxBackups: c.Log.MaxBackups,
		MaxAgeDays: c.Log.MaxAgeDays,
	}
}
