// Package config holds the run configuration: where the two raw
// mortality exports live, where the cleaned dataset goes, and how the
// application logs. Values come from environment variables (prefix
// MORT) merged with an optional config.yaml next to the binary.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// ConfigFileName is the optional YAML config file looked up in the
// working directory.
const ConfigFileName = "config.yaml"

// Config represents the complete application configuration
type Config struct {
	Inputs  InputsConfig  `yaml:"inputs" envconfig:"INPUTS"`
	Output  OutputConfig  `yaml:"output" envconfig:"OUTPUT"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
}

// InputsConfig names the two raw export files, one per era.
type InputsConfig struct {
	Era1Path string `yaml:"era1_path" envconfig:"ERA1_PATH" default:"data/Multiple Cause of Death, 2004-2017.csv" validate:"required"`
	Era2Path string `yaml:"era2_path" envconfig:"ERA2_PATH" default:"data/Multiple Cause of Death, 2018-2023.csv" validate:"required"`
}

// OutputConfig controls where and how the cleaned dataset is written.
type OutputConfig struct {
	Path string `yaml:"path" envconfig:"PATH" default:"data/clean_mortality_2004_2023.csv" validate:"required"`
	BOM  bool   `yaml:"bom" envconfig:"BOM" default:"false"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/mortality.log"`
}

// Load loads configuration from environment variables and config file
func Load() (*Config, error) {
	var cfg Config

	// Load from environment variables first
	if err := envconfig.Process("MORT", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	// Load from config file if exists
	if _, err := os.Stat(ConfigFileName); err == nil {
		fileConfig, err := loadFromFile(ConfigFileName)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges file config with env config (env takes precedence
// where a value was actually set; defaults yield to the file)
func mergeConfigs(fileConfig, envConfig Config) Config {
	merged := envConfig

	if v, ok := os.LookupEnv("MORT_INPUTS_ERA1_PATH"); !ok || v == "" {
		if fileConfig.Inputs.Era1Path != "" {
			merged.Inputs.Era1Path = fileConfig.Inputs.Era1Path
		}
	}
	if v, ok := os.LookupEnv("MORT_INPUTS_ERA2_PATH"); !ok || v == "" {
		if fileConfig.Inputs.Era2Path != "" {
			merged.Inputs.Era2Path = fileConfig.Inputs.Era2Path
		}
	}
	if v, ok := os.LookupEnv("MORT_OUTPUT_PATH"); !ok || v == "" {
		if fileConfig.Output.Path != "" {
			merged.Output.Path = fileConfig.Output.Path
		}
	}
	if _, ok := os.LookupEnv("MORT_OUTPUT_BOM"); !ok {
		merged.Output.BOM = fileConfig.Output.BOM
	}
	if v, ok := os.LookupEnv("MORT_LOGGING_LEVEL"); !ok || v == "" {
		if fileConfig.Logging.Level != "" {
			merged.Logging.Level = fileConfig.Logging.Level
		}
	}
	if v, ok := os.LookupEnv("MORT_LOGGING_FORMAT"); !ok || v == "" {
		if fileConfig.Logging.Format != "" {
			merged.Logging.Format = fileConfig.Logging.Format
		}
	}
	if v, ok := os.LookupEnv("MORT_LOGGING_OUTPUT"); !ok || v == "" {
		if fileConfig.Logging.Output != "" {
			merged.Logging.Output = fileConfig.Logging.Output
		}
	}
	if v, ok := os.LookupEnv("MORT_LOGGING_FILE_PATH"); !ok || v == "" {
		if fileConfig.Logging.FilePath != "" {
			merged.Logging.FilePath = fileConfig.Logging.FilePath
		}
	}

	return merged
}
