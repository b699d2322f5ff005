// Package config handles toolkit configuration loading and management.
package config

import "time"

// Config holds all gltftool settings.
type Config struct {
	Validator ValidatorConfig `yaml:"validator"`
	Export    ExportConfig    `yaml:"export"`
	Output    OutputConfig    `yaml:"output"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ValidatorConfig holds external schema-validator settings.
type ValidatorConfig struct {
	Binary  string        `yaml:"binary"`  // Validator executable name or path
	Timeout time.Duration `yaml:"timeout"` // Per-run timeout
}

// ExportConfig holds embedded-payload export settings.
type ExportConfig struct {
	Dir string `yaml:"dir"` // Default output directory
}

// OutputConfig holds document serialization settings.
type OutputConfig struct {
	Indent string `yaml:"indent"` // Indentation unit for written JSON
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Validator: ValidatorConfig{
			Binary:  "gltf_validator",
			Timeout: 30 * time.Second,
		},
		Export: ExportConfig{
			Dir: "exported",
		},
		Output: OutputConfig{
			Indent: "    ",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
