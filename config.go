package ifx

import (
	"fmt"
	"os"
	"regexp"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

// Config represents the ifx tool configuration
type Config struct {
	Output OutputConfig `yaml:"output"`
	Data   DataConfig   `yaml:"data"`
	Export ExportConfig `yaml:"export"`
}

// OutputConfig represents output settings for the cat command
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
}

// DataConfig represents data-section parsing settings
type DataConfig struct {
	CommentPrefix string `yaml:"comment_prefix"`
	RequireRows   bool   `yaml:"require_rows"`
}

// ExportConfig represents SQLite export settings
type ExportConfig struct {
	Path  string `yaml:"path"`
	Table string `yaml:"table"`
}

// LoadConfig loads configuration from the specified file
func LoadConfig(configPath string) (*Config, error) {
	// Load .env files first
	if err := loadEnvFiles(); err != nil {
		return nil, fmt.Errorf("failed to load environment files: %w", err)
	}

	// Return default configuration if the file doesn't exist
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		config := getDefaultConfig()
		expandConfigEnvVars(config)

		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML with strict mode to detect unknown fields
	var config Config

	err = yaml.UnmarshalWithOptions(data, &config, yaml.Strict())
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	applyDefaults(&config)
	expandConfigEnvVars(&config)

	return &config, nil
}

// validateConfig validates the configuration for common errors
func validateConfig(config *Config) error {
	validFormats := map[string]bool{
		"table":    true,
		"json":     true,
		"csv":      true,
		"yaml":     true,
		"markdown": true,
	}
	if config.Output.DefaultFormat != "" && !validFormats[config.Output.DefaultFormat] {
		return fmt.Errorf("%w: invalid output.default_format '%s': must be one of table, json, csv, yaml, markdown", ErrConfigValidation, config.Output.DefaultFormat)
	}

	return nil
}

// applyDefaults fills in defaults for missing values
func applyDefaults(config *Config) {
	if config.Output.DefaultFormat == "" {
		config.Output.DefaultFormat = "table"
	}

	if config.Data.CommentPrefix == "" {
		config.Data.CommentPrefix = "#"
	}

	if config.Export.Path == "" {
		config.Export.Path = "ifx.db"
	}

	if config.Export.Table == "" {
		config.Export.Table = "ifx_data"
	}
}

// getDefaultConfig returns the default configuration
func getDefaultConfig() *Config {
	config := &Config{}
	applyDefaults(config)

	return config
}

// loadEnvFiles loads a .env file from the working directory if present
func loadEnvFiles() error {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return fmt.Errorf("failed to load .env: %w", err)
		}
	}

	return nil
}

var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandConfigEnvVars expands ${VAR} references in string settings
func expandConfigEnvVars(config *Config) {
	config.Export.Path = expandEnvVars(config.Export.Path)
	config.Export.Table = expandEnvVars(config.Export.Table)
}

// expandEnvVars replaces ${VAR} with the environment value, leaving
// unknown references as-is
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		name := envVarPattern.FindStringSubmatch(match)[1]
		if value, ok := os.LookupEnv(name); ok {
			return value
		}

		return match
	})
}
