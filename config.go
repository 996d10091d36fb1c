package stepz

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Config holds the tunables of a Driver. The zero Config imposes no limits and logs
// nothing.
//
// Example YAML:
//
//	max_steps: 10000
//	timeout: 5s
//	log_level: debug
type Config struct {
	// MaxSteps bounds the number of steps a single Run may take. Zero means no bound.
	MaxSteps int `yaml:"max_steps"`
	// Timeout bounds the wall-clock time of a single Run, checked between steps.
	// Zero means no deadline.
	Timeout time.Duration `yaml:"timeout"`
	// LogLevel is a zap level name. Empty disables logging.
	LogLevel string `yaml:"log_level"`
}

// ParseConfig decodes a YAML Config and validates it.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses a YAML Config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return ParseConfig(data)
}

// Validate rejects negative limits and unknown log levels.
func (c Config) Validate() error {
	if c.MaxSteps < 0 {
		return fmt.Errorf("%w: max_steps must not be negative, got %d", ErrInvalidConfig, c.MaxSteps)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w: timeout must not be negative, got %v", ErrInvalidConfig, c.Timeout)
	}
	if c.LogLevel != "" {
		if _, err := zap.ParseAtomicLevel(c.LogLevel); err != nil {
			return fmt.Errorf("%w: log_level: %v", ErrInvalidConfig, err)
		}
	}
	return nil
}

// Logger builds a production zap logger at the configured level, or a no-op logger
// when LogLevel is empty.
func (c Config) Logger() (*zap.Logger, error) {
	if c.LogLevel == "" {
		return zap.NewNop(), nil
	}
	level, err := zap.ParseAtomicLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: log_level: %v", ErrInvalidConfig, err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = level
	return zc.Build()
}
